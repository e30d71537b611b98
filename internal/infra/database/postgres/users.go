package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/EgorLis/my-notes/internal/domain"
)

func (r *PGRepo) CreateUser(ctx context.Context, username string, passHash []byte) (domain.Account, error) {
	q := r.qb().Insert(fmt.Sprintf("%s.users", r.schema)).
		Columns("username", "pass_hash").
		Values(username, passHash).
		Suffix("RETURNING username, pass_hash, created_at")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateUser", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var a domain.Account
	if err := row.Scan(&a.Username, &a.PassHash, &a.CreatedAt); err != nil {
		// конфликт уникальности решает сама БД (PRIMARY KEY по username)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			r.logger.Printf("CreateUser conflict after %s username=%s", time.Since(start), username)
			return domain.Account{}, domain.ErrDuplicateUsername
		}
		r.logger.Printf("CreateUser scan error after %s: %v", time.Since(start), err)
		return domain.Account{}, err
	}
	r.logger.Printf("CreateUser ok in %s username=%s", time.Since(start), a.Username)
	return a, nil
}

func (r *PGRepo) UserByUsername(ctx context.Context, username string) (domain.Account, error) {
	q := r.qb().Select("username", "pass_hash", "created_at").
		From(fmt.Sprintf("%s.users", r.schema)).
		Where(sq.Eq{"username": username})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UserByUsername", sqlStr, args)

	start := time.Now()
	row := r.pool.QueryRow(ctx, sqlStr, args...)
	var a domain.Account
	if err := row.Scan(&a.Username, &a.PassHash, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("UserByUsername not found in %s username=%s", time.Since(start), username)
			return domain.Account{}, domain.ErrNotFound
		}
		r.logger.Printf("UserByUsername scan error after %s: %v", time.Since(start), err)
		return domain.Account{}, err
	}
	r.logger.Printf("UserByUsername ok in %s username=%s", time.Since(start), a.Username)
	return a, nil
}

func (r *PGRepo) DeleteUser(ctx context.Context, username string) error {
	q := r.qb().Delete(fmt.Sprintf("%s.users", r.schema)).
		Where(sq.Eq{"username": username})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("DeleteUser", sqlStr, args)

	start := time.Now()
	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("DeleteUser exec error after %s: %v", time.Since(start), err)
		return err
	}
	if tag.RowsAffected() == 0 {
		r.logger.Printf("DeleteUser no rows affected in %s username=%s", time.Since(start), username)
		return domain.ErrNotFound
	}
	r.logger.Printf("DeleteUser ok in %s username=%s", time.Since(start), username)
	return nil
}
