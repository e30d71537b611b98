package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/EgorLis/my-notes/internal/auth/password"
	"github.com/EgorLis/my-notes/internal/config"
	"github.com/EgorLis/my-notes/internal/domain"
	redisx "github.com/EgorLis/my-notes/internal/infra/cache/redis"
	"github.com/EgorLis/my-notes/internal/infra/database/postgres"
	fsstorage "github.com/EgorLis/my-notes/internal/infra/storage/fs"
	s3storage "github.com/EgorLis/my-notes/internal/infra/storage/s3"
	"github.com/EgorLis/my-notes/internal/service/account"
	"github.com/EgorLis/my-notes/internal/session"
	"github.com/EgorLis/my-notes/internal/transport/web"
)

type App struct {
	config *config.Config
	server *web.Server
	log    *log.Logger
	cache  *redisx.Cache
	repo   domain.UsersRepo
}

func Build(ctx context.Context) (*App, error) {
	base := log.New(os.Stdout, "[app] ", log.LstdFlags)

	serverLog := log.New(base.Writer(), base.Prefix()+"[server] ", base.Flags())
	pgLog := log.New(base.Writer(), base.Prefix()+"[postgres] ", base.Flags())
	docsLog := log.New(base.Writer(), base.Prefix()+"[docs] ", base.Flags())
	redisLog := log.New(base.Writer(), base.Prefix()+"[redis] ", base.Flags())
	sessLog := log.New(base.Writer(), base.Prefix()+"[session] ", base.Flags())
	accLog := log.New(base.Writer(), base.Prefix()+"[account] ", base.Flags())

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed load config: %w", err)
	}
	base.Printf("\n  configuration: %s-------------------", cfg)

	base.Println("init PostgreSQL")
	pgRepo, err := postgres.NewPGRepo(ctx, pgLog, cfg.GetDSN(), cfg.DBScheme)
	if err != nil {
		return nil, fmt.Errorf("failed init postgres: %w", err)
	}
	base.Println("PostgreSQL is initialized")

	base.Println("init Redis")
	rc := redisx.New(redisx.Config{
		Addr:     cfg.RedisAddr,
		DB:       cfg.RedisDB,
		Password: cfg.RedisPassword,
	}, redisLog)
	if err := rc.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed init redis: %w", err)
	}
	base.Println("Redis is initialized")

	base.Printf("init document storage (%s)", cfg.DocsBackend)
	var docs domain.DocumentStore
	switch cfg.DocsBackend {
	case "s3":
		s3cfg := s3storage.Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			UseSSL:    cfg.S3UseSSL,
			PathStyle: cfg.S3PathStyle,
		}
		docs, err = s3storage.New(ctx, s3cfg, docsLog)
	default:
		docs, err = fsstorage.New(cfg.DocsDir, docsLog)
	}
	if err != nil {
		return nil, fmt.Errorf("failed init document storage: %w", err)
	}

	sessions := session.NewStore(rc, cfg.SessionTTL, sessLog)
	hasher := password.NewDefault()
	accounts := account.New(accLog, pgRepo, docs, sessions, hasher)

	base.Println("init Server")
	server := web.New(serverLog, cfg, web.Deps{
		Accounts: accounts,
		Sessions: sessions,
		DB:       pgRepo,
		Cache:    rc,
	})
	base.Println("Server is initialized")

	base.Println("build ended")
	return &App{
		config: cfg,
		server: server,
		log:    base,
		repo:   pgRepo,
		cache:  rc,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Println("start application...")
	go a.server.Run()
	<-ctx.Done()
	a.log.Println("stop application...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.server.Close(stopCtx)
	a.repo.Close()
	a.cache.Close()

	return nil
}
