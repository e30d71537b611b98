package account

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgorLis/my-notes/internal/domain"
)

// ---- фейки хранилищ (в памяти, под мьютексом) ----

type fakeUsers struct {
	mu          sync.Mutex
	accounts    map[string]domain.Account
	createCalls int
}

func newFakeUsers() *fakeUsers { return &fakeUsers{accounts: map[string]domain.Account{}} }

func (f *fakeUsers) Close()                           {}
func (f *fakeUsers) Ping(context.Context) error       { return nil }
func (f *fakeUsers) CreateUser(_ context.Context, username string, passHash []byte) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if _, ok := f.accounts[username]; ok {
		return domain.Account{}, domain.ErrDuplicateUsername
	}
	a := domain.Account{Username: username, PassHash: passHash, CreatedAt: time.Now()}
	f.accounts[username] = a
	return a, nil
}

func (f *fakeUsers) UserByUsername(_ context.Context, username string) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[username]
	if !ok {
		return domain.Account{}, domain.ErrNotFound
	}
	return a, nil
}

func (f *fakeUsers) DeleteUser(_ context.Context, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[username]; !ok {
		return domain.ErrNotFound
	}
	delete(f.accounts, username)
	return nil
}

type fakeDocs struct {
	mu        sync.Mutex
	data      map[string]string
	failWrite bool
}

func newFakeDocs() *fakeDocs { return &fakeDocs{data: map[string]string{}} }

func (f *fakeDocs) Read(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.data[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return c, nil
}

func (f *fakeDocs) Write(_ context.Context, key, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite {
		return errors.New("disk full")
	}
	f.data[key] = content
	return nil
}

func (f *fakeDocs) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; !ok {
		return domain.ErrNotFound
	}
	delete(f.data, key)
	return nil
}

type fakeSessions struct {
	mu   sync.Mutex
	data map[string]domain.Session
}

func newFakeSessions() *fakeSessions { return &fakeSessions{data: map[string]domain.Session{}} }

func (f *fakeSessions) Ensure(_ context.Context, token string) (domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.data[token]; ok && !s.Expired(time.Now()) {
		return s, nil
	}
	now := time.Now()
	s := domain.Session{Token: uuid.NewString(), CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	f.data[s.Token] = s
	return s, nil
}

func (f *fakeSessions) Bind(_ context.Context, s domain.Session, username string) (domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s.Username = username
	f.data[s.Token] = s
	return s, nil
}

func (f *fakeSessions) Destroy(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, token)
	return nil
}

// простой хэшер вместо argon2id, чтобы тесты не жгли CPU
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "h:" + plain, nil }
func (fakeHasher) Verify(plain, encoded string) (bool, error) {
	return encoded == "h:"+plain, nil
}

type env struct {
	svc      *Service
	users    *fakeUsers
	docs     *fakeDocs
	sessions *fakeSessions
}

func newEnv() *env {
	users := newFakeUsers()
	docs := newFakeDocs()
	sessions := newFakeSessions()
	svc := New(log.New(io.Discard, "", 0), users, docs, sessions, fakeHasher{})
	return &env{svc: svc, users: users, docs: docs, sessions: sessions}
}

func (e *env) anonymous(t *testing.T) domain.Session {
	t.Helper()
	s, err := e.sessions.Ensure(context.Background(), "")
	require.NoError(t, err)
	return s
}

// ---- Register ----

func TestRegister_InvalidInputSkipsStorage(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"bad email", "not-an-email", "abc123"},
		{"password without digit", "a@b.com", "abcdef"},
		{"password without letter", "a@b.com", "123456"},
		{"password too short", "a@b.com", "a1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.svc.Register(ctx, tt.username, tt.password)
			assert.ErrorIs(t, err, domain.ErrInvalidFormat)
		})
	}
	// до хранилища не дошли ни разу
	assert.Zero(t, e.users.createCalls)
}

func TestRegister_SeedsDocument(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	require.NoError(t, e.svc.Register(ctx, "a@b.com", "abc123"))

	content, err := e.docs.Read(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDocContent, content)
}

func TestRegister_DuplicateKeepsFirstIntact(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	require.NoError(t, e.svc.Register(ctx, "a@b.com", "abc123"))
	require.NoError(t, e.svc.SaveDocument(ctx,
		domain.Session{Token: "t", Username: "a@b.com"}, "my text"))

	err := e.svc.Register(ctx, "a@b.com", "xyz789")
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)

	// первый пользователь не пострадал: и логин, и документ на месте
	sess := e.anonymous(t)
	bound, err := e.svc.Login(ctx, sess, "a@b.com", "abc123")
	require.NoError(t, err)
	content, err := e.svc.LoadDocument(ctx, bound)
	require.NoError(t, err)
	assert.Equal(t, "my text", content)
}

func TestRegister_SeedFailureLeavesAccount(t *testing.T) {
	e := newEnv()
	e.docs.failWrite = true
	ctx := context.Background()

	err := e.svc.Register(ctx, "a@b.com", "abc123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidFormat)

	// известный зазор: учётная запись создана, документа нет
	_, err = e.users.UserByUsername(ctx, "a@b.com")
	assert.NoError(t, err)
	_, err = e.docs.Read(ctx, "a@b.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegister_ConcurrentSameUsername(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	const workers = 8
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- e.svc.Register(ctx, "race@b.com", "abc123")
		}()
	}
	wg.Wait()
	close(errs)

	var okCount, dupCount int
	for err := range errs {
		switch {
		case err == nil:
			okCount++
		case errors.Is(err, domain.ErrDuplicateUsername):
			dupCount++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, okCount, "exactly one registration wins")
	assert.Equal(t, workers-1, dupCount)
	assert.Len(t, e.users.accounts, 1, "no duplicate credential rows")
}

// ---- Login / CheckSession ----

func TestLogin_MissingFields(t *testing.T) {
	e := newEnv()
	sess := e.anonymous(t)

	_, err := e.svc.Login(context.Background(), sess, "", "abc123")
	assert.ErrorIs(t, err, domain.ErrMissingFields)
	_, err = e.svc.Login(context.Background(), sess, "a@b.com", "")
	assert.ErrorIs(t, err, domain.ErrMissingFields)
}

func TestLogin_NoEnumeration(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	require.NoError(t, e.svc.Register(ctx, "a@b.com", "abc123"))
	sess := e.anonymous(t)

	// неверный пароль и несуществующий логин — одна и та же ошибка
	_, errWrongPswd := e.svc.Login(ctx, sess, "a@b.com", "wrong1")
	_, errNoUser := e.svc.Login(ctx, sess, "ghost@b.com", "abc123")

	assert.ErrorIs(t, errWrongPswd, domain.ErrAuthFailed)
	assert.ErrorIs(t, errNoUser, domain.ErrAuthFailed)
	assert.Equal(t, errWrongPswd, errNoUser)
}

func TestLogin_BindsSession(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	require.NoError(t, e.svc.Register(ctx, "a@b.com", "abc123"))
	sess := e.anonymous(t)

	bound, err := e.svc.Login(ctx, sess, "a@b.com", "abc123")
	require.NoError(t, err)

	loggedIn, username := e.svc.CheckSession(bound)
	assert.True(t, loggedIn)
	assert.Equal(t, "a@b.com", username)

	// привязка дожила до повторного Ensure (durable-сессия)
	again, err := e.sessions.Ensure(ctx, bound.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", again.Username)
}

// ---- Logout / DeleteAccount ----

func TestLogout_Idempotent(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	sess := e.anonymous(t)

	require.NoError(t, e.svc.Logout(ctx, sess))
	require.NoError(t, e.svc.Logout(ctx, sess)) // повторно — не ошибка
}

func TestDeleteAccount_RequiresBoundSession(t *testing.T) {
	e := newEnv()
	sess := e.anonymous(t)

	err := e.svc.DeleteAccount(context.Background(), sess)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestDeleteAccount_Full(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	require.NoError(t, e.svc.Register(ctx, "a@b.com", "abc123"))
	sess := e.anonymous(t)
	bound, err := e.svc.Login(ctx, sess, "a@b.com", "abc123")
	require.NoError(t, err)

	require.NoError(t, e.svc.DeleteAccount(ctx, bound))

	// сессия уничтожена: Ensure по старому токену выдаёт новую анонимную
	fresh, err := e.sessions.Ensure(ctx, bound.Token)
	require.NoError(t, err)
	loggedIn, _ := e.svc.CheckSession(fresh)
	assert.False(t, loggedIn)

	// вход по прежним учётным данным невозможен
	_, err = e.svc.Login(ctx, fresh, "a@b.com", "abc123")
	assert.ErrorIs(t, err, domain.ErrAuthFailed)

	// документ удалён
	_, err = e.docs.Read(ctx, "a@b.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteAccount_MissingDocumentNotFatal(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	require.NoError(t, e.svc.Register(ctx, "a@b.com", "abc123"))
	require.NoError(t, e.docs.Delete(ctx, "a@b.com")) // документа уже нет

	sess := e.anonymous(t)
	bound, err := e.svc.Login(ctx, sess, "a@b.com", "abc123")
	require.NoError(t, err)

	assert.NoError(t, e.svc.DeleteAccount(ctx, bound))
}

// ---- документы ----

func TestSaveLoad_RoundTrip(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	require.NoError(t, e.svc.Register(ctx, "a@b.com", "abc123"))
	sess := e.anonymous(t)
	bound, err := e.svc.Login(ctx, sess, "a@b.com", "abc123")
	require.NoError(t, err)

	require.NoError(t, e.svc.SaveDocument(ctx, bound, "hello"))
	got, err := e.svc.LoadDocument(ctx, bound)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestSaveLoad_AnonymousUsesSharedKey(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	first := e.anonymous(t)
	second := e.anonymous(t)

	require.NoError(t, e.svc.SaveDocument(ctx, first, "shared text"))

	// другой анонимный клиент видит тот же общий документ
	got, err := e.svc.LoadDocument(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "shared text", got)
}

func TestLoad_MissingDocument(t *testing.T) {
	e := newEnv()
	sess := e.anonymous(t)

	_, err := e.svc.LoadDocument(context.Background(), sess)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
