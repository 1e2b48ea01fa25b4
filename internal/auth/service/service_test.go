package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aturganbekov/prime-sieve/backend/internal/common/clock"
	commonerrors "github.com/aturganbekov/prime-sieve/backend/internal/common/errors"
	"github.com/aturganbekov/prime-sieve/backend/internal/common/logger"
	"github.com/aturganbekov/prime-sieve/backend/internal/credstore"
)

type mockCredRepo struct {
	createFunc         func(ctx context.Context, cred credstore.Credential) error
	findByUsernameFunc func(ctx context.Context, username string) (credstore.Credential, error)
}

func (m *mockCredRepo) Create(ctx context.Context, cred credstore.Credential) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, cred)
	}
	return nil
}

func (m *mockCredRepo) FindByUsername(ctx context.Context, username string) (credstore.Credential, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return credstore.Credential{}, credstore.ErrNotFound
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *mockHasher) Compare(hash, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	if hash == "hashed:"+password {
		return nil
	}
	return errors.New("mismatch")
}

type mockTokenGenerator struct {
	newTokenFunc func() (string, error)
}

func (m *mockTokenGenerator) NewToken() (string, error) {
	if m.newTokenFunc != nil {
		return m.newTokenFunc()
	}
	return "tech-token-1", nil
}

func setupService(t *testing.T) (*Service, *mockCredRepo, *mockHasher, *mockTokenGenerator) {
	t.Helper()

	repo := &mockCredRepo{}
	hasher := &mockHasher{}
	tokens := &mockTokenGenerator{}
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	log, _ := logger.New("", "test", "error")

	svc := New(Deps{
		Repo:   repo,
		Hasher: hasher,
		Tokens: tokens,
		Clock:  mockClock,
		Log:    log,
	})

	return svc, repo, hasher, tokens
}

func TestRegister_Success(t *testing.T) {
	svc, repo, _, _ := setupService(t)

	var created credstore.Credential
	repo.createFunc = func(ctx context.Context, cred credstore.Credential) error {
		created = cred
		return nil
	}

	token, err := svc.Register(context.Background(), "alice", "sturdy-pass-1!")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if token != "tech-token-1" {
		t.Errorf("expected issued token, got %q", token)
	}
	if created.Username != "alice" {
		t.Errorf("expected username alice, got %q", created.Username)
	}
	if created.PasswordHash != "hashed:sturdy-pass-1!" {
		t.Errorf("unexpected password hash %q", created.PasswordHash)
	}
	if created.TechnicalToken != "tech-token-1" {
		t.Errorf("unexpected stored token %q", created.TechnicalToken)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestRegister_WeakPassword(t *testing.T) {
	svc, repo, _, _ := setupService(t)

	repo.createFunc = func(ctx context.Context, cred credstore.Credential) error {
		t.Fatal("repository must not be touched for weak passwords")
		return nil
	}

	for _, password := range []string{"short1!", "nodigits!!", "nosymbols11"} {
		_, err := svc.Register(context.Background(), "alice", password)
		if !commonerrors.Is(err, commonerrors.ErrWeakPassword) {
			t.Errorf("password %q: expected weak password, got %v", password, err)
		}
	}
}

func TestRegister_TakenUsernameBeatsWeakPassword(t *testing.T) {
	svc, repo, _, _ := setupService(t)

	repo.findByUsernameFunc = func(ctx context.Context, username string) (credstore.Credential, error) {
		return credstore.Credential{
			Username:       "alice",
			PasswordHash:   "hashed:sturdy-pass-1!",
			TechnicalToken: "stable-token",
		}, nil
	}
	repo.createFunc = func(ctx context.Context, cred credstore.Credential) error {
		t.Fatal("repository must not be written when the username exists")
		return nil
	}

	_, err := svc.Register(context.Background(), "alice", "weak")
	if !commonerrors.Is(err, commonerrors.ErrUsernameTaken) {
		t.Fatalf("expected username taken to win over the password policy, got %v", err)
	}
}

func TestRegister_CreateRaceStillMapsToUsernameTaken(t *testing.T) {
	svc, repo, _, _ := setupService(t)

	repo.createFunc = func(ctx context.Context, cred credstore.Credential) error {
		return credstore.ErrUsernameExists
	}

	_, err := svc.Register(context.Background(), "alice", "sturdy-pass-1!")
	if !commonerrors.Is(err, commonerrors.ErrUsernameTaken) {
		t.Fatalf("expected username taken, got %v", err)
	}
}

func TestRegister_StorageFailure(t *testing.T) {
	svc, repo, _, _ := setupService(t)

	repo.createFunc = func(ctx context.Context, cred credstore.Credential) error {
		return errors.New("disk full")
	}

	_, err := svc.Register(context.Background(), "alice", "sturdy-pass-1!")
	if !commonerrors.Is(err, commonerrors.ErrStorageUnavailable) {
		t.Fatalf("expected storage unavailable, got %v", err)
	}
}

func TestLogin_Success_TokenUnchanged(t *testing.T) {
	svc, repo, _, _ := setupService(t)

	repo.findByUsernameFunc = func(ctx context.Context, username string) (credstore.Credential, error) {
		return credstore.Credential{
			Username:       "alice",
			PasswordHash:   "hashed:sturdy-pass-1!",
			TechnicalToken: "stable-token",
		}, nil
	}

	for i := 0; i < 3; i++ {
		token, err := svc.Login(context.Background(), "alice", "sturdy-pass-1!")
		if err != nil {
			t.Fatalf("login %d: expected success, got %v", i, err)
		}
		if token != "stable-token" {
			t.Errorf("login %d: token changed to %q", i, token)
		}
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _, _, _ := setupService(t)

	_, err := svc.Login(context.Background(), "ghost", "whatever-1!")
	if !commonerrors.Is(err, commonerrors.ErrUnknownUser) {
		t.Fatalf("expected unknown user, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, repo, _, _ := setupService(t)

	repo.findByUsernameFunc = func(ctx context.Context, username string) (credstore.Credential, error) {
		return credstore.Credential{
			Username:       "alice",
			PasswordHash:   "hashed:right-pass-1!",
			TechnicalToken: "stable-token",
		}, nil
	}

	_, err := svc.Login(context.Background(), "alice", "wrong-pass-1!")
	if !commonerrors.Is(err, commonerrors.ErrWrongPassword) {
		t.Fatalf("expected wrong password, got %v", err)
	}
}
