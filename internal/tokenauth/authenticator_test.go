package tokenauth

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

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

func setupAuthenticator(t *testing.T, token string) *Authenticator {
	t.Helper()

	repo := &mockCredRepo{
		findByUsernameFunc: func(ctx context.Context, username string) (credstore.Credential, error) {
			if username != "alice" {
				return credstore.Credential{}, credstore.ErrNotFound
			}
			return credstore.Credential{
				Username:       "alice",
				PasswordHash:   "irrelevant",
				TechnicalToken: token,
			}, nil
		},
	}

	log, _ := logger.New("", "test", "error")
	return New(repo, log)
}

func TestAuthenticate_MissingCredentials(t *testing.T) {
	a := setupAuthenticator(t, "token-1")

	claims := []Claim{
		{},
		{Username: "alice"},
		{Username: "alice", Timestamp: "1700000000"},
		{Timestamp: "1700000000", Proof: "abc"},
	}

	for _, claim := range claims {
		_, err := a.Authenticate(context.Background(), claim)
		if !commonerrors.Is(err, commonerrors.ErrMissingCredentials) {
			t.Errorf("claim %+v: expected missing credentials, got %v", claim, err)
		}
	}
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	a := setupAuthenticator(t, "token-1")

	ts := strconv.FormatInt(time.Now().Unix(), 10)
	claim := Claim{
		Username:  "bob",
		Timestamp: ts,
		Proof:     ComputeProof("token-1", ts),
	}

	_, err := a.Authenticate(context.Background(), claim)
	if !commonerrors.Is(err, commonerrors.ErrUnknownClaimUser) {
		t.Fatalf("expected unknown user, got %v", err)
	}
}

func TestAuthenticate_ExactTimestamp(t *testing.T) {
	a := setupAuthenticator(t, "token-1")

	ts := strconv.FormatInt(time.Now().Unix(), 10)
	claim := Claim{
		Username:  "alice",
		Timestamp: ts,
		Proof:     ComputeProof("token-1", ts),
	}

	offset, err := a.Authenticate(context.Background(), claim)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if offset != 0 {
		t.Errorf("expected offset 0, got %d", offset)
	}
}

func TestAuthenticate_SkewWindow(t *testing.T) {
	a := setupAuthenticator(t, "token-1")

	now := time.Now().Unix()

	for _, skew := range []int64{-2, -1, 1, 2} {
		proofTime := strconv.FormatInt(now+skew, 10)
		claim := Claim{
			Username:  "alice",
			Timestamp: strconv.FormatInt(now, 10),
			Proof:     ComputeProof("token-1", proofTime),
		}

		offset, err := a.Authenticate(context.Background(), claim)
		if err != nil {
			t.Fatalf("skew %d: expected success, got %v", skew, err)
		}
		if int64(offset) != skew {
			t.Errorf("skew %d: expected matched offset %d, got %d", skew, skew, offset)
		}
	}
}

func TestAuthenticate_OutsideSkewWindow(t *testing.T) {
	a := setupAuthenticator(t, "token-1")

	now := time.Now().Unix()

	for _, skew := range []int64{-3, 3, 60} {
		proofTime := strconv.FormatInt(now+skew, 10)
		claim := Claim{
			Username:  "alice",
			Timestamp: strconv.FormatInt(now, 10),
			Proof:     ComputeProof("token-1", proofTime),
		}

		_, err := a.Authenticate(context.Background(), claim)
		if !commonerrors.Is(err, commonerrors.ErrInvalidToken) {
			t.Errorf("skew %d: expected invalid token, got %v", skew, err)
		}
	}
}

func TestAuthenticate_WrongToken(t *testing.T) {
	a := setupAuthenticator(t, "token-1")

	ts := strconv.FormatInt(time.Now().Unix(), 10)
	claim := Claim{
		Username:  "alice",
		Timestamp: ts,
		Proof:     ComputeProof("token-2", ts),
	}

	_, err := a.Authenticate(context.Background(), claim)
	if !commonerrors.Is(err, commonerrors.ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestAuthenticate_NonNumericTimestamp(t *testing.T) {
	a := setupAuthenticator(t, "token-1")

	// The exact check compares the raw string, so a non-numeric
	// timestamp can still authenticate; the skew window cannot apply.
	claim := Claim{
		Username:  "alice",
		Timestamp: "not-a-number",
		Proof:     ComputeProof("token-1", "not-a-number"),
	}

	offset, err := a.Authenticate(context.Background(), claim)
	if err != nil {
		t.Fatalf("expected success on exact match, got %v", err)
	}
	if offset != 0 {
		t.Errorf("expected offset 0, got %d", offset)
	}

	claim.Proof = ComputeProof("token-1", "other")
	if _, err := a.Authenticate(context.Background(), claim); !commonerrors.Is(err, commonerrors.ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestAuthenticate_StorageFailure(t *testing.T) {
	repo := &mockCredRepo{
		findByUsernameFunc: func(ctx context.Context, username string) (credstore.Credential, error) {
			return credstore.Credential{}, errors.New("disk gone")
		},
	}
	log, _ := logger.New("", "test", "error")
	a := New(repo, log)

	claim := Claim{Username: "alice", Timestamp: "1", Proof: "p"}
	_, err := a.Authenticate(context.Background(), claim)
	if !commonerrors.Is(err, commonerrors.ErrStorageUnavailable) {
		t.Fatalf("expected storage unavailable, got %v", err)
	}
}

func TestComputeProof_Format(t *testing.T) {
	proof := ComputeProof("token", "123")

	if len(proof) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(proof))
	}
	if proof != ComputeProof("token", "123") {
		t.Error("proof must be deterministic")
	}
	if proof == ComputeProof("token", "124") {
		t.Error("proof must depend on timestamp")
	}
}
