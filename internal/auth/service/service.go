package service

import (
	"context"
	"errors"

	"github.com/aturganbekov/prime-sieve/backend/internal/common/clock"
	commoncrypto "github.com/aturganbekov/prime-sieve/backend/internal/common/crypto"
	commonerrors "github.com/aturganbekov/prime-sieve/backend/internal/common/errors"
	"github.com/aturganbekov/prime-sieve/backend/internal/common/logger"
	"github.com/aturganbekov/prime-sieve/backend/internal/credstore"
	"github.com/aturganbekov/prime-sieve/backend/internal/observability/metrics"
)

// Service owns the one-shot password flows: registration issues a fresh
// technical token, login returns the stored one unchanged. The
// time-windowed request authentication lives in tokenauth and only
// reads what this service writes.
type Service struct {
	repo   credstore.Repository
	hasher commoncrypto.PasswordHasher
	tokens commoncrypto.TokenGenerator
	clock  clock.Clock
	log    *logger.Logger
}

type Deps struct {
	Repo   credstore.Repository
	Hasher commoncrypto.PasswordHasher
	Tokens commoncrypto.TokenGenerator
	Clock  clock.Clock
	Log    *logger.Logger
}

func New(deps Deps) *Service {
	return &Service{
		repo:   deps.Repo,
		hasher: deps.Hasher,
		tokens: deps.Tokens,
		clock:  deps.Clock,
		log:    deps.Log,
	}
}

func (s *Service) Register(ctx context.Context, username, password string) (string, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": username,
		"action":   "register_attempt",
	}).Info("register attempt")

	// A taken username is reported before anything else, even when the
	// password would also be rejected.
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		metrics.RegistrationsTotal.WithLabelValues("username_taken").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "register_username_exists",
		}).Warn("register failed: already exists")
		return "", commonerrors.ErrUsernameTaken
	} else if !errors.Is(err, credstore.ErrNotFound) {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "register_lookup_failed",
		}).Errorf("register failed: %v", err)
		return "", commonerrors.ErrStorageUnavailable.WithCause(err)
	}

	if err := ValidatePassword(password); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("weak_password").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		return "", err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return "", commonerrors.ErrInternalError.WithCause(err)
	}

	token, err := s.tokens.NewToken()
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "register_token_generation_failed",
		}).Errorf("register failed: token generation error: %v", err)
		return "", commonerrors.ErrInternalError.WithCause(err)
	}

	cred := credstore.Credential{
		Username:       username,
		PasswordHash:   hash,
		TechnicalToken: token,
		CreatedAt:      s.clock.Now(),
	}

	if err := s.repo.Create(ctx, cred); err != nil {
		// A concurrent registration can still win the race after the
		// lookup above.
		if errors.Is(err, credstore.ErrUsernameExists) {
			metrics.RegistrationsTotal.WithLabelValues("username_taken").Inc()
			s.log.WithFields(ctx, logger.Fields{
				"username": username,
				"action":   "register_username_exists",
			}).Warn("register failed: already exists")
			return "", commonerrors.ErrUsernameTaken
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "register_create_failed",
		}).Errorf("register failed: %v", err)
		return "", commonerrors.ErrStorageUnavailable.WithCause(err)
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	metrics.TechnicalTokensIssued.Inc()

	s.log.WithFields(ctx, logger.Fields{
		"username": username,
		"action":   "register_success",
	}).Info("user registered")

	return token, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": username,
		"action":   "login_attempt",
	}).Info("login attempt")

	cred, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, credstore.ErrNotFound) {
			metrics.LoginsTotal.WithLabelValues("unknown_user").Inc()
			s.log.WithFields(ctx, logger.Fields{
				"username": username,
				"action":   "login_unknown_user",
			}).Warn("login failed: user not found")
			return "", commonerrors.ErrUnknownUser
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "login_lookup_failed",
		}).Errorf("login failed: %v", err)
		return "", commonerrors.ErrStorageUnavailable.WithCause(err)
	}

	if err := s.hasher.Compare(cred.PasswordHash, password); err != nil {
		metrics.LoginsTotal.WithLabelValues("wrong_password").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "login_wrong_password",
		}).Warn("login failed: wrong password")
		return "", commonerrors.ErrWrongPassword
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()

	s.log.WithFields(ctx, logger.Fields{
		"username": username,
		"action":   "login_success",
	}).Info("user logged in")

	return cred.TechnicalToken, nil
}
