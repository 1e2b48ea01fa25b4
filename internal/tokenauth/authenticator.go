package tokenauth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"

	"github.com/aturganbekov/prime-sieve/backend/internal/common/constants"
	commonerrors "github.com/aturganbekov/prime-sieve/backend/internal/common/errors"
	"github.com/aturganbekov/prime-sieve/backend/internal/common/logger"
	"github.com/aturganbekov/prime-sieve/backend/internal/credstore"
	"github.com/aturganbekov/prime-sieve/backend/internal/observability/metrics"
)

// Claim is the identity proof attached to each privileged request:
// the caller hashes their technical token together with their own
// clock reading. The timestamp is untrusted and used as supplied.
type Claim struct {
	Username  string
	Timestamp string
	Proof     string
}

// Offsets tried, in order, after the exact-timestamp check fails:
// -1, +1, -2, +2. The window tolerates client clock skew at the price
// of a small replay window; no nonce is kept.
var skewOffsets = buildSkewOffsets(constants.TimestampToleranceSeconds)

func buildSkewOffsets(tolerance int) []int {
	offsets := make([]int, 0, tolerance*2)
	for d := 1; d <= tolerance; d++ {
		offsets = append(offsets, -d, d)
	}
	return offsets
}

type Authenticator struct {
	creds credstore.Repository
	log   *logger.Logger
}

func New(creds credstore.Repository, log *logger.Logger) *Authenticator {
	return &Authenticator{creds: creds, log: log}
}

// ComputeProof is the shared hash both sides evaluate:
// sha256(token ":" timestamp), hex-encoded.
func ComputeProof(token, timestamp string) string {
	sum := sha256.Sum256([]byte(token + ":" + timestamp))
	return hex.EncodeToString(sum[:])
}

// Authenticate validates a claim against the credential store and
// returns the timestamp offset (seconds) whose hash matched. It is
// read-only; proofs are compared as plain strings, the same accepted
// timing-attack exposure the protocol already has.
func (a *Authenticator) Authenticate(ctx context.Context, claim Claim) (int, error) {
	if claim.Username == "" || claim.Timestamp == "" || claim.Proof == "" {
		metrics.TokenAuthTotal.WithLabelValues("missing_credentials").Inc()
		return 0, commonerrors.ErrMissingCredentials
	}

	cred, err := a.creds.FindByUsername(ctx, claim.Username)
	if err != nil {
		if errors.Is(err, credstore.ErrNotFound) {
			metrics.TokenAuthTotal.WithLabelValues("unknown_user").Inc()
			a.log.WithFields(ctx, logger.Fields{
				"username": claim.Username,
				"action":   "token_auth_unknown_user",
			}).Warn("authentication failed: unknown user")
			return 0, commonerrors.ErrUnknownClaimUser
		}
		metrics.TokenAuthTotal.WithLabelValues("error").Inc()
		return 0, commonerrors.ErrStorageUnavailable.WithCause(err)
	}

	if claim.Proof == ComputeProof(cred.TechnicalToken, claim.Timestamp) {
		metrics.TokenAuthTotal.WithLabelValues("accepted").Inc()
		metrics.TokenAuthMatchedOffset.WithLabelValues("0").Inc()
		return 0, nil
	}

	// Offsets only apply to numeric timestamps; a non-numeric one can
	// only pass the exact check above.
	if ts, err := strconv.ParseInt(claim.Timestamp, 10, 64); err == nil {
		for _, offset := range skewOffsets {
			shifted := strconv.FormatInt(ts+int64(offset), 10)
			if claim.Proof == ComputeProof(cred.TechnicalToken, shifted) {
				metrics.TokenAuthTotal.WithLabelValues("accepted").Inc()
				metrics.TokenAuthMatchedOffset.WithLabelValues(strconv.Itoa(offset)).Inc()
				a.log.WithFields(ctx, logger.Fields{
					"username": claim.Username,
					"offset":   offset,
					"action":   "token_auth_skew_accepted",
				}).Debug("authentication accepted within skew window")
				return offset, nil
			}
		}
	}

	metrics.TokenAuthTotal.WithLabelValues("invalid_token").Inc()
	a.log.WithFields(ctx, logger.Fields{
		"username": claim.Username,
		"action":   "token_auth_invalid",
	}).Warn("authentication failed: invalid token")
	return 0, commonerrors.ErrInvalidToken
}
