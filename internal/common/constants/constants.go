package constants

import "time"

const (
	UsernameMinLength = 3
	UsernameMaxLength = 32
	PasswordMinLength = 10
	// bcrypt reads at most 72 bytes of input; longer passwords are
	// rejected rather than silently truncated.
	PasswordMaxLength = 72
	BcryptCost        = 12

	// Symbol class the password policy accepts, mirrored by clients.
	PasswordSymbolClass = "!@#$%^&*(),.?\":{}|<>_-"

	DefaultMaxRequestSize = 1 << 20

	// Accepted clock skew, in seconds, on either side of the claimed
	// timestamp.
	TimestampToleranceSeconds = 2

	DefaultSieveMaxConcurrent = 4

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultHTTPPort       = "8000"
	DefaultRequestTimeout = 5 * time.Second

	DefaultUsersFile   = "users.json"
	DefaultHistoryFile = "sieve_history.json"
	DefaultImageDir    = "."

	RateLimitRequestsPerSecond = 10
	RateLimitBurst             = 20
	RateLimitCleanupInterval   = 5 * time.Minute

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
