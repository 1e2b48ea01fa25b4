package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/aturganbekov/prime-sieve/backend/internal/auth/http"
	authservice "github.com/aturganbekov/prime-sieve/backend/internal/auth/service"
	"github.com/aturganbekov/prime-sieve/backend/internal/common/clock"
	"github.com/aturganbekov/prime-sieve/backend/internal/common/config"
	"github.com/aturganbekov/prime-sieve/backend/internal/common/constants"
	commoncrypto "github.com/aturganbekov/prime-sieve/backend/internal/common/crypto"
	"github.com/aturganbekov/prime-sieve/backend/internal/common/db"
	commonhttp "github.com/aturganbekov/prime-sieve/backend/internal/common/http"
	"github.com/aturganbekov/prime-sieve/backend/internal/common/logger"
	srv "github.com/aturganbekov/prime-sieve/backend/internal/common/server"
	"github.com/aturganbekov/prime-sieve/backend/internal/credstore"
	"github.com/aturganbekov/prime-sieve/backend/internal/history"
	sievehttp "github.com/aturganbekov/prime-sieve/backend/internal/sieve/http"
	sieveservice "github.com/aturganbekov/prime-sieve/backend/internal/sieve/service"
	"github.com/aturganbekov/prime-sieve/backend/internal/tokenauth"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "prime-sieve", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg := config.Load()

	creds, ledger := buildStores(cfg, log)

	realClock := clock.NewRealClock()

	authSvc := authservice.New(authservice.Deps{
		Repo:   creds,
		Hasher: &commoncrypto.BcryptHasher{},
		Tokens: commoncrypto.NewUUIDTokenGenerator(),
		Clock:  realClock,
		Log:    log,
	})

	sieveSvc := sieveservice.New(sieveservice.Deps{
		History:  ledger,
		Clock:    realClock,
		Log:      log,
		ImageDir: cfg.ImageDir,
	}, cfg.SieveMaxConcurrent)

	authenticator := tokenauth.New(creds, log)
	authMiddleware := tokenauth.Middleware(authenticator, log)
	requestTimeout := commonhttp.WithRequestTimeout(cfg.RequestTimeout)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.Handle("/metrics", promhttp.Handler())
	authhttp.NewHandler(authSvc, log).Register(mux)
	sievehttp.NewHandler(sieveSvc, log).Register(mux, func(next http.Handler) http.Handler {
		return requestTimeout(authMiddleware(next))
	})

	rateLimiter := commonhttp.NewRateLimiter(constants.RateLimitRequestsPerSecond, constants.RateLimitBurst)
	baseHandler := commonhttp.BuildBaseHandler(log, mux)

	rateLimited := func(next http.Handler) http.Handler {
		limited := rateLimiter.Middleware()(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == "/health" || path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}
			limited.ServeHTTP(w, r)
		})
	}

	serverConfig := srv.DefaultServerConfig(cfg.HTTPPort)
	server := srv.NewServer(serverConfig, rateLimited(baseHandler))

	srv.StartWithGracefulShutdown(server, log, "prime-sieve")
}

// buildStores selects the persistence backend: Postgres when
// DATABASE_URL is set, the two JSON files otherwise.
func buildStores(cfg config.Config, log *logger.Logger) (credstore.Repository, history.Repository) {
	if cfg.DatabaseURL != "" {
		pool := db.NewPool(log, cfg.DatabaseURL)
		log.Infof("using postgres storage backend")
		return credstore.NewPgRepository(pool), history.NewPgRepository(pool)
	}

	creds, err := credstore.NewFileRepository(cfg.UsersFile)
	if err != nil {
		log.Fatalf("failed to open credentials store: %v", err)
	}

	ledger, err := history.NewFileRepository(cfg.HistoryFile)
	if err != nil {
		log.Fatalf("failed to open history ledger: %v", err)
	}

	log.Infof("using file storage backend: users=%s history=%s", cfg.UsersFile, cfg.HistoryFile)
	return creds, ledger
}
