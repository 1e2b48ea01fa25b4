package http

import (
	"net/http"
	"time"

	commonerrors "github.com/aturganbekov/prime-sieve/backend/internal/common/errors"
	commonhttp "github.com/aturganbekov/prime-sieve/backend/internal/common/http"
	"github.com/aturganbekov/prime-sieve/backend/internal/common/logger"
	"github.com/aturganbekov/prime-sieve/backend/internal/sieve/service"
	"github.com/aturganbekov/prime-sieve/backend/internal/tokenauth"
)

type sieveRequest struct {
	Limit int `json:"limit"`
}

type sieveResponse struct {
	Primes         []int  `json:"primes"`
	Count          int    `json:"count"`
	ASCIIImage     string `json:"ascii_image"`
	Base64Image    string `json:"base64_image"`
	TableImagePath string `json:"table_image_path"`
}

type historyEntry struct {
	Limit     int       `json:"limit"`
	Timestamp time.Time `json:"timestamp"`
}

type Handler struct {
	sieve  *service.Service
	errors *commonhttp.ErrorHandler
	log    *logger.Logger
}

func NewHandler(sieve *service.Service, log *logger.Logger) *Handler {
	return &Handler{
		sieve:  sieve,
		errors: commonhttp.NewErrorHandler(log),
		log:    log,
	}
}

// Register mounts the privileged endpoints behind the time-windowed
// authentication middleware.
func (h *Handler) Register(mux *http.ServeMux, auth func(http.Handler) http.Handler) {
	mux.Handle("/api/sieve", auth(http.HandlerFunc(h.compute)))
	mux.Handle("/api/sieve/history", auth(http.HandlerFunc(h.history)))
}

func (h *Handler) compute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
		return
	}

	var req sieveRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("sieve request failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return
	}

	result, err := h.sieve.Run(r.Context(), req.Limit)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	h.log.WithFields(r.Context(), logger.Fields{
		"username": tokenauth.UsernameFromContext(r.Context()),
		"limit":    req.Limit,
		"action":   "sieve_request_served",
	}).Info("sieve request served")

	commonhttp.WriteJSON(w, http.StatusOK, sieveResponse{
		Primes:         result.Primes,
		Count:          result.Count,
		ASCIIImage:     result.ASCIIImage,
		Base64Image:    result.Base64Image,
		TableImagePath: result.TableImagePath,
	})
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
		return
	}

	records, err := h.sieve.History(r.Context())
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	// An empty ledger is a valid store state but reported as 404 to
	// callers, matching the service contract.
	if len(records) == 0 {
		h.errors.HandleError(w, r, commonerrors.ErrHistoryEmpty)
		return
	}

	entries := make([]historyEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, historyEntry{Limit: rec.Limit, Timestamp: rec.Timestamp})
	}

	commonhttp.WriteJSON(w, http.StatusOK, entries)
}
