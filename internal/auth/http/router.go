package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/aturganbekov/prime-sieve/backend/internal/auth/service"
	commonhttp "github.com/aturganbekov/prime-sieve/backend/internal/common/http"
	"github.com/aturganbekov/prime-sieve/backend/internal/common/logger"
)

type credentialsRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Message   string `json:"message"`
	TechToken string `json:"tech_token"`
}

type Handler struct {
	auth     *service.Service
	errors   *commonhttp.ErrorHandler
	validate *validator.Validate
	log      *logger.Logger
}

func NewHandler(auth *service.Service, log *logger.Logger) *Handler {
	return &Handler{
		auth:     auth,
		errors:   commonhttp.NewErrorHandler(log),
		validate: validator.New(),
		log:      log,
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/auth/register", h.register)
	mux.HandleFunc("/api/auth/login", h.login)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	token, err := h.auth.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, tokenResponse{
		Message:   "registration successful",
		TechToken: token,
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, tokenResponse{
		Message:   "login successful",
		TechToken: token,
	})
}

func (h *Handler) decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest

	if r.Method != http.MethodPost {
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
		return req, false
	}

	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("auth request failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return req, false
	}

	if err := h.validate.Struct(req); err != nil {
		h.log.Warnf("auth request failed: validation: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeBadRequest, "username and password are required", nil, "")
		return req, false
	}

	return req, true
}
