package adaptor

import (
	"encoding/json"
	"net/http"

	"vivelo/internal/dto/request"
	"vivelo/internal/usecase"
	"vivelo/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	auth usecase.AuthService
	log  *zap.Logger
}

func NewAuthHandler(auth usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth: auth,
		log:  log.With(zap.String("handler", "auth")),
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.auth.Register(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	utils.ResponseCreated(w, "Registered successfully", resp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Logged in successfully", resp)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.auth.Logout(r.Context(), token); err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Logged out successfully", nil)
}
