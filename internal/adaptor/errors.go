package adaptor

import (
	"errors"
	"net/http"

	"vivelo/internal/usecase"
	"vivelo/pkg/utils"

	"go.uber.org/zap"
)

// writeServiceError maps usecase sentinels onto HTTP responses. Anything
// unrecognized is logged and reported as a 500 without leaking detail.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		utils.ResponseBadRequest(w, err.Error(), nil)
	case errors.Is(err, usecase.ErrCodeMismatch):
		utils.ResponseBadRequest(w, "Verification code does not match", nil)
	case errors.Is(err, usecase.ErrInvalidCredential):
		utils.ResponseUnauthorized(w, "Invalid email or password")
	case errors.Is(err, usecase.ErrForbidden):
		utils.ResponseForbidden(w, "You are not allowed to perform this action")
	case errors.Is(err, usecase.ErrNotFound):
		utils.ResponseNotFound(w, "Resource not found")
	case errors.Is(err, usecase.ErrEmailTaken):
		utils.ResponseConflict(w, "Email is already registered")
	case errors.Is(err, usecase.ErrInvalidTransition):
		utils.ResponseConflict(w, err.Error())
	case errors.Is(err, usecase.ErrCodesNotReady):
		utils.ResponseConflict(w, "Verification codes have not been generated yet")
	case errors.Is(err, usecase.ErrNotAvailable):
		utils.ResponseConflict(w, err.Error())
	case errors.Is(err, usecase.ErrConflict):
		utils.ResponseConflict(w, "The booking was modified concurrently, try again")
	default:
		log.Error("Unhandled service error", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
