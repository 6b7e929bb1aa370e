package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/orgstack/orgd/internal/application/identity"
	domerrors "github.com/orgstack/orgd/internal/domain/errors"
	"github.com/orgstack/orgd/internal/infrastructure/http/middleware"
)

// AdminHandler serves /admin endpoints.
type AdminHandler struct {
	login    *identity.Login
	validate *validator.Validate
	log      zerolog.Logger
}

func NewAdminHandler(login *identity.Login, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{login: login, validate: validator.New(), log: log}
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}
	result, err := h.login.Execute(r.Context(), identity.LoginInput{
		Email:    strings.TrimSpace(strings.ToLower(body.Email)),
		Password: body.Password,
	})
	if err != nil {
		AuditLog(h.log, r, "admin.login", "", false, err.Error())
		middleware.RecordAuthAttempt(false)
		if errors.Is(err, domerrors.ErrInvalidCredentials) {
			writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, err.Error())
			return
		}
		h.log.Error().Err(err).Msg("login failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	AuditLog(h.log, r, "admin.login", result.Organization, true, "")
	middleware.RecordAuthAttempt(true)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"access_token": result.AccessToken,
		"token_type":   result.TokenType,
		"expires_in":   result.ExpiresIn,
	})
}
