package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/safar/pos-backend/internal/auth"
	"github.com/safar/pos-backend/internal/database"
	"github.com/safar/pos-backend/internal/models"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	auth.Token
	User *models.User `json:"user"`
}

// dummyHash keeps login timing similar for unknown emails.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3DMPRGbOpr4Lr5yU8.3Y3.e"

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		handleError(w, r, err)
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, database.ErrUserNotFound) {
			handleError(w, r, err)
			return
		}
		_ = auth.CheckPassword(dummyHash, req.Password)
		handleError(w, r, auth.ErrInvalidCredentials)
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		zctx.From(r.Context()).Info("Login rejected", zap.Int64("user_id", user.ID))
		handleError(w, r, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	respondJSON(w, http.StatusOK, user)
}
