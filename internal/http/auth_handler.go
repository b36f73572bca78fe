package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"bookreview/internal/auth"
	"bookreview/internal/entity"
	"bookreview/internal/usecase"

	"github.com/rs/zerolog"
)

type AuthHandler struct {
	users    usecase.UserRepository
	secret   string
	tokenTTL time.Duration
	log      zerolog.Logger
}

func NewAuthHandler(users usecase.UserRepository, secret string, tokenTTL time.Duration, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		users:    users,
		secret:   secret,
		tokenTTL: tokenTTL,
		log:      log,
	}
}

type credentialsReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register creates the user and logs them straight in: the response is
// the token only, same as login.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Message(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if details := ValidateStruct(req); len(details) > 0 {
		JSON(w, http.StatusBadRequest, validationResponse{
			Message: "Please fill in both fields.",
			Errors:  details,
		})
		return
	}

	_, err := h.users.GetByUsername(r.Context(), req.Username)
	if err == nil {
		Message(w, http.StatusBadRequest, "User already exists.")
		return
	}
	if !errors.Is(err, usecase.ErrNotFound) {
		h.serverError(w, r, err)
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	newUser := &entity.User{
		Username: req.Username,
		Password: hashedPassword,
	}
	if err := h.users.Create(r.Context(), newUser); err != nil {
		if errors.Is(err, usecase.ErrAlreadyExists) {
			Message(w, http.StatusBadRequest, "User already exists.")
			return
		}
		h.serverError(w, r, err)
		return
	}

	h.issueToken(w, r, newUser.ID)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Message(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	user, err := h.users.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			Message(w, http.StatusBadRequest, "Unregistered username.")
			return
		}
		h.serverError(w, r, err)
		return
	}

	if !auth.VerifyPassword(user.Password, req.Password) {
		Message(w, http.StatusBadRequest, "Wrong password.")
		return
	}

	h.issueToken(w, r, user.ID)
}

func (h *AuthHandler) issueToken(w http.ResponseWriter, r *http.Request, userID string) {
	token, err := auth.GenerateToken(h.secret, userID, h.tokenTTL)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *AuthHandler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error().Err(err).Str("path", r.URL.Path).Msg("auth handler failure")
	Message(w, http.StatusInternalServerError, "An internal error occurred.")
}
