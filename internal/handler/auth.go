package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/adudhe01/runroom/internal/auth"
	"github.com/adudhe01/runroom/internal/domain"
	"github.com/adudhe01/runroom/internal/logger"
	"github.com/adudhe01/runroom/internal/repository"
	"github.com/adudhe01/runroom/internal/snapshot"
	"github.com/adudhe01/runroom/internal/upload"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	users     repository.User
	tokens    *auth.TokenManager
	avatars   *upload.AvatarStore
	snapshots snapshot.Builder
}

func NewAuthHandler(users repository.User, tokens *auth.TokenManager, avatars *upload.AvatarStore, snapshots snapshot.Builder) *AuthHandler {
	return &AuthHandler{
		users:     users,
		tokens:    tokens,
		avatars:   avatars,
		snapshots: snapshots,
	}
}

// RegisterRequest is the registration payload, sent as JSON or as multipart
// form fields when a profile picture is attached.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// authResponse flattens the snapshot next to the session token.
type authResponse struct {
	Token string `json:"token"`
	*domain.Snapshot
}

// HandleRegister creates a user, optionally storing an uploaded avatar, and
// returns a session token plus the initial snapshot.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req RegisterRequest
	var profilePicture *string

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(upload.MaxAvatarBytes + 1<<20); err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		req.Name = r.FormValue("name")
		req.Email = r.FormValue("email")
		req.Password = r.FormValue("password")

		if file, header, err := r.FormFile("profilePicture"); err == nil {
			defer file.Close()
			publicPath, saveErr := h.avatars.Save(file, header)
			if saveErr != nil {
				if errors.Is(saveErr, domain.ErrInvalidInput) {
					respondError(w, http.StatusBadRequest, ErrMsgInvalidFile)
					return
				}
				log.Error("Failed to store avatar", "error", saveErr)
				respondError(w, http.StatusInternalServerError, ErrMsgRegisterFailed)
				return
			}
			profilePicture = &publicPath
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
	}

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondError(w, http.StatusBadRequest, FormatValidationError(err))
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Error("Failed to hash password", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgRegisterFailed)
		return
	}

	user := &domain.User{
		Name:           req.Name,
		Email:          req.Email,
		PasswordHash:   passwordHash,
		ProfilePicture: profilePicture,
	}

	if err := h.users.Create(r.Context(), user); err != nil {
		respondServiceError(w, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		log.Error("Failed to issue session token", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgRegisterFailed)
		return
	}

	snap, err := h.snapshots.Build(r.Context(), user)
	if err != nil {
		log.Error("Failed to build snapshot after register", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgRegisterFailed)
		return
	}

	log.Info("User registered", "user_id", user.ID, "email", user.Email)
	respondJSON(w, http.StatusOK, authResponse{Token: token, Snapshot: snap})
}

// HandleLogin verifies credentials and returns a session token plus snapshot.
// An unknown email and a wrong password produce the same response.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return
	}
	if err := GetValidator().ValidateStruct(req); err != nil {
		respondError(w, http.StatusBadRequest, FormatValidationError(err))
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidCredentials)
			return
		}
		log.Error("Failed to look up user for login", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgLoginFailed)
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidCredentials)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		log.Error("Failed to issue session token", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgLoginFailed)
		return
	}

	snap, err := h.snapshots.Build(r.Context(), user)
	if err != nil {
		log.Error("Failed to build snapshot after login", "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgLoginFailed)
		return
	}

	respondJSON(w, http.StatusOK, authResponse{Token: token, Snapshot: snap})
}
