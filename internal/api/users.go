package api

import (
	"errors"
	"net/http"
	"time"

	"finance-tracker/internal/domain/models"
	"finance-tracker/internal/lib/jwt"
	"finance-tracker/internal/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserPayload is the outward shape of a user: id, name and email only.
type UserPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthResponse struct {
	Message string      `json:"message"`
	User    UserPayload `json:"user"`
	Token   string      `json:"token"`
}

func (s *APIServer) signupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignupRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Name == "" || req.Email == "" || req.Password == "" {
			respondError(w, http.StatusBadRequest, "All fields are required")
			return
		}

		passHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("Failed to hash password", "error", err)
			respondError(w, http.StatusInternalServerError, "Server error")
			return
		}

		user := &models.User{
			ID:           uuid.NewString(),
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: string(passHash),
			CreatedAt:    time.Now().UTC(),
		}

		if err := s.storage.SaveUser(r.Context(), user); err != nil {
			if errors.Is(err, storage.ErrEmailTaken) {
				respondError(w, http.StatusConflict, "Email already registered")
				return
			}
			s.logger.Error("Failed to save user", "error", err)
			respondError(w, http.StatusInternalServerError, "Server error")
			return
		}

		token, err := jwt.NewToken(user.ID, s.jwtSecret, s.config.TokenTTL)
		if err != nil {
			s.logger.Error("Failed to generate token", "error", err)
			respondError(w, http.StatusInternalServerError, "Server error")
			return
		}

		s.logger.Info("Registered new user", "email", user.Email)

		respondJSON(w, http.StatusCreated, AuthResponse{
			Message: "User registered successfully",
			User:    UserPayload{ID: user.ID, Name: user.Name, Email: user.Email},
			Token:   token,
		})
	}
}

func (s *APIServer) loginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Email == "" || req.Password == "" {
			respondError(w, http.StatusBadRequest, "Please provide email and password")
			return
		}

		// Unknown email and wrong password answer identically so the
		// endpoint cannot be used to enumerate registered addresses.
		user, err := s.storage.GetUserByEmail(r.Context(), req.Email)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				respondError(w, http.StatusUnauthorized, "Invalid credentials")
				return
			}
			s.logger.Error("Failed to get user", "error", err)
			respondError(w, http.StatusInternalServerError, "Server error")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		token, err := jwt.NewToken(user.ID, s.jwtSecret, s.config.TokenTTL)
		if err != nil {
			s.logger.Error("Failed to generate token", "error", err)
			respondError(w, http.StatusInternalServerError, "Server error")
			return
		}

		respondJSON(w, http.StatusOK, AuthResponse{
			Message: "Login successful",
			User:    UserPayload{ID: user.ID, Name: user.Name, Email: user.Email},
			Token:   token,
		})
	}
}

func (s *APIServer) logoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := tokenFromContext(r)
		if !ok {
			respondError(w, http.StatusBadRequest, "No token provided")
			return
		}

		s.revoked.Revoke(token)

		respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
	}
}

func (s *APIServer) profileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromContext(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Not authorized, user not found")
			return
		}

		respondJSON(w, http.StatusOK, user)
	}
}
