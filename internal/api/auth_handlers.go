package api

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"items-backend/internal/auth"
	"items-backend/internal/database"
	"items-backend/internal/models"
)

const minPasswordLength = 8

type SignupRequest struct {
	Email    string  `json:"email" example:"a@b.com"`
	Password string  `json:"password" example:"Test123!"`
	Name     *string `json:"name,omitempty" example:"A"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"a@b.com"`
	Password string `json:"password" example:"Test123!"`
}

type AuthResponse struct {
	Success   bool         `json:"success" example:"true"`
	Token     string       `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

type TokenResponse struct {
	Success   bool      `json:"success" example:"true"`
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt time.Time `json:"expires_at"`
}

// normalizeEmail returns the lower-cased address or a validation error.
// Display-name forms like "A <a@b.com>" are rejected.
func normalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if email == "" {
		return "", validationError("Email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@"):], ".") {
		return "", validationError("Email address is not valid")
	}
	return strings.ToLower(email), nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return validationError("Password must be at least 8 characters long")
	}
	return nil
}

// @Summary      Sign up
// @Description  Creates an account and opens its first session.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        signupRequest  body      SignupRequest  true  "Account details"
// @Success      201            {object}  AuthResponse
// @Failure      400            {object}  ErrorResponse "VALIDATION_ERROR"
// @Failure      409            {object}  ErrorResponse "CONFLICT"
// @Failure      500            {object}  ErrorResponse
// @Router       /auth/signup [post]
func (s *Server) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := decodeJSON(w, r, &req, 0); err != nil {
		s.writeError(w, r, err)
		return
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := validatePassword(req.Password); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
		if trimmed == "" {
			req.Name = nil
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.store.CreateUser(r.Context(), database.CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  req.Name,
	})
	if err != nil {
		if errors.Is(err, database.ErrEmailTaken) {
			s.writeError(w, r, conflict("An account with this email already exists"))
			return
		}
		s.writeError(w, r, err)
		return
	}

	issued, err := s.authority.Issue(r.Context(), user, sessionMeta(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "user signed up", "user_id", user.ID)
	s.writeJSON(w, r, http.StatusCreated, envelope{
		"token":      issued.Token,
		"expires_at": issued.ExpiresAt,
		"user":       user,
	})
}

// @Summary      Log in
// @Description  Authenticates with email and password and opens a new session. Existing sessions stay valid.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        loginRequest  body      LoginRequest  true  "Login Credentials"
// @Success      200           {object}  AuthResponse
// @Failure      400           {object}  ErrorResponse "VALIDATION_ERROR"
// @Failure      401           {object}  ErrorResponse "INVALID_CREDENTIALS"
// @Failure      500           {object}  ErrorResponse
// @Router       /auth/login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req, 0); err != nil {
		s.writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		s.writeError(w, r, validationError("Email and password are required"))
		return
	}

	user, err := s.store.GetUserByEmail(r.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if user == nil {
		auth.CheckPasswordForUnknownUser(req.Password)
		s.writeError(w, r, invalidCredentials())
		return
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.writeError(w, r, invalidCredentials())
		return
	}

	issued, err := s.authority.Issue(r.Context(), user, sessionMeta(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	now := time.Now()
	if err := s.store.TouchLastLogin(r.Context(), user.ID, now); err != nil {
		s.logger.Warn(r.Context(), "failed to record last login", "user_id", user.ID, "error", err)
	} else {
		user.LastLogin = &now
	}

	s.writeJSON(w, r, http.StatusOK, envelope{
		"token":      issued.Token,
		"expires_at": issued.ExpiresAt,
		"user":       user,
	})
}

// @Summary      Log out
// @Description  Revokes the session behind the presented token. Other sessions are untouched.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  MessageResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/logout [post]
func (s *Server) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	identity := GetIdentityFromContext(r.Context())

	if err := s.authority.Revoke(r.Context(), identity.TokenID()); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, envelope{"message": "Logged out"})
}

// @Summary      Refresh token
// @Description  Replaces the current session with a new one. The presented token stops working immediately.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  TokenResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/refresh [post]
func (s *Server) RefreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	identity := GetIdentityFromContext(r.Context())

	issued, err := s.authority.Refresh(r.Context(), identity.TokenID(), identity.User, sessionMeta(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, envelope{
		"token":      issued.Token,
		"expires_at": issued.ExpiresAt,
	})
}
