package api

import (
	"errors"
	"net/http"
	"strings"

	"items-backend/internal/auth"
	"items-backend/internal/database"
	"items-backend/internal/models"
)

type UserResponse struct {
	Success bool         `json:"success" example:"true"`
	User    *models.User `json:"user"`
}

type UpdateUserRequest struct {
	Name      *string `json:"name,omitempty" example:"Alice"`
	AvatarURL *string `json:"avatar_url,omitempty" example:"https://cdn.example.com/a.png"`
	Email     *string `json:"email,omitempty" example:"alice@example.com"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// @Summary      Get current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  UserResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me [get]
func (s *Server) GetCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	identity := GetIdentityFromContext(r.Context())
	s.writeJSON(w, r, http.StatusOK, envelope{"user": identity.User})
}

// @Summary      Update profile
// @Description  Changes any of name, avatar_url and email. Omitted fields keep their value.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        updateUserRequest  body      UpdateUserRequest  true  "Fields to change"
// @Success      200                {object}  UserResponse
// @Failure      400                {object}  ErrorResponse
// @Failure      401                {object}  ErrorResponse
// @Failure      409                {object}  ErrorResponse
// @Router       /users/me [put]
func (s *Server) UpdateCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	identity := GetIdentityFromContext(r.Context())

	var req UpdateUserRequest
	if err := decodeJSON(w, r, &req, 0); err != nil {
		s.writeError(w, r, err)
		return
	}

	patch := database.UserPatch{
		DisplayName: req.Name,
		AvatarURL:   req.AvatarURL,
	}
	if req.Email != nil {
		email, err := normalizeEmail(*req.Email)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		patch.Email = &email
	}
	if patch.DisplayName != nil {
		trimmed := strings.TrimSpace(*patch.DisplayName)
		patch.DisplayName = &trimmed
	}
	if patch.Empty() {
		s.writeError(w, r, validationError("At least one of name, avatar_url or email is required"))
		return
	}

	user, err := s.store.UpdateUser(r.Context(), identity.UserID(), patch)
	if err != nil {
		if errors.Is(err, database.ErrEmailTaken) {
			s.writeError(w, r, conflict("An account with this email already exists"))
			return
		}
		s.writeError(w, r, err)
		return
	}
	if user == nil {
		s.writeError(w, r, auth.ErrUserNotFound)
		return
	}

	s.writeJSON(w, r, http.StatusOK, envelope{"user": user})
}

// @Summary      Change password
// @Description  Requires the current password. Sessions stay open.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        changePasswordRequest  body      ChangePasswordRequest  true  "Current and new password"
// @Success      200                    {object}  MessageResponse
// @Failure      400                    {object}  ErrorResponse
// @Failure      401                    {object}  ErrorResponse "INVALID_CREDENTIALS"
// @Router       /users/me/password [put]
func (s *Server) ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	identity := GetIdentityFromContext(r.Context())

	var req ChangePasswordRequest
	if err := decodeJSON(w, r, &req, 0); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.CurrentPassword == "" {
		s.writeError(w, r, validationError("Current password is required"))
		return
	}
	if err := validatePassword(req.NewPassword); err != nil {
		s.writeError(w, r, err)
		return
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, identity.User.PasswordHash) {
		s.writeError(w, r, &APIError{
			Status:  http.StatusUnauthorized,
			Code:    CodeInvalidCredentials,
			Message: "Current password is incorrect",
		})
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.UpdateUserPassword(r.Context(), identity.UserID(), hash); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, envelope{"message": "Password updated"})
}

// @Summary      Delete account
// @Description  Deletes the user with all items, uploads and sessions. Stored blobs are removed best-effort.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  MessageResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me [delete]
func (s *Server) DeleteCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	identity := GetIdentityFromContext(r.Context())

	// Rows go in one transaction; blobs are removed only after it commits.
	var uploads []models.Upload
	err := s.store.ExecTx(r.Context(), func(q *database.Queries) error {
		var err error
		uploads, err = q.ListUploadsForUser(r.Context(), identity.UserID())
		if err != nil {
			return err
		}
		_, err = q.DeleteUser(r.Context(), identity.UserID())
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.deleteBlobs(r, uploads)
	if s.wsHub != nil {
		s.wsHub.DisconnectUser(identity.UserID())
	}

	s.logger.Info(r.Context(), "user deleted", "user_id", identity.UserID())
	s.writeJSON(w, r, http.StatusOK, envelope{"message": "Account deleted"})
}
