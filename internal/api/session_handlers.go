package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"items-backend/internal/models"
)

type SessionListResponse struct {
	Success  bool             `json:"success" example:"true"`
	Sessions []models.Session `json:"sessions"`
}

type TerminateAllResponse struct {
	Success    bool  `json:"success" example:"true"`
	Terminated int64 `json:"terminated" example:"3"`
}

// @Summary      List active sessions
// @Description  Lists the caller's unexpired sessions, newest first. The session behind the presented token is flagged as current.
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  SessionListResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /sessions [get]
func (s *Server) ListSessionsHandler(w http.ResponseWriter, r *http.Request) {
	identity := GetIdentityFromContext(r.Context())

	sessions, err := s.store.ListSessionsForUser(r.Context(), identity.UserID())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	for i := range sessions {
		sessions[i].Current = sessions[i].TokenID == identity.TokenID()
	}

	s.writeJSON(w, r, http.StatusOK, envelope{"sessions": sessions})
}

// @Summary      Terminate a specific session
// @Description  Revokes one of the caller's sessions by its ID.
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        sessionId  path      string  true  "ID of the session to terminate" format(uuid)
// @Success      200        {object}  MessageResponse
// @Failure      400        {object}  ErrorResponse "Invalid session ID format"
// @Failure      401        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /sessions/{sessionId} [delete]
func (s *Server) DeleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	identity := GetIdentityFromContext(r.Context())

	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionId"))
	if err != nil {
		s.writeError(w, r, validationError("Invalid session ID format"))
		return
	}

	removed, err := s.store.DeleteSessionByID(r.Context(), sessionID, identity.UserID())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !removed {
		s.writeError(w, r, notFound("Session not found"))
		return
	}

	s.writeJSON(w, r, http.StatusOK, envelope{"message": "Session terminated"})
}

// @Summary      Terminate all sessions (log out everywhere)
// @Description  Revokes every session of the caller, including the current one, and closes its live connections.
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  TerminateAllResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /sessions/terminate_all [post]
func (s *Server) TerminateAllSessionsHandler(w http.ResponseWriter, r *http.Request) {
	identity := GetIdentityFromContext(r.Context())

	removed, err := s.authority.RevokeAllForUser(r.Context(), identity.UserID())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.wsHub != nil {
		s.wsHub.DisconnectUser(identity.UserID())
	}

	s.writeJSON(w, r, http.StatusOK, envelope{"terminated": removed})
}
