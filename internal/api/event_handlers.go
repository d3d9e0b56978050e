package api

import (
	"net/http"
	"strconv"

	"items-backend/internal/database"
)

type EventListResponse struct {
	Success bool             `json:"success" example:"true"`
	Events  []database.Event `json:"events"`
}

// @Summary      Get new events
// @Description  Returns up to 100 of the caller's journaled events with an ID greater than since. Used to catch up after a websocket reconnect.
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        since  query     int  false  "The ID of the last event received. Omit or use 0 to get all events."
// @Success      200    {object}  EventListResponse
// @Failure      400    {object}  ErrorResponse
// @Failure      401    {object}  ErrorResponse
// @Router       /events [get]
func (s *Server) GetEventsHandler(w http.ResponseWriter, r *http.Request) {
	identity := GetIdentityFromContext(r.Context())

	sinceStr := r.URL.Query().Get("since")
	if sinceStr == "" {
		sinceStr = "0"
	}

	sinceID, err := strconv.ParseInt(sinceStr, 10, 64)
	if err != nil || sinceID < 0 {
		s.writeError(w, r, validationError("Invalid 'since' parameter, must be a non-negative number"))
		return
	}

	events, err := s.store.GetEventsSince(r.Context(), identity.UserID(), sinceID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, envelope{"events": events})
}
