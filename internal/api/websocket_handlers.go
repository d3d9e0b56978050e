package api

import (
	"net/http"

	"items-backend/internal/websocket"
)

// @Summary      Live event stream
// @Description  Upgrades to a websocket that receives the caller's events as they are journaled. Browsers cannot set headers on websocket requests, so the token travels in the query string.
// @Tags         events
// @Param        token  query  string  true  "Bearer token"
// @Success      101
// @Failure      401  {object}  ErrorResponse
// @Router       /ws [get]
func (s *Server) ServeWsHandler(w http.ResponseWriter, r *http.Request) {
	identity, err := s.authority.Validate(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		s.logger.Debug(r.Context(), "websocket connection rejected", "error", err)
		s.writeError(w, r, err)
		return
	}

	conn, err := websocket.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn(r.Context(), "websocket upgrade failed", "error", err)
		return
	}

	client := websocket.NewClient(s.wsHub, conn, identity.UserID())
	if !s.wsHub.Attach(client) {
		conn.Close()
		return
	}

	go client.ReadPump()
	go client.WritePump()
}
