package api

import (
	"items-backend/internal/auth"
	"items-backend/internal/config"
	"items-backend/internal/database"
	"items-backend/internal/logging"
	"items-backend/internal/storage"
	"items-backend/internal/websocket"
)

type Server struct {
	config    *config.Config
	store     *database.Store
	storage   storage.ObjectStore
	wsHub     *websocket.Hub
	authority *auth.Authority
	logger    logging.Logger
}

func NewServer(
	cfg *config.Config,
	store *database.Store,
	objects storage.ObjectStore,
	wsHub *websocket.Hub,
	authority *auth.Authority,
	logger logging.Logger,
) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Server{
		config:    cfg,
		store:     store,
		storage:   objects,
		wsHub:     wsHub,
		authority: authority,
		logger:    logger,
	}
}
