package api

import (
	"context"

	"dining-reviews/internal/config"
	"dining-reviews/internal/service"
	"dining-reviews/internal/websocket"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	config   *config.Config
	services *service.Services
	wsHub    *websocket.Hub
	db       Pinger
}

func NewServer(cfg *config.Config, services *service.Services, wsHub *websocket.Hub, db Pinger) *Server {
	return &Server{
		config:   cfg,
		services: services,
		wsHub:    wsHub,
		db:       db,
	}
}
