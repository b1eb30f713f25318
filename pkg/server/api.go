package server

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/geniehq/genie-search/pkg/config"
	handlers "github.com/geniehq/genie-search/pkg/handlers/http"
	"github.com/geniehq/genie-search/pkg/middleware"
)

type (
	APIServerDI struct {
		MiddlewareTransport middleware.Transport
		HandlerTransport    handlers.HandlerTransport
		Config              *config.Config
		Logger              *logrus.Logger
	}
	APIServer struct {
		*BaseServer
		middlewareTransport middleware.Transport
		handlerTransport    handlers.HandlerTransport
	}
)

func NewAPIServer(di APIServerDI) *APIServer {
	return &APIServer{
		BaseServer:          NewBaseServer(di.Config, di.Logger),
		middlewareTransport: di.MiddlewareTransport,
		handlerTransport:    di.HandlerTransport,
	}
}

func (s *APIServer) Run() error {
	s.setupRoutes()
	s.setupHealthCheck()
	s.setupMetricsEndpoint()

	addr := fmt.Sprintf("%s:%d", s.Config.Server.Host, s.Config.Server.Port)
	s.Logger.WithField("addr", addr).Info("starting API server")
	return s.Router.Listen(addr)
}

func (s *APIServer) setupRoutes() {
	if s.middlewareTransport.MetricsMiddleware != nil {
		s.Router.Use(s.middlewareTransport.MetricsMiddleware.Middleware())
	}

	s.Router.Get("/documents", s.handlerTransport.ListDocumentsHandler.Handle)
	s.Router.Get("/version", s.handlerTransport.GetVersionHandler.Handle)

	v1 := s.Router.Group("/api/v1")
	{
		if s.middlewareTransport.AuthMiddleware != nil {
			v1.Use(s.middlewareTransport.AuthMiddleware.Middleware())
		}

		v1.Post("/sync", s.handlerTransport.SyncDocumentsHandler.Handle)
		v1.Post("/search", s.handlerTransport.SearchDocumentsHandler.Handle)
	}
}

func (s *APIServer) Shutdown() error {
	return s.Router.Shutdown()
}
