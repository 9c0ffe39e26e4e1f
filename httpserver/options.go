package httpserver

import (
	"agenda/agenda"
	"agenda/pkg/metrics"

	"go.uber.org/zap"
)

type Options func(s *Server)

func WithLogger(l *zap.SugaredLogger) Options {
	return func(s *Server) {
		s.Logger = l
	}
}

// WithMetrics serves m on /metrics instead of a private registry.
func WithMetrics(m *metrics.Metrics) Options {
	return func(s *Server) {
		s.Metrics = m
	}
}

// WithService wires both halves of an agenda into the handlers.
func WithService(svc agenda.Service) Options {
	return func(s *Server) {
		s.ContactService = svc
		s.AppointmentService = svc
	}
}
