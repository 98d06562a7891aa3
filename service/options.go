package service

import (
	"github.com/rs/zerolog"
	"github.com/sicko7947/grocer"
)

// Option configures the list service
type Option func(*Service)

// WithLogger sets a custom logger for the service
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithConfig sets a custom configuration for the service
func WithConfig(config grocer.ServiceConfig) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithInviteCodeGenerator replaces the invite code source (useful for deterministic tests)
func WithInviteCodeGenerator(gen func(length int) string) Option {
	return func(s *Service) {
		s.newInviteCode = gen
	}
}
