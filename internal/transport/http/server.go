// Package httptransport builds the HTTP server fronting the workout pages.
package httptransport

import (
	"net/http"
	"time"
)

// ServerConfig contains tunables for the HTTP server. Zero durations fall
// back to the values from DefaultServerConfig.
type ServerConfig struct {
	Address           string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
}

// DefaultServerConfig returns timeouts sized for small form posts and page renders.
func DefaultServerConfig(address string) ServerConfig {
	return ServerConfig{
		Address:           address,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// NewServer creates *http.Server with provided handler.
func NewServer(cfg ServerConfig, handler http.Handler) *http.Server {
	def := DefaultServerConfig(cfg.Address)
	return &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: orDefault(cfg.ReadHeaderTimeout, def.ReadHeaderTimeout),
		ReadTimeout:       orDefault(cfg.ReadTimeout, def.ReadTimeout),
		WriteTimeout:      orDefault(cfg.WriteTimeout, def.WriteTimeout),
		IdleTimeout:       orDefault(cfg.IdleTimeout, def.IdleTimeout),
	}
}

func orDefault(v, fallback time.Duration) time.Duration {
	if v <= 0 {
		return fallback
	}
	return v
}
