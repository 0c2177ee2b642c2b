// Package webfrontend serves the two HTTP endpoints a client needs before
// it ever opens a game socket: the server list and the login ticket
// exchange. It is a narrow boundary around AccountStore, TicketStore and
// PasswordVerifier — no gameplay state crosses into it.
package webfrontend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/udisondev/la2go/internal/config"
	"github.com/udisondev/la2go/internal/passwordverifier"
	"github.com/udisondev/la2go/internal/store"
)

// Server serves /server/list.<region> and /auth.
type Server struct {
	cfg       config.Server
	accounts  store.AccountStore
	tickets   store.TicketStore
	verifier  passwordverifier.Verifier
	log       *slog.Logger
	ticketAge time.Duration

	http *http.Server
}

// NewServer builds a Server ready to Run.
func NewServer(cfg config.Server, accounts store.AccountStore, tickets store.TicketStore, verifier passwordverifier.Verifier, log *slog.Logger) *Server {
	return &Server{
		cfg:       cfg,
		accounts:  accounts,
		tickets:   tickets,
		verifier:  verifier,
		log:       log,
		ticketAge: time.Duration(cfg.Game.TicketMaxAge) * time.Second,
	}
}

// Run listens on the configured web port and serves until ctx is
// cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Network.BindAddress, s.cfg.Network.WebPort)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("webfrontend: listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve runs the HTTP server on an already-bound listener, useful for
// testing against an arbitrary port.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /server/list.{region}", s.handleServerList)
	mux.HandleFunc("POST /auth", s.handleAuth)

	s.http = &http.Server{Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("webfrontend server started", "address", ln.Addr())
		errCh <- s.http.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("webfrontend: shutdown: %w", err)
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("webfrontend: serve: %w", err)
	}
}
