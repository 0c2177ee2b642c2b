// Package session owns the per-connection state machine for a game client:
// the Pike handshake, and the RX/TX pumps that decode wire frames into bus
// messages (and back) on either side of the global world's input channel.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/udisondev/la2go/internal/bus"
	"github.com/udisondev/la2go/internal/config"
	"github.com/udisondev/la2go/internal/protocol/opcode"
)

// Server accepts game client TCP connections, runs the handshake, and
// pumps decoded messages to and from the global world.
type Server struct {
	cfg         config.NetworkConfig
	opcodes     *opcode.Table
	globalInput chan<- bus.Message
	log         *slog.Logger

	sendPool *BytePool
	readPool *BytePool

	mu       sync.Mutex
	listener net.Listener
}

// NewServer builds a Server that feeds decoded client messages onto
// globalInput.
func NewServer(cfg config.NetworkConfig, opcodes *opcode.Table, globalInput chan<- bus.Message, log *slog.Logger) *Server {
	return &Server{
		cfg:         cfg,
		opcodes:     opcodes,
		globalInput: globalInput,
		log:         log,
		sendPool:    NewBytePool(defaultBufSize),
		readPool:    NewBytePool(defaultBufSize),
	}
}

// Addr returns the address the server is listening on, or nil before Run
// has bound a listener.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Run listens on the configured game port and serves connections until ctx
// is cancelled.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.BindAddress, s.cfg.GamePort)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("session: listening on %s: %w", addr, err)
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	return s.Serve(ctx, ln)
}

// Serve accepts connections on an already-bound listener, useful for
// testing against an arbitrary listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	var wg sync.WaitGroup
	wg.Go(func() {
		s.log.Info("session server started", "address", ln.Addr())
		s.acceptLoop(ctx, &wg, ln)
	})
	wg.Wait()

	return nil
}

func (s *Server) acceptLoop(ctx context.Context, wg *sync.WaitGroup, ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.log.Error("session: accept failed", "error", err)
			continue
		}
		wg.Go(func() {
			s.handleConnection(ctx, conn)
		})
	}
}

func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	host, _, err := net.SplitHostPort(conn.RemoteAddr().String())
	if err != nil {
		host = conn.RemoteAddr().String()
	}

	cs, err := performHandshake(conn)
	if err != nil {
		s.log.Warn("session: handshake failed", "remote", host, "error", err)
		return
	}

	sessionCh := make(chan bus.Message, sessionChannelCapacity)
	c := newConnection(conn, host, cs, sessionCh)

	closeOnCancel := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-closeOnCancel:
		}
	}()
	defer close(closeOnCancel)

	select {
	case s.globalInput <- bus.RegisterConnection{ConnectionChannel: sessionCh}:
	case <-ctx.Done():
		return
	}

	select {
	case msg := <-sessionCh:
		reg, ok := msg.(bus.RegisterConnectionFinished)
		if !ok {
			s.log.Error("session: expected RegisterConnectionFinished first", "remote", host, "type", fmt.Sprintf("%T", msg))
			return
		}
		c.setGlobalWorldID(reg.ConnectionGlobalWorldID)
	case <-ctx.Done():
		return
	}

	var txWg sync.WaitGroup
	txWg.Go(func() {
		s.txPump(c)
	})

	err = s.rxPump(ctx, c)
	close(sessionCh)
	txWg.Wait()

	if err != nil && !errors.Is(err, ErrConnectionClosed) && !errors.Is(err, context.Canceled) {
		s.log.Warn("session: rx pump stopped", "remote", host, "error", err)
	} else {
		s.log.Info("session: connection closed", "remote", host)
	}
}
