// Package server runs a TCP Telnet acceptor around a cliprompt.Pool, in the
// accept-loop-plus-per-connection-goroutine shape the retrieval pack uses
// for its own Telnet/SSH front ends (stlalpha/vision3's internal/telnetserver
// and cory-johannsen/mud's internal/frontend/telnet), but driving the
// cooperative cliprompt.Prompt.Poll loop instead of a blocking session
// handler.
package server

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nullterm/cliprompt"
	"github.com/nullterm/cliprompt/internal/decoder"
	"github.com/nullterm/cliprompt/internal/transport/telnettransport"
)

// pollClock ticks every millisecond of wall time for the lone-ESC timeout.
type pollClock struct{ start time.Time }

func (c pollClock) Millis() uint32 { return uint32(time.Since(c.start).Milliseconds()) }

// Config configures the TCP acceptor.
type Config struct {
	Addr string // host:port to listen on
}

// Server accepts Telnet connections and drives one cliprompt.Prompt per
// connection, drawn from a shared Pool.
type Server struct {
	cfg    Config
	pool   *cliprompt.Pool
	logger *zap.Logger

	listener net.Listener
	wg       sync.WaitGroup
	mu       sync.Mutex
	quit     chan struct{}
	running  bool
}

// New creates a Server bound to pool. logger must be non-nil.
func New(cfg Config, pool *cliprompt.Pool, logger *zap.Logger) *Server {
	return &Server{
		cfg:    cfg,
		pool:   pool,
		logger: logger,
		quit:   make(chan struct{}),
	}
}

// ListenAndServe starts the TCP listener and accepts connections until Stop
// is called. It blocks until the listener closes.
func (s *Server) ListenAndServe() error {
	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}

	s.mu.Lock()
	s.listener = listener
	s.running = true
	s.mu.Unlock()

	s.logger.Info("cliprompt telnet server listening", zap.String("addr", listener.Addr().String()))

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-s.quit:
				return nil
			default:
				s.logger.Error("accepting connection", zap.Error(err))
				continue
			}
		}

		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

// handleConn acquires a Prompt from the pool, wraps the connection in the
// Telnet transport, negotiates, and runs Poll until the connection drops.
func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()
	addr := conn.RemoteAddr().String()
	start := time.Now()

	tr := telnettransport.New(conn)
	defer tr.Close()

	p, err := s.pool.Acquire(tr, pollClock{start: start})
	if err != nil {
		s.logger.Warn("rejecting connection, pool exhausted", zap.String("remote_addr", addr))
		for _, b := range []byte("No sessions available.\r\n") {
			tr.WriteByte(b)
		}
		return
	}

	bufCfg := s.pool.Config()
	line := make([]byte, bufCfg.LineBufferSize)
	hist := make([]byte, bufCfg.LineBufferSize*10)
	p.SetBuffers(line, hist)

	s.logger.Info("session started", zap.String("remote_addr", addr))

	for _, b := range decoder.InitialNegotiation() {
		tr.WriteByte(b)
	}
	p.Start()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-s.quit:
			conn.Close()
		case <-ctx.Done():
		}
	}()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-tr.Closed():
			break loop
		default:
		}
		p.Poll()
		if p.CloseRequested() {
			break loop
		}
		if !tr.Available() {
			time.Sleep(time.Millisecond)
		}
	}

	s.logger.Info("session ended",
		zap.String("remote_addr", addr),
		zap.Duration("duration", time.Since(start)),
	)
}

// Stop closes the listener and waits for in-flight sessions to exit.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.quit)
	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
	s.logger.Info("cliprompt telnet server stopped")
}
