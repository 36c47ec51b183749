// Package server ties the wire protocol, crypto handshake, session
// verification and world model together into a running Minecraft
// server: an accept loop handing each connection its own goroutine,
// dispatching inbound packets by (state, id).
//
// Grounded in ChickenIQ-VibeShitCraft/pkg/server/server.go's
// Config/Server/accept-loop/per-connection-goroutine shape, adapted
// from that repo's ad hoc byte-slice packets to this module's typed
// java_protocol.Packet implementations and protocol-107 semantics.
package server

import (
	"crypto/rsa"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/go-mclib/server/config"
	"github.com/go-mclib/server/crypto"
	"github.com/go-mclib/server/java_protocol/session_server"
	"github.com/go-mclib/server/world"
)

// Server owns the listening socket, the RSA keypair used for every
// connection's encryption handshake, the world, and the set of live
// connections and joined players.
type Server struct {
	cfg    config.Config
	logger *slog.Logger

	rsaKey  *rsa.PrivateKey
	pubKey  []byte // DER SubjectPublicKeyInfo, cached
	world   *world.World
	session *session_server.SessionServerClient

	listeners []net.Listener
	stopCh    chan struct{}

	mu          sync.RWMutex
	connections map[*Connection]struct{}
	players     map[string]*world.PlayerEntity // keyed by UUID
}

// New constructs a Server from cfg, loading the world and generating
// a fresh RSA keypair. It does not yet listen.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	w, err := world.Open(cfg.World)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	key, err := crypto.GenerateRSAKeyPair()
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	pub, err := crypto.ConvertPublicKeyToSPKI(&key.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	return &Server{
		cfg:         cfg,
		logger:      logger,
		rsaKey:      key,
		pubKey:      pub,
		world:       w,
		session:     session_server.NewSessionServerClient(),
		stopCh:      make(chan struct{}),
		connections: make(map[*Connection]struct{}),
		players:     make(map[string]*world.PlayerEntity),
	}, nil
}

// Start opens the listening socket and begins accepting connections
// in the background. Every entry in cfg.Servers opens an additional
// listener on its own port, each running the same accept loop against
// the one shared World and connection/player registry — a single
// process fielding several differently-addressed frontends (LAN vs.
// public, IPv4 vs. IPv6) without duplicating world state.
func (s *Server) Start() error {
	ln, err := s.listen(s.cfg.Port, s.cfg.IPv6)
	if err != nil {
		return fmt.Errorf("server: listen: %w", err)
	}
	s.listeners = append(s.listeners, ln)
	s.logger.Info("listening", "addr", ln.Addr().String())
	go s.acceptLoop(ln)

	for _, override := range s.cfg.Servers {
		port := s.cfg.Port
		if override.Port != 0 {
			port = override.Port
		}
		ipv6 := s.cfg.IPv6
		if override.IPv6 != nil {
			ipv6 = *override.IPv6
		}

		oln, err := s.listen(port, ipv6)
		if err != nil {
			s.closeListeners()
			return fmt.Errorf("server: listen (override %q): %w", override.Description, err)
		}
		s.listeners = append(s.listeners, oln)
		s.logger.Info("listening", "addr", oln.Addr().String(), "description", override.Description)
		go s.acceptLoop(oln)
	}

	return nil
}

func (s *Server) listen(port int, ipv6 bool) (net.Listener, error) {
	network := "tcp4"
	if ipv6 {
		network = "tcp"
	}
	return net.Listen(network, fmt.Sprintf(":%d", port))
}

func (s *Server) closeListeners() {
	for _, ln := range s.listeners {
		_ = ln.Close()
	}
	s.listeners = nil
}

// Stop closes every listener and live connection idempotently.
func (s *Server) Stop() {
	select {
	case <-s.stopCh:
		return // already stopped
	default:
		close(s.stopCh)
	}

	s.closeListeners()

	s.mu.RLock()
	conns := make([]*Connection, 0, len(s.connections))
	for c := range s.connections {
		conns = append(conns, c)
	}
	s.mu.RUnlock()

	for _, c := range conns {
		c.Close()
	}
	_ = s.world.Close()
}

func (s *Server) acceptLoop(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-s.stopCh:
				return
			default:
				s.logger.Error("accept", "err", err)
				continue
			}
		}

		s.mu.RLock()
		full := len(s.connections) >= s.cfg.MaxConnections
		s.mu.RUnlock()
		if full {
			conn.Close()
			continue
		}

		c := newConnection(s, conn)
		s.addConnection(c)
		go c.serve()
	}
}

func (s *Server) addConnection(c *Connection) {
	s.mu.Lock()
	s.connections[c] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) removeConnection(c *Connection) {
	s.mu.Lock()
	delete(s.connections, c)
	s.mu.Unlock()
}

func (s *Server) addPlayer(p *world.PlayerEntity, uuid string) {
	s.mu.Lock()
	s.players[uuid] = p
	s.mu.Unlock()
}

func (s *Server) removePlayer(uuid string) {
	s.mu.Lock()
	delete(s.players, uuid)
	s.mu.Unlock()
}

// PlayerCount returns the number of currently joined players, used in
// the status response's players.online field.
func (s *Server) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}

// connectionTimeout is applied as a read deadline on every inbound
// frame read, matching the config's `timeout` key.
func (s *Server) connectionTimeout() time.Duration {
	return time.Duration(s.cfg.TimeoutSeconds) * time.Second
}
