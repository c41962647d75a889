// Package server wires the keyspace, replication state, and connection
// handler together into a running process: listening for clients, and,
// when configured as a replica, dialing out to a master first.
package server

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net"
	"strings"

	"golang.org/x/sync/errgroup"

	"goredis/internal/command"
	"goredis/internal/handler"
	"goredis/internal/rdb"
	"goredis/internal/replutil"
	"goredis/internal/storage"
)

// Server is one running redis-server process.
type Server struct {
	cfg      *Config
	execCtx  *command.ExecContext
	handler  *handler.Handler
	listener net.Listener
}

// New builds a Server from cfg: it creates the keyspace, loads any existing
// RDB snapshot from disk, and sets up replication bookkeeping for the
// configured role.
func New(cfg *Config) *Server {
	store := storage.NewStore()
	loadRDB(cfg, store)

	role := replutil.RoleMaster
	if cfg.ReplicaOf != "" {
		role = replutil.RoleSlave
	}
	info := replutil.NewInfo(role, replutil.GenerateReplID())
	pool := replutil.NewPool()

	execCtx := &command.ExecContext{
		Store:      store,
		Info:       info,
		Pool:       pool,
		Dir:        cfg.Dir,
		DBFilename: cfg.DBFilename,
	}

	return &Server{
		cfg:     cfg,
		execCtx: execCtx,
		handler: handler.New(execCtx),
	}
}

// Run listens for client connections and, if configured as a replica,
// concurrently performs the master handshake. It blocks until ctx is
// cancelled or a fatal listener error occurs.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen on %s: %w", addr, err)
	}
	s.listener = ln
	log.Printf("server: listening on %s", addr)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-gctx.Done()
		ln.Close()
		return nil
	})

	if s.cfg.ReplicaOf != "" {
		g.Go(func() error {
			s.connectToMaster(gctx)
			return nil
		})
	}

	g.Go(func() error {
		return s.acceptLoop(gctx)
	})

	return g.Wait()
}

func (s *Server) acceptLoop(ctx context.Context) error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return fmt.Errorf("server: accept: %w", err)
			}
		}
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	client := handler.NewClient(conn)
	s.handler.Handle(client, false, nil)
}

// connectToMaster performs the replica-side PSYNC handshake against
// cfg.ReplicaOf ("host port"), restores the snapshot it receives, then hands
// the live socket to the standard connection handler as a master-replication
// link. It logs and returns on failure rather than tearing down the rest of
// the process: a replica that can't reach its master still serves reads
// from whatever it last had.
func (s *Server) connectToMaster(ctx context.Context) {
	addr := strings.Replace(strings.TrimSpace(s.cfg.ReplicaOf), " ", ":", 1)

	result, err := replutil.Handshake(addr, s.cfg.Port)
	if err != nil {
		log.Printf("server: replica handshake with %s failed: %v", addr, err)
		return
	}

	parsed, err := rdb.Parse(bytes.NewReader(result.RDB))
	if err != nil {
		log.Printf("server: master %s sent an unparseable RDB snapshot: %v", addr, err)
	} else if err := parsed.Restore(s.execCtx.Store); err != nil {
		log.Printf("server: failed to restore snapshot from %s: %v", addr, err)
	}

	s.execCtx.Info.SetOffset(result.MasterOffset)
	log.Printf("server: full resync with %s complete, replid=%s offset=%d", addr, result.MasterReplID, result.MasterOffset)

	client := handler.NewClient(result.Conn)
	s.handler.Handle(client, true, result.Residual)
	log.Printf("server: master link to %s closed", addr)
}
