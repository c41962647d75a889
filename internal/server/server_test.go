package server

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"goredis/internal/protocol"
)

func TestServerServesSetAndGet(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0 // replaced below once we know a free port
	cfg.Dir = t.TempDir()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve a port: %v", err)
	}
	addr := ln.Addr().(*net.TCPAddr)
	cfg.Port = addr.Port
	ln.Close()

	srv := New(cfg)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(ctx) }()

	var conn net.Conn
	for i := 0; i < 50; i++ {
		conn, err = net.Dial("tcp", addr.String())
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("dial server: %v", err)
	}
	defer conn.Close()

	write := func(parts ...string) {
		args := make([][]byte, len(parts))
		for i, p := range parts {
			args[i] = []byte(p)
		}
		if _, err := conn.Write(protocol.Encode(protocol.NewCommandArray(args...))); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	br := bufio.NewReader(conn)
	readN := func(n int) []byte {
		buf := make([]byte, n)
		if _, err := br.Read(buf); err != nil {
			t.Fatalf("read: %v", err)
		}
		return buf
	}

	write("SET", "k", "v")
	if got := string(readN(5)); got != "+OK\r\n" {
		t.Fatalf("got %q want +OK\\r\\n", got)
	}

	write("GET", "k")
	if got := string(readN(7)); got != "$1\r\nv\r\n" {
		t.Fatalf("got %q want bulk string v", got)
	}

	cancel()
	select {
	case <-errCh:
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down after context cancellation")
	}
}
