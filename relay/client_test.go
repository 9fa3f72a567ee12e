package relay

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/KartikSindura/chat/config"
	"github.com/KartikSindura/chat/internal/metrics"
	"github.com/KartikSindura/chat/util"
)

// TestConnectSendsAuthFrame verifies the client authenticates with the
// configured token as soon as the rate window allows.
func TestConnectSendsAuthFrame(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	cfg := config.New()
	cfg.Host = "127.0.0.1"
	cfg.Port = ln.Addr().(*net.TCPAddr).Port
	cfg.Token = testToken
	cfg.MessageRate = 10 * time.Millisecond

	r := New(cfg, util.NewLogger(0), metrics.New())

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	clientErr := make(chan error, 1)
	go func() { clientErr <- r.connect(ctx) }()

	conn, err := ln.Accept()
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second)) //nolint:errcheck
	buf := make([]byte, 64)
	n, err := conn.Read(buf)
	if err != nil {
		t.Fatalf("read auth frame: %v", err)
	}
	if got := string(buf[:n]); got != "/auth "+testToken {
		t.Errorf("auth frame = %q, want %q", got, "/auth "+testToken)
	}

	// Hanging up ends the client cleanly.
	conn.Close()
	select {
	case err := <-clientErr:
		if err != nil {
			t.Errorf("connect returned %v, want nil on clean hangup", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("client did not exit after server hangup")
	}
}

// TestConnectRetriesDial verifies the backoff takes over when the
// server is not up yet.
func TestConnectRetriesDial(t *testing.T) {
	port, err := util.FindFreePort()
	if err != nil {
		t.Fatal(err)
	}

	cfg := config.New()
	cfg.Host = "127.0.0.1"
	cfg.Port = port
	cfg.Token = testToken
	cfg.MessageRate = time.Millisecond
	cfg.Timeout = time.Second

	r := New(cfg, util.NewLogger(0), metrics.New())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clientErr := make(chan error, 1)
	go func() { clientErr <- r.connect(ctx) }()

	// Bring the server up after the first dial has already failed.
	time.Sleep(200 * time.Millisecond)
	ln, err := net.Listen("tcp", util.FormatAddr("127.0.0.1", port))
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	conn, err := ln.Accept()
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second)) //nolint:errcheck
	buf := make([]byte, 64)
	n, err := conn.Read(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(buf[:n]), "/auth ") {
		t.Errorf("expected an auth frame after reconnect, got %q", buf[:n])
	}
	conn.Close()

	select {
	case err := <-clientErr:
		if err != nil {
			t.Errorf("connect returned %v after successful retry", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("client did not exit")
	}
}
