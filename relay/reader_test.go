package relay

import (
	"bytes"
	"net"
	"testing"
)

func TestStripControl(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  []byte
	}{
		{"plain text untouched", []byte("hello"), []byte("hello")},
		{"newline stripped", []byte("hello\r\n"), []byte("hello")},
		{"interior control stripped", []byte("he\x00l\x1blo"), []byte("hello")},
		{"only control strips to empty", []byte("\r\n\t\x07"), []byte{}},
		{"space survives", []byte(" a b "), []byte(" a b ")},
		{"high bytes survive", []byte{0xc3, 0xa9}, []byte{0xc3, 0xa9}}, // "é"
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripControl(tt.input); !bytes.Equal(got, tt.want) {
				t.Errorf("stripControl(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripControlCopies(t *testing.T) {
	// Frames outlive the pooled read buffer, so stripControl must
	// return fresh memory even when nothing was stripped.
	input := []byte("immutable")
	got := stripControl(input)
	input[0] = 'X'
	if got[0] == 'X' {
		t.Error("stripControl must copy, not alias, its input")
	}
}

func TestRemoteAddrPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		conn.Close()
	}()

	conn, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	<-done

	// Resolve our own address as the server would see the peer's.
	ap, err := remoteAddrPort(conn)
	if err != nil {
		t.Fatalf("remoteAddrPort: %v", err)
	}
	if !ap.Addr().Is4() && !ap.Addr().Is6() {
		t.Errorf("invalid address %v", ap)
	}
	if ap.Addr().String() != "127.0.0.1" {
		t.Errorf("addr = %s, want 127.0.0.1 (unmapped)", ap.Addr())
	}
}

func TestRemoteAddrPortRejectsNonTCP(t *testing.T) {
	local, remote := net.Pipe()
	defer local.Close()
	defer remote.Close()

	if _, err := remoteAddrPort(local); err == nil {
		t.Error("expected an error for a non-TCP address")
	}
}
