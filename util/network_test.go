package util

import (
	"net"
	"strconv"
	"testing"
)

func TestFormatAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"example.com", 6969, "example.com:6969"},
		{"127.0.0.1", 80, "127.0.0.1:80"},
		{"::1", 443, "[::1]:443"},
	}
	for _, tt := range tests {
		if got := FormatAddr(tt.host, tt.port); got != tt.want {
			t.Errorf("FormatAddr(%q, %d) = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestFindFreePort(t *testing.T) {
	port, err := FindFreePort()
	if err != nil {
		t.Fatal(err)
	}
	if port < 1 || port > 65535 {
		t.Fatalf("port %d out of range", port)
	}

	// The port should actually be bindable.
	l, err := net.Listen("tcp", "127.0.0.1:"+strconv.Itoa(port))
	if err != nil {
		t.Fatalf("could not bind returned port %d: %v", port, err)
	}
	l.Close()
}

func TestFrameBufPool(t *testing.T) {
	buf := GetFrameBuf()
	if len(*buf) != FrameBufSize {
		t.Errorf("buffer length = %d, want %d", len(*buf), FrameBufSize)
	}
	PutFrameBuf(buf)
	PutFrameBuf(nil) // must not panic
}
