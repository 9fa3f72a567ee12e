package hub

import (
	"io"
	"net/netip"
)

// Conn is the write-side capability of a client socket.  The hub is
// the only writer for a session's lifetime; the connection reader keeps
// the read side and never writes.  *net.TCPConn satisfies this, and
// tests substitute in-memory fakes.
type Conn interface {
	io.Writer
	Close() error
}

// Event is one unit of work for the hub.  Connection readers post
// events; the hub consumes them strictly in arrival order.
type Event interface {
	event()
}

// Connected announces a freshly accepted connection.  The reader
// resolves the peer address before posting, so the hub never sees a
// connection whose identity is unknown.
type Connected struct {
	Conn Conn
	Addr netip.AddrPort
}

// Disconnected announces that a connection's read side ended.
type Disconnected struct {
	Addr netip.AddrPort
}

// Inbound carries one frame: the bytes of a single read with control
// characters already stripped.  Classification as command or text
// happens inside the hub by the leading '/' marker.
type Inbound struct {
	Addr  netip.AddrPort
	Bytes []byte
}

func (Connected) event()    {}
func (Disconnected) event() {}
func (Inbound) event()      {}
