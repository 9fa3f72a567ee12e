package relay

import (
	"context"
	"fmt"
	"net"
	"net/netip"

	"github.com/KartikSindura/chat/internal/hub"
	"github.com/KartikSindura/chat/util"
)

// readConn is the connection reader: it owns the read side of one
// socket, frames raw bytes, and forwards events to the hub.  It never
// touches session state — the hub is the sole owner.
func (r *Relay) readConn(ctx context.Context, h *hub.Hub, conn net.Conn, id string) {
	defer conn.Close()

	addr, err := remoteAddrPort(conn)
	if err != nil {
		// The hub must never learn of a session that never existed.
		r.Logger.Error("conn %s: %v", id, err)
		return
	}
	r.Logger.Debug("conn %s is %s", id, addr)

	if err := h.Post(ctx, hub.Connected{Conn: conn, Addr: addr}); err != nil {
		return
	}

	buf := util.GetFrameBuf()
	defer util.PutFrameBuf(buf)

	for {
		n, err := conn.Read(*buf)
		if n > 0 {
			// stripControl copies, so the pooled buffer is free to be
			// overwritten by the next read.
			frame := stripControl((*buf)[:n])
			if len(frame) > 0 {
				if err := h.Post(ctx, hub.Inbound{Addr: addr, Bytes: frame}); err != nil {
					return
				}
			}
		}
		if err != nil {
			// EOF, reset, or a hub-initiated close: the client is gone
			// either way.  Disconnects are idempotent hub-side.
			h.Post(ctx, hub.Disconnected{Addr: addr}) //nolint:errcheck
			return
		}
	}
}

// stripControl returns a copy of b without control bytes (< 32).  A
// frame that strips to nothing is dropped by the caller: the user
// typed nothing interpretable, and charging a strike for a bare
// newline would punish every interactive client.
func stripControl(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		if c >= 32 {
			out = append(out, c)
		}
	}
	return out
}

// remoteAddrPort resolves the peer identity of a connection.
func remoteAddrPort(conn net.Conn) (netip.AddrPort, error) {
	ta, ok := conn.RemoteAddr().(*net.TCPAddr)
	if !ok {
		return netip.AddrPort{}, fmt.Errorf("unexpected remote address type %T", conn.RemoteAddr())
	}
	ap := ta.AddrPort()
	// Unmap so an IPv4 peer has one identity regardless of how the
	// listener reported it; the ban registry keys on this.
	return netip.AddrPortFrom(ap.Addr().Unmap(), ap.Port()), nil
}
