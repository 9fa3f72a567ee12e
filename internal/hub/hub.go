// Package hub implements the session authority: a single goroutine
// that owns the client registry, the ban registry, and every routing
// and policy decision for inbound frames.
//
// All shared state is confined to the hub goroutine.  Connection
// readers communicate with it exclusively through [Hub.Post]; nothing
// outside the hub ever reads or mutates a session.  Processing one
// event to completion before the next is what makes the ban, strike,
// and auth policies race-free without locks.
package hub

import (
	"context"
	"fmt"
	"net/netip"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/KartikSindura/chat/config"
	"github.com/KartikSindura/chat/internal/metrics"
	"github.com/KartikSindura/chat/util"
)

// session is the hub-private state of one live connection.
type session struct {
	addr        netip.AddrPort
	conn        Conn
	lastMessage time.Time // last frame that passed the rate check
	strikes     int       // never decays; reset only by session destruction
	authed      bool
	nick        string
}

// Hub is the session authority.
type Hub struct {
	token       string
	banLimit    time.Duration
	messageRate time.Duration
	strikeLimit int

	log *util.Logger
	mtr *metrics.Collector

	events  chan Event
	clients map[netip.AddrPort]*session
	banned  map[netip.Addr]time.Time // IP → time the ban was imposed

	// now is the clock; replaceable in tests.
	now func() time.Time
}

// New returns a Hub enforcing cfg's policy with the given shared token.
func New(token string, cfg *config.Config, logger *util.Logger, collector *metrics.Collector) *Hub {
	return &Hub{
		token:       token,
		banLimit:    cfg.BanLimit,
		messageRate: cfg.MessageRate,
		strikeLimit: cfg.StrikeLimit,
		log:         logger,
		mtr:         collector,
		events:      make(chan Event, config.DefaultEventBacklog),
		clients:     make(map[netip.AddrPort]*session),
		banned:      make(map[netip.Addr]time.Time),
		now:         time.Now,
	}
}

// Post enqueues ev for the hub.  It blocks while the queue is full,
// which preserves per-producer FIFO ordering, and fails only when ctx
// is done — at which point the posting reader should terminate.
func (h *Hub) Post(ctx context.Context, ev Event) error {
	select {
	case h.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drains the event queue until ctx is cancelled.  It must be the
// only consumer; the caller runs it in exactly one goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-h.events:
			h.handle(ev)
		}
	}
}

func (h *Hub) handle(ev Event) {
	switch ev := ev.(type) {
	case Connected:
		h.handleConnect(ev.Conn, ev.Addr)
	case Disconnected:
		h.handleDisconnect(ev.Addr)
	case Inbound:
		h.handleFrame(ev.Addr, ev.Bytes)
	}
}

// ── Connection lifecycle ─────────────────────────────────────────────

func (h *Hub) handleConnect(conn Conn, addr netip.AddrPort) {
	now := h.now()
	ip := addr.Addr()

	if bannedAt, ok := h.banned[ip]; ok {
		elapsed := now.Sub(bannedAt)
		if elapsed >= h.banLimit {
			// Ban expired; purge lazily and fall through to admission.
			delete(h.banned, ip)
		} else {
			left := (h.banLimit - elapsed).Seconds()
			h.log.Info("client %s rejected: banned for another %.1f secs", addr, left)
			h.writeTo(conn, addr, "You are banned: %.1f secs left\n", left)
			conn.Close() //nolint:errcheck
			return
		}
	}

	if _, ok := h.clients[addr]; ok {
		// Addresses are unique per accepted socket; a duplicate means
		// the acceptor broke that contract.
		h.log.Error("duplicate connect for %s; dropping event", addr)
		return
	}

	h.clients[addr] = &session{
		addr:        addr,
		conn:        conn,
		lastMessage: now,
		nick:        config.DefaultNickname,
	}
	h.mtr.SessionOpened()
	h.log.Info("client %s connected", addr)
}

func (h *Hub) handleDisconnect(addr netip.AddrPort) {
	// Idempotent: late or duplicate disconnects are no-ops.
	if s, ok := h.clients[addr]; ok {
		h.drop(s)
		h.log.Info("client %s disconnected", addr)
	}
}

// drop removes a session from the registry.  The socket is closed by
// whichever path called drop (or by the reader, for clean EOFs).
func (h *Hub) drop(s *session) {
	delete(h.clients, s.addr)
	h.mtr.SessionClosed()
}

// ── Frame handling ───────────────────────────────────────────────────

func (h *Hub) handleFrame(addr netip.AddrPort, frame []byte) {
	s, ok := h.clients[addr]
	if !ok {
		// Frame raced a disconnect or a ban; the session is gone.
		return
	}
	now := h.now()
	h.mtr.FrameReceived(int64(len(frame)))

	// Rate check.  A violating frame is never interpreted, and
	// lastMessage keeps its old value so a rapid burst accumulates
	// strikes against the original timestamp.
	if now.Sub(s.lastMessage) < h.messageRate {
		h.strike(s, now)
		return
	}
	s.lastMessage = now

	if !utf8.Valid(frame) {
		h.strike(s, now)
		return
	}
	text := string(frame)

	if !s.authed {
		h.handlePreAuth(s, text)
		return
	}

	if strings.HasPrefix(text, "/") && h.dispatch(s, text) {
		return
	}
	// Plain text, or a '/'-frame matching no command: fan out.
	h.broadcast(s, frame)
}

// handlePreAuth gates everything an unauthenticated session sends.
// The raw text or the /auth argument is compared to the shared token;
// one mismatch ends the connection without a strike.
func (h *Hub) handlePreAuth(s *session, text string) {
	candidate := text
	if strings.HasPrefix(text, "/") {
		name, arg, known := lookupCommand(text)
		if known && name != cmdAuth {
			h.send(s, "Authenticate first: /auth <token>\n")
			return
		}
		if known {
			candidate = arg
		}
		// An unknown '/'-frame falls through as a token attempt,
		// the same as any other pre-auth text.
	}

	if candidate == h.token {
		s.authed = true
		h.log.Info("client %s authenticated", s.addr)
		h.send(s, "Welcome!\n")
		return
	}

	h.log.Info("client %s sent an invalid token", s.addr)
	h.send(s, "Invalid token!\n")
	s.conn.Close() //nolint:errcheck
	h.drop(s)
}

// broadcast fans frame out to every other authenticated session.  A
// failed write to one recipient is logged and skipped; it never aborts
// the rest of the fan-out.
func (h *Hub) broadcast(from *session, frame []byte) {
	h.log.Verbose("client %s sent %d bytes", from.addr, len(frame))
	for addr, peer := range h.clients {
		if addr == from.addr || !peer.authed {
			continue
		}
		n, err := peer.conn.Write(frame)
		if err != nil {
			h.log.Error("broadcast to %s: %v", addr, err)
			h.mtr.RecordError(err.Error())
			continue
		}
		h.mtr.BytesSent(int64(n))
	}
	h.mtr.BroadcastSent()
}

// ── Strikes and bans ─────────────────────────────────────────────────

// strike counts one policy violation and, at the strike limit, bans
// the session's IP and destroys the session within the same event.
func (h *Hub) strike(s *session, now time.Time) {
	s.strikes++
	h.mtr.StrikeRecorded()
	if s.strikes < h.strikeLimit {
		return
	}
	h.banned[s.addr.Addr()] = now
	h.mtr.BanRecorded()
	h.log.Info("client %s banned after %d strikes", s.addr, s.strikes)
	h.send(s, "You are banned!\n")
	s.conn.Close() //nolint:errcheck
	h.drop(s)
}

// ── Output helpers ───────────────────────────────────────────────────

// send writes a formatted notice to a live session.
func (h *Hub) send(s *session, format string, args ...interface{}) {
	h.writeTo(s.conn, s.addr, format, args...)
}

// writeTo writes directly to a connection, which may not have a
// session yet (ban notices at connect time).  Errors are logged and
// swallowed; notification is best-effort.
func (h *Hub) writeTo(conn Conn, addr netip.AddrPort, format string, args ...interface{}) {
	n, err := fmt.Fprintf(conn, format, args...)
	if err != nil {
		h.log.Error("write to %s: %v", addr, err)
		h.mtr.RecordError(err.Error())
		return
	}
	h.mtr.BytesSent(int64(n))
}
