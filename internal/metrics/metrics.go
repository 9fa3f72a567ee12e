// Package metrics provides lightweight counters for tracking runtime
// statistics of a relay run.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks runtime metrics for a relay.
// A nil Collector is safe to use — all methods become no-ops.
type Collector struct {
	connectionsActive atomic.Int64
	connectionsTotal  atomic.Int64
	framesIn          atomic.Int64
	broadcasts        atomic.Int64
	bytesIn           atomic.Int64
	bytesOut          atomic.Int64
	strikes           atomic.Int64
	bans              atomic.Int64
	errorsTotal       atomic.Int64

	mu           sync.RWMutex
	startTime    time.Time
	lastError    time.Time
	lastErrorMsg string
}

// New creates a metrics collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// ── Session metrics ──────────────────────────────────────────────────

// SessionOpened increments both the active and total counters.
func (c *Collector) SessionOpened() {
	if c == nil {
		return
	}
	c.connectionsActive.Add(1)
	c.connectionsTotal.Add(1)
}

// SessionClosed decrements the active session counter.
func (c *Collector) SessionClosed() {
	if c == nil {
		return
	}
	c.connectionsActive.Add(-1)
}

// ActiveSessions returns the current number of live sessions.
func (c *Collector) ActiveSessions() int64 {
	if c == nil {
		return 0
	}
	return c.connectionsActive.Load()
}

// TotalSessions returns the lifetime session count.
func (c *Collector) TotalSessions() int64 {
	if c == nil {
		return 0
	}
	return c.connectionsTotal.Load()
}

// ── Frame metrics ────────────────────────────────────────────────────

// FrameReceived records one inbound frame of n bytes.
func (c *Collector) FrameReceived(n int64) {
	if c == nil {
		return
	}
	c.framesIn.Add(1)
	c.bytesIn.Add(n)
}

// BroadcastSent records one fan-out of an accepted frame.
func (c *Collector) BroadcastSent() {
	if c == nil {
		return
	}
	c.broadcasts.Add(1)
}

// BytesSent records n bytes written to a client.
func (c *Collector) BytesSent(n int64) {
	if c == nil {
		return
	}
	c.bytesOut.Add(n)
}

// TotalFrames returns the lifetime inbound frame count.
func (c *Collector) TotalFrames() int64 {
	if c == nil {
		return 0
	}
	return c.framesIn.Load()
}

// TotalBroadcasts returns the lifetime broadcast count.
func (c *Collector) TotalBroadcasts() int64 {
	if c == nil {
		return 0
	}
	return c.broadcasts.Load()
}

// ── Policy metrics ───────────────────────────────────────────────────

// StrikeRecorded counts one rate or encoding violation.
func (c *Collector) StrikeRecorded() {
	if c == nil {
		return
	}
	c.strikes.Add(1)
}

// BanRecorded counts one IP ban.
func (c *Collector) BanRecorded() {
	if c == nil {
		return
	}
	c.bans.Add(1)
}

// TotalStrikes returns the lifetime strike count.
func (c *Collector) TotalStrikes() int64 {
	if c == nil {
		return 0
	}
	return c.strikes.Load()
}

// TotalBans returns the lifetime ban count.
func (c *Collector) TotalBans() int64 {
	if c == nil {
		return 0
	}
	return c.bans.Load()
}

// ── Error metrics ────────────────────────────────────────────────────

// RecordError increments the error counter and stores the message.
func (c *Collector) RecordError(msg string) {
	if c == nil {
		return
	}
	c.errorsTotal.Add(1)
	c.mu.Lock()
	c.lastError = time.Now()
	c.lastErrorMsg = msg
	c.mu.Unlock()
}

// ErrorCount returns the total number of errors recorded.
func (c *Collector) ErrorCount() int64 {
	if c == nil {
		return 0
	}
	return c.errorsTotal.Load()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all metrics.
type Snapshot struct {
	Uptime            string `json:"uptime"`
	ConnectionsActive int64  `json:"connections_active"`
	ConnectionsTotal  int64  `json:"connections_total"`
	FramesIn          int64  `json:"frames_in"`
	Broadcasts        int64  `json:"broadcasts"`
	BytesIn           int64  `json:"bytes_in"`
	BytesOut          int64  `json:"bytes_out"`
	Strikes           int64  `json:"strikes"`
	Bans              int64  `json:"bans"`
	ErrorsTotal       int64  `json:"errors_total"`
	LastError         string `json:"last_error,omitempty"`
	LastErrorMessage  string `json:"last_error_message,omitempty"`
}

// Snapshot returns a copy of all current metrics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Uptime:            time.Since(c.startTime).Truncate(time.Second).String(),
		ConnectionsActive: c.connectionsActive.Load(),
		ConnectionsTotal:  c.connectionsTotal.Load(),
		FramesIn:          c.framesIn.Load(),
		Broadcasts:        c.broadcasts.Load(),
		BytesIn:           c.bytesIn.Load(),
		BytesOut:          c.bytesOut.Load(),
		Strikes:           c.strikes.Load(),
		Bans:              c.bans.Load(),
		ErrorsTotal:       c.errorsTotal.Load(),
	}
	if !c.lastError.IsZero() {
		s.LastError = c.lastError.Format(time.RFC3339)
		s.LastErrorMessage = c.lastErrorMsg
	}
	return s
}

// JSON returns the snapshot as an indented JSON string.
func (c *Collector) JSON() string {
	s := c.Snapshot()
	data, _ := json.MarshalIndent(s, "", "  ")
	return string(data)
}
