package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags and environment variable loading.  The policy
// values match the reference deployment.

const (
	// DefaultPort is the relay's conventional port.
	DefaultPort = 6969

	// DefaultBanLimit is how long an IP stays banned after reaching
	// the strike limit.
	DefaultBanLimit = 10 * time.Minute

	// DefaultMessageRate is the minimum interval between frames from
	// one client; faster arrivals count as strikes.
	DefaultMessageRate = 1 * time.Second

	// DefaultStrikeLimit is the number of policy violations a session
	// survives before its IP is banned.
	DefaultStrikeLimit = 10

	// DefaultNickname is assigned to every new session until /nick.
	DefaultNickname = "anon"

	// MaxNicknameLen caps nicknames; longer arguments are truncated
	// before trimming.
	MaxNicknameLen = 16

	// DefaultEventBacklog is the hub's event channel capacity.  A full
	// channel blocks the posting reader, which preserves per-producer
	// FIFO ordering.
	DefaultEventBacklog = 256

	// DefaultDialTimeout is the connect mode TCP dial timeout.
	DefaultDialTimeout = 30 * time.Second

	// DefaultDialAttempts is how many times connect mode retries the
	// initial dial before giving up.
	DefaultDialAttempts = 5
)
