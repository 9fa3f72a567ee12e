package hub

import (
	"strings"

	"github.com/KartikSindura/chat/config"
)

const cmdAuth = "/auth"

// command binds a name to a handler running inside the hub goroutine.
// The set is fixed and small, so a closed table beats open registration.
type command struct {
	name string
	desc string
	run  func(h *Hub, s *session, arg string)
}

// commands is checked in order; the first name prefix match wins.
// Assigned in init to break the initialization cycle with runHelp,
// which iterates the table.
var commands []command

func init() {
	commands = []command{
		{cmdAuth, "Authenticate using a token", runAuth},
		{"/quit", "Leave the chat", runQuit},
		{"/help", "Print this help", runHelp},
		{"/nick", "Change your nickname", runNick},
	}
}

// lookupCommand matches text against the command table in table order.
// arg is the remainder after the command name, trimmed of leading
// whitespace.
func lookupCommand(text string) (name, arg string, known bool) {
	for i := range commands {
		if strings.HasPrefix(text, commands[i].name) {
			rest := strings.TrimLeft(text[len(commands[i].name):], " \t")
			return commands[i].name, rest, true
		}
	}
	return "", "", false
}

// dispatch runs the command named by text for an authenticated
// session.  It returns false when no command matched, in which case
// the frame is broadcast as ordinary text.
func (h *Hub) dispatch(s *session, text string) bool {
	for i := range commands {
		cmd := &commands[i]
		if !strings.HasPrefix(text, cmd.name) {
			continue
		}
		arg := strings.TrimLeft(text[len(cmd.name):], " \t")
		cmd.run(h, s, arg)
		return true
	}
	return false
}

// ── Handlers ─────────────────────────────────────────────────────────

// runAuth only fires post-authentication; the pre-auth path handles
// /auth inline because it mutates auth state.
func runAuth(h *Hub, s *session, _ string) {
	h.send(s, "Already authenticated.\n")
}

// runQuit disconnects the invoking session only.  The reference
// terminated the whole server process here; that is almost certainly
// a placeholder, and a relay must not let one tenant stop the rest.
func runQuit(h *Hub, s *session, _ string) {
	h.log.Info("client %s quit", s.addr)
	s.conn.Close() //nolint:errcheck
	h.drop(s)
}

func runHelp(h *Hub, s *session, _ string) {
	var b strings.Builder
	b.WriteString("Usage: \r\n")
	for i := range commands {
		b.WriteString(commands[i].name)
		b.WriteString(" - ")
		b.WriteString(commands[i].desc)
		b.WriteString("\r\n")
	}
	h.send(s, "%s", b.String())
}

// runNick caps the argument at MaxNicknameLen before trimming, the
// same order the reference applies.  Nickname changes are not
// broadcast.
func runNick(h *Hub, s *session, arg string) {
	trimmed := strings.TrimSpace(arg)
	if len(arg) > config.MaxNicknameLen {
		trimmed = strings.TrimSpace(arg[:config.MaxNicknameLen])
	}
	if trimmed == "" || trimmed == s.nick {
		h.send(s, "Nickname cannot be empty or same.\r\n")
		return
	}
	h.send(s, "Nickname changed from %s to %s\r\n", s.nick, trimmed)
	s.nick = trimmed
}
