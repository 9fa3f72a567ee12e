package relay

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/KartikSindura/chat/config"
	errs "github.com/KartikSindura/chat/internal/errors"
	"github.com/KartikSindura/chat/internal/retry"
	"github.com/KartikSindura/chat/util"
)

// connect runs the client mode: dial with backoff, authenticate, then
// relay stdin/stdout to the chat socket.
func (r *Relay) connect(ctx context.Context) error {
	addr := util.FormatAddr(r.Config.Host, r.Config.Port)
	r.Logger.Verbose("connecting to %s", addr)

	d := net.Dialer{Timeout: r.Config.Timeout}
	var conn net.Conn

	b := retry.DefaultBackoff()
	b.MaxAttempts = config.DefaultDialAttempts
	err := b.Do(ctx, func(attempt int) error {
		c, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			werr := errs.Wrap("dial", addr, err)
			r.Logger.Warn("dial attempt %d: %v", attempt, werr)
			return werr
		}
		conn = c
		return nil
	})
	if err != nil {
		return fmt.Errorf("connect to %s: %w", addr, err)
	}
	defer conn.Close()

	r.Logger.Verbose("connected to %s", conn.RemoteAddr())

	tok := r.Config.Token
	if tok == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		tok, err = promptToken()
		if err != nil {
			return err
		}
	}

	if tok != "" {
		// The hub's rate window opens when the session is created, so
		// hold the auth frame until the window passes instead of
		// spending a strike on it.
		select {
		case <-time.After(r.Config.MessageRate):
		case <-ctx.Done():
			return ctx.Err()
		}
		if _, err := fmt.Fprintf(conn, "/auth %s", tok); err != nil {
			return errs.Wrap("write", addr, err)
		}
	}

	return util.BidirectionalCopy(ctx, conn, os.Stdin, os.Stdout)
}

// promptToken reads the shared token without echoing it.
func promptToken() (string, error) {
	fmt.Fprint(os.Stderr, "Token: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
