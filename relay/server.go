package relay

import (
	"context"
	"fmt"
	"net"

	"github.com/google/uuid"

	errs "github.com/KartikSindura/chat/internal/errors"
	"github.com/KartikSindura/chat/internal/hub"
	"github.com/KartikSindura/chat/internal/token"
)

// serve runs the listen (server) mode: one acceptor, one reader per
// connection, one hub.
func (r *Relay) serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tok := r.Config.Token
	if tok == "" {
		var err error
		tok, err = token.New()
		if err != nil {
			return err
		}
	}
	// The token is the only credential; operators read it off stdout.
	fmt.Printf("Token: %s\n", tok)

	addr := fmt.Sprintf("%s:%d", r.Config.Host, r.Config.LocalPort)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errs.Wrap("listen", addr, err)
	}
	defer ln.Close()

	r.Logger.Info("listening on %s", ln.Addr())

	h := hub.New(tok, r.Config, r.Logger, r.Metrics)
	go h.Run(ctx)
	defer func() { r.Logger.Verbose("relay stats: %s", r.Metrics.JSON()) }()

	// Shut the listener down when the context expires.
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return errs.Wrap("accept", addr, err)
			}
		}

		id := uuid.NewString()[:8]
		r.Logger.Verbose("conn %s accepted from %s", id, conn.RemoteAddr())
		go r.readConn(ctx, h, conn, id)
	}
}
