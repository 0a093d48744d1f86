// Package tcp speaks the engine's raw socket protocol: the engine sends a
// fixed-size view frame, the agent answers with a single instruction byte.
package tcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"treasurehunt.ai/internal/protocol"
	"treasurehunt.ai/internal/transport"
)

func Dial(ctx context.Context, addr string) (net.Conn, error) {
	var d net.Dialer
	return d.DialContext(ctx, "tcp", addr)
}

// Run answers views on conn until the engine hangs up, the agent fails or
// ctx is cancelled. A clean hang-up returns nil.
func Run(ctx context.Context, conn net.Conn, agent transport.Stepper, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		_ = conn.Close()
		return nil
	})
	cycles := 0
	g.Go(func() error {
		defer cancel()
		n, err := serve(conn, agent)
		cycles = n
		return err
	})
	err := g.Wait()
	if parent.Err() != nil {
		err = parent.Err()
	}
	log.Info("session ended", zap.Int("cycles", cycles), zap.Error(err))
	return err
}

func serve(conn io.ReadWriter, agent transport.Stepper) (int, error) {
	frame := make([]byte, protocol.FrameSize)
	out := make([]byte, 1)
	n := 0
	for {
		if _, err := io.ReadFull(conn, frame); err != nil {
			if errors.Is(err, io.EOF) {
				return n, nil
			}
			return n, fmt.Errorf("read view: %w", err)
		}
		v, err := protocol.DecodeView(frame)
		if err != nil {
			return n, err
		}
		in, err := agent.Step(v)
		if err != nil {
			return n, err
		}
		out[0] = byte(in)
		if _, err := conn.Write(out); err != nil {
			return n, fmt.Errorf("write instruction: %w", err)
		}
		n++
	}
}
