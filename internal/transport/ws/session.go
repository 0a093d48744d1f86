// Package ws runs the agent against an engine reachable over websocket.
// Each binary message from the engine is one view frame; each reply is one
// instruction byte.
package ws

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"treasurehunt.ai/internal/protocol"
	"treasurehunt.ai/internal/transport"
)

const (
	writeWait = 5 * time.Second
	readWait  = 60 * time.Second
)

func Dial(ctx context.Context, url string, header http.Header) (*websocket.Conn, error) {
	d := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
		ReadBufferSize:   4 * 1024,
		WriteBufferSize:  4 * 1024,
	}
	conn, _, err := d.DialContext(ctx, url, header)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return conn, nil
}

// Run answers views on conn until the engine closes the socket normally,
// the agent fails or ctx is cancelled.
func Run(ctx context.Context, conn *websocket.Conn, agent transport.Stepper, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
			time.Now().Add(time.Second))
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

func serve(conn *websocket.Conn, agent transport.Stepper) (int, error) {
	n := 0
	for {
		_ = conn.SetReadDeadline(time.Now().Add(readWait))
		mt, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return n, nil
			}
			return n, fmt.Errorf("read view: %w", err)
		}
		if mt != websocket.BinaryMessage && mt != websocket.TextMessage {
			continue
		}
		v, err := protocol.DecodeView(msg)
		if err != nil {
			return n, err
		}
		in, err := agent.Step(v)
		if err != nil {
			return n, err
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.BinaryMessage, []byte{byte(in)}); err != nil {
			return n, fmt.Errorf("write instruction: %w", err)
		}
		n++
	}
}
