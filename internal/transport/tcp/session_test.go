package tcp

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"treasurehunt.ai/internal/agent"
	"treasurehunt.ai/internal/protocol"
	"treasurehunt.ai/internal/sim/tuning"
	"treasurehunt.ai/internal/sim/worldtest"
)

// engine plays g over conn the way the game server does, hanging up when
// the game ends.
func engine(conn net.Conn, g *worldtest.Game, maxSteps int) error {
	defer conn.Close()
	in := make([]byte, 1)
	for i := 0; i < maxSteps && !g.Over(); i++ {
		if _, err := conn.Write(g.View().Encode()); err != nil {
			return err
		}
		if _, err := conn.Read(in); err != nil {
			return err
		}
		if err := g.Act(protocol.Instruction(in[0])); err != nil {
			return err
		}
	}
	return nil
}

func TestRun_PlaysUntilHangup(t *testing.T) {
	defer goleak.VerifyNone(t)

	g, err := worldtest.NewGame(
		".....",
		". $ .",
		".   .",
		". ^ .",
		".....",
	)
	require.NoError(t, err)

	server, client := net.Pipe()
	done := make(chan error, 1)
	go func() { done <- engine(server, g, 100) }()

	a := agent.New(agent.Config{Tuning: tuning.Defaults()})
	require.NoError(t, Run(context.Background(), client, a, nil))
	require.NoError(t, <-done)
	require.True(t, g.Won)
}

func TestRun_CancelUnblocksRead(t *testing.T) {
	defer goleak.VerifyNone(t)

	server, client := net.Pipe()
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- Run(ctx, client, agent.New(agent.Config{}), nil) }()

	cancel()
	select {
	case err := <-errc:
		require.True(t, errors.Is(err, context.Canceled), "err=%v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

type failing struct{}

func (failing) Step(protocol.View) (protocol.Instruction, error) {
	return 0, errors.New("boom")
}

func TestRun_AgentErrorEndsSession(t *testing.T) {
	defer goleak.VerifyNone(t)

	g, err := worldtest.NewGame("^")
	require.NoError(t, err)
	server, client := net.Pipe()
	go func() { _ = engine(server, g, 1) }()

	err = Run(context.Background(), client, failing{}, nil)
	require.EqualError(t, err, "boom")
}

func TestRun_TruncatedFrame(t *testing.T) {
	defer goleak.VerifyNone(t)

	server, client := net.Pipe()
	go func() {
		_, _ = server.Write([]byte("short"))
		_ = server.Close()
	}()
	err := Run(context.Background(), client, failing{}, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "read view")
}
