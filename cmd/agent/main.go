package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"treasurehunt.ai/internal/agent"
	tracelog "treasurehunt.ai/internal/persistence/log"
	"treasurehunt.ai/internal/sim/tuning"
	"treasurehunt.ai/internal/transport/tcp"
	"treasurehunt.ai/internal/transport/ws"
)

var (
	port       int
	host       string
	wsURL      string
	configPath string
	traceDir   string
	debug      bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "agent",
	Short: "Play the treasure hunt against a game engine",
	Long: `agent connects to a treasure hunt engine, reads one 5x5 view per cycle
and answers with a single instruction until the game ends.

Connect over raw TCP with --port (and optionally --host), or over a websocket
with --ws.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if debug {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runAgent,
}

func init() {
	rootCmd.Flags().IntVarP(&port, "port", "p", 0, "engine TCP port")
	rootCmd.Flags().StringVar(&host, "host", "localhost", "engine host")
	rootCmd.Flags().StringVar(&wsURL, "ws", "", "engine websocket url (instead of --port)")
	rootCmd.Flags().StringVar(&configPath, "config", "", "agent.yaml tuning file (optional)")
	rootCmd.Flags().StringVar(&traceDir, "trace", "", "write a decision trace to this directory")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "log planner decisions")
}

func runAgent(cmd *cobra.Command, args []string) error {
	if port == 0 && wsURL == "" {
		return fmt.Errorf("one of --port or --ws is required")
	}
	if port != 0 && wsURL != "" {
		return fmt.Errorf("--port and --ws are mutually exclusive")
	}

	tune := tuning.Defaults()
	if configPath != "" {
		var err error
		if tune, err = tuning.Load(configPath); err != nil {
			return err
		}
	}
	if traceDir != "" {
		tune.Trace.Enabled = true
		tune.Trace.Dir = traceDir
	}

	runID := uuid.NewString()
	cfg := agent.Config{Tuning: tune, Logger: logger, RunID: runID}
	if tune.Trace.Enabled {
		dl := tracelog.NewDecisionLogger(tune.Trace.Dir, runID)
		defer func() {
			if err := dl.Close(); err != nil {
				logger.Warn("close trace", zap.Error(err))
			}
		}()
		cfg.Trace = dl
		cfg.SnapshotDir = tune.Trace.Dir
		logger.Info("tracing decisions", zap.String("path", dl.Path()))
	}
	a := agent.New(cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	if wsURL != "" {
		err = playWS(ctx, a)
	} else {
		err = playTCP(ctx, a)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func playTCP(ctx context.Context, a *agent.Agent) error {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := tcp.Dial(ctx, addr)
	if err != nil {
		return err
	}
	logger.Info("connected", zap.String("addr", addr), zap.String("run_id", a.RunID()))
	return tcp.Run(ctx, conn, a, logger)
}

func playWS(ctx context.Context, a *agent.Agent) error {
	conn, err := ws.Dial(ctx, wsURL, nil)
	if err != nil {
		return err
	}
	logger.Info("connected", zap.String("url", wsURL), zap.String("run_id", a.RunID()))
	return ws.Run(ctx, conn, a, logger)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
