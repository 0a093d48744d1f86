// Package agent runs one perceive-plan-act cycle per view.
package agent

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"treasurehunt.ai/internal/persistence/snapshot"
	"treasurehunt.ai/internal/protocol"
	"treasurehunt.ai/internal/sim/planner"
	"treasurehunt.ai/internal/sim/tuning"
	"treasurehunt.ai/internal/sim/world"
)

// Decision is one trace record: what the agent believed and what it did.
type Decision struct {
	RunID     string          `json:"run_id"`
	Cycle     int             `json:"cycle"`
	Pos       [2]int          `json:"pos"`
	Facing    string          `json:"facing"`
	Action    string          `json:"action"`
	Rule      string          `json:"rule,omitempty"`
	Idle      bool            `json:"idle,omitempty"`
	Pending   int             `json:"pending"`
	Inventory world.Inventory `json:"inventory"`
	Known     int             `json:"known_tiles"`
}

type Tracer interface {
	WriteDecision(d Decision) error
}

type Config struct {
	Tuning tuning.Tuning
	Logger *zap.Logger
	Trace  Tracer
	// RunID tags trace records; a random one is generated when empty.
	RunID string
	// SnapshotDir receives a dump of the world model on desync. Empty
	// disables it.
	SnapshotDir string
}

type Agent struct {
	cfg Config
	log *zap.Logger
	st  *world.State
	pl  *planner.Planner
}

func New(cfg Config) *Agent {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.RunID == "" {
		cfg.RunID = uuid.NewString()
	}
	cfg.Tuning.Normalize()
	log := cfg.Logger.With(zap.String("run_id", cfg.RunID))
	st := world.NewState()
	return &Agent{
		cfg: cfg,
		log: log,
		st:  st,
		pl:  planner.New(st, cfg.Tuning, log.Named("planner")),
	}
}

func (a *Agent) RunID() string       { return a.cfg.RunID }
func (a *Agent) State() *world.State { return a.st }

// Step folds v into the model and returns the instruction to send. An error
// means the model no longer matches the game.
func (a *Agent) Step(v protocol.View) (protocol.Instruction, error) {
	a.st.ApplyView(v)
	rec := Decision{
		RunID:  a.cfg.RunID,
		Cycle:  a.st.Cycle,
		Pos:    [2]int{a.st.Pos.X, a.st.Pos.Y},
		Facing: a.st.Facing.String(),
	}

	d, err := a.pl.Next()
	if err != nil {
		a.log.Error("world model desync",
			zap.Int("cycle", a.st.Cycle),
			zap.Stringer("pos", a.st.Pos),
			zap.Stringer("instruction", d.Instruction),
			zap.Error(err),
		)
		a.dump(err)
		return 0, fmt.Errorf("cycle %d: %w", a.st.Cycle, err)
	}
	a.st.Cycle++

	if d.Idle {
		a.log.Info("idle", zap.Int("cycle", rec.Cycle), zap.Stringer("pos", a.st.Pos))
	}
	rec.Action = d.Instruction.String()
	rec.Rule = d.Rule
	rec.Idle = d.Idle
	rec.Pending = a.pl.Pending()
	rec.Inventory = a.st.Inv
	rec.Known = a.st.Map.Len()
	if a.cfg.Trace != nil {
		if err := a.cfg.Trace.WriteDecision(rec); err != nil {
			a.log.Warn("trace write failed", zap.Error(err))
		}
	}
	return d.Instruction, nil
}

func (a *Agent) dump(cause error) {
	if a.cfg.SnapshotDir == "" {
		return
	}
	path := filepath.Join(a.cfg.SnapshotDir, "desync-"+a.cfg.RunID+".snap.zst")
	if err := snapshot.WriteSnapshot(path, snapshot.FromState(a.cfg.RunID, cause.Error(), a.st)); err != nil {
		a.log.Warn("snapshot write failed", zap.Error(err))
		return
	}
	a.log.Info("world model saved", zap.String("path", path))
}
