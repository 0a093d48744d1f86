package tuning

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"treasurehunt.ai/internal/protocol"
	"treasurehunt.ai/internal/sim/grid"
)

//go:embed agent.schema.json
var schemaJSON string

var schema = jsonschema.MustCompileString("agent.schema.json", schemaJSON)

// Tuning holds the planner's knobs. Zero values are replaced by defaults.
type Tuning struct {
	MaxExtent      int    `yaml:"max_extent"`
	RevealRadius   int    `yaml:"reveal_radius"`
	TreeReserve    int    `yaml:"tree_reserve"`
	TreePlenty     int    `yaml:"tree_plenty"`
	TreeScanRadius int    `yaml:"tree_scan_radius"`
	IdleAction     string `yaml:"idle_action"`

	Trace Trace `yaml:"trace"`
}

type Trace struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

func Defaults() Tuning {
	t := Tuning{}
	t.Normalize()
	return t
}

func (t *Tuning) Normalize() {
	if t.MaxExtent <= 0 {
		t.MaxExtent = grid.MaxExtent
	}
	if t.RevealRadius <= 0 {
		t.RevealRadius = 2
	}
	if t.TreeReserve <= 0 {
		t.TreeReserve = 2
	}
	if t.TreePlenty <= 0 {
		t.TreePlenty = 10
	}
	if t.TreeScanRadius <= 0 {
		t.TreeScanRadius = 10
	}
	if t.IdleAction == "" {
		t.IdleAction = string(protocol.TurnLeft)
	}
	if t.Trace.Dir == "" {
		t.Trace.Dir = "./data/traces"
	}
}

func (t Tuning) Validate() error {
	if t.MaxExtent < protocol.ViewSize {
		return fmt.Errorf("max_extent must be >= %d", protocol.ViewSize)
	}
	if t.RevealRadius < 1 || t.RevealRadius > protocol.ViewRadius {
		return fmt.Errorf("reveal_radius must be in [1,%d]", protocol.ViewRadius)
	}
	if t.TreeReserve > t.TreePlenty {
		return fmt.Errorf("tree_reserve (%d) exceeds tree_plenty (%d)", t.TreeReserve, t.TreePlenty)
	}
	switch t.IdleAction {
	case string(protocol.TurnLeft), string(protocol.TurnRight):
	default:
		return fmt.Errorf("idle_action must be L or R, got %q", t.IdleAction)
	}
	return nil
}

// Idle is the instruction sent when no rule produces a plan.
func (t Tuning) Idle() protocol.Instruction {
	return protocol.Instruction(t.IdleAction[0])
}

func Load(path string) (Tuning, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, err
	}
	return Parse(raw)
}

// Parse checks raw against the embedded schema, then decodes, fills defaults
// and validates it.
func Parse(raw []byte) (Tuning, error) {
	var t Tuning
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return t, fmt.Errorf("agent.yaml: %w", err)
	}
	if doc != nil {
		// Round-trip through JSON so the validator sees plain JSON types.
		b, err := json.Marshal(doc)
		if err != nil {
			return t, fmt.Errorf("agent.yaml: %w", err)
		}
		var v any
		if err := json.Unmarshal(b, &v); err != nil {
			return t, fmt.Errorf("agent.yaml: %w", err)
		}
		if err := schema.Validate(v); err != nil {
			return t, fmt.Errorf("agent.yaml: %w", err)
		}
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("agent.yaml: %w", err)
	}
	t.Normalize()
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("agent.yaml: %w", err)
	}
	return t, nil
}
