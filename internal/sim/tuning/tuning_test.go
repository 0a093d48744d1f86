package tuning

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"treasurehunt.ai/internal/protocol"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	if d.MaxExtent != 80 || d.RevealRadius != 2 || d.TreeReserve != 2 || d.TreePlenty != 10 {
		t.Fatalf("unexpected defaults: %+v", d)
	}
	if d.Idle() != protocol.TurnLeft {
		t.Fatalf("idle=%v want L", d.Idle())
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestParse_OverridesAndDefaults(t *testing.T) {
	got, err := Parse([]byte("tree_plenty: 4\nidle_action: R\ntrace:\n  enabled: true\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.TreePlenty != 4 || got.Idle() != protocol.TurnRight || !got.Trace.Enabled {
		t.Fatalf("overrides not applied: %+v", got)
	}
	if got.MaxExtent != 80 || got.Trace.Dir == "" {
		t.Fatalf("defaults not filled: %+v", got)
	}
}

func TestParse_Empty(t *testing.T) {
	got, err := Parse(nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != Defaults() {
		t.Fatalf("empty config=%+v want defaults", got)
	}
}

func TestParse_RejectsBadDocuments(t *testing.T) {
	cases := map[string]string{
		"unknown key":    "tick_rate_hz: 5\n",
		"bad idle":       "idle_action: F\n",
		"wrong type":     "max_extent: wide\n",
		"reserve>plenty": "tree_reserve: 6\ntree_plenty: 3\n",
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Fatalf("%s: expected error", name)
		} else if !strings.Contains(err.Error(), "agent.yaml") {
			t.Fatalf("%s: error not prefixed: %v", name, err)
		}
	}
}

func TestLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "agent.yaml")
	if err := os.WriteFile(p, []byte("reveal_radius: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.RevealRadius != 1 {
		t.Fatalf("reveal_radius=%d want 1", got.RevealRadius)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoad_ShippedConfigMatchesDefaults(t *testing.T) {
	got, err := Load(filepath.Join("..", "..", "..", "configs", "agent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != Defaults() {
		t.Fatalf("configs/agent.yaml drifted from defaults: got %+v want %+v", got, Defaults())
	}
}
