package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"treasurehunt.ai/internal/agent"
	tracelog "treasurehunt.ai/internal/persistence/log"
	"treasurehunt.ai/internal/persistence/snapshot"
)

var (
	verbose  bool
	snapPath string
)

var rootCmd = &cobra.Command{
	Use:   "replay <decisions-*.jsonl.zst>...",
	Short: "Summarise agent decision traces",
	Args: func(cmd *cobra.Command, args []string) error {
		if snapPath == "" {
			return cobra.MinimumNArgs(1)(cmd, args)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if snapPath != "" {
			if err := printSnapshot(cmd.OutOrStdout(), snapPath); err != nil {
				return err
			}
		}
		for _, path := range args {
			ds, err := tracelog.ReadDecisions(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "== %s\n", path)
			summarize(cmd.OutOrStdout(), ds, verbose)
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print every cycle")
	rootCmd.Flags().StringVar(&snapPath, "snapshot", "", "print a desync-*.snap.zst world model")
}

type ruleCount struct {
	rule string
	n    int
}

func summarize(w io.Writer, ds []agent.Decision, verbose bool) {
	if len(ds) == 0 {
		fmt.Fprintln(w, "empty trace")
		return
	}
	counts := map[string]int{}
	idle := 0
	for _, d := range ds {
		if verbose {
			fmt.Fprintf(w, "%5d (%d,%d) %s %s %s\n", d.Cycle, d.Pos[0], d.Pos[1], d.Facing, d.Action, d.Rule)
		}
		if d.Idle {
			idle++
		}
		if d.Rule != "" {
			counts[d.Rule]++
		}
	}

	first, last := ds[0], ds[len(ds)-1]
	fmt.Fprintf(w, "run=%s cycles=%d idle=%d known=%d final_pos=(%d,%d)\n",
		first.RunID, len(ds), idle, last.Known, last.Pos[0], last.Pos[1])

	rules := make([]ruleCount, 0, len(counts))
	for r, n := range counts {
		rules = append(rules, ruleCount{r, n})
	}
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].n != rules[j].n {
			return rules[i].n > rules[j].n
		}
		return rules[i].rule < rules[j].rule
	})
	for _, rc := range rules {
		fmt.Fprintf(w, "  %-22s %d\n", rc.rule, rc.n)
	}
	fmt.Fprintf(w, "inventory: %s\n", inventory(last))
}

func inventory(d agent.Decision) string {
	inv := d.Inventory
	var held []string
	if inv.HoldKey {
		held = append(held, "key")
	}
	if inv.HoldAxe {
		held = append(held, "axe")
	}
	if inv.Dynamite > 0 {
		held = append(held, fmt.Sprintf("dynamite=%d", inv.Dynamite))
	}
	if inv.HoldRaft {
		held = append(held, "raft")
	}
	if inv.UsingRaft {
		held = append(held, "afloat")
	}
	if inv.HoldTreasure {
		held = append(held, "treasure")
	}
	if len(held) == 0 {
		return "empty"
	}
	return strings.Join(held, " ")
}

func printSnapshot(w io.Writer, path string) error {
	snap, err := snapshot.ReadSnapshot(path)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	m, err := snap.Map()
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", path, err)
	}
	fmt.Fprintf(w, "snapshot v%d run=%s cycle=%d pos=(%d,%d) facing=%s reason=%q\n",
		snap.Header.Version, snap.Header.RunID, snap.Header.Cycle, snap.Pos[0], snap.Pos[1], snap.Facing, snap.Header.Reason)
	fmt.Fprintf(w, "inventory: %s\n", inventory(agent.Decision{Inventory: snap.Inventory}))
	fmt.Fprint(w, m.String())
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
