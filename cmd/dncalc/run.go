package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dn-damage-calc/internal/calc"
)

// BuildResult holds the evaluation of one build file.
type BuildResult struct {
	File       string           `json:"file"`
	Class      calc.Class       `json:"class"`
	Skill      calc.SkillConfig `json:"skill"`
	Comparison calc.Comparison  `json:"comparison"`
}

// BatchOutput is the JSON-serializable result of a multi-file run.
type BatchOutput struct {
	Date    string        `json:"date"`
	Workers int           `json:"workers"`
	Results []BuildResult `json:"results"`
	TotalMs int64         `json:"totalMs"`
}

type options struct {
	skillPath string
	browser   bool
	jsonOut   bool
}

// evaluate loads and evaluates every file concurrently. Results keep the
// order of paths. The first failure cancels the rest.
func evaluate(ctx context.Context, paths []string, opts options, log *zap.SugaredLogger) ([]BuildResult, error) {
	var override *calc.SkillConfig
	if opts.skillPath != "" {
		s, err := calc.ReadSkillFile(opts.skillPath, opts.browser)
		if err != nil {
			return nil, err
		}
		override = &s
	}

	results := make([]BuildResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			snap, err := calc.ReadSnapshotFile(path, opts.browser)
			if err != nil {
				return err
			}
			if override != nil {
				snap.Skill = *override
			}
			results[i] = BuildResult{
				File:       path,
				Class:      snap.Build.Class,
				Skill:      snap.Skill,
				Comparison: calc.Compare(snap.Build, snap.Skill),
			}
			log.Debugw("evaluated", "file", path, "critical", results[i].Comparison.Current.Critical)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runSingle(w io.Writer, r BuildResult, jsonOut bool) error {
	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	_, err := fmt.Fprint(w, calc.FormatComparison(r.Comparison, r.Skill))
	return err
}

func runAll(w io.Writer, results []BuildResult, elapsed time.Duration, jsonOut bool) error {
	if jsonOut {
		out := BatchOutput{
			Date:    time.Now().UTC().Format(time.RFC3339),
			Workers: runtime.NumCPU(),
			Results: results,
			TotalMs: elapsed.Milliseconds(),
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	printTable(w, results)
	return nil
}

func printTable(w io.Writer, results []BuildResult) {
	fmt.Fprintf(w, "%-24s %-10s %19s %19s %8s\n", "Build", "Class", "Critical", "Compared", "Avg")
	fmt.Fprintf(w, "%-24s %-10s %19s %19s %8s\n", "------------------------", "----------", "-------------------", "-------------------", "--------")
	for _, r := range results {
		cur, cmp := r.Comparison.Current.Critical, r.Comparison.Comparison.Critical
		fmt.Fprintf(w, "%-24s %-10s %9d-%-9d %9d-%-9d %+7.1f%%\n",
			shorten(r.File, 24), r.Class, cur.Min, cur.Max, cmp.Min, cmp.Max, r.Comparison.Diff.Critical.AvgPct)
	}
}

// shorten keeps the last n-1 runes of s behind an ellipsis.
func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return "…" + string(r[len(r)-n+1:])
}
