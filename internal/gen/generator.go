package gen

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"dispatch-generator/internal/analyze"
	"dispatch-generator/internal/config"
	"dispatch-generator/internal/diagnostic"
	"dispatch-generator/internal/plan"
)

// Generator drives the full pipeline: discover containers, resolve dispatch
// plans, render generated files. Containers are independent, so they are
// processed concurrently; only the aggregation of their outputs is serial.
type Generator struct {
	cfg      config.Config
	provider analyze.Provider
}

// New creates a Generator over the given symbol provider.
func New(cfg config.Config, provider analyze.Provider) *Generator {
	return &Generator{cfg: cfg, provider: provider}
}

// Output is the aggregated result of one generation run.
type Output struct {
	// Files are the rendered dispatch files, in container order.
	Files []GeneratedFile
	// Plans are the per-container resolution results, in container order.
	Plans []plan.Result
	// Diagnostics aggregates every container's diagnostics.
	Diagnostics diagnostic.Diagnostics
}

// Run discovers containers matching the patterns and generates dispatch
// files for each. A container that is skipped or fails structurally
// contributes diagnostics but never aborts its siblings; only infrastructure
// failures (package loading, template execution) return an error.
func (g *Generator) Run(ctx context.Context, patterns ...string) (*Output, error) {
	containers, err := g.provider.Containers(patterns...)
	if err != nil {
		return nil, err
	}

	jobs := g.cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	type containerOutput struct {
		result plan.Result
		file   *GeneratedFile
	}

	outputs := make([]containerOutput, len(containers))

	grp, _ := errgroup.WithContext(ctx)
	grp.SetLimit(jobs)

	for i, c := range containers {
		i, c := i, c
		grp.Go(func() error {
			res := plan.Resolve(c, plan.Config{
				OverlapInfo: g.cfg.Diagnostics.OverlapInfo,
			})

			out := containerOutput{result: res}

			if !res.Skipped() && len(res.Plans) > 0 {
				file, err := renderContainer(c, res.Plans, g.cfg)
				if err != nil {
					return fmt.Errorf("rendering %s: %w", c.Name, err)
				}

				out.file = file
			}

			outputs[i] = out

			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}

	// Containers arrive sorted from the provider, so aggregation in slice
	// order keeps the output deterministic.
	final := &Output{}
	for _, out := range outputs {
		final.Plans = append(final.Plans, out.result)
		final.Diagnostics.Merge(out.result.Diagnostics)

		if out.file != nil {
			final.Files = append(final.Files, *out.file)
		}
	}

	return final, nil
}

// Failed reports whether the run should exit nonzero: any error diagnostic,
// or any warning when strict mode is on.
func (o *Output) Failed(strict bool) bool {
	if o.Diagnostics.HasErrors() {
		return true
	}

	return strict && len(o.Diagnostics.Warnings) > 0
}
