package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"dispatch-generator/internal/gen"
)

var genCmd = &cobra.Command{
	Use:   "gen [packages...]",
	Short: "Generate dispatch files for tagged containers",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, cfg, err := runGenerator(cmd, args)
		if err != nil {
			return err
		}

		printDiagnostics(cmd.ErrOrStderr(), &out.Diagnostics)

		// Failures are container-scoped: healthy siblings still get their
		// files before the nonzero exit.
		if err := gen.WriteFiles(out.Files); err != nil {
			return err
		}

		skipped := 0
		for i := range out.Plans {
			if out.Plans[i].Skipped() {
				skipped++
			}
		}

		printSummary(cmd.OutOrStdout(), "generated", len(out.Files), skipped)

		if out.Failed(cfg.Strict) {
			return errors.New("generation failed")
		}

		return nil
	},
}
