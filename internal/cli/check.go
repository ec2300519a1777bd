package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [packages...]",
	Short: "Analyze tagged containers and report diagnostics without writing files",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, cfg, err := runGenerator(cmd, args)
		if err != nil {
			return err
		}

		printDiagnostics(cmd.ErrOrStderr(), &out.Diagnostics)

		if out.Failed(cfg.Strict) {
			return errors.New("check failed")
		}

		skipped := 0
		for i := range out.Plans {
			if out.Plans[i].Skipped() {
				skipped++
			}
		}

		printSummary(cmd.OutOrStdout(), "analyzed", len(out.Files), skipped)

		return nil
	},
}
