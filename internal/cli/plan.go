package cli

import (
	"fmt"
	"go/types"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"dispatch-generator/internal/plan"
)

var planDump bool

var planCmd = &cobra.Command{
	Use:   "plan [packages...]",
	Short: "Print the resolved dispatch plans for tagged containers",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _, err := runGenerator(cmd, args)
		if err != nil {
			return err
		}

		printDiagnostics(cmd.ErrOrStderr(), &out.Diagnostics)

		for i := range out.Plans {
			printPlanResult(cmd.OutOrStdout(), &out.Plans[i])
		}

		return nil
	},
}

func init() {
	planCmd.Flags().BoolVar(&planDump, "dump", false, "dump the raw plan structures")
}

// printPlanResult renders one container's plans in dispatch order.
func printPlanResult(w io.Writer, res *plan.Result) {
	c := res.Container

	headerColor.Fprintf(w, "%s\n", c.Name)

	if res.Skipped() {
		dimColor.Fprintln(w, "  (skipped)")

		return
	}

	qual := types.RelativeTo(c.Pkg)

	for i := range res.Plans {
		p := &res.Plans[i]

		fmt.Fprintf(w, "  %s\n", p.Entry.Name)

		for _, e := range p.Specifics {
			var names []string
			for _, t := range e.Types {
				names = append(names, types.TypeString(t, qual))
			}

			fmt.Fprintf(w, "    %v -> %s\n", names, e.Method.Name)
		}

		if p.Fallback != nil {
			fmt.Fprintf(w, "    fallback -> %s\n", p.Fallback.Method.Name)
		} else {
			dimColor.Fprintln(w, "    no fallback: unmatched errors propagate")
		}
	}

	if planDump {
		dumper := spew.ConfigState{Indent: "  ", MaxDepth: 6}
		fmt.Fprint(w, dumper.Sdump(res.Plans))
	}
}
