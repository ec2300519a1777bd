// Package cli implements the dispatch-generator command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"dispatch-generator/internal/analyze"
	"dispatch-generator/internal/config"
	"dispatch-generator/internal/gen"
)

var (
	// Global flags
	cfgPath      string
	outputSuffix string
	jobs         int
	strict       bool
)

// rootCmd is the root command for dispatch-generator.
var rootCmd = &cobra.Command{
	Use:     "dispatch-generator",
	Version: "dev",
	Short:   "Static error-dispatch code generator for tagged Go types",
	Long: `dispatch-generator inspects types whose methods carry dispatchgen directives
(entry point, specific handler, fallback handler) and synthesizes each entry
point's dispatch body: a sequential, declaration-ordered type switch over the
handlers' error type sets, written to a sibling generated file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultFileName, "path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&outputSuffix, "output-suffix", "", "override the generated file name suffix")
	rootCmd.PersistentFlags().IntVar(&jobs, "jobs", 0, "max containers processed concurrently (0 = one per CPU)")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "treat warnings as failures")

	rootCmd.AddCommand(genCmd, checkCmd, planCmd)
}

// SetVersion overrides the build version shown by --version.
func SetVersion(v string) {
	if v == "" {
		return
	}

	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads the YAML config and applies flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return cfg, err
	}

	if outputSuffix != "" {
		cfg.Output.Suffix = outputSuffix
	}

	if jobs > 0 {
		cfg.Jobs = jobs
	}

	if strict {
		cfg.Strict = true
	}

	return cfg, nil
}

// runGenerator runs the full pipeline over the argument patterns
// (defaulting to ./...) and returns the aggregated output.
func runGenerator(cmd *cobra.Command, args []string) (*gen.Output, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, err
	}

	patterns := args
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	loader := analyze.NewLoader(cfg.Output.BuildTag)

	out, err := gen.New(cfg, loader).Run(cmd.Context(), patterns...)

	return out, cfg, err
}
