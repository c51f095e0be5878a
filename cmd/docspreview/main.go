package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"docspreview/internal/compiler"
	"docspreview/internal/config"
	"docspreview/internal/preview"

	"github.com/spf13/cobra"
)

const usageMessage = "Must pass input json and output dir"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	code := execute(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}

// execute runs the root command and returns the process exit status.
// Missing arguments exit 0; every reported failure exits 1.
func execute(ctx context.Context, args []string, stdout io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stdout)
	if err := cmd.ExecuteContext(ctx); err != nil {
		handleError(stdout, err)
		return 1
	}
	return 0
}

// handleError is the single reporting path for failures.
func handleError(w io.Writer, err error) {
	fmt.Fprintln(w, err)
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   "docspreview <docs.json> <output-dir>",
		Short: "Build the Elm docs preview app and write an index.html embedding the docs JSON",
		Args:  cobra.ArbitraryArgs,
		// Flags other than --debug and --config are ignored, not rejected.
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		// Errors are printed by execute, usage only on request.
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := parseArguments(args, debug)
			if err := params.Validate(); err != nil {
				// Missing arguments are reported but are not a failure.
				fmt.Fprintln(cmd.OutOrStdout(), usageMessage)
				return nil
			}
			return run(cmd, configPath, params)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the docspreview config file (YAML)")
	cmd.Flags().BoolVar(&debug, "debug", false, "Ask the compiler for a debug build")
	return cmd
}

// parseArguments maps positionals to the input file and output directory.
// Extra positionals are ignored.
func parseArguments(args []string, debug bool) preview.Params {
	p := preview.Params{Debug: debug}
	if len(args) > 0 {
		p.DocsInput = args[0]
	}
	if len(args) > 1 {
		p.DocsOutput = args[1]
	}
	return p
}

func run(cmd *cobra.Command, configPath string, params preview.Params) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	c, err := compiler.New(compiler.Options{
		Binary:  cfg.Compiler.Binary,
		Entry:   cfg.Compiler.Entry,
		Dir:     cfg.Compiler.Dir,
		Yes:     cfg.Compiler.Yes,
		Timeout: cfg.Compiler.Timeout,
	})
	if err != nil {
		return fmt.Errorf("failed to set up compiler: %w", err)
	}

	runner := preview.NewRunner(c, cmd.OutOrStdout())
	report, err := runner.Run(cmd.Context(), params)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✨ Docs preview ready: %s\n", report.IndexPath)
	return nil
}
