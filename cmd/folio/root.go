package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillback/folio"
)

var (
	verbose  bool
	rootPath string
)

// exit is swapped out in tests so command failures can be observed
// in-process instead of killing the test binary.
var exit = os.Exit

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "A read-only content store for front-matter blogs and pages",
	Long: `Folio loads a directory of front-matter-delimited documents (posts and
pages), validates every one, and answers queries over the result.
It is the content half of a static site; rendering belongs elsewhere.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&rootPath, "root", "", "Content root (default: discovered from the working directory)")
}

// contentRoot resolves the content root from the --root flag, falling back
// to upward discovery from the working directory.
func contentRoot() (string, error) {
	if rootPath != "" {
		return rootPath, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	root, err := folio.FindRoot(wd)
	if err != nil {
		// No indicator above us; treat the working directory as the root.
		return wd, nil
	}
	return root, nil
}

// loadStore resolves the root and loads the store, for commands that query
// loaded content.
func loadStore(ctx context.Context) (*folio.Store, error) {
	root, err := contentRoot()
	if err != nil {
		return nil, err
	}

	return folio.Load(ctx, root, folio.WithLogger(slog.Default()))
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	exit(1)
}
