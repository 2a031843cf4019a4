package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jobsh/internal/config"
	"jobsh/internal/shell"
)

var (
	cfgPath  string
	noPrompt bool
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "jobsh",
	Short: "A small shell with POSIX-style job control",
	Long: `jobsh runs commands in the foreground or background, tracks them in a
job table, and supports stopping and resuming them with the jobs, bg and fg
builtins.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		if noPrompt {
			cfg.Prompt = ""
		}
		if verbose {
			cfg.Verbose = true
		}

		s, err := shell.New(cfg)
		if err != nil {
			return fmt.Errorf("error initializing shell: %w", err)
		}
		return s.Run()
	},
}

func init() {
	rootCmd.Flags().StringVar(&cfgPath, "config", "config.yml", "config file path")
	rootCmd.Flags().BoolVarP(&noPrompt, "no-prompt", "p", false, "do not print a prompt")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log job transitions to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "jobsh: %v\n", err)
		os.Exit(1)
	}
}
