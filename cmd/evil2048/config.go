package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/evil2048/internal/config"
)

var (
	flagConfigInit  bool
	flagConfigForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or install the default config",
	Long: `Print the default configuration YAML, or write it to the user
config file (~/.evil2048/configs/evil2048.yaml) with --init.

Examples:
  evil2048 config > my.yaml
  evil2048 config --init
  evil2048 config --init --force`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigInit, "init", false, "Write the default config to the user config file")
	configCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing config file")
}

func runConfig(cmd *cobra.Command, args []string) {
	if !flagConfigInit {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	path := config.UserPath()
	if path == "" {
		fmt.Fprintln(os.Stderr, "Error: cannot determine home directory")
		os.Exit(1)
	}
	if err := config.WriteDefault(path, flagConfigForce); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}
