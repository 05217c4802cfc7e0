package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"gtv/internal/config"
	"gtv/internal/errors"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize gtv configuration",
	Long:  "Creates a .gtv/ directory with default configuration in the current directory",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing .gtv directory")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(errors.InternalError, "determining current directory", err)
	}

	gtvDir := filepath.Join(cwd, ".gtv")
	if _, statErr := os.Stat(gtvDir); statErr == nil {
		if !initForce {
			// Already initialized counts as success.
			fmt.Println("gtv already initialized.")
			fmt.Printf("Configuration at: %s\n", filepath.Join(gtvDir, "config.json"))
			fmt.Println("\nRun 'gtv init --force' to reinitialize.")
			return nil
		}
		if removeErr := os.RemoveAll(gtvDir); removeErr != nil {
			return errors.Wrap(errors.InternalError, "removing existing .gtv directory", removeErr)
		}
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(cwd); err != nil {
		return errors.Wrap(errors.InternalError, "writing config file", err)
	}

	fmt.Println("gtv initialized.")
	fmt.Printf("Configuration at: %s\n", filepath.Join(gtvDir, "config.json"))
	return nil
}
