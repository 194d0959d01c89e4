package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var validateCmd = &cobra.Command{
	Use:   "validate <scene>",
	Short: "Load a scene and report what it contains",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		actors, acts, closeFn, err := loadScene(cfg, args[0], zap.NewNop())
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		defer closeFn()

		printSection(args[0])
		printScene(actors, acts)
		printOK("scene is valid")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
