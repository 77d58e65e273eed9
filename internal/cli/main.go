// Package cli wires the vertcut commands: process renders clips out of a
// source video, edit re-renders a clip from toggled word segments.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "vertcut",
		Short:        "Turn long-form video into vertical captioned clips",
		SilenceUsage: true,
	}
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.PersistentFlags().String("config", "", "TOML config file")
	root.PersistentFlags().String("out", "", "Output directory (overrides config)")
	root.PersistentFlags().String("options", "", "TOML effect options file")

	// Hidden tuning flag (internal)
	root.PersistentFlags().Int("timeout-minutes", 180, "Overall run timeout")
	_ = root.PersistentFlags().MarkHidden("timeout-minutes")

	root.AddCommand(newProcessCmd(), newEditCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
