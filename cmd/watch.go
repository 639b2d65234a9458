package main

import (
	"github.com/spf13/cobra"

	"github.com/olusolaa/infra-board/internal/app"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the board whenever the store changes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.BuildApplicationFromViper(cmd.Context(), v)
		if err != nil {
			printError("Application initialization failed", err)
			return err
		}
		if err := application.Watch(cmd.Context()); err != nil {
			printError("Watch failed", err)
			return err
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().Duration("debounce", 0, "Delay after the last change before rebuilding (default 500ms)")
	cobra.CheckErr(v.BindPFlag("watch.debounce", watchCmd.Flags().Lookup("debounce")))
}
