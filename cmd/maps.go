package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cs-replay/internal/report"
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List known map calibrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := boundsTable()
		if err != nil {
			return err
		}
		report.PrintMapTable(os.Stdout, table)
		return nil
	},
}
