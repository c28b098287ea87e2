package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/marckit/pkg/marc"
)

var dumpXML bool

func init() {
	cmd := newDumpCmd()
	cmd.Flags().BoolVarP(&dumpXML, "xml", "x", false, "Input is MARCXML")
	addRecordFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file|->",
		Short: "Human-readable dump of records",
		Long: `The dump command prints every record one field per line: the leader,
control fields as "TAG data", data fields as "TAG INDICATORS $aValue ..."
and diagnostics in parentheses.

Example:
  marcdump dump records.mrc
  marcdump dump records.mrc --debug 1 -n 1
  marcdump dump records.xml --xml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyRecordFlags(cmd)
			cfg.Format = marc.ModeLine.String()
			if dumpXML {
				cfg.Input = "xml"
			}
			return runConvert(args[0], "", 1)
		},
	}
	return cmd
}
