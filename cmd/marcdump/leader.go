package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/marckit/internal/format"
	"github.com/joshuapare/marckit/internal/mmfile"
	"github.com/joshuapare/marckit/pkg/marc"
)

var leaderJSON bool

func init() {
	cmd := newLeaderCmd()
	cmd.Flags().BoolVar(&leaderJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(cmd)
}

func newLeaderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leader <file>",
		Short: "Show the decoded leader of each ISO 2709 record",
		Long: `The leader command decodes the structural numbers of each record leader
and reports fields that had to be replaced by defaults.

Example:
  marcdump leader records.mrc
  marcdump leader records.mrc --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLeader(args[0])
		},
	}
	return cmd
}

// leaderInfo is one record's leader as printed by the leader command.
type leaderInfo struct {
	Record       int      `json:"record"`
	Offset       int      `json:"offset"`
	Leader       string   `json:"leader"`
	Length       int      `json:"length"`
	Indicator    int      `json:"indicator_length"`
	Identifier   int      `json:"identifier_length"`
	BaseAddress  int      `json:"base_address"`
	FieldLength  int      `json:"length_of_field_length"`
	StartLength  int      `json:"length_of_starting_position"`
	ImplLength   int      `json:"length_of_implementation"`
	Replacements []string `json:"replacements,omitempty"`
}

func runLeader(path string) error {
	f, err := mmfile.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var infos []leaderInfo
	data := f.Bytes()
	for off := 0; ; {
		adv, rec, err := marc.ScanRecords(data[off:], true)
		if err != nil {
			return fmt.Errorf("%s: offset %d: %w", path, off, err)
		}
		if rec == nil {
			break
		}
		var raw [format.LeaderSize]byte
		copy(raw[:], rec)
		l, fixups := format.NormalizeLeader(raw[:])
		info := leaderInfo{
			Record:      len(infos) + 1,
			Offset:      off + adv - len(rec),
			Leader:      string(rec[:format.LeaderSize]),
			Length:      len(rec),
			Indicator:   l.IndicatorLength,
			Identifier:  l.IdentifierLength,
			BaseAddress: l.BaseAddress,
			FieldLength: l.LengthOfFieldLength,
			StartLength: l.LengthOfStartingPosition,
			ImplLength:  l.LengthOfImplementation,
		}
		for _, fx := range fixups {
			info.Replacements = append(info.Replacements, fx.Message)
		}
		infos = append(infos, info)
		off += adv
	}

	if leaderJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(infos)
	}
	for _, info := range infos {
		fmt.Printf("Record %d at offset %d\n", info.Record, info.Offset)
		rows := []struct {
			label string
			value any
		}{
			{"Leader", info.Leader},
			{"Record length", info.Length},
			{"Indicator length", info.Indicator},
			{"Identifier length", info.Identifier},
			{"Base address", info.BaseAddress},
			{"Length data entry", info.FieldLength},
			{"Length starting", info.StartLength},
			{"Length implementation", info.ImplLength},
		}
		for _, row := range rows {
			fmt.Printf("  %-23s%v\n", row.label+":", row.value)
		}
		for _, r := range info.Replacements {
			fmt.Printf("  ! %s\n", r)
		}
	}
	return nil
}
