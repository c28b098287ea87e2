package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/marckit/internal/testutil"
)

func TestDumpCommand(t *testing.T) {
	damaged := testutil.Patch(sampleISO, 12, "00048")

	tests := []struct {
		name           string
		content        string
		args           []string
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:        "plain",
			content:     sampleISO,
			wantContain: []string{"00069nam  2200049   4500\n", "001 abc\n", "245 10 $aTitle $bSub\n"},
		},
		{
			name:        "debug comments",
			content:     sampleISO,
			args:        []string{"--debug", "1"},
			wantContain: []string{"(Record length            69)\n", "(controlfield: 61 62 63)\n"},
		},
		{
			name:        "damaged record",
			content:     damaged,
			wantContain: []string{"(Base address not at end of directory, base 48, end 49)\n"},
		},
		{
			name:           "xml input",
			content:        sampleXML,
			args:           []string{"--xml"},
			wantContain:    []string{"001 def\n"},
			wantNotContain: []string{"<record"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := testutil.WriteFile(t, "input", tt.content)
			out, err := runCommand(t, append([]string{"dump", input}, tt.args...)...)
			require.NoError(t, err)
			for _, want := range tt.wantContain {
				require.Contains(t, out, want)
			}
			for _, dont := range tt.wantNotContain {
				require.NotContains(t, out, dont)
			}
		})
	}
}

func TestDumpCommand_IgnoresConfigFormat(t *testing.T) {
	input := testutil.WriteFile(t, "records.mrc", sampleISO)
	config := testutil.WriteFile(t, "marcdump.yaml", "format: marcxml\n")

	out, err := runCommand(t, "dump", input, "--config", config)
	require.NoError(t, err)
	require.Contains(t, out, "001 abc\n")
	require.NotContains(t, out, "<record")
}
