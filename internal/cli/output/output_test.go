package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{name: "Table", input: "table", want: FormatTable},
		{name: "EmptyDefaultsToTable", input: "", want: FormatTable},
		{name: "JSON", input: "json", want: FormatJSON},
		{name: "MixedCase", input: "JSON", want: FormatJSON},
		{name: "Whitespace", input: " table ", want: FormatTable},
		{name: "Invalid", input: "yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrintTable(t *testing.T) {
	data := NewTableData("Table", "Rows")
	data.AddRow("users", "3")
	data.AddRow("queues", "1")

	var buf bytes.Buffer
	require.NoError(t, PrintTable(&buf, data))

	out := buf.String()
	assert.Contains(t, out, "TABLE")
	assert.Contains(t, out, "users")
	assert.Contains(t, out, "queues")
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintJSON(&buf, map[string]int{"users": 3}))

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 3, decoded["users"])
}

func TestPrintRejectsNonRenderer(t *testing.T) {
	var buf bytes.Buffer
	err := Print(&buf, FormatTable, 42)
	require.Error(t, err)
}
