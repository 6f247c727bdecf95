package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYesNo(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
		wantErr    bool
	}{
		{name: "LowercaseYes", input: "y", want: true},
		{name: "UppercaseYes", input: "Y", want: true},
		{name: "FullYes", input: "yes", want: true},
		{name: "LowercaseNo", input: "n", want: false},
		{name: "UppercaseNo", input: "N", want: false},
		{name: "FullNo", input: "no", want: false},
		{name: "EmptyTakesDefaultNo", input: "", defaultYes: false, want: false},
		{name: "EmptyTakesDefaultYes", input: "", defaultYes: true, want: true},
		{name: "WhitespaceTakesDefault", input: "   ", defaultYes: false, want: false},
		{name: "TrimmedToken", input: " y ", want: true},
		{name: "GarbageRejected", input: "maybe", wantErr: true},
		{name: "NumericRejected", input: "1", wantErr: true},
		{name: "TrueRejected", input: "true", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseYesNo(tt.input, tt.defaultYes)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfirmWithForce(t *testing.T) {
	// force=true must short-circuit without touching the terminal
	ok, err := ConfirmWithForce("destroy everything?", true)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsAborted(t *testing.T) {
	assert.True(t, IsAborted(ErrAborted))
	assert.False(t, IsAborted(ErrInvalidToken))
	assert.False(t, IsAborted(nil))
}
