package launcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	path, err := Resolve("go")
	if err != nil {
		t.Skip("go not on PATH")
	}
	assert.NotEmpty(t, path)

	_, err = Resolve("definitely-not-a-real-command-gbctl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLaunchRejectsEmptyCommand(t *testing.T) {
	err := Launch(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty command")
}

func TestLaunchRejectsUnknownCommand(t *testing.T) {
	err := Launch([]string{"definitely-not-a-real-command-gbctl"}, nil)
	require.Error(t, err)
}
