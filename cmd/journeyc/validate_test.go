package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewValidateCommandRunsCleanlyOnAWellFormedJourney(t *testing.T) {
	dir := t.TempDir()
	journeyPath := filepath.Join(dir, "login.md")
	require.NoError(t, os.WriteFile(journeyPath, []byte(sampleJourney), 0o644))

	cmd := newValidateCommand(&RootOptions{Format: "text"})
	cmd.SetArgs([]string{journeyPath})
	require.NoError(t, cmd.Execute())
}
