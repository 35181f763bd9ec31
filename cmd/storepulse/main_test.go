package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectAppIDs_FromFlags(t *testing.T) {
	t.Parallel()

	ids, err := collectAppIDs([]string{"com.a", " com.b ", ""}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"com.a", "com.b"}, ids)
}

func TestCollectAppIDs_FromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "apps.txt")
	require.NoError(t, os.WriteFile(path, []byte("com.x\n\n  com.y  \n"), 0o644))

	ids, err := collectAppIDs([]string{"com.a"}, path)
	require.NoError(t, err)
	assert.Equal(t, []string{"com.a", "com.x", "com.y"}, ids)
}

func TestCollectAppIDs_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := collectAppIDs(nil, "/nonexistent/apps.txt")
	assert.Error(t, err)
}

func TestCollectAppIDs_Empty(t *testing.T) {
	t.Parallel()

	_, err := collectAppIDs(nil, "")
	assert.Error(t, err)
}
