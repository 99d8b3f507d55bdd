package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/playmatatu/puttputt/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestVersion(t *testing.T) {
	assert.Equal(t, int64(2), LatestVersion())
}

func TestEveryUpHasADown(t *testing.T) {
	entries, err := fs.ReadDir(files, "sql")
	require.NoError(t, err)

	names := map[string]bool{}
	for _, e := range entries {
		names[e.Name()] = true
	}
	for name := range names {
		if strings.HasSuffix(name, ".up.sql") {
			assert.True(t, names[strings.TrimSuffix(name, ".up.sql")+".down.sql"], name)
		}
	}
}

func TestRunRejectsEmptyURL(t *testing.T) {
	assert.Error(t, Run("", logger.Nop()))
}
