package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionOf(t *testing.T) {
	assert.Equal(t, "001", versionOf("001_init.sql"))
	assert.Equal(t, "002", versionOf("sql/002_seed_settings.sql"))
	assert.Equal(t, "003", versionOf("003.sql"))
}

func TestPendingIsSortedAndEmbedded(t *testing.T) {
	m := NewMigrator(nil)
	files, err := m.Pending()
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "001_init.sql", files[0])
	assert.IsNonDecreasing(t, files)
}
