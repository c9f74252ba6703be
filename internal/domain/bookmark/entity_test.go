package bookmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsParse(t *testing.T) {
	bms := Defaults()
	require.Len(t, bms, 6)

	first, err := bms[0].Filters()
	require.NoError(t, err)
	assert.True(t, first.OnlyRemote)
	assert.Equal(t, []string{"reactjs", "typescript"}, first.Tags)

	linkedin, err := bms[3].Filters()
	require.NoError(t, err)
	assert.False(t, linkedin.OnlyRemote)
	assert.Equal(t, []string{"LinkedIn"}, linkedin.Providers)
	assert.Equal(t, []string{"United States"}, linkedin.Locations)
}

func TestDefaultsHaveStableIDs(t *testing.T) {
	a, b := Defaults(), Defaults()
	seen := map[string]bool{}
	for i := range a {
		assert.Equal(t, a[i].ID, b[i].ID)
		assert.False(t, seen[a[i].ID.String()])
		seen[a[i].ID.String()] = true
	}
}
