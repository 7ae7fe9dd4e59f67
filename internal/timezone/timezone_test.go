package timezone

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommon(t *testing.T) {
	zones := Common()
	require.NotEmpty(t, zones)

	assert.True(t, sort.StringsAreSorted(zones), "zone list must be sorted")

	// every listed zone must load
	for _, z := range zones[:min(len(zones), 20)] {
		_, err := time.LoadLocation(z)
		assert.NoError(t, err, "zone %s should load", z)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(""))

	zones := Common()
	require.NotEmpty(t, zones)
	assert.True(t, Valid(zones[0]))

	assert.False(t, Valid("Atlantis/Lost_City"))
}
