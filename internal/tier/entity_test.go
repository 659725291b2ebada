// AngelaMos | 2026
// entity_test.go

package tier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firstclub/membership-api/internal/core"
	"github.com/firstclub/membership-api/internal/tier"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"SILVER", "GOLD", "PLATINUM"} {
		level, err := tier.ParseLevel(valid)
		require.NoError(t, err)
		assert.Equal(t, tier.Level(valid), level)
	}

	_, err := tier.ParseLevel("gold")
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = tier.ParseLevel("BRONZE")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestLevel_Rank(t *testing.T) {
	t.Parallel()

	assert.Less(t, tier.LevelSilver.Rank(), tier.LevelGold.Rank())
	assert.Less(t, tier.LevelGold.Rank(), tier.LevelPlatinum.Rank())
}
