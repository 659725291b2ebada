// AngelaMos | 2026
// entity_test.go

package subscription_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firstclub/membership-api/internal/core"
	"github.com/firstclub/membership-api/internal/subscription"
)

func TestParseStatus(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"PENDING", "ACTIVE", "EXPIRED", "CANCELLED"} {
		status, err := subscription.ParseStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, subscription.Status(valid), status)
	}

	_, err := subscription.ParseStatus("active")
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = subscription.ParseStatus("SUSPENDED")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestStatus_Terminal(t *testing.T) {
	t.Parallel()

	assert.False(t, subscription.StatusPending.Terminal())
	assert.False(t, subscription.StatusActive.Terminal())
	assert.True(t, subscription.StatusExpired.Terminal())
	assert.True(t, subscription.StatusCancelled.Terminal())
}
