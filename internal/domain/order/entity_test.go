// internal/domain/order/entity_test.go
package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"pending", "processing", "shipped", "delivered", "canceled"} {
		status, err := ParseStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, Status(raw), status)
	}
}

func TestParseStatusRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"", "Pending", "SHIPPED", "refunded", "in-transit"} {
		_, err := ParseStatus(raw)
		assert.ErrorIs(t, err, ErrInvalidStatus, "status %q must be rejected", raw)
	}
}
