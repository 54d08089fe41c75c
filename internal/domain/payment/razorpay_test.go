// internal/domain/payment/razorpay_test.go
package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-api/internal/config"
)

func signPayload(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestCreateIntentWithoutCredentials(t *testing.T) {
	client := NewClient(config.RazorpayConfig{
		BaseURL: "https://api.razorpay.com/v1",
		Timeout: time.Second,
	})

	assert.False(t, client.Configured())

	intent, err := client.CreateIntent(context.Background(), 11000, "INR", "order_test")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
	assert.Nil(t, intent)
}

func TestVerifySignature(t *testing.T) {
	const secret = "test_key_secret"

	client := NewClient(config.RazorpayConfig{
		KeyID:     "rzp_test_key",
		KeySecret: secret,
		BaseURL:   "https://api.razorpay.com/v1",
	})

	orderID := "order_Nxq1vG8aBcDeFg"
	paymentID := "pay_Nxq2hJ9kLmNoPq"
	valid := signPayload(secret, orderID, paymentID)

	t.Run("valid signature accepted", func(t *testing.T) {
		assert.True(t, client.VerifySignature(orderID, paymentID, valid))
	})

	t.Run("signature over different payment id rejected", func(t *testing.T) {
		other := signPayload(secret, orderID, "pay_different")
		assert.False(t, client.VerifySignature(orderID, paymentID, other))
	})

	t.Run("any single flipped character rejected", func(t *testing.T) {
		for i := 0; i < len(valid); i++ {
			flipped := []byte(valid)
			if flipped[i] == 'a' {
				flipped[i] = 'b'
			} else {
				flipped[i] = 'a'
			}
			assert.False(t, client.VerifySignature(orderID, paymentID, string(flipped)),
				"flipped signature at index %d must be rejected", i)
		}
	})

	t.Run("empty signature rejected", func(t *testing.T) {
		assert.False(t, client.VerifySignature(orderID, paymentID, ""))
	})

	t.Run("unconfigured client trusts nothing", func(t *testing.T) {
		bare := NewClient(config.RazorpayConfig{})
		assert.False(t, bare.VerifySignature(orderID, paymentID, valid))
	})
}
