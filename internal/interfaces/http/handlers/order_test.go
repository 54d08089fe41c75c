// internal/interfaces/http/handlers/order_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/domain/checkout"
	"github.com/your-org/storefront-api/internal/domain/order"
	"github.com/your-org/storefront-api/internal/domain/payment"
)

type fixedCart struct {
	lines []cart.Line
}

func (f *fixedCart) Snapshot(ctx context.Context, userID uint) ([]cart.Line, error) {
	return f.lines, nil
}

type memoryLedger struct {
	orders []*order.Order
}

func (m *memoryLedger) CreateFromCart(ctx context.Context, o *order.Order) error {
	m.orders = append(m.orders, o)
	return nil
}

// acceptAllGateway reports every signature as valid, so requests reach
// the order-building stage.
type acceptAllGateway struct{}

func (acceptAllGateway) Configured() bool { return true }

func (acceptAllGateway) CreateIntent(ctx context.Context, amount int64, currency, receipt string) (*payment.Intent, error) {
	return &payment.Intent{OrderID: "order_test", Amount: amount, Currency: currency}, nil
}

func (acceptAllGateway) VerifySignature(orderID, paymentID, signature string) bool { return true }

func newVerifyRouter(lines []cart.Line) (*gin.Engine, *memoryLedger) {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	ledger := &memoryLedger{}
	svc := checkout.NewService(&fixedCart{lines: lines}, ledger, acceptAllGateway{}, nil, logger)
	handler := NewOrderHandler(nil, svc)

	router := gin.New()
	router.POST("/orders/verify-payment", handler.VerifyPayment)
	return router, ledger
}

func verifyPaymentBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(gin.H{
		"razorpay_order_id":   "order_Nxq1vG8aBcDeFg",
		"razorpay_payment_id": "pay_Nxq2hJ9kLmNoPq",
		"razorpay_signature":  "valid",
		"shipping_info": gin.H{
			"name":     "Asha Rao",
			"email":    "asha@example.com",
			"phone":    "9999999999",
			"address":  "12 MG Road",
			"city":     "Bengaluru",
			"state":    "Karnataka",
			"zip_code": "560001",
			"country":  "India",
		},
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestVerifyPaymentEndpointPlacesOrder(t *testing.T) {
	lines := []cart.Line{{ProductID: 1, Name: "Signature Tee", Price: 5000, Quantity: 2}}
	router, ledger := newVerifyRouter(lines)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders/verify-payment", verifyPaymentBody(t))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, ledger.orders, 1)
}

func TestVerifyPaymentEndpointCartClearedConflict(t *testing.T) {
	// A valid signature whose cart has since been emptied must come
	// back as a conflict, not as a bad request.
	router, ledger := newVerifyRouter(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders/verify-payment", verifyPaymentBody(t))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Len(t, ledger.orders, 0)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "no longer available")
}
