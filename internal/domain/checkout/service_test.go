// internal/domain/checkout/service_test.go
package checkout

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/domain/order"
	"github.com/your-org/storefront-api/internal/domain/payment"
)

type stubCart struct {
	lines []cart.Line
	err   error
}

func (s *stubCart) Snapshot(ctx context.Context, userID uint) ([]cart.Line, error) {
	return s.lines, s.err
}

type stubLedger struct {
	mu      sync.Mutex
	orders  []*order.Order
	err     error
	entered chan struct{} // signaled once a create is in flight
	release chan struct{} // blocks the create until closed
}

func (s *stubLedger) CreateFromCart(ctx context.Context, o *order.Order) error {
	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	s.orders = append(s.orders, o)
	s.mu.Unlock()
	return nil
}

func (s *stubLedger) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

type stubGateway struct {
	configured bool
	intent     *payment.Intent
	intentErr  error
	verifyOK   bool
}

func (s *stubGateway) Configured() bool { return s.configured }

func (s *stubGateway) CreateIntent(ctx context.Context, amount int64, currency, receipt string) (*payment.Intent, error) {
	if s.intentErr != nil {
		return nil, s.intentErr
	}
	return s.intent, nil
}

func (s *stubGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return s.verifyOK
}

type stubNotifier struct {
	err  error
	sent chan *order.Order
}

func (s *stubNotifier) SendOrderConfirmation(ctx context.Context, o *order.Order) error {
	if s.sent != nil {
		s.sent <- o
	}
	return s.err
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func twoShirts() []cart.Line {
	return []cart.Line{
		{ProductID: 1, Name: "Signature Tee", Price: 5000, Quantity: 2, Size: "M", Color: "Black"},
	}
}

func shipping() order.ShippingInfo {
	return order.ShippingInfo{
		Name:    "Asha Rao",
		Email:   "asha@example.com",
		Phone:   "9999999999",
		Address: "12 MG Road",
		City:    "Bengaluru",
		State:   "Karnataka",
		ZipCode: "560001",
		Country: "India",
	}
}

func TestPlaceOrderCOD(t *testing.T) {
	ledger := &stubLedger{}
	notifier := &stubNotifier{sent: make(chan *order.Order, 1)}
	svc := NewService(&stubCart{lines: twoShirts()}, ledger, &stubGateway{}, notifier, testLogger())

	o, err := svc.PlaceOrder(context.Background(), 7, &PlaceOrderRequest{ShippingInfo: shipping()})
	require.NoError(t, err)

	assert.Equal(t, uint(7), o.UserID)
	assert.Equal(t, int64(10000), o.Subtotal)
	assert.Equal(t, int64(1000), o.Tax)
	assert.Equal(t, int64(11000), o.Total)
	assert.Equal(t, order.PaymentMethodCOD, o.PaymentMethod)
	assert.Equal(t, order.StatusPending, o.Status)
	assert.Nil(t, o.PaymentID)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Signature Tee", o.Items[0].Name)
	assert.Equal(t, 2, o.Items[0].Quantity)

	assert.Equal(t, 1, ledger.count())

	select {
	case sent := <-notifier.sent:
		assert.Equal(t, o, sent)
	case <-time.After(time.Second):
		t.Fatal("confirmation was never sent")
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	ledger := &stubLedger{}
	svc := NewService(&stubCart{}, ledger, &stubGateway{}, nil, testLogger())

	o, err := svc.PlaceOrder(context.Background(), 7, &PlaceOrderRequest{ShippingInfo: shipping()})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, o)
	assert.Equal(t, 0, ledger.count())
}

func TestPlaceOrderPersistenceFailure(t *testing.T) {
	ledger := &stubLedger{err: errors.New("connection reset")}
	notifier := &stubNotifier{sent: make(chan *order.Order, 1)}
	svc := NewService(&stubCart{lines: twoShirts()}, ledger, &stubGateway{}, notifier, testLogger())

	_, err := svc.PlaceOrder(context.Background(), 7, &PlaceOrderRequest{ShippingInfo: shipping()})
	require.Error(t, err)

	select {
	case <-notifier.sent:
		t.Fatal("confirmation sent for an order that was never persisted")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestConcurrentCheckoutRejected(t *testing.T) {
	ledger := &stubLedger{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	svc := NewService(&stubCart{lines: twoShirts()}, ledger, &stubGateway{}, nil, testLogger())

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.PlaceOrder(context.Background(), 7, &PlaceOrderRequest{ShippingInfo: shipping()})
		firstDone <- err
	}()

	<-ledger.entered

	_, err := svc.PlaceOrder(context.Background(), 7, &PlaceOrderRequest{ShippingInfo: shipping()})
	assert.ErrorIs(t, err, ErrConcurrentCheckout)

	close(ledger.release)
	require.NoError(t, <-firstDone)
	assert.Equal(t, 1, ledger.count())
}

func TestConcurrentCheckoutDifferentUsers(t *testing.T) {
	ledger := &stubLedger{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	svc := NewService(&stubCart{lines: twoShirts()}, ledger, &stubGateway{}, nil, testLogger())

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.PlaceOrder(context.Background(), 7, &PlaceOrderRequest{ShippingInfo: shipping()})
		firstDone <- err
	}()

	<-ledger.entered
	close(ledger.release)
	require.NoError(t, <-firstDone)

	// A different user is never blocked by someone else's checkout.
	_, err := svc.PlaceOrder(context.Background(), 8, &PlaceOrderRequest{ShippingInfo: shipping()})
	require.NoError(t, err)
	assert.Equal(t, 2, ledger.count())
}

func TestCreatePaymentIntentWithGateway(t *testing.T) {
	ledger := &stubLedger{}
	gw := &stubGateway{
		configured: true,
		intent: &payment.Intent{
			OrderID:  "order_Nxq1vG8aBcDeFg",
			Amount:   11000,
			Currency: "INR",
			KeyID:    "rzp_test_key",
		},
	}
	svc := NewService(&stubCart{lines: twoShirts()}, ledger, gw, nil, testLogger())

	resp, err := svc.CreatePaymentIntent(context.Background(), 7, &IntentRequest{ShippingInfo: shipping()})
	require.NoError(t, err)

	assert.False(t, resp.IsDemoOrder)
	assert.Nil(t, resp.Order)
	require.NotNil(t, resp.Intent)
	assert.Equal(t, "order_Nxq1vG8aBcDeFg", resp.Intent.OrderID)

	// Phase one creates no local state.
	assert.Equal(t, 0, ledger.count())
}

func TestCreatePaymentIntentDemoFallback(t *testing.T) {
	t.Run("gateway not configured", func(t *testing.T) {
		ledger := &stubLedger{}
		svc := NewService(&stubCart{lines: twoShirts()}, ledger, &stubGateway{configured: false}, nil, testLogger())

		resp, err := svc.CreatePaymentIntent(context.Background(), 7, &IntentRequest{ShippingInfo: shipping()})
		require.NoError(t, err)

		assert.True(t, resp.IsDemoOrder)
		assert.Nil(t, resp.Intent)
		require.NotNil(t, resp.Order)
		require.NotNil(t, resp.Order.PaymentID)
		assert.True(t, strings.HasPrefix(*resp.Order.PaymentID, "demo_payment_"))
		assert.Equal(t, order.StatusProcessing, resp.Order.Status)
		assert.Equal(t, order.PaymentMethodOnline, resp.Order.PaymentMethod)
		assert.Equal(t, 1, ledger.count())
	})

	t.Run("gateway unreachable", func(t *testing.T) {
		ledger := &stubLedger{}
		gw := &stubGateway{configured: true, intentErr: payment.ErrGatewayUnavailable}
		svc := NewService(&stubCart{lines: twoShirts()}, ledger, gw, nil, testLogger())

		resp, err := svc.CreatePaymentIntent(context.Background(), 7, &IntentRequest{ShippingInfo: shipping()})
		require.NoError(t, err)

		assert.True(t, resp.IsDemoOrder)
		assert.Equal(t, 1, ledger.count())
	})
}

func TestCreatePaymentIntentEmptyCart(t *testing.T) {
	svc := NewService(&stubCart{}, &stubLedger{}, &stubGateway{configured: true}, nil, testLogger())

	_, err := svc.CreatePaymentIntent(context.Background(), 7, &IntentRequest{ShippingInfo: shipping()})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestVerifyPaymentInvalidSignature(t *testing.T) {
	ledger := &stubLedger{}
	svc := NewService(&stubCart{lines: twoShirts()}, ledger, &stubGateway{configured: true, verifyOK: false}, nil, testLogger())

	o, err := svc.VerifyPayment(context.Background(), 7, &VerifyPaymentRequest{
		RazorpayOrderID:   "order_Nxq1vG8aBcDeFg",
		RazorpayPaymentID: "pay_Nxq2hJ9kLmNoPq",
		RazorpaySignature: "forged",
		ShippingInfo:      shipping(),
	})

	assert.ErrorIs(t, err, payment.ErrInvalidSignature)
	assert.Nil(t, o)
	assert.Equal(t, 0, ledger.count())
}

func TestVerifyPaymentSuccess(t *testing.T) {
	ledger := &stubLedger{}
	notifier := &stubNotifier{sent: make(chan *order.Order, 1)}
	svc := NewService(&stubCart{lines: twoShirts()}, ledger, &stubGateway{configured: true, verifyOK: true}, notifier, testLogger())

	o, err := svc.VerifyPayment(context.Background(), 7, &VerifyPaymentRequest{
		RazorpayOrderID:   "order_Nxq1vG8aBcDeFg",
		RazorpayPaymentID: "pay_Nxq2hJ9kLmNoPq",
		RazorpaySignature: "valid",
		ExpectedAmount:    11000,
		ShippingInfo:      shipping(),
	})
	require.NoError(t, err)

	assert.Equal(t, order.StatusProcessing, o.Status)
	require.NotNil(t, o.PaymentID)
	assert.Equal(t, "pay_Nxq2hJ9kLmNoPq", *o.PaymentID)
	assert.Equal(t, int64(11000), o.Total)
	assert.Equal(t, 1, ledger.count())

	select {
	case <-notifier.sent:
	case <-time.After(time.Second):
		t.Fatal("confirmation was never sent")
	}
}

func TestVerifyPaymentEmptyCart(t *testing.T) {
	ledger := &stubLedger{}
	svc := NewService(&stubCart{}, ledger, &stubGateway{configured: true, verifyOK: true}, nil, testLogger())

	_, err := svc.VerifyPayment(context.Background(), 7, &VerifyPaymentRequest{
		RazorpayOrderID:   "order_Nxq1vG8aBcDeFg",
		RazorpayPaymentID: "pay_Nxq2hJ9kLmNoPq",
		RazorpaySignature: "valid",
		ShippingInfo:      shipping(),
	})
	assert.ErrorIs(t, err, ErrCartUnavailable)
	assert.NotErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 0, ledger.count())
}

func TestNotificationFailureDoesNotAffectOrder(t *testing.T) {
	ledger := &stubLedger{}
	notifier := &stubNotifier{err: errors.New("smtp down"), sent: make(chan *order.Order, 1)}
	svc := NewService(&stubCart{lines: twoShirts()}, ledger, &stubGateway{}, notifier, testLogger())

	o, err := svc.PlaceOrder(context.Background(), 7, &PlaceOrderRequest{ShippingInfo: shipping()})
	require.NoError(t, err)
	assert.NotNil(t, o)
	assert.Equal(t, 1, ledger.count())

	<-notifier.sent
}
