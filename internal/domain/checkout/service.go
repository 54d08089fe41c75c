// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/domain/order"
	"github.com/your-org/storefront-api/internal/domain/payment"
	"github.com/your-org/storefront-api/internal/domain/pricing"
)

var (
	// ErrEmptyCart is returned when checkout starts with no cart lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrConcurrentCheckout is returned when a checkout for the same
	// user is already in flight.
	ErrConcurrentCheckout = errors.New("checkout already in progress")

	// ErrCartUnavailable is returned when a payment verifies but the
	// cart it paid for is empty or missing. The money moved; the order
	// cannot be built, so the condition is a conflict, not bad input.
	ErrCartUnavailable = errors.New("cart no longer available")
)

// CartStore provides the cart lines checkout freezes into an order.
type CartStore interface {
	Snapshot(ctx context.Context, userID uint) ([]cart.Line, error)
}

// Ledger persists an order and clears the cart atomically.
type Ledger interface {
	CreateFromCart(ctx context.Context, o *order.Order) error
}

// Gateway is the payment provider surface checkout depends on.
type Gateway interface {
	Configured() bool
	CreateIntent(ctx context.Context, amount int64, currency, receipt string) (*payment.Intent, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// Notifier delivers the order confirmation. Failures never affect the
// order itself.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, o *order.Order) error
}

// Service orchestrates the checkout flows: cash on delivery, the
// two-phase online payment, and the demo fallback used when no gateway
// is configured.
type Service struct {
	carts    CartStore
	orders   Ledger
	gateway  Gateway
	notifier Notifier
	logger   *logrus.Logger

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

// NewService creates a new checkout service
func NewService(carts CartStore, orders Ledger, gateway Gateway, notifier Notifier, logger *logrus.Logger) *Service {
	return &Service{
		carts:    carts,
		orders:   orders,
		gateway:  gateway,
		notifier: notifier,
		logger:   logger,
		locks:    make(map[uint]*sync.Mutex),
	}
}

// PlaceOrderRequest represents a cash-on-delivery checkout.
type PlaceOrderRequest struct {
	ShippingInfo order.ShippingInfo `json:"shipping_info" binding:"required"`
}

// IntentRequest starts an online payment. Shipping info is collected
// up front because the demo fallback places the order immediately.
type IntentRequest struct {
	ShippingInfo order.ShippingInfo `json:"shipping_info" binding:"required"`
}

// IntentResponse is the outcome of the first online-payment phase.
// Either Intent is set and the client proceeds to the gateway widget,
// or IsDemoOrder is true and Order was placed directly.
type IntentResponse struct {
	Intent      *payment.Intent `json:"intent,omitempty"`
	Order       *order.Order    `json:"order,omitempty"`
	IsDemoOrder bool            `json:"is_demo_order"`
}

// VerifyPaymentRequest completes an online payment with the gateway
// callback fields.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string             `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string             `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string             `json:"razorpay_signature" binding:"required"`
	ExpectedAmount    int64              `json:"amount"`
	ShippingInfo      order.ShippingInfo `json:"shipping_info" binding:"required"`
}

// PlaceOrder runs the cash-on-delivery checkout: snapshot the cart,
// persist the order, clear the cart, confirm asynchronously.
func (s *Service) PlaceOrder(ctx context.Context, userID uint, req *PlaceOrderRequest) (*order.Order, error) {
	unlock, err := s.tryLock(userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	o, err := s.buildOrder(ctx, userID, req.ShippingInfo, order.PaymentMethodCOD)
	if err != nil {
		return nil, err
	}
	o.Status = order.StatusPending

	if err := s.orders.CreateFromCart(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	s.notify(o)
	return o, nil
}

// CreatePaymentIntent is the first online-payment phase. With a working
// gateway it registers the amount and creates no local state. Without
// one, or when the gateway cannot be reached, it degrades to a demo
// order placed immediately.
func (s *Service) CreatePaymentIntent(ctx context.Context, userID uint, req *IntentRequest) (*IntentResponse, error) {
	unlock, err := s.tryLock(userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	o, err := s.buildOrder(ctx, userID, req.ShippingInfo, order.PaymentMethodOnline)
	if err != nil {
		return nil, err
	}

	if !s.gateway.Configured() {
		return s.placeDemoOrder(ctx, o)
	}

	receipt := fmt.Sprintf("rcpt_%d_%d", userID, time.Now().Unix())
	intent, err := s.gateway.CreateIntent(ctx, o.Total, "INR", receipt)
	if err != nil {
		if errors.Is(err, payment.ErrGatewayUnavailable) {
			s.logger.WithError(err).WithField("user_id", userID).
				Warn("Payment gateway unavailable, falling back to demo order")
			return s.placeDemoOrder(ctx, o)
		}
		return nil, err
	}

	return &IntentResponse{Intent: intent}, nil
}

// VerifyPayment is the second online-payment phase. The signature is
// checked before anything else; only then is the cart converted into
// an order.
func (s *Service) VerifyPayment(ctx context.Context, userID uint, req *VerifyPaymentRequest) (*order.Order, error) {
	if !s.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		return nil, payment.ErrInvalidSignature
	}

	unlock, err := s.tryLock(userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	o, err := s.buildOrder(ctx, userID, req.ShippingInfo, order.PaymentMethodOnline)
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			return nil, ErrCartUnavailable
		}
		return nil, err
	}

	if req.ExpectedAmount > 0 && req.ExpectedAmount != o.Total {
		s.logger.WithFields(logrus.Fields{
			"user_id":  userID,
			"expected": req.ExpectedAmount,
			"actual":   o.Total,
		}).Warn("Cart total changed between payment phases")
	}

	paymentID := req.RazorpayPaymentID
	o.PaymentID = &paymentID
	o.Status = order.StatusProcessing

	if err := s.orders.CreateFromCart(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	s.notify(o)
	return o, nil
}

// buildOrder snapshots the cart and freezes lines and totals into an
// unsaved order.
func (s *Service) buildOrder(ctx context.Context, userID uint, shipping order.ShippingInfo, method order.PaymentMethod) (*order.Order, error) {
	lines, err := s.carts.Snapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]order.OrderItem, 0, len(lines))
	priced := make([]pricing.LineItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, order.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Size:      line.Size,
			Color:     line.Color,
		})
		priced = append(priced, pricing.LineItem{UnitPrice: line.Price, Quantity: line.Quantity})
	}

	totals := pricing.Calculate(priced)

	return &order.Order{
		UserID:        userID,
		ShippingInfo:  shipping,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		PaymentMethod: method,
		Items:         items,
	}, nil
}

// placeDemoOrder persists an order immediately with a synthetic
// payment id, keeping checkout usable without gateway credentials.
func (s *Service) placeDemoOrder(ctx context.Context, o *order.Order) (*IntentResponse, error) {
	paymentID := fmt.Sprintf("demo_payment_%d", time.Now().UnixMilli())
	o.PaymentID = &paymentID
	o.Status = order.StatusProcessing

	if err := s.orders.CreateFromCart(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	s.notify(o)
	return &IntentResponse{Order: o, IsDemoOrder: true}, nil
}

// tryLock acquires the per-user checkout lock without waiting. The
// caller must invoke the returned function to release it.
func (s *Service) tryLock(userID uint) (func(), error) {
	s.mu.Lock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	s.mu.Unlock()

	if !lock.TryLock() {
		return nil, ErrConcurrentCheckout
	}
	return lock.Unlock, nil
}

// notify sends the order confirmation in the background with its own
// deadline. A failed confirmation is logged and otherwise ignored.
func (s *Service) notify(o *order.Order) {
	if s.notifier == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.notifier.SendOrderConfirmation(ctx, o); err != nil {
			s.logger.WithError(err).WithField("order_id", o.ID).
				Warn("Failed to send order confirmation")
		}
	}()
}
