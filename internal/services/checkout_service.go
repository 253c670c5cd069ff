package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"lunashop/internal/models"
	"lunashop/internal/session"
	"lunashop/pkg/rabbitmq"
)

// Payment method labels accepted at checkout. Payment handling is a mock:
// the input shape is checked, nothing is charged or settled.
const (
	PaymentCOD  = "cod"
	PaymentUPI  = "upi"
	PaymentCard = "card"
)

// PaymentRequest is the payment input submitted at checkout. Card expiry and
// CVV are accepted but never stored.
type PaymentRequest struct {
	Method   string `json:"payment_method" validate:"required"`
	UPIID    string `json:"upi_id"`
	CardNo   string `json:"card_no"`
	CardName string `json:"card_name"`
	CardExp  string `json:"card_exp"`
	CardCVV  string `json:"card_cvv"`
}

// CheckoutResult is the confirmation payload for a placed order.
type CheckoutResult struct {
	OrderID       string          `json:"order_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod string          `json:"payment_method"`
	PaymentInfo   string          `json:"payment_info"`
}

// CheckoutService coordinates cart snapshot, payment-input validation and
// order placement. There are no intermediate persisted states: until the
// ledger write succeeds the cart stays intact and retry is safe.
type CheckoutService struct {
	carts    *CartService
	orders   *OrderService
	mqClient *rabbitmq.Client // nil when no broker is configured
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(carts *CartService, orders *OrderService, mqClient *rabbitmq.Client) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		orders:   orders,
		mqClient: mqClient,
	}
}

// Checkout places an order from the session's cart.
func (s *CheckoutService) Checkout(ctx context.Context, sess *session.Session, payment PaymentRequest) (*CheckoutResult, error) {
	if !sess.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if sess.Cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	snapshot, err := s.carts.Snapshot(sess.Cart)
	if err != nil {
		return nil, &PersistenceError{Op: "price cart", Err: err}
	}
	// Every id in the cart may have vanished from the catalog since it was
	// added; that leaves nothing to order.
	if len(snapshot.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	paymentInfo, err := validatePayment(payment)
	if err != nil {
		return nil, err
	}

	lines := make([]models.OrderItem, 0, len(snapshot.Lines))
	for _, line := range snapshot.Lines {
		lines = append(lines, models.OrderItem{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
			Price:     line.Product.Price,
		})
	}

	status := "Placed - " + strings.ToUpper(payment.Method)
	order, err := s.orders.PlaceOrder(sess.UserID, lines, status)
	if err != nil {
		// The cart is deliberately left intact so the user can retry.
		return nil, err
	}

	if err := s.carts.Clear(ctx, sess); err != nil {
		// The order is already placed; a cart that failed to clear is an
		// annoyance, not a reason to fail the checkout.
		logrus.Warnf("Order %s placed but cart not cleared: %v", order.ID, err)
	}

	s.publishOrderPlaced(order)

	return &CheckoutResult{
		OrderID:       order.ID,
		TotalAmount:   order.TotalAmount,
		PaymentMethod: payment.Method,
		PaymentInfo:   paymentInfo,
	}, nil
}

// validatePayment checks the input shape of the chosen payment method and
// builds its display fragment. Only the card's last 4 digits ever leave this
// function.
func validatePayment(payment PaymentRequest) (string, error) {
	switch payment.Method {
	case PaymentCOD:
		return "Cash on Delivery", nil
	case PaymentUPI:
		upi := strings.TrimSpace(payment.UPIID)
		if !strings.Contains(upi, "@") {
			return "", &PaymentInputError{Field: "upi_id", Reason: "must contain an '@' separator"}
		}
		return "UPI " + upi, nil
	case PaymentCard:
		cardNo := strings.TrimSpace(payment.CardNo)
		if len(cardNo) < 12 || !isDigits(cardNo) {
			return "", &PaymentInputError{Field: "card_no", Reason: "must be a number of at least 12 digits"}
		}
		return fmt.Sprintf("Card ending %s (%s)", cardNo[len(cardNo)-4:], strings.TrimSpace(payment.CardName)), nil
	default:
		return "", &PaymentInputError{Field: "payment_method", Reason: "unrecognized payment method"}
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// publishOrderPlaced emits the order event best-effort: a missing broker or
// a failed publish never affects the placed order.
func (s *CheckoutService) publishOrderPlaced(order *models.Order) {
	if s.mqClient == nil {
		return
	}
	event := rabbitmq.OrderPlacedEvent{
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount.StringFixed(2),
		Status:      order.Status,
		PlacedAt:    order.CreatedAt,
	}
	if err := s.mqClient.PublishOrderPlaced(event); err != nil {
		logrus.Warnf("Failed to publish order placed event for order %s: %v", order.ID, err)
	} else {
		logrus.Infof("Published order placed event for order %s", order.ID)
	}
}
