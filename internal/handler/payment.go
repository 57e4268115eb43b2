package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Godsaptarshifrtw/subscription-device-api/internal/queue"
	"github.com/Godsaptarshifrtw/subscription-device-api/internal/repository"
	queue_publisher "github.com/Godsaptarshifrtw/subscription-device-api/internal/service"
)

// PaymentHandler implements the payment CRUD surface.  Recording a payment
// additionally publishes a payment.recorded event; publishing is best
// effort and never fails the request.
type PaymentHandler struct {
	Payments *repository.PaymentRepo
}

func NewPaymentHandler(p *repository.PaymentRepo) *PaymentHandler { return &PaymentHandler{Payments: p} }

type createPaymentReq struct {
	UserID         uint64  `json:"user_id"`
	SubscriptionID uint64  `json:"subscription_id"`
	Amount         float64 `json:"amount"`
	PaymentMethod  string  `json:"payment_method"`
	Status         string  `json:"status"`
	TransactionID  string  `json:"transaction_id"`
}

type paymentResponse struct {
	ID             uint64    `json:"payment_id"`
	UserID         uint64    `json:"user_id"`
	SubscriptionID uint64    `json:"subscription_id"`
	Amount         float64   `json:"amount"`
	PaymentMethod  string    `json:"payment_method"`
	Status         string    `json:"status"`
	TransactionID  string    `json:"transaction_id"`
	PaymentDate    time.Time `json:"payment_date"`
}

func toPaymentResponse(p repository.Payment) paymentResponse {
	return paymentResponse{
		ID:             p.ID,
		UserID:         p.UserID,
		SubscriptionID: p.SubscriptionID,
		Amount:         p.Amount,
		PaymentMethod:  p.PaymentMethod,
		Status:         p.Status,
		TransactionID:  p.TransactionID,
		PaymentDate:    p.PaymentDate,
	}
}

func (h *PaymentHandler) Create(c echo.Context) error {
	var req createPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.UserID == 0 || req.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id/amount required"})
	}
	if req.TransactionID == "" {
		// Gateways that report asynchronously may not have assigned one yet.
		req.TransactionID = uuid.NewString()
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p := repository.Payment{
		UserID:         req.UserID,
		SubscriptionID: req.SubscriptionID,
		Amount:         req.Amount,
		PaymentMethod:  req.PaymentMethod,
		Status:         req.Status,
		TransactionID:  req.TransactionID,
	}
	if err := h.Payments.Create(ctx, &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create payment failed"})
	}

	if err := queue_publisher.PublishPaymentRecorded(ctx, queue.PaymentRecordedEvent{
		PaymentID:      p.ID,
		UserID:         p.UserID,
		SubscriptionID: p.SubscriptionID,
		Amount:         p.Amount,
		PaymentMethod:  p.PaymentMethod,
		Status:         p.Status,
		TransactionID:  p.TransactionID,
		RecordedAt:     p.PaymentDate.UTC().Format(time.RFC3339),
	}); err != nil {
		c.Logger().Warnf("payment event publish failed: %v", err)
	}

	return c.JSON(http.StatusCreated, toPaymentResponse(p))
}

func (h *PaymentHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Payments.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toPaymentResponse(p))
}
