package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Godsaptarshifrtw/subscription-device-api/internal/repository"
)

// SubscriptionHandler implements the subscription CRUD surface.
type SubscriptionHandler struct {
	Subscriptions *repository.SubscriptionRepo
}

func NewSubscriptionHandler(s *repository.SubscriptionRepo) *SubscriptionHandler {
	return &SubscriptionHandler{Subscriptions: s}
}

type createSubscriptionReq struct {
	UserID      uint64 `json:"user_id"`
	PlanID      uint64 `json:"plan_id"`
	StartDate   string `json:"start_date"` // YYYY-MM-DD
	EndDate     string `json:"end_date"`   // YYYY-MM-DD
	Status      string `json:"status"`
	RenewalType string `json:"renewal_type"`
	PaymentID   uint64 `json:"payment_id"`
}

type subscriptionResponse struct {
	ID          uint64    `json:"subscription_id"`
	UserID      uint64    `json:"user_id"`
	PlanID      uint64    `json:"plan_id"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Status      string    `json:"status"`
	RenewalType string    `json:"renewal_type"`
	PaymentID   uint64    `json:"payment_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toSubscriptionResponse(s repository.Subscription) subscriptionResponse {
	resp := subscriptionResponse{
		ID:          s.ID,
		UserID:      s.UserID,
		PlanID:      s.PlanID,
		StartDate:   s.StartDate.Format("2006-01-02"),
		EndDate:     s.EndDate.Format("2006-01-02"),
		Status:      s.Status,
		RenewalType: s.RenewalType,
		CreatedAt:   s.CreatedAt,
	}
	if s.PaymentID.Valid {
		resp.PaymentID = uint64(s.PaymentID.Int64)
	}
	return resp
}

func (h *SubscriptionHandler) Create(c echo.Context) error {
	var req createSubscriptionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.UserID == 0 || req.PlanID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id/plan_id required"})
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_date"})
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_date"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s := repository.Subscription{
		UserID:      req.UserID,
		PlanID:      req.PlanID,
		StartDate:   start,
		EndDate:     end,
		Status:      req.Status,
		RenewalType: req.RenewalType,
	}
	if req.PaymentID != 0 {
		s.PaymentID = sql.NullInt64{Int64: int64(req.PaymentID), Valid: true}
	}
	if err := h.Subscriptions.Create(ctx, &s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create subscription failed"})
	}
	return c.JSON(http.StatusCreated, toSubscriptionResponse(s))
}

func (h *SubscriptionHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Subscriptions.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "subscription not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toSubscriptionResponse(s))
}
