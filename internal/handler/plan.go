package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Godsaptarshifrtw/subscription-device-api/internal/repository"
)

// PlanHandler implements the subscription-plan CRUD surface.
type PlanHandler struct {
	Plans *repository.PlanRepo
}

func NewPlanHandler(p *repository.PlanRepo) *PlanHandler { return &PlanHandler{Plans: p} }

type createPlanReq struct {
	ProductID    uint64          `json:"product_id"`
	Name         string          `json:"name"`
	Price        float64         `json:"price"`
	DurationDays int             `json:"duration_days"`
	Features     json.RawMessage `json:"features"`
	IsActive     bool            `json:"is_active"`
}

type planResponse struct {
	ID           uint64          `json:"plan_id"`
	ProductID    uint64          `json:"product_id"`
	Name         string          `json:"name"`
	Price        float64         `json:"price"`
	DurationDays int             `json:"duration_days"`
	Features     json.RawMessage `json:"features"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
}

func toPlanResponse(p repository.Plan) planResponse {
	return planResponse{
		ID:           p.ID,
		ProductID:    p.ProductID,
		Name:         p.Name,
		Price:        p.Price,
		DurationDays: p.DurationDays,
		Features:     p.Features,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
	}
}

func (h *PlanHandler) Create(c echo.Context) error {
	var req createPlanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" || req.DurationDays <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/duration_days required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p := repository.Plan{
		ProductID:    req.ProductID,
		Name:         req.Name,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		Features:     req.Features,
		IsActive:     req.IsActive,
	}
	if err := h.Plans.Create(ctx, &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create plan failed"})
	}
	return c.JSON(http.StatusCreated, toPlanResponse(p))
}

func (h *PlanHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Plans.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "plan not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toPlanResponse(p))
}
