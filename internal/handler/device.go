package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Godsaptarshifrtw/subscription-device-api/internal/repository"
)

// DeviceHandler implements the device CRUD surface.
type DeviceHandler struct {
	Devices *repository.DeviceRepo
}

func NewDeviceHandler(d *repository.DeviceRepo) *DeviceHandler { return &DeviceHandler{Devices: d} }

type createDeviceReq struct {
	UserID         uint64 `json:"user_id"`
	SubscriptionID uint64 `json:"subscription_id"`
	IMEINumber     string `json:"imei_number"`
	DeviceType     string `json:"device_type"`
	Model          string `json:"model"`
	Status         string `json:"status"`
}

type deviceResponse struct {
	ID             uint64    `json:"device_id"`
	UserID         uint64    `json:"user_id"`
	SubscriptionID uint64    `json:"subscription_id"`
	IMEINumber     string    `json:"imei_number"`
	DeviceType     string    `json:"device_type"`
	Model          string    `json:"model"`
	Status         string    `json:"status"`
	AddedOn        time.Time `json:"added_on"`
}

func toDeviceResponse(d repository.Device) deviceResponse {
	return deviceResponse{
		ID:             d.ID,
		UserID:         d.UserID,
		SubscriptionID: d.SubscriptionID,
		IMEINumber:     d.IMEINumber,
		DeviceType:     d.DeviceType,
		Model:          d.Model,
		Status:         d.Status,
		AddedOn:        d.AddedOn,
	}
}

func (h *DeviceHandler) Create(c echo.Context) error {
	var req createDeviceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.UserID == 0 || req.IMEINumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id/imei_number required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d := repository.Device{
		UserID:         req.UserID,
		SubscriptionID: req.SubscriptionID,
		IMEINumber:     req.IMEINumber,
		DeviceType:     req.DeviceType,
		Model:          req.Model,
		Status:         req.Status,
	}
	if err := h.Devices.Create(ctx, &d); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create device failed"})
	}
	return c.JSON(http.StatusCreated, toDeviceResponse(d))
}

func (h *DeviceHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.Devices.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "device not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toDeviceResponse(d))
}

// ListByUser returns every device registered by a user.
func (h *DeviceHandler) ListByUser(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user_id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	devices, err := h.Devices.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]deviceResponse, 0, len(devices))
	for _, d := range devices {
		out = append(out, toDeviceResponse(d))
	}
	return c.JSON(http.StatusOK, out)
}
