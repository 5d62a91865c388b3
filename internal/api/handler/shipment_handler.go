package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/swiftex/tracking-service/internal/core/ports"
)

// ShipmentHandler serves the administrator shipment endpoints.
type ShipmentHandler struct {
	service ports.ShipmentService
}

func NewShipmentHandler(service ports.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{service: service}
}

// List handles GET /v1/admin/shipments.
//
// @Summary      List shipments
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Param        search  query     string  false  "Match tracking code, sender or receiver name"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Page size (default 20, max 100)"
// @Success      200     {object}  listShipmentsResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /v1/admin/shipments [get]
func (h *ShipmentHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListShipments(c.Request().Context(), ports.ListShipmentsInput{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result))
}

// Get handles GET /v1/admin/shipments/:id.
//
// @Summary      Get a shipment
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Shipment id"
// @Success      200  {object}  shipmentResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/shipments/{id} [get]
func (h *ShipmentHandler) Get(c echo.Context) error {
	s, err := h.service.GetShipment(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toShipmentResponse(s))
}

// Create handles POST /v1/admin/shipments.
//
// @Summary      Create a shipment
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createShipmentRequest  true  "Shipment details"
// @Success      201   {object}  shipmentResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/shipments [post]
func (h *ShipmentHandler) Create(c echo.Context) error {
	var req createShipmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	s, err := h.service.CreateShipment(c.Request().Context(), toCreateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toShipmentResponse(s))
}

// Update handles PATCH /v1/admin/shipments/:id.
//
// @Summary      Update a shipment
// @Description  Partial update. A status change appends a timeline entry.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Shipment id"
// @Param        body  body      updateShipmentRequest  true  "Fields to change"
// @Success      200   {object}  shipmentResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/shipments/{id} [patch]
func (h *ShipmentHandler) Update(c echo.Context) error {
	var req updateShipmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	s, err := h.service.UpdateShipment(c.Request().Context(), c.Param("id"), toUpdateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toShipmentResponse(s))
}

// Delete handles DELETE /v1/admin/shipments/:id.
//
// @Summary      Delete a shipment and its timeline
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "Shipment id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/shipments/{id} [delete]
func (h *ShipmentHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteShipment(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Timeline handles GET /v1/admin/shipments/:id/timeline.
//
// @Summary      Full shipment timeline, newest first
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Shipment id"
// @Success      200  {object}  timelineResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/shipments/{id}/timeline [get]
func (h *ShipmentHandler) Timeline(c echo.Context) error {
	events, err := h.service.ListTimeline(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, timelineResponse{Data: toTimelineResponse(events)})
}

// AppendTimeline handles POST /v1/admin/shipments/:id/timeline.
//
// @Summary      Append a timeline entry
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Shipment id"
// @Param        body  body      appendTimelineRequest  true  "Timeline entry"
// @Success      201   {object}  timelineEventResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/shipments/{id}/timeline [post]
func (h *ShipmentHandler) AppendTimeline(c echo.Context) error {
	var req appendTimelineRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	e, err := h.service.AppendTimelineEvent(c.Request().Context(), c.Param("id"), ports.AppendTimelineInput{
		Status:      domainStatus(req.Status),
		Location:    req.Location,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toTimelineEventResponse(*e))
}
