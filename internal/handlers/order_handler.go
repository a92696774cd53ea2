package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/escape-booking/internal/httperr"
	"github.com/BruksfildServices01/escape-booking/internal/httpresp"
	"github.com/BruksfildServices01/escape-booking/internal/middleware"
	"github.com/BruksfildServices01/escape-booking/internal/models"
	ucOrder "github.com/BruksfildServices01/escape-booking/internal/usecase/order"
)

// ======================================================
// HANDLER
// ======================================================

type OrderHandler struct {
	get    *ucOrder.GetOrder
	cancel *ucOrder.CancelOrder
	items  *ucOrder.EditItems
}

func NewOrderHandler(get *ucOrder.GetOrder, cancel *ucOrder.CancelOrder, items *ucOrder.EditItems) *OrderHandler {
	return &OrderHandler{get: get, cancel: cancel, items: items}
}

// ======================================================
// REQUESTS
// ======================================================

type OrderItemRequest struct {
	Reference  string          `json:"reference" binding:"required"`
	BasePrice  decimal.Decimal `json:"base_price"`
	GrossPrice decimal.Decimal `json:"gross_price"`
	VatFactor  decimal.Decimal `json:"vat_factor"`
}

func (r OrderItemRequest) input() ucOrder.ItemInput {
	return ucOrder.ItemInput{
		Reference:  r.Reference,
		BasePrice:  r.BasePrice,
		GrossPrice: r.GrossPrice,
		VatFactor:  r.VatFactor,
	}
}

// ======================================================
// READ
// ======================================================

func (h *OrderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	orders, err := h.get.List(c.Request.Context(), page, perPage)
	if err != nil {
		writeError(c, err, "failed_to_list_orders")
		return
	}
	httpresp.List(c, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_order_id", "Invalid order.")
		return
	}

	o, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "failed_to_load_order")
		return
	}
	httpresp.OK(c, o)
}

// ======================================================
// WRITE
// ======================================================

func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_order_id", "Invalid order.")
		return
	}

	o, err := h.cancel.Execute(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		writeError(c, err, "failed_to_cancel_order")
		return
	}
	httpresp.OK(c, o)
}

func (h *OrderHandler) AddItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_order_id", "Invalid order.")
		return
	}

	var req OrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	o, err := h.items.Add(c.Request.Context(), id, req.input())
	h.itemResult(c, o, err, http.StatusCreated)
}

func (h *OrderHandler) UpdateItem(c *gin.Context) {
	id, ok1 := paramID(c, "id")
	itemID, ok2 := paramID(c, "itemId")
	if !ok1 || !ok2 {
		httperr.BadRequest(c, "invalid_order_item_id", "Invalid order item.")
		return
	}

	var req OrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	o, err := h.items.Update(c.Request.Context(), id, itemID, req.input())
	h.itemResult(c, o, err, http.StatusOK)
}

func (h *OrderHandler) DeleteItem(c *gin.Context) {
	id, ok1 := paramID(c, "id")
	itemID, ok2 := paramID(c, "itemId")
	if !ok1 || !ok2 {
		httperr.BadRequest(c, "invalid_order_item_id", "Invalid order item.")
		return
	}

	o, err := h.items.Delete(c.Request.Context(), id, itemID)
	h.itemResult(c, o, err, http.StatusOK)
}

func (h *OrderHandler) itemResult(c *gin.Context, o *models.Order, err error, status int) {
	if err != nil {
		writeError(c, err, "failed_to_edit_order")
		return
	}
	c.JSON(status, o)
}
