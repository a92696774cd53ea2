package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/escape-booking/internal/dto"
	"github.com/BruksfildServices01/escape-booking/internal/httperr"
	"github.com/BruksfildServices01/escape-booking/internal/httpresp"
	ucCart "github.com/BruksfildServices01/escape-booking/internal/usecase/cart"
	ucOrder "github.com/BruksfildServices01/escape-booking/internal/usecase/order"
)

// ======================================================
// HANDLER
// ======================================================

// CartHandler serves the public shop. Carts are addressed by their token,
// which is the only thing a customer holds.
type CartHandler struct {
	create           *ucCart.CreateCart
	get              *ucCart.GetCart
	addAppointment   *ucCart.AddAppointment
	addCouponProduct *ucCart.AddCouponProduct
	applyCoupon      *ucCart.ApplyCoupon
	removeCoupon     *ucCart.RemoveCoupon
	removeItem       *ucCart.RemoveItem
	checkout         *ucOrder.Checkout
}

func NewCartHandler(
	create *ucCart.CreateCart,
	get *ucCart.GetCart,
	addAppointment *ucCart.AddAppointment,
	addCouponProduct *ucCart.AddCouponProduct,
	applyCoupon *ucCart.ApplyCoupon,
	removeCoupon *ucCart.RemoveCoupon,
	removeItem *ucCart.RemoveItem,
	checkout *ucOrder.Checkout,
) *CartHandler {
	return &CartHandler{
		create:           create,
		get:              get,
		addAppointment:   addAppointment,
		addCouponProduct: addCouponProduct,
		applyCoupon:      applyCoupon,
		removeCoupon:     removeCoupon,
		removeItem:       removeItem,
		checkout:         checkout,
	}
}

// respond answers with the current state of the cart.
func (h *CartHandler) respond(c *gin.Context, status int) {
	view, err := h.get.Execute(c.Request.Context(), c.Param("token"))
	if err != nil {
		writeError(c, err, "failed_to_load_cart")
		return
	}
	c.JSON(status, view)
}

// ======================================================
// CART
// ======================================================

func (h *CartHandler) Create(c *gin.Context) {
	cart, err := h.create.Execute(c.Request.Context())
	if err != nil {
		writeError(c, err, "failed_to_create_cart")
		return
	}

	view, err := h.get.Execute(c.Request.Context(), cart.Token)
	if err != nil {
		writeError(c, err, "failed_to_load_cart")
		return
	}
	httpresp.Created(c, view)
}

func (h *CartHandler) Get(c *gin.Context) {
	h.respond(c, http.StatusOK)
}

// ======================================================
// ITEMS
// ======================================================

func (h *CartHandler) AddAppointment(c *gin.Context) {
	var req dto.AddAppointmentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	_, err := h.addAppointment.Execute(c.Request.Context(), ucCart.AddAppointmentInput{
		Token:          c.Param("token"),
		SlotID:         req.SlotID,
		ProductID:      req.ProductID,
		RequireVisible: true,
	})
	if err != nil {
		writeError(c, err, "failed_to_add_appointment")
		return
	}
	h.respond(c, http.StatusCreated)
}

func (h *CartHandler) AddCouponProduct(c *gin.Context) {
	var req dto.AddCouponProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if _, err := h.addCouponProduct.Execute(c.Request.Context(), c.Param("token"), req.ProductID); err != nil {
		writeError(c, err, "failed_to_add_item")
		return
	}
	h.respond(c, http.StatusCreated)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := paramID(c, "itemId")
	if !ok {
		httperr.BadRequest(c, "invalid_item_id", "Invalid item.")
		return
	}

	if err := h.removeItem.Execute(c.Request.Context(), c.Param("token"), id); err != nil {
		writeError(c, err, "failed_to_remove_item")
		return
	}
	h.respond(c, http.StatusOK)
}

// ======================================================
// COUPONS
// ======================================================

func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	var req dto.ApplyCouponInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if _, err := h.applyCoupon.Execute(c.Request.Context(), c.Param("token"), req.Code); err != nil {
		writeError(c, err, "failed_to_apply_coupon")
		return
	}
	h.respond(c, http.StatusOK)
}

func (h *CartHandler) RemoveCoupon(c *gin.Context) {
	if err := h.removeCoupon.Execute(c.Request.Context(), c.Param("token"), c.Param("code")); err != nil {
		writeError(c, err, "failed_to_remove_coupon")
		return
	}
	h.respond(c, http.StatusOK)
}

// ======================================================
// CHECKOUT
// ======================================================

func (h *CartHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	res, err := h.checkout.Execute(c.Request.Context(), ucOrder.CheckoutInput{
		Token:        c.Param("token"),
		BillingName:  req.BillingName,
		BillingEmail: req.BillingEmail,
	})
	if err != nil {
		writeError(c, err, "failed_to_checkout")
		return
	}

	vouchers := make([]string, 0, len(res.Vouchers))
	for _, v := range res.Vouchers {
		vouchers = append(vouchers, v.Code)
	}

	httpresp.Created(c, gin.H{
		"order_number": res.Order.OrderNumber,
		"gross_total":  res.Order.GrossTotal,
		"payment_link": res.Order.PaymentLink,
		"vouchers":     vouchers,
	})
}
