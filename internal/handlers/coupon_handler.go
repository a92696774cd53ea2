package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/escape-booking/internal/httperr"
	"github.com/BruksfildServices01/escape-booking/internal/httpresp"
	"github.com/BruksfildServices01/escape-booking/internal/middleware"
	"github.com/BruksfildServices01/escape-booking/internal/models"
	ucCoupon "github.com/BruksfildServices01/escape-booking/internal/usecase/coupon"
)

type CouponHandler struct {
	create *ucCoupon.CreateCoupon
	list   *ucCoupon.ListCoupons
}

func NewCouponHandler(create *ucCoupon.CreateCoupon, list *ucCoupon.ListCoupons) *CouponHandler {
	return &CouponHandler{create: create, list: list}
}

// Code may be left blank to have one generated. Expiry defaults to the
// shop's validity window.
type CreateCouponRequest struct {
	Reference         string          `json:"reference" binding:"required"`
	Code              string          `json:"code"`
	Value             decimal.Decimal `json:"value"`
	IsPercent         bool            `json:"is_percent"`
	ApplyToEntireCart bool            `json:"apply_to_entire_cart"`
	MinimumSpend      decimal.Decimal `json:"minimum_spend"`
	Combines          bool            `json:"combines"`
	ProductIDs        []uint          `json:"product_ids"`
	DaysOfWeek        string          `json:"days_of_week"`
	UseLimit          int             `json:"use_limit"`
	Expiry            string          `json:"expiry"`
}

func (h *CouponHandler) Create(c *gin.Context) {
	var req CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	cp := &models.Coupon{
		Reference:         req.Reference,
		Code:              req.Code,
		Value:             req.Value,
		IsPercent:         req.IsPercent,
		ApplyToEntireCart: req.ApplyToEntireCart,
		MinimumSpend:      req.MinimumSpend,
		Combines:          req.Combines,
		DaysOfWeek:        req.DaysOfWeek,
		UseLimit:          req.UseLimit,
	}
	for _, id := range req.ProductIDs {
		cp.Products = append(cp.Products, models.Product{ID: id})
	}
	if req.Expiry != "" {
		expiry, err := parseDate(req.Expiry)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Use YYYY-MM-DD.")
			return
		}
		cp.Expiry = &expiry
	}

	if err := h.create.Execute(c.Request.Context(), cp, middleware.UserID(c)); err != nil {
		writeError(c, err, "failed_to_create_coupon")
		return
	}
	httpresp.Created(c, cp)
}

func (h *CouponHandler) List(c *gin.Context) {
	coupons, err := h.list.Execute(c.Request.Context())
	if err != nil {
		writeError(c, err, "failed_to_list_coupons")
		return
	}
	httpresp.List(c, coupons)
}
