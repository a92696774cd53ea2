package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/escape-booking/internal/httpresp"
	"github.com/BruksfildServices01/escape-booking/internal/middleware"
	"github.com/BruksfildServices01/escape-booking/internal/models"
	ucSettings "github.com/BruksfildServices01/escape-booking/internal/usecase/settings"
)

type SettingsHandler struct {
	manage *ucSettings.ManageSettings
}

func NewSettingsHandler(manage *ucSettings.ManageSettings) *SettingsHandler {
	return &SettingsHandler{manage: manage}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.manage.Get(c.Request.Context())
	if err != nil {
		writeError(c, err, "failed_to_load_settings")
		return
	}
	httpresp.OK(c, s)
}

func (h *SettingsHandler) UpdateAppointments(c *gin.Context) {
	var req models.AppointmentsSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if err := h.manage.UpdateAppointments(c.Request.Context(), &req, middleware.UserID(c)); err != nil {
		writeError(c, err, "failed_to_update_settings")
		return
	}
	httpresp.OK(c, req)
}

func (h *SettingsHandler) UpdateShop(c *gin.Context) {
	var req models.ShopSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if err := h.manage.UpdateShop(c.Request.Context(), &req, middleware.UserID(c)); err != nil {
		writeError(c, err, "failed_to_update_settings")
		return
	}
	httpresp.OK(c, req)
}
