package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/escape-booking/internal/httperr"
	"github.com/BruksfildServices01/escape-booking/internal/httpresp"
	"github.com/BruksfildServices01/escape-booking/internal/middleware"
	"github.com/BruksfildServices01/escape-booking/internal/models"
	ucRoom "github.com/BruksfildServices01/escape-booking/internal/usecase/room"
)

const maxPhotoUpload = 10 << 20

// ======================================================
// HANDLER
// ======================================================

type RoomHandler struct {
	listRooms   *ucRoom.ListRooms
	saveRoom    *ucRoom.SaveRoom
	uploadPhoto *ucRoom.UploadRoomPhoto
	saveGroup   *ucRoom.SaveProductGroup
	saveProduct *ucRoom.SaveProduct
	listCatalog *ucRoom.ListCatalog
}

func NewRoomHandler(
	listRooms *ucRoom.ListRooms,
	saveRoom *ucRoom.SaveRoom,
	uploadPhoto *ucRoom.UploadRoomPhoto,
	saveGroup *ucRoom.SaveProductGroup,
	saveProduct *ucRoom.SaveProduct,
	listCatalog *ucRoom.ListCatalog,
) *RoomHandler {
	return &RoomHandler{
		listRooms:   listRooms,
		saveRoom:    saveRoom,
		uploadPhoto: uploadPhoto,
		saveGroup:   saveGroup,
		saveProduct: saveProduct,
		listCatalog: listCatalog,
	}
}

// ======================================================
// PUBLIC
// ======================================================

func (h *RoomHandler) ListActive(c *gin.Context) {
	rooms, err := h.listRooms.Execute(c.Request.Context(), true)
	if err != nil {
		writeError(c, err, "failed_to_list_rooms")
		return
	}
	httpresp.List(c, rooms)
}

// Catalog lists purchasable products. kind is "appointment" (default) or
// "coupon".
func (h *RoomHandler) Catalog(c *gin.Context) {
	kind := models.ProductGroupKind(c.DefaultQuery("kind", string(models.ProductGroupAppointment)))
	if kind != models.ProductGroupAppointment && kind != models.ProductGroupCoupon {
		httperr.BadRequest(c, "invalid_kind", "Unknown product kind.")
		return
	}

	groups, err := h.listCatalog.Execute(c.Request.Context(), kind)
	if err != nil {
		writeError(c, err, "failed_to_list_products")
		return
	}
	httpresp.List(c, groups)
}

// ======================================================
// STAFF
// ======================================================

func (h *RoomHandler) ListAll(c *gin.Context) {
	rooms, err := h.listRooms.Execute(c.Request.Context(), false)
	if err != nil {
		writeError(c, err, "failed_to_list_rooms")
		return
	}
	httpresp.List(c, rooms)
}

func (h *RoomHandler) SaveRoom(c *gin.Context) {
	var req models.Room
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	req.ID = 0
	status := http.StatusCreated
	if c.Param("id") != "" {
		id, ok := paramID(c, "id")
		if !ok {
			httperr.BadRequest(c, "invalid_room_id", "Invalid room.")
			return
		}
		req.ID = id
		status = http.StatusOK
	}

	if err := h.saveRoom.Execute(c.Request.Context(), &req, middleware.UserID(c)); err != nil {
		writeError(c, err, "failed_to_save_room")
		return
	}
	c.JSON(status, req)
}

func (h *RoomHandler) UploadPhoto(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_room_id", "Invalid room.")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPhotoUpload)
	fh, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Send the image as form field \"photo\".")
		return
	}
	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Unreadable upload.")
		return
	}
	defer f.Close()

	url, err := h.uploadPhoto.Execute(c.Request.Context(), id, f, c.PostForm("alt"), middleware.UserID(c))
	if err != nil {
		writeError(c, err, "failed_to_upload_photo")
		return
	}
	httpresp.OK(c, gin.H{"url": url})
}

func (h *RoomHandler) SaveProductGroup(c *gin.Context) {
	var req models.ProductGroup
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	req.Products = nil

	if id, ok := paramID(c, "id"); ok {
		req.ID = id
	} else {
		req.ID = 0
	}

	if err := h.saveGroup.Execute(c.Request.Context(), &req, middleware.UserID(c)); err != nil {
		writeError(c, err, "failed_to_save_product_group")
		return
	}
	httpresp.OK(c, req)
}

func (h *RoomHandler) SaveProduct(c *gin.Context) {
	var req models.Product
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if id, ok := paramID(c, "id"); ok {
		req.ID = id
	} else {
		req.ID = 0
	}

	if err := h.saveProduct.Execute(c.Request.Context(), &req, middleware.UserID(c)); err != nil {
		writeError(c, err, "failed_to_save_product")
		return
	}
	httpresp.OK(c, req)
}
