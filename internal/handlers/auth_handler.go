package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/escape-booking/internal/httpresp"
	"github.com/BruksfildServices01/escape-booking/internal/middleware"
	"github.com/BruksfildServices01/escape-booking/internal/models"
	"github.com/BruksfildServices01/escape-booking/internal/usecase/auth"
)

type AuthHandler struct {
	login       *auth.Login
	createStaff *auth.CreateStaff
}

func NewAuthHandler(login *auth.Login, createStaff *auth.CreateStaff) *AuthHandler {
	return &AuthHandler{login: login, createStaff: createStaff}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateStaffRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

func userJSON(u *models.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	}
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	user, token, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err, "login_failed")
		return
	}

	httpresp.OK(c, gin.H{
		"user":  userJSON(user),
		"token": token,
	})
}

func (h *AuthHandler) CreateStaff(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	user, err := h.createStaff.Execute(
		c.Request.Context(),
		req.Name,
		req.Email,
		req.Password,
		req.Role,
		middleware.UserID(c),
	)
	if err != nil {
		writeError(c, err, "failed_to_create_user")
		return
	}

	httpresp.Created(c, gin.H{"user": userJSON(user)})
}
