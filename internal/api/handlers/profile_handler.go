package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/devconnector/internal/models"
	"github.com/yoockh/devconnector/internal/services"
)

type ProfileHandler struct {
	svc services.ProfileService
}

func NewProfileHandler(svc services.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// Me serves GET /api/profile/me.
func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	p, err := h.svc.GetMe(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// Upsert serves POST /api/profile.
func (h *ProfileHandler) Upsert(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req models.ProfileFields
	if !bindJSON(c, "ProfileHandler.Upsert", &req) {
		return
	}

	p, err := h.svc.Upsert(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// List serves GET /api/profile.
func (h *ProfileHandler) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// ByUserID serves GET /api/profile/user/:user_id.
func (h *ProfileHandler) ByUserID(c *gin.Context) {
	p, err := h.svc.GetByUserID(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// Delete serves DELETE /api/profile. It removes the profile and the account.
func (h *ProfileHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteMe(c.Request.Context(), userID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "User removed"})
}
