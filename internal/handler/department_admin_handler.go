package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shadowina/ecole-portal-api/internal/service"
	appErrors "github.com/Shadowina/ecole-portal-api/pkg/errors"
	"github.com/Shadowina/ecole-portal-api/pkg/response"
)

// DepartmentAdminHandler exposes department admin endpoints.
type DepartmentAdminHandler struct {
	admins *service.DepartmentAdminService
}

// NewDepartmentAdminHandler constructs DepartmentAdminHandler.
func NewDepartmentAdminHandler(admins *service.DepartmentAdminService) *DepartmentAdminHandler {
	return &DepartmentAdminHandler{admins: admins}
}

// List godoc
// @Summary List department admins
// @Tags DepartmentAdmins
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /department-admins [get]
func (h *DepartmentAdminHandler) List(c *gin.Context) {
	admins, err := h.admins.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, admins, nil)
}

// Get godoc
// @Summary Get department admin detail
// @Tags DepartmentAdmins
// @Produce json
// @Param id path string true "Admin ID"
// @Success 200 {object} response.Envelope
// @Router /department-admins/{id} [get]
func (h *DepartmentAdminHandler) Get(c *gin.Context) {
	admin, err := h.admins.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, admin, nil)
}

// Create godoc
// @Summary Attach an admin profile to a user
// @Tags DepartmentAdmins
// @Accept json
// @Produce json
// @Param payload body service.CreateDepartmentAdminRequest true "Admin payload"
// @Success 201 {object} response.Envelope
// @Router /department-admins [post]
func (h *DepartmentAdminHandler) Create(c *gin.Context) {
	var req service.CreateDepartmentAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	admin, err := h.admins.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, admin)
}

// Update godoc
// @Summary Update an admin profile
// @Tags DepartmentAdmins
// @Accept json
// @Produce json
// @Param id path string true "Admin ID"
// @Param payload body service.UpdateDepartmentAdminRequest true "Admin payload"
// @Success 200 {object} response.Envelope
// @Router /department-admins/{id} [put]
func (h *DepartmentAdminHandler) Update(c *gin.Context) {
	var req service.UpdateDepartmentAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	admin, err := h.admins.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, admin, nil)
}

// Delete godoc
// @Summary Delete an admin profile
// @Tags DepartmentAdmins
// @Produce json
// @Param id path string true "Admin ID"
// @Success 204
// @Router /department-admins/{id} [delete]
func (h *DepartmentAdminHandler) Delete(c *gin.Context) {
	if err := h.admins.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
