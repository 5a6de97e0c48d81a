package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shadowina/ecole-portal-api/internal/service"
	appErrors "github.com/Shadowina/ecole-portal-api/pkg/errors"
	"github.com/Shadowina/ecole-portal-api/pkg/response"
)

// ProgrammeHandler exposes programme endpoints.
type ProgrammeHandler struct {
	programmes *service.ProgrammeService
}

// NewProgrammeHandler constructs ProgrammeHandler.
func NewProgrammeHandler(programmes *service.ProgrammeService) *ProgrammeHandler {
	return &ProgrammeHandler{programmes: programmes}
}

// List godoc
// @Summary List programmes
// @Tags Programmes
// @Produce json
// @Param departmentId query string false "Filter by department"
// @Success 200 {object} response.Envelope
// @Router /programmes [get]
func (h *ProgrammeHandler) List(c *gin.Context) {
	programmes, err := h.programmes.List(c.Request.Context(), c.Query("departmentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, programmes, nil)
}

// Get godoc
// @Summary Get a programme
// @Tags Programmes
// @Produce json
// @Param id path string true "Programme ID"
// @Success 200 {object} response.Envelope
// @Router /programmes/{id} [get]
func (h *ProgrammeHandler) Get(c *gin.Context) {
	programme, err := h.programmes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, programme, nil)
}

// Create godoc
// @Summary Create a programme
// @Tags Programmes
// @Accept json
// @Produce json
// @Param payload body service.CreateProgrammeRequest true "Programme payload"
// @Success 201 {object} response.Envelope
// @Router /programmes [post]
func (h *ProgrammeHandler) Create(c *gin.Context) {
	var req service.CreateProgrammeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	programme, err := h.programmes.Create(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, programme)
}

// Update godoc
// @Summary Update a programme
// @Tags Programmes
// @Accept json
// @Produce json
// @Param id path string true "Programme ID"
// @Param payload body service.UpdateProgrammeRequest true "Programme payload"
// @Success 200 {object} response.Envelope
// @Router /programmes/{id} [put]
func (h *ProgrammeHandler) Update(c *gin.Context) {
	var req service.UpdateProgrammeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	programme, err := h.programmes.Update(c.Request.Context(), actorFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, programme, nil)
}

// Delete godoc
// @Summary Delete a programme
// @Tags Programmes
// @Produce json
// @Param id path string true "Programme ID"
// @Success 204
// @Router /programmes/{id} [delete]
func (h *ProgrammeHandler) Delete(c *gin.Context) {
	if err := h.programmes.Delete(c.Request.Context(), actorFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
