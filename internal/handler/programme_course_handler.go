package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shadowina/ecole-portal-api/internal/service"
	appErrors "github.com/Shadowina/ecole-portal-api/pkg/errors"
	"github.com/Shadowina/ecole-portal-api/pkg/response"
)

// ProgrammeCourseHandler exposes programme curriculum endpoints.
type ProgrammeCourseHandler struct {
	curriculum *service.ProgrammeCourseService
}

// NewProgrammeCourseHandler constructs ProgrammeCourseHandler.
func NewProgrammeCourseHandler(curriculum *service.ProgrammeCourseService) *ProgrammeCourseHandler {
	return &ProgrammeCourseHandler{curriculum: curriculum}
}

// List godoc
// @Summary List programme-course curriculum links
// @Tags ProgrammeCourses
// @Produce json
// @Param programmeId query string false "Filter by programme"
// @Param courseId query string false "Filter by course"
// @Success 200 {object} response.Envelope
// @Router /programme-courses [get]
func (h *ProgrammeCourseHandler) List(c *gin.Context) {
	links, err := h.curriculum.List(c.Request.Context(), c.Query("programmeId"), c.Query("courseId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, links, nil)
}

// Create godoc
// @Summary Attach a course to a programme curriculum
// @Tags ProgrammeCourses
// @Accept json
// @Produce json
// @Param payload body service.ProgrammeCourseRequest true "Curriculum payload"
// @Success 201 {object} response.Envelope
// @Router /programme-courses [post]
func (h *ProgrammeCourseHandler) Create(c *gin.Context) {
	var req service.ProgrammeCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	link, err := h.curriculum.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, link)
}

// Delete godoc
// @Summary Remove a course from a programme curriculum
// @Tags ProgrammeCourses
// @Produce json
// @Param programmeId path string true "Programme ID"
// @Param courseId path string true "Course ID"
// @Success 204
// @Router /programme-courses/{programmeId}/{courseId} [delete]
func (h *ProgrammeCourseHandler) Delete(c *gin.Context) {
	if err := h.curriculum.Delete(c.Request.Context(), c.Param("programmeId"), c.Param("courseId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
