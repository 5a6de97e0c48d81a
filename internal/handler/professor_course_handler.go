package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shadowina/ecole-portal-api/internal/service"
	appErrors "github.com/Shadowina/ecole-portal-api/pkg/errors"
	"github.com/Shadowina/ecole-portal-api/pkg/response"
)

// ProfessorCourseHandler exposes professor-course assignment endpoints.
type ProfessorCourseHandler struct {
	assignments *service.ProfessorCourseService
}

// NewProfessorCourseHandler constructs ProfessorCourseHandler.
func NewProfessorCourseHandler(assignments *service.ProfessorCourseService) *ProfessorCourseHandler {
	return &ProfessorCourseHandler{assignments: assignments}
}

// List godoc
// @Summary List professor-course assignments
// @Tags ProfessorCourses
// @Produce json
// @Param professorId query string false "Filter by professor"
// @Param courseId query string false "Filter by course"
// @Success 200 {object} response.Envelope
// @Router /professor-courses [get]
func (h *ProfessorCourseHandler) List(c *gin.Context) {
	links, err := h.assignments.List(c.Request.Context(), c.Query("professorId"), c.Query("courseId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, links, nil)
}

// Create godoc
// @Summary Assign a course to a professor
// @Tags ProfessorCourses
// @Accept json
// @Produce json
// @Param payload body service.ProfessorCourseRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Router /professor-courses [post]
func (h *ProfessorCourseHandler) Create(c *gin.Context) {
	var req service.ProfessorCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	link, err := h.assignments.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, link)
}

// Delete godoc
// @Summary Remove a professor-course assignment
// @Tags ProfessorCourses
// @Produce json
// @Param professorId path string true "Professor ID"
// @Param courseId path string true "Course ID"
// @Success 204
// @Router /professor-courses/{professorId}/{courseId} [delete]
func (h *ProfessorCourseHandler) Delete(c *gin.Context) {
	if err := h.assignments.Delete(c.Request.Context(), c.Param("professorId"), c.Param("courseId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
