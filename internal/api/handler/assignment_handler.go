package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jneverifica/firmas-system/internal/api/metrics"
	"github.com/jneverifica/firmas-system/internal/core/domain"
	"github.com/jneverifica/firmas-system/internal/core/ports"
)

// AssignmentHandler exposes bulk assignment and the workers' pending queues.
type AssignmentHandler struct {
	assignments ports.AssignmentService
}

func NewAssignmentHandler(assignments ports.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments}
}

type bulkAssignRequest struct {
	OrgCode string `json:"cod_op" validate:"required"`
	Count   int    `json:"count"  validate:"required,min=1"`
	Worker  string `json:"worker" validate:"required"`
}

type bulkAssignResponse struct {
	Created int `json:"created"`
}

type pendingResponse struct {
	Items []domain.Assignment `json:"items"`
	Count int                 `json:"count"`
}

// BulkAssign distributes unassigned catalog records to an analyst.
//
// @Summary      Bulk-assign screening work
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bulkAssignRequest  true  "Assignment parameters"
// @Success      201   {object}  bulkAssignResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /admin/assignments/bulk [post]
func (h *AssignmentHandler) BulkAssign(c echo.Context) error {
	var req bulkAssignRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.assignments.BulkAssign(c.Request().Context(), ports.BulkAssignInput{
		OrgCode:  req.OrgCode,
		Count:    req.Count,
		Worker:   req.Worker,
		WorkType: domain.WorkScreening,
	})
	if err != nil {
		return err
	}

	metrics.AssignmentsCreatedTotal.WithLabelValues(string(domain.WorkScreening)).Add(float64(created))
	return c.JSON(http.StatusCreated, bulkAssignResponse{Created: created})
}

// PendingScreenings returns the logged-in analyst's open work items.
//
// @Summary      List pending screening assignments
// @Tags         assignments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  pendingResponse
// @Router       /screenings/pending [get]
func (h *AssignmentHandler) PendingScreenings(c echo.Context) error {
	return h.pending(c, domain.WorkScreening)
}

// PendingVerdicts returns the logged-in expert's open work items.
//
// @Summary      List pending expert-review assignments
// @Tags         assignments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  pendingResponse
// @Router       /verdicts/pending [get]
func (h *AssignmentHandler) PendingVerdicts(c echo.Context) error {
	return h.pending(c, domain.WorkExpertReview)
}

func (h *AssignmentHandler) pending(c echo.Context, workType domain.WorkType) error {
	userID, _, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	items, err := h.assignments.PendingFor(c.Request().Context(), userID, workType)
	if err != nil {
		return err
	}
	if items == nil {
		items = []domain.Assignment{}
	}
	return c.JSON(http.StatusOK, pendingResponse{Items: items, Count: len(items)})
}
