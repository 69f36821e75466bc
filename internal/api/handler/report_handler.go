package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jneverifica/firmas-system/internal/api/metrics"
	"github.com/jneverifica/firmas-system/internal/core/ports"
)

type ReportHandler struct {
	reports ports.ReportService
}

func NewReportHandler(reports ports.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

type workersResponse struct {
	Analysts []ports.WorkerAggregate `json:"analistas"`
	Experts  []ports.WorkerAggregate `json:"peritos"`
}

type exportResponse struct {
	File string `json:"file"`
}

// Workers returns per-worker production totals for both roles.
//
// @Summary      Per-worker production report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  workersResponse
// @Router       /admin/reports/workers [get]
func (h *ReportHandler) Workers(c echo.Context) error {
	analysts, experts, err := h.reports.WorkerAggregates(c.Request().Context())
	if err != nil {
		return err
	}
	if analysts == nil {
		analysts = []ports.WorkerAggregate{}
	}
	if experts == nil {
		experts = []ports.WorkerAggregate{}
	}
	return c.JSON(http.StatusOK, workersResponse{Analysts: analysts, Experts: experts})
}

// Progress returns overall completion against the full catalog.
//
// @Summary      Overall progress
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.ProgressSummary
// @Router       /progress [get]
func (h *ReportHandler) Progress(c echo.Context) error {
	summary, err := h.reports.OverallProgress(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// Export writes a spreadsheet snapshot of the current progress report.
//
// @Summary      Export progress snapshot
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  exportResponse
// @Router       /admin/reports/export [post]
func (h *ReportHandler) Export(c echo.Context) error {
	start := time.Now()
	file, err := h.reports.ExportSnapshot(c.Request().Context())
	if err != nil {
		return err
	}
	metrics.ExportDuration.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusCreated, exportResponse{File: file})
}
