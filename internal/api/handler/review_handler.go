package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jneverifica/firmas-system/internal/api/metrics"
	"github.com/jneverifica/firmas-system/internal/core/ports"
)

// ReviewHandler receives the work batches produced at the end of a shift:
// screening outcomes from analysts and expert verdicts from peritos.
type ReviewHandler struct {
	reviews ports.ReviewService
}

func NewReviewHandler(reviews ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// SubmitScreenings records a batch of screening outcomes. The batch is
// atomic: any invalid item rejects the whole request.
//
// @Summary      Submit screening outcomes
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []screeningItemRequest  true  "Screening outcomes"
// @Success      201   {object}  screeningSubmitResponse
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /screenings [post]
func (h *ReviewHandler) SubmitScreenings(c echo.Context) error {
	var items []screeningItemRequest
	if err := c.Bind(&items); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	for i, item := range items {
		if err := c.Validate(&item); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("item %d: %s", i, err.Error()))
		}
	}

	_, username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	inputs := make([]ports.ScreeningInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, item.toInput())
	}

	receipt, err := h.reviews.SubmitScreenings(c.Request().Context(), username, inputs)
	if err != nil {
		return err
	}

	// Counted from the receipt, not the request: duplicates the service
	// skipped must not inflate the metric.
	metrics.ScreeningsRecordedTotal.WithLabelValues("yes").Add(float64(receipt.Escalated))
	metrics.ScreeningsRecordedTotal.WithLabelValues("no").Add(float64(receipt.Recorded - receipt.Escalated))

	return c.JSON(http.StatusCreated, screeningSubmitResponse{Recorded: receipt.Recorded})
}

// SubmitVerdicts records a batch of expert verdicts. Items are processed
// independently; the response reports acceptance per item.
//
// @Summary      Submit expert verdicts
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []verdictItemRequest  true  "Expert verdicts"
// @Success      200   {object}  verdictSubmitResponse
// @Failure      400   {object}  map[string]string
// @Router       /verdicts [post]
func (h *ReviewHandler) SubmitVerdicts(c echo.Context) error {
	var items []verdictItemRequest
	if err := c.Bind(&items); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	for i, item := range items {
		if err := c.Validate(&item); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("item %d: %s", i, err.Error()))
		}
	}

	_, username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	inputs := make([]ports.VerdictInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, item.toInput())
	}

	results, err := h.reviews.SubmitVerdicts(c.Request().Context(), username, inputs)
	if err != nil {
		return err
	}

	resp := verdictSubmitResponse{Results: results}
	for i, res := range results {
		if res.Accepted {
			resp.Accepted++
			result := "falsa"
			if i < len(items) && items[i].Authentic {
				result = "autentica"
			}
			metrics.VerdictsRecordedTotal.WithLabelValues(result).Inc()
			continue
		}
		resp.Rejected++
		reason := "validation"
		if res.Error == "storage failure" {
			reason = "storage"
		}
		metrics.VerdictsRejectedTotal.WithLabelValues(reason).Inc()
	}

	return c.JSON(http.StatusOK, resp)
}
