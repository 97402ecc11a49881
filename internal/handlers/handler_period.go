package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sokofin/corebank/internal/core/domain"
	portssvc "github.com/sokofin/corebank/internal/core/ports/services"
	"github.com/sokofin/corebank/internal/dto"
)

// periodHandler serves financial period control.
type periodHandler struct {
	periodSvc portssvc.PeriodSvcFacade
}

func newPeriodHandler(periodSvc portssvc.PeriodSvcFacade) *periodHandler {
	return &periodHandler{periodSvc: periodSvc}
}

func registerPeriodRoutes(rg *gin.RouterGroup, periodSvc portssvc.PeriodSvcFacade) {
	h := newPeriodHandler(periodSvc)
	periods := rg.Group("/periods")
	{
		periods.GET("", h.listPeriods)
		periods.POST("/close", h.closePeriod)
	}
}

func (h *periodHandler) listPeriods(c *gin.Context) {
	periods, err := h.periodSvc.ListPeriods(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	resp := make([]dto.PeriodResponse, len(periods))
	for i := range periods {
		resp[i] = dto.ToPeriodResponse(&periods[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *periodHandler) closePeriod(c *gin.Context) {
	var req dto.ClosePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	period, err := h.periodSvc.ClosePeriod(c.Request.Context(), req.Year, time.Month(req.Month), domain.PeriodStatus(req.CloseType), actor)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}
