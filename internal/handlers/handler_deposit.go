package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/sokofin/corebank/internal/core/ports/services"
	"github.com/sokofin/corebank/internal/dto"
)

// depositHandler serves fixed deposits.
type depositHandler struct {
	depositSvc portssvc.DepositSvcFacade
}

func newDepositHandler(depositSvc portssvc.DepositSvcFacade) *depositHandler {
	return &depositHandler{depositSvc: depositSvc}
}

func registerDepositRoutes(rg *gin.RouterGroup, depositSvc portssvc.DepositSvcFacade) {
	h := newDepositHandler(depositSvc)
	deposits := rg.Group("/fixed-deposits")
	{
		deposits.POST("", h.createDeposit)
		deposits.GET("/:depositID", h.getDeposit)
		deposits.POST("/:depositID/withdrawal", h.withdraw)
		deposits.POST("/accrual-run", h.accrueInterest)
	}
}

func (h *depositHandler) createDeposit(c *gin.Context) {
	var req dto.CreateDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	deposit, err := h.depositSvc.CreateDeposit(c.Request.Context(), req, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToDepositResponse(deposit))
}

func (h *depositHandler) getDeposit(c *gin.Context) {
	deposit, err := h.depositSvc.GetDeposit(c.Request.Context(), c.Param("depositID"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDepositResponse(deposit))
}

func (h *depositHandler) withdraw(c *gin.Context) {
	var req dto.WithdrawDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	deposit, err := h.depositSvc.Withdraw(c.Request.Context(), c.Param("depositID"), req, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDepositResponse(deposit))
}

func (h *depositHandler) accrueInterest(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	asOf, err := parseDateQuery(c, "asOf", time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}
	run, err := h.depositSvc.AccrueInterest(c.Request.Context(), asOf, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}
