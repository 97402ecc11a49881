package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sokofin/corebank/internal/core/domain"
	portssvc "github.com/sokofin/corebank/internal/core/ports/services"
	"github.com/sokofin/corebank/internal/dto"
)

// savingsHandler serves customer savings accounts.
type savingsHandler struct {
	savingsSvc portssvc.SavingsSvcFacade
}

func newSavingsHandler(savingsSvc portssvc.SavingsSvcFacade) *savingsHandler {
	return &savingsHandler{savingsSvc: savingsSvc}
}

func registerSavingsRoutes(rg *gin.RouterGroup, savingsSvc portssvc.SavingsSvcFacade) {
	h := newSavingsHandler(savingsSvc)
	savings := rg.Group("/savings")
	{
		savings.POST("", h.openAccount)
		savings.GET("/:savingsID", h.getAccount)
		savings.POST("/:savingsID/deposits", h.deposit)
		savings.POST("/:savingsID/withdrawals", h.withdraw)
		savings.POST("/:savingsID/fees", h.chargeFee)
	}
}

func (h *savingsHandler) openAccount(c *gin.Context) {
	var req dto.OpenSavingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	account, err := h.savingsSvc.OpenAccount(c.Request.Context(), req, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToSavingsResponse(account))
}

func (h *savingsHandler) getAccount(c *gin.Context) {
	account, err := h.savingsSvc.GetAccount(c.Request.Context(), c.Param("savingsID"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSavingsResponse(account))
}

func (h *savingsHandler) deposit(c *gin.Context) {
	applyMovement(c, h.savingsSvc.Deposit)
}

func (h *savingsHandler) withdraw(c *gin.Context) {
	applyMovement(c, h.savingsSvc.Withdraw)
}

func (h *savingsHandler) chargeFee(c *gin.Context) {
	applyMovement(c, h.savingsSvc.ChargeFee)
}

type movementFunc func(ctx context.Context, savingsID string, req dto.SavingsMovementRequest, actor domain.Actor) (*domain.SavingsAccount, error)

func applyMovement(c *gin.Context, apply movementFunc) {
	var req dto.SavingsMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	account, err := apply(c.Request.Context(), c.Param("savingsID"), req, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSavingsResponse(account))
}
