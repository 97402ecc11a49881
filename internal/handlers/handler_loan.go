package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/sokofin/corebank/internal/core/ports/services"
	"github.com/sokofin/corebank/internal/dto"
)

// loanHandler serves the loan lifecycle.
type loanHandler struct {
	loanSvc portssvc.LoanSvcFacade
}

func newLoanHandler(loanSvc portssvc.LoanSvcFacade) *loanHandler {
	return &loanHandler{loanSvc: loanSvc}
}

func registerLoanRoutes(rg *gin.RouterGroup, loanSvc portssvc.LoanSvcFacade) {
	h := newLoanHandler(loanSvc)
	loans := rg.Group("/loans")
	{
		loans.POST("", h.createLoan)
		loans.GET("/:loanID", h.getLoan)
		loans.POST("/:loanID/repayments", h.repayLoan)
		loans.POST("/overdue-sweep", h.markOverdue)
	}
}

func (h *loanHandler) createLoan(c *gin.Context) {
	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	loan, schedule, err := h.loanSvc.CreateLoan(c.Request.Context(), req, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToLoanResponse(loan, schedule))
}

func (h *loanHandler) getLoan(c *gin.Context) {
	loan, schedule, err := h.loanSvc.GetLoan(c.Request.Context(), c.Param("loanID"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan, schedule))
}

func (h *loanHandler) repayLoan(c *gin.Context) {
	var req dto.RepayLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	resp, err := h.loanSvc.RepayLoan(c.Request.Context(), c.Param("loanID"), req, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *loanHandler) markOverdue(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	asOf, err := parseDateQuery(c, "asOf", time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}
	marked, err := h.loanSvc.MarkOverdueSchedules(c.Request.Context(), asOf, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"installmentsMarked": marked})
}
