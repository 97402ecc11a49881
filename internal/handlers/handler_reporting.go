package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sokofin/corebank/internal/apperrors"
	portssvc "github.com/sokofin/corebank/internal/core/ports/services"
	"github.com/sokofin/corebank/internal/dto"
)

// reportingHandler serves derived-state reports.
type reportingHandler struct {
	reportingSvc portssvc.ReportingSvcFacade
	accountSvc   portssvc.AccountSvcFacade
}

func newReportingHandler(reportingSvc portssvc.ReportingSvcFacade, accountSvc portssvc.AccountSvcFacade) *reportingHandler {
	return &reportingHandler{reportingSvc: reportingSvc, accountSvc: accountSvc}
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingSvc portssvc.ReportingSvcFacade, accountSvc portssvc.AccountSvcFacade) {
	h := newReportingHandler(reportingSvc, accountSvc)
	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/accounts/:accountID/balance", h.accountBalance)
		reports.GET("/accounts/:accountID/ledger", h.accountLedger)
		reports.GET("/accounts/:accountID/reconciliation", h.reconcileBalance)
	}
}

// parseDateQuery reads a YYYY-MM-DD query parameter, defaulting when
// absent.
func parseDateQuery(c *gin.Context, name string, fallback time.Time) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, apperrors.New(apperrors.CodeValidation, "invalid %s date %q, want YYYY-MM-DD", name, raw)
	}
	return t, nil
}

func (h *reportingHandler) trialBalance(c *gin.Context) {
	asOf, err := parseDateQuery(c, "asOf", time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}
	tb, err := h.reportingSvc.GenerateTrialBalance(c.Request.Context(), asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}

func (h *reportingHandler) accountBalance(c *gin.Context) {
	accountID := c.Param("accountID")
	asOf, err := parseDateQuery(c, "asOf", time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}
	account, err := h.accountSvc.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	balance, err := h.reportingSvc.GetAccountBalance(c.Request.Context(), accountID, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{
		AccountID: accountID,
		Code:      account.Code,
		AsOf:      asOf,
		Balance:   balance,
	})
}

func (h *reportingHandler) accountLedger(c *gin.Context) {
	accountID := c.Param("accountID")
	now := time.Now()
	from, err := parseDateQuery(c, "from", now.AddDate(0, -1, 0))
	if err != nil {
		respondWithError(c, err)
		return
	}
	to, err := parseDateQuery(c, "to", now)
	if err != nil {
		respondWithError(c, err)
		return
	}
	ledger, err := h.reportingSvc.GetLedger(c.Request.Context(), accountID, from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}

func (h *reportingHandler) reconcileBalance(c *gin.Context) {
	stored, computed, err := h.reportingSvc.ReconcileBalance(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"accountID": c.Param("accountID"),
		"stored":    stored,
		"computed":  computed,
		"consistent": stored.Equal(computed),
	})
}
