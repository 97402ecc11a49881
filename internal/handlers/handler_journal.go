package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sokofin/corebank/internal/apperrors"
	"github.com/sokofin/corebank/internal/core/domain"
	portssvc "github.com/sokofin/corebank/internal/core/ports/services"
	"github.com/sokofin/corebank/internal/dto"
)

// journalHandler serves manual journal submission, approval posting and
// reversal.
type journalHandler struct {
	postingSvc portssvc.PostingSvcFacade
	accountSvc portssvc.AccountSvcFacade
}

func newJournalHandler(postingSvc portssvc.PostingSvcFacade, accountSvc portssvc.AccountSvcFacade) *journalHandler {
	return &journalHandler{postingSvc: postingSvc, accountSvc: accountSvc}
}

func registerJournalRoutes(rg *gin.RouterGroup, postingSvc portssvc.PostingSvcFacade, accountSvc portssvc.AccountSvcFacade) {
	h := newJournalHandler(postingSvc, accountSvc)
	journals := rg.Group("/journal-entries")
	{
		journals.POST("", h.submitEntry)
		journals.GET("/:entryID", h.getEntry)
		journals.POST("/:entryID/post", h.postEntry)
		journals.POST("/:entryID/reverse", h.reverseEntry)
	}
}

// submitEntry accepts account codes on the wire and resolves them to IDs
// before handing the lines to the posting engine.
func (h *journalHandler) submitEntry(c *gin.Context) {
	var req dto.SubmitEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	byCode := make(map[string]*domain.Account, len(req.Lines))
	for _, line := range req.Lines {
		if _, done := byCode[line.AccountCode]; done {
			continue
		}
		account, err := h.accountSvc.GetAccountByCode(c.Request.Context(), line.AccountCode)
		if err != nil {
			if apperrors.CodeOf(err) == apperrors.CodeNotFound {
				err = apperrors.New(apperrors.CodeInvalidAccount, "account code %s does not exist", line.AccountCode)
			}
			respondWithError(c, err)
			return
		}
		byCode[line.AccountCode] = account
	}

	lines := make([]domain.JournalLine, len(req.Lines))
	for i, line := range req.Lines {
		lines[i] = domain.JournalLine{
			AccountID: byCode[line.AccountCode].AccountID,
			Debit:     line.Debit,
			Credit:    line.Credit,
			Memo:      line.Memo,
		}
	}

	entry, err := h.postingSvc.SubmitEntry(c.Request.Context(), portssvc.SubmitEntryInput{
		EntryDate:   req.EntryDate,
		Description: req.Description,
		Source:      domain.SourceRef{Module: "manual", EventType: "journal", Reference: req.Reference},
		Lines:       lines,
		AutoPost:    req.AutoPost,
	}, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

func (h *journalHandler) getEntry(c *gin.Context) {
	entry, err := h.postingSvc.GetEntryByID(c.Request.Context(), c.Param("entryID"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *journalHandler) postEntry(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	entry, err := h.postingSvc.PostEntry(c.Request.Context(), c.Param("entryID"), actor)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *journalHandler) reverseEntry(c *gin.Context) {
	var req dto.ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	reversal, err := h.postingSvc.ReverseEntry(c.Request.Context(), c.Param("entryID"), req.Reason, req.EffectiveDate, actor)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(reversal))
}
