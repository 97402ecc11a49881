package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sokofin/corebank/internal/apperrors"
	"github.com/sokofin/corebank/internal/core/domain"
	portsrepo "github.com/sokofin/corebank/internal/core/ports/repositories"
	portssvc "github.com/sokofin/corebank/internal/core/ports/services"
	"github.com/sokofin/corebank/internal/core/services"
)

type PostingServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	mockPeriodRepo  *MockPeriodRepository
	service         portssvc.PostingSvcFacade

	cashAccount   domain.Account
	incomeAccount domain.Account
	headerAccount domain.Account
	creator       domain.Actor
	approver      domain.Actor
	limitedActor  domain.Actor
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.service = services.NewPostingService(suite.mockJournalRepo, suite.mockAccountRepo, suite.mockPeriodRepo)

	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1000",
		AccountType: domain.Asset,
		NormalSide:  domain.DebitSide,
		IsActive:    true,
	}
	suite.incomeAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "4200",
		AccountType: domain.Income,
		NormalSide:  domain.CreditSide,
		IsActive:    true,
	}
	suite.headerAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1",
		AccountType: domain.Asset,
		NormalSide:  domain.DebitSide,
		IsActive:    true,
		IsHeader:    true,
	}

	suite.creator = domain.Actor{ActorID: uuid.NewString()}
	suite.approver = domain.Actor{ActorID: uuid.NewString()}
	suite.limitedActor = domain.Actor{ActorID: uuid.NewString(), ApprovalLimit: decimal.NewFromInt(500)}
}

func (suite *PostingServiceTestSuite) expectOpenPeriod() {
	suite.mockPeriodRepo.On("FindPeriod", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Once()
}

func (suite *PostingServiceTestSuite) expectAccounts(accounts ...domain.Account) {
	accountMap := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		accountMap[a.AccountID] = a
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(accountMap, nil).Once()
}

func (suite *PostingServiceTestSuite) feeInput(amount int64) portssvc.SubmitEntryInput {
	return portssvc.SubmitEntryInput{
		EntryDate:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: "Fee collected in cash",
		Source:      domain.SourceRef{Module: "manual", EventType: "journal", Reference: uuid.NewString()},
		Lines: []domain.JournalLine{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(amount)},
			{AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromInt(amount)},
		},
	}
}

func (suite *PostingServiceTestSuite) TestSubmitEntry_DraftSuccess() {
	ctx := context.Background()
	input := suite.feeInput(100)

	suite.expectOpenPeriod()
	suite.expectAccounts(suite.cashAccount, suite.incomeAccount)
	suite.mockJournalRepo.On("CreateEntry", ctx, mock.MatchedBy(func(b portsrepo.PostingBundle) bool {
		return !b.Post && b.Entry.Status == domain.Draft && b.Changes == nil && len(b.Lines) == 2
	})).Return(&domain.JournalEntry{EntryID: "e1", EntryNumber: "JE-000001", Status: domain.Draft}, nil).Once()

	entry, err := suite.service.SubmitEntry(ctx, input, suite.creator)

	suite.Require().NoError(err)
	suite.Equal("JE-000001", entry.EntryNumber)
	suite.Equal(domain.Draft, entry.Status)
	suite.Len(entry.Lines, 2)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestSubmitEntry_AutoPostAppliesChanges() {
	ctx := context.Background()
	input := suite.feeInput(250)
	input.AutoPost = true

	suite.expectOpenPeriod()
	suite.expectAccounts(suite.cashAccount, suite.incomeAccount)
	suite.mockJournalRepo.On("CreateEntry", ctx, mock.MatchedBy(func(b portsrepo.PostingBundle) bool {
		if !b.Post || b.Entry.Status != domain.Posted || b.Entry.PostedBy == nil {
			return false
		}
		// Both accounts grow on their normal side by the full amount.
		return decimal.NewFromInt(250).Equal(b.Changes[suite.cashAccount.AccountID]) &&
			decimal.NewFromInt(250).Equal(b.Changes[suite.incomeAccount.AccountID])
	})).Return(&domain.JournalEntry{EntryID: "e1", EntryNumber: "JE-000002", Status: domain.Posted}, nil).Once()

	entry, err := suite.service.SubmitEntry(ctx, input, suite.creator)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, entry.Status)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestSubmitEntry_MissingReference() {
	input := suite.feeInput(100)
	input.Source.Reference = ""

	_, err := suite.service.SubmitEntry(context.Background(), input, suite.creator)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestSubmitEntry_SingleLine() {
	input := suite.feeInput(100)
	input.Lines = input.Lines[:1]

	suite.expectOpenPeriod()

	_, err := suite.service.SubmitEntry(context.Background(), input, suite.creator)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostingServiceTestSuite) TestSubmitEntry_Unbalanced() {
	input := suite.feeInput(100)
	input.Lines[1].Credit = decimal.NewFromInt(90)

	suite.expectOpenPeriod()

	_, err := suite.service.SubmitEntry(context.Background(), input, suite.creator)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnbalancedEntry)
	suite.Contains(err.Error(), "100")
	suite.Contains(err.Error(), "90")
}

func (suite *PostingServiceTestSuite) TestSubmitEntry_LineWithBothSides() {
	input := suite.feeInput(100)
	input.Lines[0].Credit = decimal.NewFromInt(100)
	input.Lines[0].Debit = decimal.NewFromInt(200)
	input.Lines[1].Credit = decimal.NewFromInt(200)

	suite.expectOpenPeriod()

	_, err := suite.service.SubmitEntry(context.Background(), input, suite.creator)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostingServiceTestSuite) TestSubmitEntry_NegativeAmount() {
	input := suite.feeInput(100)
	input.Lines[0].Debit = decimal.NewFromInt(-100)

	suite.expectOpenPeriod()

	_, err := suite.service.SubmitEntry(context.Background(), input, suite.creator)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostingServiceTestSuite) TestSubmitEntry_UnknownAccount() {
	input := suite.feeInput(100)

	suite.expectOpenPeriod()
	// Only the cash account resolves; the income account is missing.
	suite.expectAccounts(suite.cashAccount)

	_, err := suite.service.SubmitEntry(context.Background(), input, suite.creator)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAccount)
}

func (suite *PostingServiceTestSuite) TestSubmitEntry_HeaderAccount() {
	input := suite.feeInput(100)
	input.Lines[0].AccountID = suite.headerAccount.AccountID

	suite.expectOpenPeriod()
	suite.expectAccounts(suite.headerAccount, suite.incomeAccount)

	_, err := suite.service.SubmitEntry(context.Background(), input, suite.creator)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAccount)
}

func (suite *PostingServiceTestSuite) TestSubmitEntry_SoftClosedPeriodRejectsNewEntries() {
	input := suite.feeInput(100)
	year, month := domain.PeriodKeyFor(input.EntryDate)
	suite.mockPeriodRepo.On("FindPeriod", mock.Anything, year, month).
		Return(&domain.FinancialPeriod{Year: year, Month: month, Status: domain.PeriodSoftClose}, nil).Once()

	_, err := suite.service.SubmitEntry(context.Background(), input, suite.creator)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodClosed)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestSubmitEntry_AutoPostOverApprovalLimit() {
	input := suite.feeInput(1000)
	input.AutoPost = true

	suite.expectOpenPeriod()
	suite.expectAccounts(suite.cashAccount, suite.incomeAccount)

	_, err := suite.service.SubmitEntry(context.Background(), input, suite.limitedActor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *PostingServiceTestSuite) TestSubmitEntry_DuplicateReference() {
	ctx := context.Background()
	input := suite.feeInput(100)

	suite.expectOpenPeriod()
	suite.expectAccounts(suite.cashAccount, suite.incomeAccount)
	suite.mockJournalRepo.On("CreateEntry", ctx, mock.Anything).
		Return(nil, apperrors.New(apperrors.CodeDuplicate, "source reference %s already used", input.Source.Reference)).Once()

	_, err := suite.service.SubmitEntry(ctx, input, suite.creator)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *PostingServiceTestSuite) draftEntry(amount int64) *domain.JournalEntry {
	return &domain.JournalEntry{
		EntryID:     uuid.NewString(),
		EntryNumber: "JE-000010",
		EntryDate:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:      domain.Draft,
		TotalDebit:  decimal.NewFromInt(amount),
		TotalCredit: decimal.NewFromInt(amount),
		AuditFields: domain.AuditFields{CreatedBy: suite.creator.ActorID},
	}
}

func (suite *PostingServiceTestSuite) draftLines(entryID string, amount int64) []domain.JournalLine {
	return []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(amount)},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromInt(amount)},
	}
}

func (suite *PostingServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	entry := suite.draftEntry(100)
	lines := suite.draftLines(entry.EntryID, 100)

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.expectOpenPeriod()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(lines, nil).Once()
	suite.expectAccounts(suite.cashAccount, suite.incomeAccount)
	suite.mockJournalRepo.On("PostEntry", ctx, entry.EntryID, mock.Anything, suite.approver.ActorID, mock.Anything).Return(nil).Once()

	posted, err := suite.service.PostEntry(ctx, entry.EntryID, suite.approver)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, posted.Status)
	suite.Require().NotNil(posted.PostedBy)
	suite.Equal(suite.approver.ActorID, *posted.PostedBy)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostEntry_CreatorCannotApproveOwnEntry() {
	ctx := context.Background()
	entry := suite.draftEntry(100)

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.PostEntry(ctx, entry.EntryID, suite.creator)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostEntry_AlreadyPosted() {
	ctx := context.Background()
	entry := suite.draftEntry(100)
	entry.Status = domain.Posted

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.PostEntry(ctx, entry.EntryID, suite.approver)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostingServiceTestSuite) TestPostEntry_OverApprovalLimit() {
	ctx := context.Background()
	entry := suite.draftEntry(10000)

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.PostEntry(ctx, entry.EntryID, suite.limitedActor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *PostingServiceTestSuite) TestPostEntry_AllowedUnderSoftClose() {
	ctx := context.Background()
	entry := suite.draftEntry(100)
	lines := suite.draftLines(entry.EntryID, 100)
	year, month := domain.PeriodKeyFor(entry.EntryDate)

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockPeriodRepo.On("FindPeriod", mock.Anything, year, month).
		Return(&domain.FinancialPeriod{Year: year, Month: month, Status: domain.PeriodSoftClose}, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(lines, nil).Once()
	suite.expectAccounts(suite.cashAccount, suite.incomeAccount)
	suite.mockJournalRepo.On("PostEntry", ctx, entry.EntryID, mock.Anything, suite.approver.ActorID, mock.Anything).Return(nil).Once()

	_, err := suite.service.PostEntry(ctx, entry.EntryID, suite.approver)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostEntry_HardClosedPeriod() {
	ctx := context.Background()
	entry := suite.draftEntry(100)
	year, month := domain.PeriodKeyFor(entry.EntryDate)

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockPeriodRepo.On("FindPeriod", mock.Anything, year, month).
		Return(&domain.FinancialPeriod{Year: year, Month: month, Status: domain.PeriodHardClose}, nil).Once()

	_, err := suite.service.PostEntry(ctx, entry.EntryID, suite.approver)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodClosed)
}

func (suite *PostingServiceTestSuite) postedEntry(amount int64) *domain.JournalEntry {
	entry := suite.draftEntry(amount)
	entry.Status = domain.Posted
	postedBy := suite.approver.ActorID
	postedAt := time.Now()
	entry.PostedBy = &postedBy
	entry.PostedAt = &postedAt
	entry.Source = domain.SourceRef{Module: "manual", EventType: "journal", Reference: "RCPT-77"}
	return entry
}

func (suite *PostingServiceTestSuite) TestReverseEntry_Success() {
	ctx := context.Background()
	original := suite.postedEntry(100)
	lines := suite.draftLines(original.EntryID, 100)

	suite.mockJournalRepo.On("FindEntryByID", ctx, original.EntryID).Return(original, nil).Once()
	suite.expectOpenPeriod()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, original.EntryID).Return(lines, nil).Once()
	suite.expectAccounts(suite.cashAccount, suite.incomeAccount)
	suite.mockJournalRepo.On("ReverseEntry", ctx, original.EntryID, mock.MatchedBy(func(b portsrepo.PostingBundle) bool {
		if !b.Post || b.Entry.ReversedEntryID == nil || *b.Entry.ReversedEntryID != original.EntryID {
			return false
		}
		if b.Entry.Source.Reference != "RCPT-77-REV" || b.Entry.Source.EventType != "reversal" {
			return false
		}
		// Each mirrored line swaps sides against the original.
		return decimal.NewFromInt(100).Equal(b.Lines[0].Credit) && b.Lines[0].Debit.IsZero() &&
			decimal.NewFromInt(100).Equal(b.Lines[1].Debit) && b.Lines[1].Credit.IsZero()
	})).Return(&domain.JournalEntry{EntryID: "rev-1", EntryNumber: "JE-000011", Status: domain.Posted}, nil).Once()

	reversal, err := suite.service.ReverseEntry(ctx, original.EntryID, "posted in error", nil, suite.approver)

	suite.Require().NoError(err)
	suite.Equal("JE-000011", reversal.EntryNumber)
	suite.Len(reversal.Lines, 2)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestReverseEntry_NotPosted() {
	ctx := context.Background()
	entry := suite.draftEntry(100)

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, entry.EntryID, "reason", nil, suite.approver)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotPosted)
}

func (suite *PostingServiceTestSuite) TestReverseEntry_AlreadyReversed() {
	ctx := context.Background()
	entry := suite.postedEntry(100)
	entry.Reversed = true

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, entry.EntryID, "reason", nil, suite.approver)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyReversed)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ReverseEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestReverseEntry_OfReversalRejected() {
	ctx := context.Background()
	entry := suite.postedEntry(100)
	someID := uuid.NewString()
	entry.ReversedEntryID = &someID

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, entry.EntryID, "reason", nil, suite.approver)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "correcting entry")
}

func (suite *PostingServiceTestSuite) TestReverseEntry_HardClosedEffectiveDate() {
	ctx := context.Background()
	entry := suite.postedEntry(100)
	effectiveDate := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	year, month := domain.PeriodKeyFor(effectiveDate)

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	suite.mockPeriodRepo.On("FindPeriod", mock.Anything, year, month).
		Return(&domain.FinancialPeriod{Year: year, Month: month, Status: domain.PeriodHardClose}, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, entry.EntryID, "reason", &effectiveDate, suite.approver)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodClosed)
}

func TestPostingService(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
