package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sokofin/corebank/internal/apperrors"
	"github.com/sokofin/corebank/internal/core/domain"
	portssvc "github.com/sokofin/corebank/internal/core/ports/services"
	"github.com/sokofin/corebank/internal/core/services"
)

type PeriodServiceTestSuite struct {
	suite.Suite
	mockPeriodRepo *MockPeriodRepository
	service        portssvc.PeriodSvcFacade
	actor          domain.Actor
}

func (suite *PeriodServiceTestSuite) SetupTest() {
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.service = services.NewPeriodService(suite.mockPeriodRepo)
	suite.actor = domain.Actor{ActorID: uuid.NewString()}
}

func (suite *PeriodServiceTestSuite) TestGetPeriod_UntrackedIsOpen() {
	ctx := context.Background()
	date := time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)

	suite.mockPeriodRepo.On("FindPeriod", ctx, 2026, time.July).Return(nil, nil).Once()

	period, err := suite.service.GetPeriod(ctx, date)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodOpen, period.Status)
	suite.Equal(2026, period.Year)
	suite.Equal(time.July, period.Month)
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_SoftClose() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("FindPeriod", ctx, 2026, time.March).Return(nil, nil).Once()
	suite.mockPeriodRepo.On("CountUnpostedInPeriod", ctx, 2026, time.March).Return(0, nil).Once()
	suite.mockPeriodRepo.On("UpsertPeriodStatus", ctx, mock.MatchedBy(func(p domain.FinancialPeriod) bool {
		return p.Year == 2026 && p.Month == time.March && p.Status == domain.PeriodSoftClose
	})).Return(nil).Once()

	period, err := suite.service.ClosePeriod(ctx, 2026, time.March, domain.PeriodSoftClose, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodSoftClose, period.Status)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_SoftCloseWithUnpostedDrafts() {
	// Drafts do not block a soft close; they only block the hard close.
	ctx := context.Background()

	suite.mockPeriodRepo.On("FindPeriod", ctx, 2026, time.March).Return(nil, nil).Once()
	suite.mockPeriodRepo.On("CountUnpostedInPeriod", ctx, 2026, time.March).Return(2, nil).Once()
	suite.mockPeriodRepo.On("UpsertPeriodStatus", ctx, mock.MatchedBy(func(p domain.FinancialPeriod) bool {
		return p.Status == domain.PeriodSoftClose
	})).Return(nil).Once()

	period, err := suite.service.ClosePeriod(ctx, 2026, time.March, domain.PeriodSoftClose, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodSoftClose, period.Status)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_HardCloseRequiresAllPosted() {
	ctx := context.Background()
	existing := &domain.FinancialPeriod{Year: 2026, Month: time.March, Status: domain.PeriodSoftClose}

	suite.mockPeriodRepo.On("FindPeriod", ctx, 2026, time.March).Return(existing, nil).Once()
	suite.mockPeriodRepo.On("CountUnpostedInPeriod", ctx, 2026, time.March).Return(3, nil).Once()

	_, err := suite.service.ClosePeriod(ctx, 2026, time.March, domain.PeriodHardClose, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "3 unposted")
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "UpsertPeriodStatus", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_HardCloseSuccess() {
	ctx := context.Background()
	existing := &domain.FinancialPeriod{
		Year: 2026, Month: time.March, Status: domain.PeriodSoftClose,
		AuditFields: domain.AuditFields{CreatedBy: "someone-earlier"},
	}

	suite.mockPeriodRepo.On("FindPeriod", ctx, 2026, time.March).Return(existing, nil).Once()
	suite.mockPeriodRepo.On("CountUnpostedInPeriod", ctx, 2026, time.March).Return(0, nil).Once()
	suite.mockPeriodRepo.On("UpsertPeriodStatus", ctx, mock.MatchedBy(func(p domain.FinancialPeriod) bool {
		// The original close's audit trail is preserved.
		return p.Status == domain.PeriodHardClose && p.CreatedBy == "someone-earlier"
	})).Return(nil).Once()

	period, err := suite.service.ClosePeriod(ctx, 2026, time.March, domain.PeriodHardClose, suite.actor)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodHardClose, period.Status)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_NoBackwardTransition() {
	ctx := context.Background()
	existing := &domain.FinancialPeriod{Year: 2026, Month: time.March, Status: domain.PeriodHardClose}

	suite.mockPeriodRepo.On("FindPeriod", ctx, 2026, time.March).Return(existing, nil).Once()

	_, err := suite.service.ClosePeriod(ctx, 2026, time.March, domain.PeriodSoftClose, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "UpsertPeriodStatus", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_SameStatusRejected() {
	ctx := context.Background()
	existing := &domain.FinancialPeriod{Year: 2026, Month: time.March, Status: domain.PeriodSoftClose}

	suite.mockPeriodRepo.On("FindPeriod", ctx, 2026, time.March).Return(existing, nil).Once()

	_, err := suite.service.ClosePeriod(ctx, 2026, time.March, domain.PeriodSoftClose, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_OpenIsNotACloseTarget() {
	_, err := suite.service.ClosePeriod(context.Background(), 2026, time.March, domain.PeriodOpen, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "FindPeriod", mock.Anything, mock.Anything, mock.Anything)
}

func TestPeriodService(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}

func TestPeriodStatusTransitions(t *testing.T) {
	cases := []struct {
		from domain.PeriodStatus
		to   domain.PeriodStatus
		want bool
	}{
		{domain.PeriodOpen, domain.PeriodSoftClose, true},
		{domain.PeriodOpen, domain.PeriodHardClose, true},
		{domain.PeriodSoftClose, domain.PeriodHardClose, true},
		{domain.PeriodSoftClose, domain.PeriodOpen, false},
		{domain.PeriodHardClose, domain.PeriodSoftClose, false},
		{domain.PeriodHardClose, domain.PeriodOpen, false},
		{domain.PeriodOpen, domain.PeriodOpen, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
