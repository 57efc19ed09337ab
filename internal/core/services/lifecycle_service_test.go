package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/erpmobile/stock_journal_engine/internal/apperrors"
	"github.com/erpmobile/stock_journal_engine/internal/core/domain"
	portssvc "github.com/erpmobile/stock_journal_engine/internal/core/ports/services"
	"github.com/erpmobile/stock_journal_engine/internal/core/services"
)

type LifecycleServiceTestSuite struct {
	suite.Suite
	mockGateway *MockSubmissionGateway
	mockCatalog *MockProductCatalog
	service     portssvc.LifecycleSvcFacade
	ctx         context.Context
}

func (s *LifecycleServiceTestSuite) SetupTest() {
	s.mockGateway = new(MockSubmissionGateway)
	s.mockCatalog = new(MockProductCatalog)
	s.service = services.NewLifecycleService(s.mockGateway, s.mockCatalog)
	s.ctx = context.Background()
}

func TestLifecycleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LifecycleServiceTestSuite))
}

func draftEntry() *domain.JournalEntry {
	return &domain.JournalEntry{
		EntryID:     "je-1",
		EntryType:   domain.Consumption,
		JournalDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Status:      domain.Draft,
		CanEdit:     true,
		CanPost:     true,
		CanCancel:   false,
		Items: []domain.EntryItem{
			{ItemID: "item-1", ProductID: "prod-1", ProductName: "Steel Rod", Unit: "kg", MovementType: domain.Out, Quantity: decimal.NewFromInt(3), Rate: decimal.RequireFromString("42.50")},
		},
	}
}

func (s *LifecycleServiceTestSuite) TestPostEntry_Success() {
	entry := draftEntry()
	posted := &domain.JournalEntry{EntryID: "je-1", Status: domain.Posted, CanCancel: true}
	s.mockGateway.On("GetEntry", s.ctx, "je-1").Return(entry, nil).Once()
	s.mockCatalog.On("FetchCatalog", s.ctx).Return(testSuiteCatalog(), nil).Once()
	s.mockGateway.On("PostEntry", s.ctx, "je-1").Return(posted, nil).Once()

	result, err := s.service.PostEntry(s.ctx, "je-1")

	s.Require().NoError(err)
	s.Equal(domain.Posted, result.Status)
	s.mockGateway.AssertExpectations(s.T())
}

func (s *LifecycleServiceTestSuite) TestPostEntry_GuardRejectsWhenNotPostable() {
	entry := draftEntry()
	entry.Status = domain.Posted
	entry.CanPost = false
	s.mockGateway.On("GetEntry", s.ctx, "je-1").Return(entry, nil).Once()

	_, err := s.service.PostEntry(s.ctx, "je-1")

	s.ErrorIs(err, apperrors.ErrTransitionNotAllowed)
	s.mockGateway.AssertNotCalled(s.T(), "PostEntry", mock.Anything, mock.Anything)
}

func (s *LifecycleServiceTestSuite) TestPostEntry_LocalValidationBlocksBrokenDraft() {
	entry := draftEntry()
	entry.Items[0].Quantity = decimal.Zero
	s.mockGateway.On("GetEntry", s.ctx, "je-1").Return(entry, nil).Once()
	s.mockCatalog.On("FetchCatalog", s.ctx).Return(testSuiteCatalog(), nil).Once()

	_, err := s.service.PostEntry(s.ctx, "je-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	var errs domain.ValidationErrors
	s.Require().ErrorAs(err, &errs)
	s.True(errs.HasKind(domain.InvalidQuantity))
	s.mockGateway.AssertNotCalled(s.T(), "PostEntry", mock.Anything, mock.Anything)
}

func (s *LifecycleServiceTestSuite) TestCancelEntry_Success() {
	entry := draftEntry()
	entry.Status = domain.Posted
	entry.CanPost = false
	entry.CanCancel = true
	cancelled := &domain.JournalEntry{EntryID: "je-1", Status: domain.Cancelled}
	s.mockGateway.On("GetEntry", s.ctx, "je-1").Return(entry, nil).Once()
	s.mockGateway.On("CancelEntry", s.ctx, "je-1").Return(cancelled, nil).Once()

	result, err := s.service.CancelEntry(s.ctx, "je-1")

	s.Require().NoError(err)
	s.Equal(domain.Cancelled, result.Status)
}

func (s *LifecycleServiceTestSuite) TestCancelEntry_GuardRejectsCancelledEntry() {
	entry := draftEntry()
	entry.Status = domain.Cancelled
	entry.CanCancel = false
	s.mockGateway.On("GetEntry", s.ctx, "je-1").Return(entry, nil).Once()

	_, err := s.service.CancelEntry(s.ctx, "je-1")

	s.ErrorIs(err, apperrors.ErrTransitionNotAllowed)
	s.mockGateway.AssertNotCalled(s.T(), "CancelEntry", mock.Anything, mock.Anything)
}

func (s *LifecycleServiceTestSuite) TestDeleteEntry_DraftOnly() {
	entry := draftEntry()
	s.mockGateway.On("GetEntry", s.ctx, "je-1").Return(entry, nil).Once()
	s.mockGateway.On("DeleteEntry", s.ctx, "je-1").Return(nil).Once()

	s.Require().NoError(s.service.DeleteEntry(s.ctx, "je-1"))

	posted := draftEntry()
	posted.Status = domain.Posted
	s.mockGateway.On("GetEntry", s.ctx, "je-2").Return(posted, nil).Once()

	err := s.service.DeleteEntry(s.ctx, "je-2")
	s.ErrorIs(err, apperrors.ErrTransitionNotAllowed)
}

func (s *LifecycleServiceTestSuite) TestGetEntry_PassesThroughNotFound() {
	s.mockGateway.On("GetEntry", s.ctx, "je-404").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.GetEntry(s.ctx, "je-404")
	s.ErrorIs(err, apperrors.ErrNotFound)
}
