package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kassilabs/kassi_backend/internal/apperrors"
	"github.com/kassilabs/kassi_backend/internal/core/domain"
	portssvc "github.com/kassilabs/kassi_backend/internal/core/ports/services"
	"github.com/kassilabs/kassi_backend/internal/core/services"
	"github.com/kassilabs/kassi_backend/internal/dto"
)

// MockListingRepository is a mock type for the ListingRepositoryFacade interface
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) FindListingByID(ctx context.Context, listingID string) (*domain.Listing, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingRepository) ListListings(ctx context.Context) ([]domain.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Listing), args.Error(1)
}

func (m *MockListingRepository) SaveListing(ctx context.Context, listing domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) UpdateListing(ctx context.Context, listing domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) DeleteListing(ctx context.Context, listingID string) error {
	args := m.Called(ctx, listingID)
	return args.Error(0)
}

func (m *MockListingRepository) IncrementTimesViewed(ctx context.Context, listingID string) error {
	args := m.Called(ctx, listingID)
	return args.Error(0)
}

func (m *MockListingRepository) CloseListing(ctx context.Context, listingID string, event domain.RealizationEvent) error {
	args := m.Called(ctx, listingID, event)
	return args.Error(0)
}

// MockEventReader is a mock type for the EventReader interface
type MockEventReader struct {
	mock.Mock
}

func (m *MockEventReader) FindEventByListingID(ctx context.Context, listingID string) (*domain.RealizationEvent, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RealizationEvent), args.Error(1)
}

func (m *MockEventReader) ListCommentsForAuthor(ctx context.Context, authorID string) ([]domain.Comment, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

// MockAttachmentStore is a mock type for the AttachmentStore interface
type MockAttachmentStore struct {
	mock.Mock
}

func (m *MockAttachmentStore) Supports(contentType string) bool {
	args := m.Called(contentType)
	return args.Bool(0)
}

func (m *MockAttachmentStore) Store(ctx context.Context, listingID string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, listingID, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockAttachmentStore) Delete(ctx context.Context, listingID string) error {
	args := m.Called(ctx, listingID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type ListingServiceTestSuite struct {
	suite.Suite
	mockRepo   *MockListingRepository
	mockEvents *MockEventReader
	mockStore  *MockAttachmentStore
	service    portssvc.ListingSvcFacade
}

func (suite *ListingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockListingRepository)
	suite.mockEvents = new(MockEventReader)
	suite.mockStore = new(MockAttachmentStore)
	suite.service = services.NewListingService(suite.mockRepo, suite.mockEvents, suite.mockStore)
}

func validCreateRequest() dto.CreateListingRequest {
	return dto.CreateListingRequest{
		Category:  string(domain.CategorySell),
		Title:     "Myydään polkupyörä",
		Content:   "Hyväkuntoinen kaupunkipyörä.",
		GoodThru:  time.Now().Add(14 * 24 * time.Hour),
		Languages: []string{"fi", "en"},
	}
}

// --- Test Cases ---

func (suite *ListingServiceTestSuite) TestCreateListing_Success() {
	ctx := context.Background()
	authorID := uuid.NewString()
	req := validCreateRequest()

	suite.mockRepo.On("SaveListing", ctx, mock.AnythingOfType("domain.Listing")).Return(nil).Once()

	created, err := suite.service.CreateListing(ctx, authorID, req, nil)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.ListingID)
	suite.Equal(authorID, created.AuthorID)
	suite.Equal(domain.StatusOpen, created.Status)
	suite.Equal(domain.VisibilityEverybody, created.Visibility)
	suite.Equal(authorID, created.CreatedBy)
	suite.WithinDuration(time.Now(), created.CreatedAt, time.Second)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ListingServiceTestSuite) TestCreateListing_ValidationFailure() {
	ctx := context.Background()
	req := validCreateRequest()
	req.Title = "   "
	req.GoodThru = time.Now().Add(-time.Hour)

	created, err := suite.service.CreateListing(ctx, uuid.NewString(), req, nil)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)

	var fieldErrs apperrors.FieldErrors
	suite.Require().ErrorAs(err, &fieldErrs)
	suite.Contains(fieldErrs, "title")
	suite.Contains(fieldErrs, "good_thru")

	// Nothing may be persisted for an invalid draft.
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveListing", mock.Anything, mock.Anything)
}

func (suite *ListingServiceTestSuite) TestCreateListing_UnsupportedAttachmentType() {
	ctx := context.Background()
	req := validCreateRequest()
	attachment := &dto.Attachment{
		FileName:    "manual.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-"),
	}

	suite.mockStore.On("Supports", "application/pdf").Return(false).Once()

	created, err := suite.service.CreateListing(ctx, uuid.NewString(), req, attachment)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)

	var fieldErrs apperrors.FieldErrors
	suite.Require().ErrorAs(err, &fieldErrs)
	suite.Contains(fieldErrs, "image_file")

	suite.mockRepo.AssertNotCalled(suite.T(), "SaveListing", mock.Anything, mock.Anything)
	suite.mockStore.AssertNotCalled(suite.T(), "Store", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *ListingServiceTestSuite) TestCreateListing_WithAttachment() {
	ctx := context.Background()
	authorID := uuid.NewString()
	req := validCreateRequest()
	attachment := &dto.Attachment{
		FileName:    "bike.png",
		ContentType: "image/png",
		Data:        []byte("png-bytes"),
	}

	suite.mockStore.On("Supports", "image/png").Return(true).Once()
	suite.mockRepo.On("SaveListing", ctx, mock.AnythingOfType("domain.Listing")).Return(nil).Once()
	suite.mockStore.On("Store", ctx, mock.AnythingOfType("string"), attachment.Data, "image/png").
		Return("some-id.png", nil).Once()
	suite.mockRepo.On("UpdateListing", ctx, mock.MatchedBy(func(l domain.Listing) bool {
		return l.ImageKey == "some-id.png"
	})).Return(nil).Once()

	created, err := suite.service.CreateListing(ctx, authorID, req, attachment)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal("some-id.png", created.ImageKey)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *ListingServiceTestSuite) TestCreateListing_AttachmentStoreFailureRollsBackRow() {
	ctx := context.Background()
	req := validCreateRequest()
	attachment := &dto.Attachment{
		FileName:    "bike.jpg",
		ContentType: "image/jpeg",
		Data:        []byte("jpeg-bytes"),
	}
	storeErr := errors.New("connection refused")

	suite.mockStore.On("Supports", "image/jpeg").Return(true).Once()
	suite.mockRepo.On("SaveListing", ctx, mock.AnythingOfType("domain.Listing")).Return(nil).Once()
	suite.mockStore.On("Store", ctx, mock.AnythingOfType("string"), attachment.Data, "image/jpeg").
		Return("", storeErr).Once()
	suite.mockRepo.On("DeleteListing", ctx, mock.AnythingOfType("string")).Return(nil).Once()

	created, err := suite.service.CreateListing(ctx, uuid.NewString(), req, attachment)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, storeErr)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *ListingServiceTestSuite) TestUpdateListing_NotAuthor() {
	ctx := context.Background()
	listingID := uuid.NewString()
	existing := &domain.Listing{
		ListingID: listingID,
		AuthorID:  "owner-1",
		Category:  domain.CategorySell,
		Title:     "Otsikko",
		Content:   "Sisältö",
		GoodThru:  time.Now().Add(24 * time.Hour),
		Status:    domain.StatusOpen,
		Languages: []string{"fi"},
	}

	suite.mockRepo.On("FindListingByID", ctx, listingID).Return(existing, nil).Once()

	newTitle := "Hijacked"
	updated, err := suite.service.UpdateListing(ctx, listingID, "someone-else", dto.UpdateListingRequest{Title: &newTitle})

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotAuthorized)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateListing", mock.Anything, mock.Anything)
}

func (suite *ListingServiceTestSuite) TestUpdateListing_Success() {
	ctx := context.Background()
	listingID := uuid.NewString()
	existing := &domain.Listing{
		ListingID:  listingID,
		AuthorID:   "owner-1",
		Category:   domain.CategorySell,
		Title:      "Otsikko",
		Content:    "Sisältö",
		GoodThru:   time.Now().Add(24 * time.Hour),
		Status:     domain.StatusOpen,
		Languages:  []string{"fi"},
		Visibility: domain.VisibilityEverybody,
	}

	suite.mockRepo.On("FindListingByID", ctx, listingID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateListing", ctx, mock.MatchedBy(func(l domain.Listing) bool {
		return l.Title == "Uusi otsikko" && l.Content == "Sisältö"
	})).Return(nil).Once()

	newTitle := "Uusi otsikko"
	updated, err := suite.service.UpdateListing(ctx, listingID, "owner-1", dto.UpdateListingRequest{Title: &newTitle})

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.Equal("Uusi otsikko", updated.Title)
	suite.Equal("owner-1", updated.LastUpdatedBy)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ListingServiceTestSuite) TestDeleteListing_CascadesAttachment() {
	ctx := context.Background()
	listingID := uuid.NewString()
	existing := &domain.Listing{ListingID: listingID, AuthorID: "owner-1", Status: domain.StatusOpen}

	suite.mockRepo.On("FindListingByID", ctx, listingID).Return(existing, nil).Once()
	suite.mockRepo.On("DeleteListing", ctx, listingID).Return(nil).Once()
	suite.mockStore.On("Delete", ctx, listingID).Return(nil).Once()

	err := suite.service.DeleteListing(ctx, listingID, "owner-1")

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *ListingServiceTestSuite) TestDeleteListing_AttachmentCleanupFailureIsWarning() {
	ctx := context.Background()
	listingID := uuid.NewString()
	existing := &domain.Listing{ListingID: listingID, AuthorID: "owner-1", Status: domain.StatusOpen}

	suite.mockRepo.On("FindListingByID", ctx, listingID).Return(existing, nil).Once()
	suite.mockRepo.On("DeleteListing", ctx, listingID).Return(nil).Once()
	suite.mockStore.On("Delete", ctx, listingID).Return(errors.New("bucket unavailable")).Once()

	err := suite.service.DeleteListing(ctx, listingID, "owner-1")

	// The row is gone; the cleanup failure is surfaced as a distinct outcome.
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAttachmentCleanup)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ListingServiceTestSuite) TestDeleteListing_NotAuthor() {
	ctx := context.Background()
	listingID := uuid.NewString()
	existing := &domain.Listing{ListingID: listingID, AuthorID: "owner-1"}

	suite.mockRepo.On("FindListingByID", ctx, listingID).Return(existing, nil).Once()

	err := suite.service.DeleteListing(ctx, listingID, "intruder")

	suite.Require().ErrorIs(err, apperrors.ErrNotAuthorized)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteListing", mock.Anything, mock.Anything)
	suite.mockStore.AssertNotCalled(suite.T(), "Delete", mock.Anything, mock.Anything)
}

func (suite *ListingServiceTestSuite) TestCloseListing_Success() {
	ctx := context.Background()
	listingID := uuid.NewString()
	existing := &domain.Listing{ListingID: listingID, AuthorID: "owner-1", Status: domain.StatusOpen}

	suite.mockRepo.On("FindListingByID", ctx, listingID).Return(existing, nil).Once()
	suite.mockRepo.On("CloseListing", ctx, listingID, mock.AnythingOfType("domain.RealizationEvent")).Return(nil).Once()

	req := dto.CloseListingRequest{RealizerID: "buyer-7", Comment: "Hyvä kauppa!"}
	event, err := suite.service.CloseListing(ctx, listingID, "owner-1", req)

	suite.Require().NoError(err)
	suite.Require().NotNil(event)
	suite.NotEmpty(event.EventID)
	suite.Equal(domain.EventableTypeListing, event.EventableType)
	suite.Equal(listingID, event.EventableID)
	suite.Equal("buyer-7", event.RealizerID)
	suite.Require().Len(event.Comments, 1)
	suite.Equal("Hyvä kauppa!", event.Comments[0].TextContent)
	suite.Equal("owner-1", event.Comments[0].AuthorID)
	suite.Equal(0, event.Comments[0].Ordinal)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ListingServiceTestSuite) TestCloseListing_WithoutComment() {
	ctx := context.Background()
	listingID := uuid.NewString()
	existing := &domain.Listing{ListingID: listingID, AuthorID: "owner-1", Status: domain.StatusOpen}

	suite.mockRepo.On("FindListingByID", ctx, listingID).Return(existing, nil).Once()
	suite.mockRepo.On("CloseListing", ctx, listingID, mock.MatchedBy(func(e domain.RealizationEvent) bool {
		return len(e.Comments) == 0
	})).Return(nil).Once()

	event, err := suite.service.CloseListing(ctx, listingID, "owner-1", dto.CloseListingRequest{RealizerID: "buyer-7"})

	suite.Require().NoError(err)
	suite.Empty(event.Comments)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ListingServiceTestSuite) TestCloseListing_AlreadyClosed() {
	ctx := context.Background()
	listingID := uuid.NewString()
	existing := &domain.Listing{ListingID: listingID, AuthorID: "owner-1", Status: domain.StatusClosed}

	suite.mockRepo.On("FindListingByID", ctx, listingID).Return(existing, nil).Once()

	event, err := suite.service.CloseListing(ctx, listingID, "owner-1", dto.CloseListingRequest{RealizerID: "buyer-7"})

	suite.Require().ErrorIs(err, apperrors.ErrAlreadyClosed)
	suite.Nil(event)
	suite.mockRepo.AssertNotCalled(suite.T(), "CloseListing", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ListingServiceTestSuite) TestCloseListing_LostRace() {
	ctx := context.Background()
	listingID := uuid.NewString()
	existing := &domain.Listing{ListingID: listingID, AuthorID: "owner-1", Status: domain.StatusOpen}

	suite.mockRepo.On("FindListingByID", ctx, listingID).Return(existing, nil).Once()
	suite.mockRepo.On("CloseListing", ctx, listingID, mock.AnythingOfType("domain.RealizationEvent")).
		Return(apperrors.ErrAlreadyClosed).Once()

	event, err := suite.service.CloseListing(ctx, listingID, "owner-1", dto.CloseListingRequest{RealizerID: "buyer-7"})

	suite.Require().ErrorIs(err, apperrors.ErrAlreadyClosed)
	suite.Nil(event)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ListingServiceTestSuite) TestCloseListing_NotAuthorized() {
	ctx := context.Background()
	listingID := uuid.NewString()
	existing := &domain.Listing{ListingID: listingID, AuthorID: "owner-1", Status: domain.StatusOpen}

	suite.mockRepo.On("FindListingByID", ctx, listingID).Return(existing, nil).Once()

	event, err := suite.service.CloseListing(ctx, listingID, "intruder", dto.CloseListingRequest{RealizerID: "buyer-7"})

	suite.Require().ErrorIs(err, apperrors.ErrNotAuthorized)
	suite.Nil(event)
	suite.mockRepo.AssertNotCalled(suite.T(), "CloseListing", mock.Anything, mock.Anything, mock.Anything)
}

// stubAuthorizer grants closing to a fixed set of actors.
type stubAuthorizer struct {
	allowed map[string]bool
}

func (s *stubAuthorizer) MayClose(_ context.Context, actorID string, _ domain.Listing) error {
	if s.allowed[actorID] {
		return nil
	}
	return apperrors.ErrNotAuthorized
}

func (suite *ListingServiceTestSuite) TestCloseListing_DelegatedAuthorizer() {
	ctx := context.Background()
	listingID := uuid.NewString()
	existing := &domain.Listing{ListingID: listingID, AuthorID: "owner-1", Status: domain.StatusOpen}

	service := services.NewListingService(suite.mockRepo, suite.mockEvents, suite.mockStore,
		services.WithListingAuthorizer(&stubAuthorizer{allowed: map[string]bool{"moderator-1": true}}))

	suite.mockRepo.On("FindListingByID", ctx, listingID).Return(existing, nil).Twice()
	suite.mockRepo.On("CloseListing", ctx, listingID, mock.AnythingOfType("domain.RealizationEvent")).Return(nil).Once()

	event, err := service.CloseListing(ctx, listingID, "moderator-1", dto.CloseListingRequest{RealizerID: "buyer-7"})
	suite.Require().NoError(err)
	suite.NotNil(event)

	// The author is no longer implicitly allowed once an authorizer is injected.
	_, err = service.CloseListing(ctx, listingID, "owner-1", dto.CloseListingRequest{RealizerID: "buyer-7"})
	suite.Require().ErrorIs(err, apperrors.ErrNotAuthorized)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ListingServiceTestSuite) TestShowListing_IncrementsViewCounter() {
	ctx := context.Background()
	listingID := uuid.NewString()
	existing := &domain.Listing{ListingID: listingID, AuthorID: "owner-1", Status: domain.StatusOpen, TimesViewed: 3}

	suite.mockRepo.On("FindListingByID", ctx, listingID).Return(existing, nil).Once()
	suite.mockRepo.On("IncrementTimesViewed", ctx, listingID).Return(nil).Once()

	shown, err := suite.service.ShowListing(ctx, listingID)

	suite.Require().NoError(err)
	suite.Equal(int64(4), shown.TimesViewed)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ListingServiceTestSuite) TestShowListing_CounterFailureDoesNotBreakRead() {
	ctx := context.Background()
	listingID := uuid.NewString()
	existing := &domain.Listing{ListingID: listingID, Status: domain.StatusOpen, TimesViewed: 3}

	suite.mockRepo.On("FindListingByID", ctx, listingID).Return(existing, nil).Once()
	suite.mockRepo.On("IncrementTimesViewed", ctx, listingID).Return(errors.New("deadlock")).Once()

	shown, err := suite.service.ShowListing(ctx, listingID)

	suite.Require().NoError(err)
	suite.Equal(int64(3), shown.TimesViewed)
}

func (suite *ListingServiceTestSuite) TestPickRandomListing_FiltersEligibility() {
	ctx := context.Background()
	listings := []domain.Listing{
		{ListingID: "open-public", Status: domain.StatusOpen, Visibility: domain.VisibilityEverybody},
		{ListingID: "closed", Status: domain.StatusClosed, Visibility: domain.VisibilityEverybody},
		{ListingID: "members-only", Status: domain.StatusOpen, Visibility: domain.VisibilityMembers},
	}

	suite.mockRepo.On("ListListings", ctx).Return(listings, nil)

	picked, err := suite.service.PickRandomListing(ctx)

	suite.Require().NoError(err)
	suite.Equal("open-public", picked.ListingID)
}

func (suite *ListingServiceTestSuite) TestPickRandomListing_EventuallyReturnsEveryEligible() {
	ctx := context.Background()
	listings := []domain.Listing{
		{ListingID: "a", Status: domain.StatusOpen, Visibility: domain.VisibilityEverybody},
		{ListingID: "b", Status: domain.StatusOpen, Visibility: domain.VisibilityEverybody},
	}

	suite.mockRepo.On("ListListings", ctx).Return(listings, nil)

	seen := map[string]bool{}
	for i := 0; i < 200 && len(seen) < 2; i++ {
		picked, err := suite.service.PickRandomListing(ctx)
		suite.Require().NoError(err)
		seen[picked.ListingID] = true
	}
	suite.Len(seen, 2)
}

func (suite *ListingServiceTestSuite) TestPickRandomListing_NoneEligible() {
	ctx := context.Background()
	listings := []domain.Listing{
		{ListingID: "closed", Status: domain.StatusClosed, Visibility: domain.VisibilityEverybody},
	}

	suite.mockRepo.On("ListListings", ctx).Return(listings, nil).Once()

	picked, err := suite.service.PickRandomListing(ctx)

	suite.Require().ErrorIs(err, apperrors.ErrNoEligibleListing)
	suite.Nil(picked)
}

func (suite *ListingServiceTestSuite) TestSearchListings_DelegatesToFilter() {
	ctx := context.Background()
	listings := []domain.Listing{
		{ListingID: "l1", Title: "Myydään otsikko", Content: "sisältö", Status: domain.StatusOpen, Category: domain.CategorySell},
		{ListingID: "l2", Title: "Toinen ilmoitus", Content: "muuta", Status: domain.StatusOpen, Category: domain.CategoryGive},
	}

	suite.mockRepo.On("ListListings", ctx).Return(listings, nil).Once()

	results, err := suite.service.SearchListings(ctx, "otsikko", true, "")

	suite.Require().NoError(err)
	suite.Require().Len(results, 1)
	suite.Equal("l1", results[0].ListingID)
}

func (suite *ListingServiceTestSuite) TestGetRealizationEvent() {
	ctx := context.Background()
	event := &domain.RealizationEvent{
		EventID:       uuid.NewString(),
		EventableType: domain.EventableTypeListing,
		EventableID:   "l1",
		RealizerID:    "buyer-7",
	}

	suite.mockEvents.On("FindEventByListingID", ctx, "l1").Return(event, nil).Once()

	got, err := suite.service.GetRealizationEvent(ctx, "l1")

	suite.Require().NoError(err)
	suite.Equal(event, got)
	suite.mockEvents.AssertExpectations(suite.T())
}

func (suite *ListingServiceTestSuite) TestListCommentsForAuthor() {
	ctx := context.Background()
	comments := []domain.Comment{
		{CommentID: "c1", TextContent: "Kiitos kaupoista"},
	}

	suite.mockEvents.On("ListCommentsForAuthor", ctx, "owner-1").Return(comments, nil).Once()

	got, err := suite.service.ListCommentsForAuthor(ctx, "owner-1")

	suite.Require().NoError(err)
	suite.Equal(comments, got)
	suite.mockEvents.AssertExpectations(suite.T())
}

func (suite *ListingServiceTestSuite) TestGetListingByID_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindListingByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	listing, err := suite.service.GetListingByID(ctx, "missing")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(listing)
}

// --- Run Suite ---

func TestListingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ListingServiceTestSuite))
}
