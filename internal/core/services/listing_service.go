package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/kassilabs/kassi_backend/internal/apperrors"
	"github.com/kassilabs/kassi_backend/internal/core/domain"
	portsrepo "github.com/kassilabs/kassi_backend/internal/core/ports/repositories"
	portssvc "github.com/kassilabs/kassi_backend/internal/core/ports/services"
	"github.com/kassilabs/kassi_backend/internal/core/search"
	"github.com/kassilabs/kassi_backend/internal/dto"
)

// listingServiceImpl implements the ListingSvcFacade interface
type listingServiceImpl struct {
	BaseService
	listingRepo portsrepo.ListingRepositoryFacade
	eventRepo   portsrepo.EventReader
	attachments portsrepo.AttachmentStore
	cache       portsrepo.ListingCache
	authorizer  portssvc.ListingAuthorizerSvc
}

// ListingServiceOption is a functional option for configuring the listing service
type ListingServiceOption func(*listingServiceImpl)

// WithListingCache adds a read-through cache for single-listing lookups
func WithListingCache(cache portsrepo.ListingCache) ListingServiceOption {
	return func(s *listingServiceImpl) {
		s.cache = cache
	}
}

// WithListingAuthorizer replaces the default author-only close predicate
func WithListingAuthorizer(authorizer portssvc.ListingAuthorizerSvc) ListingServiceOption {
	return func(s *listingServiceImpl) {
		s.authorizer = authorizer
	}
}

// NewListingService creates a new listing service with the provided options
func NewListingService(
	listingRepo portsrepo.ListingRepositoryFacade,
	eventRepo portsrepo.EventReader,
	attachments portsrepo.AttachmentStore,
	options ...ListingServiceOption,
) portssvc.ListingSvcFacade {
	svc := &listingServiceImpl{
		listingRepo: listingRepo,
		eventRepo:   eventRepo,
		attachments: attachments,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure listingServiceImpl implements the ListingSvcFacade interface
var _ portssvc.ListingSvcFacade = (*listingServiceImpl)(nil)

func (s *listingServiceImpl) CreateListing(ctx context.Context, authorID string, req dto.CreateListingRequest, attachment *dto.Attachment) (*domain.Listing, error) {
	now := time.Now()

	visibility := domain.Visibility(req.Visibility)
	if visibility == "" {
		visibility = domain.VisibilityEverybody
	}

	listing := domain.Listing{
		ListingID:  uuid.NewString(),
		AuthorID:   authorID,
		Category:   domain.Category(req.Category),
		Title:      req.Title,
		Content:    req.Content,
		GoodThru:   req.GoodThru,
		Status:     domain.StatusOpen,
		Languages:  req.Languages,
		Visibility: visibility,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     authorID,
			LastUpdatedAt: now,
			LastUpdatedBy: authorID,
		},
	}

	errs := ValidateListingDraft(listing, now)
	// The attachment content-type check belongs to the same validation round:
	// a rejected image must leave no row behind.
	if attachment != nil && !s.attachments.Supports(attachment.ContentType) {
		errs.Add("image_file", fmt.Sprintf("%q is not an accepted image content type", attachment.ContentType))
	}
	if errs.HasErrors() {
		s.LogWarn(ctx, "Listing draft failed validation",
			slog.String("author_id", authorID),
			slog.String("violations", errs.Error()))
		return nil, errs
	}

	if err := s.listingRepo.SaveListing(ctx, listing); err != nil {
		s.LogError(ctx, err, "Failed to save listing",
			slog.String("listing_id", listing.ListingID))
		return nil, err
	}

	if attachment != nil {
		key, err := s.attachments.Store(ctx, listing.ListingID, attachment.Data, attachment.ContentType)
		if err != nil {
			// Roll the row back so no listing exists without its promised image.
			s.LogError(ctx, err, "Failed to store attachment, rolling back listing",
				slog.String("listing_id", listing.ListingID))
			if delErr := s.listingRepo.DeleteListing(ctx, listing.ListingID); delErr != nil {
				s.LogError(ctx, delErr, "Compensating listing delete failed",
					slog.String("listing_id", listing.ListingID))
			}
			return nil, fmt.Errorf("failed to store attachment for listing %s: %w", listing.ListingID, err)
		}

		listing.ImageKey = key
		if err := s.listingRepo.UpdateListing(ctx, listing); err != nil {
			s.LogError(ctx, err, "Failed to record attachment key, rolling back",
				slog.String("listing_id", listing.ListingID))
			if delErr := s.attachments.Delete(ctx, listing.ListingID); delErr != nil {
				s.LogError(ctx, delErr, "Compensating attachment delete failed",
					slog.String("listing_id", listing.ListingID))
			}
			if delErr := s.listingRepo.DeleteListing(ctx, listing.ListingID); delErr != nil {
				s.LogError(ctx, delErr, "Compensating listing delete failed",
					slog.String("listing_id", listing.ListingID))
			}
			return nil, err
		}
	}

	s.LogInfo(ctx, "Listing created",
		slog.String("listing_id", listing.ListingID),
		slog.String("author_id", authorID),
		slog.Bool("has_attachment", attachment != nil))
	return &listing, nil
}

func (s *listingServiceImpl) UpdateListing(ctx context.Context, listingID string, authorID string, req dto.UpdateListingRequest) (*domain.Listing, error) {
	listing, err := s.listingRepo.FindListingByID(ctx, listingID)
	if err != nil {
		s.LogWarn(ctx, "Listing to update not found", slog.String("listing_id", listingID))
		return nil, err
	}

	if listing.AuthorID != authorID {
		s.LogWarn(ctx, "Update rejected, actor is not the author",
			slog.String("listing_id", listingID),
			slog.String("author_id", listing.AuthorID),
			slog.String("actor_id", authorID))
		return nil, apperrors.ErrNotAuthorized
	}

	merged := *listing
	if req.Category != nil {
		merged.Category = domain.Category(*req.Category)
	}
	if req.Title != nil {
		merged.Title = *req.Title
	}
	if req.Content != nil {
		merged.Content = *req.Content
	}
	if req.GoodThru != nil {
		merged.GoodThru = *req.GoodThru
	}
	if req.Languages != nil {
		merged.Languages = req.Languages
	}
	if req.Visibility != nil {
		merged.Visibility = domain.Visibility(*req.Visibility)
	}

	now := time.Now()
	if errs := ValidateListingDraft(merged, now); errs.HasErrors() {
		s.LogWarn(ctx, "Listing update failed validation",
			slog.String("listing_id", listingID),
			slog.String("violations", errs.Error()))
		return nil, errs
	}

	merged.LastUpdatedAt = now
	merged.LastUpdatedBy = authorID

	if err := s.listingRepo.UpdateListing(ctx, merged); err != nil {
		s.LogError(ctx, err, "Failed to update listing", slog.String("listing_id", listingID))
		return nil, err
	}
	s.invalidateCache(ctx, listingID)

	s.LogInfo(ctx, "Listing updated", slog.String("listing_id", listingID))
	return &merged, nil
}

func (s *listingServiceImpl) DeleteListing(ctx context.Context, listingID string, authorID string) error {
	listing, err := s.listingRepo.FindListingByID(ctx, listingID)
	if err != nil {
		return err
	}

	if listing.AuthorID != authorID {
		s.LogWarn(ctx, "Delete rejected, actor is not the author",
			slog.String("listing_id", listingID),
			slog.String("actor_id", authorID))
		return apperrors.ErrNotAuthorized
	}

	if err := s.listingRepo.DeleteListing(ctx, listingID); err != nil {
		s.LogError(ctx, err, "Failed to delete listing", slog.String("listing_id", listingID))
		return err
	}
	s.invalidateCache(ctx, listingID)

	// The image shares the listing's lifetime. Cleanup is attempted
	// unconditionally; a missing attachment is a no-op, and a storage failure
	// is surfaced as a warning-level outcome without undoing the row delete.
	if err := s.attachments.Delete(ctx, listingID); err != nil {
		s.LogWarn(ctx, "Listing deleted but attachment cleanup failed",
			slog.String("listing_id", listingID),
			slog.String("error", err.Error()))
		return fmt.Errorf("%w for listing %s: %v", apperrors.ErrAttachmentCleanup, listingID, err)
	}

	s.LogInfo(ctx, "Listing deleted", slog.String("listing_id", listingID))
	return nil
}

func (s *listingServiceImpl) CloseListing(ctx context.Context, listingID string, actingPersonID string, req dto.CloseListingRequest) (*domain.RealizationEvent, error) {
	listing, err := s.listingRepo.FindListingByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if err := s.mayClose(ctx, actingPersonID, *listing); err != nil {
		s.LogWarn(ctx, "Close rejected, actor may not close listing",
			slog.String("listing_id", listingID),
			slog.String("actor_id", actingPersonID))
		return nil, err
	}

	if !listing.IsOpen() {
		return nil, apperrors.ErrAlreadyClosed
	}

	now := time.Now()
	event := domain.RealizationEvent{
		EventID:       uuid.NewString(),
		EventableType: domain.EventableTypeListing,
		EventableID:   listingID,
		RealizerID:    req.RealizerID,
		CreatedAt:     now,
	}
	if req.Comment != "" {
		event.Comments = []domain.Comment{{
			CommentID:   uuid.NewString(),
			EventID:     event.EventID,
			AuthorID:    actingPersonID,
			TextContent: req.Comment,
			Ordinal:     0,
			CreatedAt:   now,
		}}
	}

	// The repository performs the status CAS and the event insert in one
	// transaction; a concurrent closer that lost the race gets
	// ErrAlreadyClosed from here with nothing written.
	if err := s.listingRepo.CloseListing(ctx, listingID, event); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyClosed) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to close listing", slog.String("listing_id", listingID))
		return nil, err
	}
	s.invalidateCache(ctx, listingID)

	s.LogInfo(ctx, "Listing closed",
		slog.String("listing_id", listingID),
		slog.String("event_id", event.EventID),
		slog.String("realizer_id", req.RealizerID))
	return &event, nil
}

// mayClose is the capability check for the closing workflow: the author may
// always close; anything broader comes from an injected authorizer.
func (s *listingServiceImpl) mayClose(ctx context.Context, actorID string, listing domain.Listing) error {
	if s.authorizer != nil {
		return s.authorizer.MayClose(ctx, actorID, listing)
	}
	if actorID != listing.AuthorID {
		return apperrors.ErrNotAuthorized
	}
	return nil
}

func (s *listingServiceImpl) GetListingByID(ctx context.Context, listingID string) (*domain.Listing, error) {
	if cached := s.cacheGet(ctx, listingID); cached != nil {
		return cached, nil
	}

	listing, err := s.listingRepo.FindListingByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, *listing)
	return listing, nil
}

func (s *listingServiceImpl) ShowListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	listing, err := s.GetListingByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	// The counter is informational only; a failed bump must not break the
	// show path.
	if err := s.listingRepo.IncrementTimesViewed(ctx, listingID); err != nil {
		s.LogWarn(ctx, "Failed to increment view counter",
			slog.String("listing_id", listingID),
			slog.String("error", err.Error()))
		return listing, nil
	}

	shown := *listing
	shown.TimesViewed++
	s.cacheSet(ctx, shown)
	return &shown, nil
}

func (s *listingServiceImpl) ListListings(ctx context.Context) ([]domain.Listing, error) {
	return s.listingRepo.ListListings(ctx)
}

func (s *listingServiceImpl) SearchListings(ctx context.Context, query string, onlyOpen bool, category domain.Category) ([]domain.Listing, error) {
	listings, err := s.listingRepo.ListListings(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load listings for search")
		return nil, err
	}

	results := search.Filter(listings, query, onlyOpen, category)
	s.LogDebug(ctx, "Search executed",
		slog.String("query", query),
		slog.Bool("only_open", onlyOpen),
		slog.String("category", string(category)),
		slog.Int("hits", len(results)))
	return results, nil
}

func (s *listingServiceImpl) PickRandomListing(ctx context.Context) (*domain.Listing, error) {
	listings, err := s.listingRepo.ListListings(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load listings for random pick")
		return nil, err
	}

	var eligible []domain.Listing
	for _, l := range listings {
		if l.IsOpen() && l.PubliclyVisible() {
			eligible = append(eligible, l)
		}
	}
	if len(eligible) == 0 {
		return nil, apperrors.ErrNoEligibleListing
	}

	picked := eligible[rand.Intn(len(eligible))]
	return &picked, nil
}

func (s *listingServiceImpl) GetRealizationEvent(ctx context.Context, listingID string) (*domain.RealizationEvent, error) {
	event, err := s.eventRepo.FindEventByListingID(ctx, listingID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load realization event",
				slog.String("listing_id", listingID))
		}
		return nil, err
	}
	return event, nil
}

func (s *listingServiceImpl) ListCommentsForAuthor(ctx context.Context, authorID string) ([]domain.Comment, error) {
	comments, err := s.eventRepo.ListCommentsForAuthor(ctx, authorID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list comments for author",
			slog.String("author_id", authorID))
		return nil, err
	}
	return comments, nil
}

// Cache helpers: the cache is optional and advisory, so failures are logged
// at debug level and otherwise ignored.

func (s *listingServiceImpl) cacheGet(ctx context.Context, listingID string) *domain.Listing {
	if s.cache == nil {
		return nil
	}
	listing, err := s.cache.Get(ctx, listingID)
	if err != nil {
		s.LogDebug(ctx, "Listing cache get failed",
			slog.String("listing_id", listingID),
			slog.String("error", err.Error()))
		return nil
	}
	return listing
}

func (s *listingServiceImpl) cacheSet(ctx context.Context, listing domain.Listing) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, listing); err != nil {
		s.LogDebug(ctx, "Listing cache set failed",
			slog.String("listing_id", listing.ListingID),
			slog.String("error", err.Error()))
	}
}

func (s *listingServiceImpl) invalidateCache(ctx context.Context, listingID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, listingID); err != nil {
		s.LogDebug(ctx, "Listing cache invalidate failed",
			slog.String("listing_id", listingID),
			slog.String("error", err.Error()))
	}
}
