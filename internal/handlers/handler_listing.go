package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/kassilabs/kassi_backend/internal/apperrors"
	"github.com/kassilabs/kassi_backend/internal/core/domain"
	portssvc "github.com/kassilabs/kassi_backend/internal/core/ports/services"
	"github.com/kassilabs/kassi_backend/internal/dto"
	"github.com/kassilabs/kassi_backend/internal/middleware"
)

// imageFileField is the multipart field name for the optional listing image.
const imageFileField = "image_file"

// listingHandler handles HTTP requests related to listings.
type listingHandler struct {
	listingService portssvc.ListingSvcFacade
}

// newListingHandler creates a new listingHandler.
func newListingHandler(listingService portssvc.ListingSvcFacade) *listingHandler {
	return &listingHandler{
		listingService: listingService,
	}
}

// createListing handles POST /listings. The body is multipart form data so
// the image can travel alongside the draft fields.
func (h *listingHandler) createListing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	personID, ok := middleware.GetPersonIDFromContext(c)
	if !ok {
		logger.Error("Person ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateListingRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn("Failed to bind listing form", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "fields": bindingFieldErrors(err)})
		return
	}

	attachment, err := readAttachment(c)
	if err != nil {
		logger.Warn("Failed to read attachment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image upload"})
		return
	}

	listing, err := h.listingService.CreateListing(c.Request.Context(), personID, req, attachment)
	if err != nil {
		var fieldErrs apperrors.FieldErrors
		if errors.As(err, &fieldErrs) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": fieldErrs})
			return
		}
		logger.Error("Failed to create listing", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create listing"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToListingResponse(listing))
}

// listListings handles GET /listings.
func (h *listingHandler) listListings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	listings, err := h.listingService.ListListings(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list listings", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list listings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"listings": dto.ToListingResponses(listings)})
}

// getListing handles GET /listings/:listingID and counts the view.
func (h *listingHandler) getListing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	listingID := c.Param("listingID")

	listing, err := h.listingService.ShowListing(c.Request.Context(), listingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
		logger.Error("Failed to get listing", slog.String("error", err.Error()), slog.String("listing_id", listingID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve listing"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListingResponse(listing))
}

// searchListings handles GET /listings/search.
func (h *listingHandler) searchListings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.SearchListingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid search parameters"})
		return
	}

	listings, err := h.listingService.SearchListings(c.Request.Context(), params.Query, params.OnlyOpen, domain.Category(params.Category))
	if err != nil {
		logger.Error("Failed to search listings", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search listings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"listings": dto.ToListingResponses(listings)})
}

// randomListing handles GET /listings/random.
func (h *listingHandler) randomListing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	listing, err := h.listingService.PickRandomListing(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNoEligibleListing) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No open listing available"})
			return
		}
		logger.Error("Failed to pick random listing", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to pick random listing"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListingResponse(listing))
}

// getListingEvent handles GET /listings/:listingID/event: the realization
// record of a closed listing.
func (h *listingHandler) getListingEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	listingID := c.Param("listingID")

	event, err := h.listingService.GetRealizationEvent(c.Request.Context(), listingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No realization event for this listing"})
			return
		}
		logger.Error("Failed to get realization event", slog.String("error", err.Error()), slog.String("listing_id", listingID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve realization event"})
		return
	}
	c.JSON(http.StatusOK, dto.ToRealizationEventResponse(event))
}

// updateListing handles PUT /listings/:listingID.
func (h *listingHandler) updateListing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	listingID := c.Param("listingID")

	personID, ok := middleware.GetPersonIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind update request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	listing, err := h.listingService.UpdateListing(c.Request.Context(), listingID, personID, req)
	if err != nil {
		var fieldErrs apperrors.FieldErrors
		switch {
		case errors.As(err, &fieldErrs):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": fieldErrs})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		case errors.Is(err, apperrors.ErrNotAuthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the author may update a listing"})
		default:
			logger.Error("Failed to update listing", slog.String("error", err.Error()), slog.String("listing_id", listingID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update listing"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToListingResponse(listing))
}

// deleteListing handles DELETE /listings/:listingID.
func (h *listingHandler) deleteListing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	listingID := c.Param("listingID")

	personID, ok := middleware.GetPersonIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.listingService.DeleteListing(c.Request.Context(), listingID, personID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Listing deleted"})
	case errors.Is(err, apperrors.ErrAttachmentCleanup):
		// The row is gone; report the cleanup failure without failing the
		// request.
		logger.Warn("Listing deleted with attachment cleanup failure", slog.String("listing_id", listingID))
		c.JSON(http.StatusOK, gin.H{"message": "Listing deleted", "warning": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
	case errors.Is(err, apperrors.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author may delete a listing"})
	default:
		logger.Error("Failed to delete listing", slog.String("error", err.Error()), slog.String("listing_id", listingID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete listing"})
	}
}

// closeListing handles POST /listings/:listingID/close.
func (h *listingHandler) closeListing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	listingID := c.Param("listingID")

	personID, ok := middleware.GetPersonIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CloseListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind close request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "fields": bindingFieldErrors(err)})
		return
	}

	event, err := h.listingService.CloseListing(c.Request.Context(), listingID, personID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		case errors.Is(err, apperrors.ErrAlreadyClosed):
			c.JSON(http.StatusConflict, gin.H{"error": "Listing is already closed"})
		case errors.Is(err, apperrors.ErrNotAuthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to close this listing"})
		default:
			logger.Error("Failed to close listing", slog.String("error", err.Error()), slog.String("listing_id", listingID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close listing"})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.ToRealizationEventResponse(event))
}

// listComments handles GET /comments: comments left on the authenticated
// person's own listings.
func (h *listingHandler) listComments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	personID, ok := middleware.GetPersonIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	comments, err := h.listingService.ListCommentsForAuthor(c.Request.Context(), personID)
	if err != nil {
		logger.Error("Failed to list comments", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list comments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": dto.ToCommentResponses(comments)})
}

// readAttachment extracts the optional image part from the multipart form.
// A missing part yields (nil, nil).
func readAttachment(c *gin.Context) (*dto.Attachment, error) {
	fileHeader, err := c.FormFile(imageFileField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &dto.Attachment{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// bindingFieldErrors flattens go-playground validation errors from gin's
// binding into a field->reason map for the response body.
func bindingFieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = "failed on the '" + fe.Tag() + "' rule"
	}
	return fields
}
