package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/kassilabs/kassi_backend/internal/core/ports/services"
	"github.com/kassilabs/kassi_backend/internal/middleware"
	"github.com/kassilabs/kassi_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service interfaces.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, listingService portssvc.ListingSvcFacade) {
	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	h := newListingHandler(listingService)

	v1 := r.Group("/api/v1")

	// Browse/search/random are public read paths.
	public := v1.Group("/listings")
	{
		public.GET("", h.listListings)
		public.GET("/search", h.searchListings)
		public.GET("/random", h.randomListing)
		public.GET("/:listingID", h.getListing)
		public.GET("/:listingID/event", h.getListingEvent)
	}

	// Everything that mutates, and the own-listings comment view, requires
	// an authenticated person.
	authed := v1.Group("", middleware.AuthMiddleware(cfg.JWTSecret))
	{
		authed.POST("/listings", h.createListing)
		authed.PUT("/listings/:listingID", h.updateListing)
		authed.DELETE("/listings/:listingID", h.deleteListing)
		authed.POST("/listings/:listingID/close", h.closeListing)
		authed.GET("/comments", h.listComments)
	}
}
