package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/space-prime/app/imagery"
	"github.com/lysyi3m/space-prime/app/mars"
	"github.com/lysyi3m/space-prime/app/news"
)

const (
	dateLayout       = "2006-01-02"
	defaultNewsLimit = 10
	defaultNewsSpan  = 7 * 24 * time.Hour
)

// NewHandler wires the services. cache may be nil.
func NewHandler(imageryService ImageryService, newsService NewsService, catalog CatalogInfo, cache CacheStats, version string) *Handler {
	return &Handler{
		imagery: imageryService,
		news:    newsService,
		catalog: catalog,
		cache:   cache,
		version: version,
	}
}

func (h *Handler) GetEPICImagery(c *gin.Context) {
	var query EPICQuery
	if err := bindQuery(c, &query); err != nil {
		h.respondError(c, err)
		return
	}

	q := imagery.EarthImageQuery{Series: query.Series}

	if query.Collection != "" {
		collection, err := imagery.ParseCollection(query.Collection)
		if err != nil {
			h.respondError(c, fieldError("collection", err.Error()))
			return
		}
		q.Collection = collection
	}

	if query.ImageType != "" {
		imageType, err := imagery.ParseImageType(query.ImageType)
		if err != nil {
			h.respondError(c, fieldError("image_type", err.Error()))
			return
		}
		q.ImageType = imageType
	}

	if query.Date != "" {
		// format checked by binding
		q.Date, _ = time.Parse(dateLayout, query.Date)
	}

	images, err := h.imagery.EarthImages(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, images)
}

func (h *Handler) GetMarsPhotos(c *gin.Context) {
	var query MarsPhotoQuery
	if err := bindQuery(c, &query); err != nil {
		h.respondError(c, err)
		return
	}

	selection, err := mars.ParseSelection(query.Rovers)
	if err != nil {
		h.respondError(c, fieldError("rovers", err.Error()))
		return
	}
	if selection.Empty() {
		h.respondError(c, fieldError("rovers", "is required"))
		return
	}

	cameras, err := mars.ParseCameras(query.Cameras)
	if err != nil {
		h.respondError(c, fieldError("cameras", err.Error()))
		return
	}

	q := imagery.PhotoQuery{
		Rovers:  selection.Expand(),
		Cameras: cameras,
		Sol:     query.Sol,
	}
	if query.EarthDate != "" {
		q.EarthDate, _ = time.Parse(dateLayout, query.EarthDate)
	}

	photos, err := h.imagery.RoverPhotos(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, photos)
}

func (h *Handler) GetMarsPhotoMeta(c *gin.Context) {
	var query MarsPhotoMetaQuery
	if err := bindQuery(c, &query); err != nil {
		h.respondError(c, err)
		return
	}

	selection, err := mars.ParseSelection(query.Rovers)
	if err != nil {
		h.respondError(c, fieldError("rovers", err.Error()))
		return
	}
	if selection.Empty() {
		selection.Groups = []mars.Group{mars.GroupAll}
	}

	q := imagery.MetadataQuery{
		Rovers:   selection.Expand(),
		Manifest: query.Manifest,
		Sol:      query.Sol,
	}
	if query.EarthDate != "" {
		q.EarthDate, _ = time.Parse(dateLayout, query.EarthDate)
	}

	metadata, err := h.imagery.RoverMetadata(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, metadata)
}

func (h *Handler) GetNews(c *gin.Context) {
	h.serveNews(c, h.news.All)
}

func (h *Handler) GetIndustryNews(c *gin.Context) {
	h.serveNews(c, h.news.Industry)
}

func (h *Handler) GetScienceNews(c *gin.Context) {
	h.serveNews(c, h.news.Science)
}

type newsSource func(ctx context.Context, q news.Query) ([]news.Article, error)

func (h *Handler) serveNews(c *gin.Context, source newsSource) {
	var query NewsQuery
	if err := bindQuery(c, &query); err != nil {
		h.respondError(c, err)
		return
	}

	q := news.Query{
		Earliest: time.Now().UTC().Add(-defaultNewsSpan),
		Limit:    defaultNewsLimit,
	}
	if query.Limit != nil {
		q.Limit = *query.Limit
	}
	if query.EarliestDatetime != "" {
		earliest, err := parseAwareDatetime(query.EarliestDatetime)
		if err != nil {
			h.respondError(c, fieldError("earliest_datetime", "must be a timezone-aware ISO 8601 datetime"))
			return
		}
		q.Earliest = earliest
	}

	articles, err := source(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, articles)
}

// parseAwareDatetime accepts RFC 3339 only. An unescaped '+' in the offset
// arrives as a space and is restored.
func parseAwareDatetime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err == nil {
		return t.UTC(), nil
	}

	if i := strings.LastIndex(value, " "); i > 0 {
		if t, retryErr := time.Parse(time.RFC3339, value[:i]+"+"+value[i+1:]); retryErr == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"catalog": map[string]int{
			"rovers":  h.catalog.RoverCount(),
			"cameras": h.catalog.CameraCount(),
		},
	}

	if h.cache != nil {
		if stats, err := h.cache.GetStats(c.Request.Context()); err == nil {
			health["cache"] = stats
		} else {
			slog.Warn("Failed to read cache stats", "error", err)
		}
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":     "Space Prime",
		"version":     h.version,
		"description": "Space news and imagery aggregated from public APIs",
		"endpoints": map[string]string{
			"news":          "/news?earliest_datetime=&limit=",
			"industry_news": "/news/industry?earliest_datetime=&limit=",
			"science_news":  "/news/science?earliest_datetime=&limit=",
			"epic":          "/imagery/epic?collection=&series=&image_type=&date=",
			"mars_photo":    "/imagery/mars-photo?rovers=&cameras=&earth_date=&sol=",
			"mars_meta":     "/imagery/mars-photo/meta?rovers=&manifest=&earth_date=&sol=",
			"health":        "/health",
		},
	})
}
