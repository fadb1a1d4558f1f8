package api

import (
	"context"

	"github.com/lysyi3m/space-prime/app/database"
	"github.com/lysyi3m/space-prime/app/imagery"
	"github.com/lysyi3m/space-prime/app/news"
)

// ImageryService is implemented by *imagery.Normalizer
type ImageryService interface {
	EarthImages(ctx context.Context, q imagery.EarthImageQuery) ([]imagery.EarthImage, error)
	RoverPhotos(ctx context.Context, q imagery.PhotoQuery) ([]imagery.Photo, error)
	RoverMetadata(ctx context.Context, q imagery.MetadataQuery) ([]imagery.RoverMetadata, error)
}

// NewsService is implemented by *news.Aggregator
type NewsService interface {
	Industry(ctx context.Context, q news.Query) ([]news.Article, error)
	Science(ctx context.Context, q news.Query) ([]news.Article, error)
	All(ctx context.Context, q news.Query) ([]news.Article, error)
}

// CatalogInfo is implemented by *catalog.Catalog
type CatalogInfo interface {
	RoverCount() int
	CameraCount() int
}

// CacheStats is implemented by database.ResponseRepositoryImpl and cache.RedisCache
type CacheStats interface {
	GetStats(ctx context.Context) (database.CacheStats, error)
}

var (
	_ ImageryService = (*imagery.Normalizer)(nil)
	_ NewsService    = (*news.Aggregator)(nil)
)

type Handler struct {
	imagery ImageryService
	news    NewsService
	catalog CatalogInfo
	cache   CacheStats
	version string
}

type EPICQuery struct {
	Collection string `form:"collection"`
	Series     bool   `form:"series"`
	ImageType  string `form:"image_type"`
	Date       string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

type MarsPhotoQuery struct {
	Rovers    []string `form:"rovers" binding:"required"`
	Cameras   []string `form:"cameras"`
	EarthDate string   `form:"earth_date" binding:"omitempty,datetime=2006-01-02"`
	Sol       *int     `form:"sol" binding:"omitempty,min=0"`
}

type MarsPhotoMetaQuery struct {
	Rovers    []string `form:"rovers"`
	Manifest  bool     `form:"manifest"`
	EarthDate string   `form:"earth_date" binding:"omitempty,datetime=2006-01-02"`
	Sol       *int     `form:"sol" binding:"omitempty,min=0"`
}

type NewsQuery struct {
	EarliestDatetime string `form:"earliest_datetime"`
	Limit            *int   `form:"limit" binding:"omitempty,min=0"`
}
