package imagery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lysyi3m/space-prime/app/catalog"
	"github.com/lysyi3m/space-prime/app/mars"
)

var (
	// ErrNoMatchingCameras means none of the requested cameras is mounted on
	// any requested rover, so nothing was queried.
	ErrNoMatchingCameras = errors.New("no requested camera is mounted on the requested rovers")

	// ErrProvidersUnavailable means every provider call of a request failed
	// and nothing could be returned.
	ErrProvidersUnavailable = errors.New("imagery providers unavailable")
)

// Collection selects the EPIC imagery variant
type Collection string

const (
	CollectionNatural  Collection = "natural"
	CollectionEnhanced Collection = "enhanced"
	CollectionAerosol  Collection = "aerosol"
	CollectionCloud    Collection = "cloud"
)

func ParseCollection(s string) (Collection, error) {
	switch c := Collection(strings.ToLower(s)); c {
	case CollectionNatural, CollectionEnhanced, CollectionAerosol, CollectionCloud:
		return c, nil
	}
	return "", fmt.Errorf("unknown collection '%s'", s)
}

// ImageType selects the EPIC archive resolution
type ImageType string

const (
	ImageTypePNG    ImageType = "png"
	ImageTypeJPG    ImageType = "jpg"
	ImageTypeThumbs ImageType = "thumbs"
)

func ParseImageType(s string) (ImageType, error) {
	switch t := ImageType(strings.ToLower(s)); t {
	case ImageTypePNG, ImageTypeJPG, ImageTypeThumbs:
		return t, nil
	}
	return "", fmt.Errorf("unknown image type '%s'", s)
}

// Extension is the file extension the archive uses for this image type.
func (t ImageType) Extension() string {
	if t == ImageTypeThumbs {
		return "jpg"
	}
	return string(t)
}

type GeoCoordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Coordinate3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type Quaternions struct {
	Q0 float64 `json:"q0"`
	Q1 float64 `json:"q1"`
	Q2 float64 `json:"q2"`
	Q3 float64 `json:"q3"`
}

// EarthImage is one normalized EPIC image
type EarthImage struct {
	Image                 string        `json:"image"`
	Timestamp             float64       `json:"timestamp"`
	DscovrViewCoordinates GeoCoordinate `json:"dscovr_view_coordinates"`
	DscovrJ2000Position   Coordinate3D  `json:"dscovr_j2000_position"`
	LunarJ2000Position    Coordinate3D  `json:"lunar_j2000_position"`
	SunJ2000Position      Coordinate3D  `json:"sun_j2000_position"`
	DscovrAttitude        Quaternions   `json:"dscovr_attitude"`
}

// Photo is one normalized Mars rover photo
type Photo struct {
	RoverName string          `json:"rover_name"`
	Camera    mars.CameraName `json:"camera"`
	Image     string          `json:"image"`
	EarthDate string          `json:"earth_date"`
	Sol       int             `json:"sol"`
}

// ManifestEntry is one sol of a rover's photo manifest
type ManifestEntry struct {
	Sol         int               `json:"sol"`
	EarthDate   string            `json:"earth_date"`
	TotalPhotos int               `json:"total_photos"`
	Cameras     []mars.CameraName `json:"cameras"`
}

// RoverMetadata is a rover record with its manifest when one was requested.
// Manifests is nil when not requested.
type RoverMetadata struct {
	Rover     *catalog.RoverRecord `json:"rover"`
	Manifests []ManifestEntry      `json:"manifests"`
}

type EarthImageQuery struct {
	Collection Collection
	Series     bool
	ImageType  ImageType
	Date       time.Time // zero means latest available day
}

type PhotoQuery struct {
	Rovers    []mars.Rover
	Cameras   []mars.Camera
	EarthDate time.Time
	Sol       *int
}

type MetadataQuery struct {
	Rovers    []mars.Rover
	Manifest  bool
	EarthDate time.Time
	Sol       *int
}

const dateLayout = "2006-01-02"
