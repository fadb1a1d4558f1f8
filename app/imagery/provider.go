package imagery

import (
	"errors"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

var errMalformed = errors.New("malformed provider payload")

type epicGeo struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

type epicVector struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
	Z *float64 `json:"z"`
}

type epicQuaternions struct {
	Q0 *float64 `json:"q0"`
	Q1 *float64 `json:"q1"`
	Q2 *float64 `json:"q2"`
	Q3 *float64 `json:"q3"`
}

type epicCoords struct {
	CentroidCoordinates *epicGeo         `json:"centroid_coordinates"`
	DscovrJ2000Position *epicVector      `json:"dscovr_j2000_position"`
	LunarJ2000Position  *epicVector      `json:"lunar_j2000_position"`
	SunJ2000Position    *epicVector      `json:"sun_j2000_position"`
	AttitudeQuaternions *epicQuaternions `json:"attitude_quaternions"`
}

// epicItem is one element of the EPIC API array. Older archive days carry
// the geometry only under "coords".
type epicItem struct {
	Image string `json:"image"`
	Date  string `json:"date"`
	epicCoords
	Coords *epicCoords `json:"coords"`
}

func (item epicItem) geometry() epicCoords {
	if item.CentroidCoordinates == nil && item.Coords != nil {
		return *item.Coords
	}
	return item.epicCoords
}

func (g *epicGeo) value() (GeoCoordinate, bool) {
	if g == nil || g.Lat == nil || g.Lon == nil {
		return GeoCoordinate{}, false
	}
	return GeoCoordinate{Lat: *g.Lat, Lon: *g.Lon}, true
}

func (v *epicVector) value() (Coordinate3D, bool) {
	if v == nil || v.X == nil || v.Y == nil || v.Z == nil {
		return Coordinate3D{}, false
	}
	return Coordinate3D{X: *v.X, Y: *v.Y, Z: *v.Z}, true
}

func (q *epicQuaternions) value() (Quaternions, bool) {
	if q == nil || q.Q0 == nil || q.Q1 == nil || q.Q2 == nil || q.Q3 == nil {
		return Quaternions{}, false
	}
	return Quaternions{Q0: *q.Q0, Q1: *q.Q1, Q2: *q.Q2, Q3: *q.Q3}, true
}

type marsPhotoItem struct {
	Sol    *int `json:"sol"`
	Camera struct {
		Name     string `json:"name"`
		FullName string `json:"full_name"`
	} `json:"camera"`
	ImgSrc    string `json:"img_src"`
	EarthDate string `json:"earth_date"`
	Rover     struct {
		Name string `json:"name"`
	} `json:"rover"`
}

func (item marsPhotoItem) validate() error {
	if item.Sol == nil || item.Camera.Name == "" || item.ImgSrc == "" || item.EarthDate == "" || item.Rover.Name == "" {
		return fmt.Errorf("%w: incomplete photo item", errMalformed)
	}
	return nil
}

// photosResponse keys its list by the endpoint name.
type photosResponse struct {
	Photos       []marsPhotoItem `json:"photos"`
	LatestPhotos []marsPhotoItem `json:"latest_photos"`
}

func (r photosResponse) items(endpoint string) []marsPhotoItem {
	if endpoint == latestPhotosEndpoint {
		return r.LatestPhotos
	}
	return r.Photos
}

type manifestItem struct {
	Sol         *int     `json:"sol"`
	EarthDate   string   `json:"earth_date"`
	TotalPhotos *int     `json:"total_photos"`
	Cameras     []string `json:"cameras"`
}

type manifestResponse struct {
	PhotoManifest *struct {
		Photos []manifestItem `json:"photos"`
	} `json:"photo_manifest"`
}

func (r manifestResponse) validate() error {
	if r.PhotoManifest == nil {
		return fmt.Errorf("%w: missing photo_manifest", errMalformed)
	}
	for _, item := range r.PhotoManifest.Photos {
		if item.Sol == nil || item.EarthDate == "" || item.TotalPhotos == nil {
			return fmt.Errorf("%w: incomplete manifest entry", errMalformed)
		}
	}
	return nil
}

type roverStatusResponse struct {
	Rover *struct {
		MaxSol      *int   `json:"max_sol"`
		MaxDate     string `json:"max_date"`
		TotalPhotos *int   `json:"total_photos"`
	} `json:"rover"`
}

func (r roverStatusResponse) validate() error {
	if r.Rover == nil || r.Rover.MaxSol == nil || r.Rover.MaxDate == "" || r.Rover.TotalPhotos == nil {
		return fmt.Errorf("%w: incomplete rover status", errMalformed)
	}
	return nil
}

// parseProviderTime reads provider timestamps, naive ones as UTC.
func parseProviderTime(s string) (time.Time, error) {
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse provider time '%s': %w", s, err)
	}
	return t.UTC(), nil
}
