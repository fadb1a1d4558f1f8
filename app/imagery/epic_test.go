package imagery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epicDay = `[
  {
    "image": "epic_1b_20240102001751",
    "date": "2024-01-02 00:13:03",
    "centroid_coordinates": {"lat": 10.5, "lon": -170.25},
    "dscovr_j2000_position": {"x": 1, "y": 2, "z": 3},
    "lunar_j2000_position": {"x": 4, "y": 5, "z": 6},
    "sun_j2000_position": {"x": 7, "y": 8, "z": 9},
    "attitude_quaternions": {"q0": 0.1, "q1": 0.2, "q2": 0.3, "q3": 0.4}
  },
  {
    "image": "epic_1b_20240102213000",
    "date": "2024-01-02 21:30:00",
    "centroid_coordinates": {"lat": 11, "lon": 20},
    "dscovr_j2000_position": {"x": 1, "y": 1, "z": 1},
    "lunar_j2000_position": {"x": 2, "y": 2, "z": 2},
    "sun_j2000_position": {"x": 3, "y": 3, "z": 3},
    "attitude_quaternions": {"q0": 1, "q1": 0, "q2": 0, "q3": 0}
  }
]`

func TestEarthImagesLatestOnly(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.bodies["https://epic.test/api/natural"] = epicDay
	normalizer := newTestNormalizer(t, fetcher)

	images, err := normalizer.EarthImages(context.Background(), EarthImageQuery{})
	require.NoError(t, err)
	require.Len(t, images, 1)

	image := images[0]
	assert.Equal(t, "https://epic.test/archive/natural/2024/01/02/png/epic_1b_20240102213000.png", image.Image)
	assert.Equal(t, float64(time.Date(2024, 1, 2, 21, 30, 0, 0, time.UTC).Unix()), image.Timestamp)
	assert.Equal(t, GeoCoordinate{Lat: 11, Lon: 20}, image.DscovrViewCoordinates)
	assert.Equal(t, Quaternions{Q0: 1}, image.DscovrAttitude)
	assert.Equal(t, []string{"https://epic.test/api/natural"}, fetcher.calls)
}

func TestEarthImagesSeriesForDate(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.bodies["https://epic.test/api/enhanced/date/2024-01-02"] = epicDay
	normalizer := newTestNormalizer(t, fetcher)

	images, err := normalizer.EarthImages(context.Background(), EarthImageQuery{
		Collection: CollectionEnhanced,
		Series:     true,
		ImageType:  ImageTypeThumbs,
		Date:       time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, images, 2)

	assert.Equal(t, "https://epic.test/archive/enhanced/2024/01/02/thumbs/epic_1b_20240102001751.jpg", images[0].Image)
	assert.Equal(t, "https://epic.test/archive/enhanced/2024/01/02/thumbs/epic_1b_20240102213000.jpg", images[1].Image)
	assert.Equal(t, Coordinate3D{X: 7, Y: 8, Z: 9}, images[0].SunJ2000Position)
}

func TestEarthImagesEmptyDay(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.bodies["https://epic.test/api/natural/date/2015-01-01"] = `[]`
	normalizer := newTestNormalizer(t, fetcher)

	images, err := normalizer.EarthImages(context.Background(), EarthImageQuery{
		Series: true,
		Date:   time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NotNil(t, images)
	assert.Empty(t, images)
}

func TestEarthImagesProviderFailure(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.failures["https://epic.test/api/natural"] = errors.New("connection refused")
	normalizer := newTestNormalizer(t, fetcher)

	images, err := normalizer.EarthImages(context.Background(), EarthImageQuery{})
	assert.ErrorIs(t, err, ErrProvidersUnavailable)
	assert.Empty(t, images)
}

func TestEarthImagesMalformedItem(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.bodies["https://epic.test/api/natural"] = `[{"image": "epic_1b", "date": "2024-01-02 00:13:03"}]`
	normalizer := newTestNormalizer(t, fetcher)

	images, err := normalizer.EarthImages(context.Background(), EarthImageQuery{})
	assert.ErrorIs(t, err, ErrProvidersUnavailable)
	assert.Empty(t, images)
}

func TestEarthImagesNestedCoords(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.bodies["https://epic.test/api/cloud"] = `[{
		"image": "epic_RGB_20160101",
		"date": "2016-01-01 00:50:27",
		"coords": {
			"centroid_coordinates": {"lat": 1, "lon": 2},
			"dscovr_j2000_position": {"x": 1, "y": 1, "z": 1},
			"lunar_j2000_position": {"x": 1, "y": 1, "z": 1},
			"sun_j2000_position": {"x": 1, "y": 1, "z": 1},
			"attitude_quaternions": {"q0": 1, "q1": 1, "q2": 1, "q3": 1}
		}
	}]`
	normalizer := newTestNormalizer(t, fetcher)

	images, err := normalizer.EarthImages(context.Background(), EarthImageQuery{
		Collection: CollectionCloud,
		ImageType:  ImageTypeJPG,
	})
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, GeoCoordinate{Lat: 1, Lon: 2}, images[0].DscovrViewCoordinates)
	assert.Equal(t, "https://epic.test/archive/cloud/2016/01/01/jpg/epic_RGB_20160101.jpg", images[0].Image)
}

func TestParseCollectionAndImageType(t *testing.T) {
	collection, err := ParseCollection("Enhanced")
	require.NoError(t, err)
	assert.Equal(t, CollectionEnhanced, collection)

	_, err = ParseCollection("infrared")
	assert.Error(t, err)

	imageType, err := ParseImageType("thumbs")
	require.NoError(t, err)
	assert.Equal(t, "jpg", imageType.Extension())
	assert.Equal(t, "png", ImageTypePNG.Extension())

	_, err = ParseImageType("gif")
	assert.Error(t, err)
}

func TestEarthImagesTimestampZones(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		timestamp time.Time
		folder    string
	}{
		{
			name:      "naive is UTC",
			date:      "2024-01-02 21:30:00",
			timestamp: time.Date(2024, 1, 2, 21, 30, 0, 0, time.UTC),
			folder:    "2024/01/02",
		},
		{
			name:      "offset converted to UTC",
			date:      "2024-01-02T23:30:00-02:00",
			timestamp: time.Date(2024, 1, 3, 1, 30, 0, 0, time.UTC),
			folder:    "2024/01/02",
		},
		{
			name:      "explicit UTC",
			date:      "2024-01-02T23:30:00Z",
			timestamp: time.Date(2024, 1, 2, 23, 30, 0, 0, time.UTC),
			folder:    "2024/01/02",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := newStubFetcher()
			fetcher.bodies["https://epic.test/api/natural"] = `[{
				"image": "epic_1b_x",
				"date": "` + tt.date + `",
				"centroid_coordinates": {"lat": 1, "lon": 2},
				"dscovr_j2000_position": {"x": 1, "y": 1, "z": 1},
				"lunar_j2000_position": {"x": 1, "y": 1, "z": 1},
				"sun_j2000_position": {"x": 1, "y": 1, "z": 1},
				"attitude_quaternions": {"q0": 1, "q1": 1, "q2": 1, "q3": 1}
			}]`
			normalizer := newTestNormalizer(t, fetcher)

			images, err := normalizer.EarthImages(context.Background(), EarthImageQuery{})
			require.NoError(t, err)
			require.Len(t, images, 1)

			assert.Equal(t, float64(tt.timestamp.Unix()), images[0].Timestamp)
			assert.Equal(t, "https://epic.test/archive/natural/"+tt.folder+"/png/epic_1b_x.png", images[0].Image)
		})
	}
}
