package imagery

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/lysyi3m/space-prime/app/fetch"
	"github.com/lysyi3m/space-prime/app/mars"
)

const (
	photosEndpoint       = "photos"
	latestPhotosEndpoint = "latest_photos"
)

// RoverPhotos queries each rover in order and concatenates the results.
// A failed rover contributes nothing; rovers carrying none of the requested
// cameras are never queried.
func (n *Normalizer) RoverPhotos(ctx context.Context, q PhotoQuery) ([]Photo, error) {
	endpoint := photosEndpoint
	params := url.Values{}
	if !q.EarthDate.IsZero() {
		params.Set("earth_date", q.EarthDate.Format(dateLayout))
	}
	if q.Sol != nil {
		params.Set("sol", strconv.Itoa(*q.Sol))
	}
	if len(params) == 0 {
		endpoint = latestPhotosEndpoint
	}

	filter := mars.NewCameraFilter(q.Cameras)
	photos := []Photo{}
	queried, failed := 0, 0

	for _, rover := range q.Rovers {
		keep, query := filter.ForRover(n.catalog.SupportedCameras(rover))
		if !query {
			slog.Debug("Skipping rover without requested cameras", "rover", rover)
			continue
		}
		queried++

		items, err := n.fetchPhotos(ctx, rover, endpoint, params)
		if err != nil {
			failed++
			slog.Warn("Rover photo request failed", "rover", rover, "error", err)
			continue
		}

		items = mars.FilterByCamera(items, keep, func(item marsPhotoItem) string {
			return item.Camera.Name
		})
		for _, item := range items {
			photos = append(photos, Photo{
				RoverName: item.Rover.Name,
				Camera:    mars.CameraName{Short: item.Camera.Name, Name: item.Camera.FullName},
				Image:     item.ImgSrc,
				EarthDate: item.EarthDate,
				Sol:       *item.Sol,
			})
		}
	}

	if filter.Enabled() && queried == 0 {
		return photos, ErrNoMatchingCameras
	}
	if queried > 0 && failed == queried {
		return photos, ErrProvidersUnavailable
	}

	return photos, nil
}

func (n *Normalizer) fetchPhotos(ctx context.Context, rover mars.Rover, endpoint string, params url.Values) ([]marsPhotoItem, error) {
	requestURL := fmt.Sprintf("%s/rovers/%s/%s", n.endpoints.MarsPhotoAPI, rover, endpoint)

	var response photosResponse
	if err := n.fetcher.GetJSON(ctx, requestURL, params, &response); err != nil {
		return nil, err
	}

	items := response.items(endpoint)
	for _, item := range items {
		if err := item.validate(); err != nil {
			return nil, &fetch.ProviderError{URL: requestURL, Err: err}
		}
	}
	return items, nil
}
