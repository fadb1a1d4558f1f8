package imagery

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/space-prime/app/fetch"
	"github.com/lysyi3m/space-prime/app/mars"
)

// RoverMetadata builds a record per rover from the catalog. Active rovers get
// their status refreshed from the provider; manifests are attached on request.
// Provider failures degrade the record but never fail the request.
func (n *Normalizer) RoverMetadata(ctx context.Context, q MetadataQuery) ([]RoverMetadata, error) {
	var earthDate string
	if !q.EarthDate.IsZero() {
		earthDate = q.EarthDate.Format(dateLayout)
	}

	results := make([]RoverMetadata, 0, len(q.Rovers))
	for _, rover := range q.Rovers {
		record, err := n.catalog.Rover(rover)
		if err != nil {
			return nil, err
		}
		metadata := RoverMetadata{Rover: record}

		if q.Manifest {
			manifests, err := n.fetchManifest(ctx, rover, earthDate, q.Sol)
			if err != nil {
				slog.Warn("Rover manifest request failed", "rover", rover, "error", err)
				manifests = []ManifestEntry{}
			}
			metadata.Manifests = manifests
		}

		if record.Active {
			if err := n.refreshStatus(ctx, rover, &metadata); err != nil {
				slog.Warn("Rover status request failed", "rover", rover, "error", err)
			}
		}

		results = append(results, metadata)
	}

	return results, nil
}

func (n *Normalizer) fetchManifest(ctx context.Context, rover mars.Rover, earthDate string, sol *int) ([]ManifestEntry, error) {
	requestURL := fmt.Sprintf("%s/manifests/%s", n.endpoints.MarsPhotoAPI, rover)

	var response manifestResponse
	if err := n.fetcher.GetJSON(ctx, requestURL, nil, &response); err != nil {
		return nil, err
	}
	if err := response.validate(); err != nil {
		return nil, &fetch.ProviderError{URL: requestURL, Err: err}
	}

	entries := []ManifestEntry{}
	for _, item := range response.PhotoManifest.Photos {
		// earth_date takes precedence over sol
		switch {
		case earthDate != "":
			if item.EarthDate != earthDate {
				continue
			}
		case sol != nil:
			if *item.Sol != *sol {
				continue
			}
		}
		entries = append(entries, n.manifestEntry(item))
	}
	return entries, nil
}

func (n *Normalizer) manifestEntry(item manifestItem) ManifestEntry {
	cameras := make([]mars.CameraName, 0, len(item.Cameras))
	for _, short := range item.Cameras {
		name, ok := n.catalog.CameraName(short)
		if !ok {
			name = short
		}
		cameras = append(cameras, mars.CameraName{Short: short, Name: name})
	}

	return ManifestEntry{
		Sol:         *item.Sol,
		EarthDate:   item.EarthDate,
		TotalPhotos: *item.TotalPhotos,
		Cameras:     cameras,
	}
}

func (n *Normalizer) refreshStatus(ctx context.Context, rover mars.Rover, metadata *RoverMetadata) error {
	requestURL := fmt.Sprintf("%s/rovers/%s", n.endpoints.MarsPhotoAPI, rover)

	var response roverStatusResponse
	if err := n.fetcher.GetJSON(ctx, requestURL, nil, &response); err != nil {
		return err
	}
	if err := response.validate(); err != nil {
		return &fetch.ProviderError{URL: requestURL, Err: err}
	}

	sol, total, date := *response.Rover.MaxSol, *response.Rover.TotalPhotos, response.Rover.MaxDate
	metadata.Rover.FinalSol = &sol
	metadata.Rover.FinalDate = &date
	metadata.Rover.TotalPhotos = &total
	return nil
}
