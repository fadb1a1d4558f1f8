package imagery

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/space-prime/app/fetch"
)

// EarthImages returns EPIC images for one day, or only the last image of the
// day unless a series is requested.
func (n *Normalizer) EarthImages(ctx context.Context, q EarthImageQuery) ([]EarthImage, error) {
	if q.Collection == "" {
		q.Collection = CollectionNatural
	}
	if q.ImageType == "" {
		q.ImageType = ImageTypePNG
	}

	requestURL := fmt.Sprintf("%s/%s", n.endpoints.EPICAPI, q.Collection)
	if !q.Date.IsZero() {
		requestURL = fmt.Sprintf("%s/date/%s", requestURL, q.Date.Format(dateLayout))
	}

	var items []epicItem
	if err := n.fetcher.GetJSON(ctx, requestURL, nil, &items); err != nil {
		slog.Warn("EPIC request failed", "url", requestURL, "error", err)
		return []EarthImage{}, fmt.Errorf("%w: %v", ErrProvidersUnavailable, err)
	}

	if len(items) == 0 {
		return []EarthImage{}, nil
	}
	if !q.Series {
		items = items[len(items)-1:]
	}

	images := make([]EarthImage, 0, len(items))
	for _, item := range items {
		image, err := n.earthImage(item, q)
		if err != nil {
			perr := &fetch.ProviderError{URL: requestURL, Err: err}
			slog.Warn("EPIC payload rejected", "url", requestURL, "error", perr)
			return []EarthImage{}, fmt.Errorf("%w: %v", ErrProvidersUnavailable, perr)
		}
		images = append(images, image)
	}

	return images, nil
}

func (n *Normalizer) earthImage(item epicItem, q EarthImageQuery) (EarthImage, error) {
	if item.Image == "" || len(item.Date) < len(dateLayout) {
		return EarthImage{}, fmt.Errorf("%w: EPIC item without image or date", errMalformed)
	}

	taken, err := parseProviderTime(item.Date)
	if err != nil {
		return EarthImage{}, fmt.Errorf("%w: %v", errMalformed, err)
	}

	geometry := item.geometry()
	view, ok1 := geometry.CentroidCoordinates.value()
	dscovr, ok2 := geometry.DscovrJ2000Position.value()
	lunar, ok3 := geometry.LunarJ2000Position.value()
	sun, ok4 := geometry.SunJ2000Position.value()
	attitude, ok5 := geometry.AttitudeQuaternions.value()
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
		return EarthImage{}, fmt.Errorf("%w: EPIC item '%s' lacks geometry", errMalformed, item.Image)
	}

	// Archive folders follow the provider's own date string
	year, month, day := item.Date[0:4], item.Date[5:7], item.Date[8:10]

	return EarthImage{
		Image: fmt.Sprintf("%s/%s/%s/%s/%s/%s/%s.%s",
			n.endpoints.EPICArchive, q.Collection, year, month, day,
			q.ImageType, item.Image, q.ImageType.Extension()),
		Timestamp:             float64(taken.UnixMilli()) / 1000,
		DscovrViewCoordinates: view,
		DscovrJ2000Position:   dscovr,
		LunarJ2000Position:    lunar,
		SunJ2000Position:      sun,
		DscovrAttitude:        attitude,
	}, nil
}
