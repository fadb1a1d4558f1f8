package imagery

import (
	"context"
	"net/url"
	"strings"

	"github.com/lysyi3m/space-prime/app/catalog"
)

// Fetcher is satisfied by *fetch.Client
type Fetcher interface {
	GetJSON(ctx context.Context, rawURL string, params url.Values, out any) error
}

type Endpoints struct {
	EPICAPI      string
	EPICArchive  string
	MarsPhotoAPI string
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		EPICAPI:      "https://epic.gsfc.nasa.gov/api",
		EPICArchive:  "https://epic.gsfc.nasa.gov/archive",
		MarsPhotoAPI: "https://mars-photos.herokuapp.com/api/v1",
	}
}

// Normalizer turns EPIC and Mars rover provider payloads into the public
// imagery records.
type Normalizer struct {
	fetcher   Fetcher
	catalog   *catalog.Catalog
	endpoints Endpoints
}

func NewNormalizer(fetcher Fetcher, cat *catalog.Catalog, endpoints Endpoints) *Normalizer {
	defaults := DefaultEndpoints()
	if endpoints.EPICAPI == "" {
		endpoints.EPICAPI = defaults.EPICAPI
	}
	if endpoints.EPICArchive == "" {
		endpoints.EPICArchive = defaults.EPICArchive
	}
	if endpoints.MarsPhotoAPI == "" {
		endpoints.MarsPhotoAPI = defaults.MarsPhotoAPI
	}
	endpoints.EPICAPI = strings.TrimRight(endpoints.EPICAPI, "/")
	endpoints.EPICArchive = strings.TrimRight(endpoints.EPICArchive, "/")
	endpoints.MarsPhotoAPI = strings.TrimRight(endpoints.MarsPhotoAPI, "/")

	return &Normalizer{
		fetcher:   fetcher,
		catalog:   cat,
		endpoints: endpoints,
	}
}
