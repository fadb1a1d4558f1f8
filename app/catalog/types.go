package catalog

import "github.com/lysyi3m/space-prime/app/mars"

// Dataset is the on-disk shape of the reference data.
type Dataset struct {
	Rovers  map[string]RoverInfo `yaml:"rovers"`
	Cameras map[string]string    `yaml:"cameras"`
}

type RoverInfo struct {
	Name        string   `yaml:"name"`
	LaunchDate  string   `yaml:"launch_date"`
	LandingDate string   `yaml:"landing_date"`
	Active      bool     `yaml:"active"`
	Cameras     []string `yaml:"cameras"`

	// Final mission status, only meaningful for inactive rovers
	CurrentSol  *int   `yaml:"current_sol"`
	CurrentDate string `yaml:"current_date"`
	TotalPhotos *int   `yaml:"total_photos"`
}

// RoverRecord is the per-request view of a rover. The status fields are
// filled from the catalog for inactive rovers and from the provider for
// active ones.
type RoverRecord struct {
	Name        string            `json:"name"`
	LaunchDate  string            `json:"launch_date"`
	LandingDate string            `json:"landing_date"`
	Active      bool              `json:"active"`
	Cameras     []mars.CameraName `json:"cameras"`
	FinalSol    *int              `json:"final_sol"`
	FinalDate   *string           `json:"final_date"`
	TotalPhotos *int              `json:"total_photos"`
}

// Error marks a defect in the reference data. It is never transient.
type Error struct {
	Source string
	Err    error
}

func (e *Error) Error() string {
	return "catalog " + e.Source + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
