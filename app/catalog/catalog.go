package catalog

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/lysyi3m/space-prime/app/mars"
)

//go:embed data/rovers.yml
var defaultDataset []byte

// Catalog is the read-only rover and camera reference table. It is loaded
// once before serving and shared by every request.
type Catalog struct {
	rovers  map[mars.Rover]RoverInfo
	cameras map[mars.Camera]string
}

// Default loads the dataset compiled into the binary.
func Default() (*Catalog, error) {
	return parse("embedded", defaultDataset)
}

// Load reads the dataset at path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Source: path, Err: fmt.Errorf("failed to read file: %w", err)}
	}
	return parse(path, data)
}

func parse(source string, data []byte) (*Catalog, error) {
	var dataset Dataset
	if err := yaml.Unmarshal(data, &dataset); err != nil {
		return nil, &Error{Source: source, Err: fmt.Errorf("failed to parse YAML: %w", err)}
	}

	c, err := build(dataset)
	if err != nil {
		return nil, &Error{Source: source, Err: err}
	}

	slog.Debug("Catalog loaded", "source", source, "rovers", len(c.rovers), "cameras", len(c.cameras))
	return c, nil
}

func build(dataset Dataset) (*Catalog, error) {
	if len(dataset.Rovers) == 0 {
		return nil, fmt.Errorf("rovers are required")
	}
	if len(dataset.Cameras) == 0 {
		return nil, fmt.Errorf("cameras are required")
	}

	c := &Catalog{
		rovers:  make(map[mars.Rover]RoverInfo, len(dataset.Rovers)),
		cameras: make(map[mars.Camera]string, len(dataset.Cameras)),
	}

	for short, name := range dataset.Cameras {
		camera := mars.NormalizeCamera(short)
		if !camera.Valid() {
			return nil, fmt.Errorf("unknown camera '%s'", short)
		}
		if name == "" {
			return nil, fmt.Errorf("camera '%s' has no name", short)
		}
		c.cameras[camera] = name
	}

	for key, info := range dataset.Rovers {
		rover := mars.Rover(key)
		if !rover.Valid() {
			return nil, fmt.Errorf("unknown rover '%s'", key)
		}
		if err := c.validateRover(key, &info); err != nil {
			return nil, err
		}
		c.rovers[rover] = info
	}

	for _, rover := range mars.Rovers() {
		if _, ok := c.rovers[rover]; !ok {
			return nil, fmt.Errorf("rover '%s' is missing", rover)
		}
	}

	// Selection groups are compiled in; the dataset must agree with them.
	if active := c.ActiveRovers(); !slices.Equal(active, mars.ActiveRovers()) {
		return nil, fmt.Errorf("active rovers %v do not match %v", active, mars.ActiveRovers())
	}

	return c, nil
}

// validateRover checks required fields and canonicalizes camera codes in place.
func (c *Catalog) validateRover(key string, info *RoverInfo) error {
	requiredFields := map[string]string{
		"name":         info.Name,
		"launch date":  info.LaunchDate,
		"landing date": info.LandingDate,
	}
	for fieldName, fieldValue := range requiredFields {
		if fieldValue == "" {
			return fmt.Errorf("rover '%s': %s is required", key, fieldName)
		}
	}

	if len(info.Cameras) == 0 {
		return fmt.Errorf("rover '%s': cameras are required", key)
	}
	for i, short := range info.Cameras {
		camera := mars.NormalizeCamera(short)
		if _, ok := c.cameras[camera]; !ok {
			return fmt.Errorf("rover '%s': camera '%s' has no name mapping", key, short)
		}
		info.Cameras[i] = string(camera)
	}

	if !info.Active && (info.CurrentSol == nil || info.CurrentDate == "" || info.TotalPhotos == nil) {
		return fmt.Errorf("rover '%s': inactive rovers need current_sol, current_date and total_photos", key)
	}

	return nil
}

// Rover builds a fresh record for r. Callers may mutate the result.
func (c *Catalog) Rover(r mars.Rover) (*RoverRecord, error) {
	info, ok := c.rovers[r]
	if !ok {
		return nil, &Error{Source: "lookup", Err: fmt.Errorf("rover '%s' not found", r)}
	}

	record := &RoverRecord{
		Name:        info.Name,
		LaunchDate:  info.LaunchDate,
		LandingDate: info.LandingDate,
		Active:      info.Active,
		Cameras:     make([]mars.CameraName, 0, len(info.Cameras)),
	}
	for _, short := range info.Cameras {
		record.Cameras = append(record.Cameras, mars.CameraName{Short: short, Name: c.cameras[mars.Camera(short)]})
	}

	if !info.Active {
		sol, total, date := *info.CurrentSol, *info.TotalPhotos, info.CurrentDate
		record.FinalSol = &sol
		record.FinalDate = &date
		record.TotalPhotos = &total
	}

	return record, nil
}

// SupportedCameras returns the cameras mounted on r.
func (c *Catalog) SupportedCameras(r mars.Rover) []mars.Camera {
	info := c.rovers[r]
	cameras := make([]mars.Camera, 0, len(info.Cameras))
	for _, short := range info.Cameras {
		cameras = append(cameras, mars.Camera(short))
	}
	return cameras
}

// CameraName resolves a short code, case-insensitively.
func (c *Catalog) CameraName(short string) (string, bool) {
	name, ok := c.cameras[mars.NormalizeCamera(short)]
	return name, ok
}

// RoverCount is reported by the health endpoint.
func (c *Catalog) RoverCount() int {
	return len(c.rovers)
}

func (c *Catalog) CameraCount() int {
	return len(c.cameras)
}

// ActiveRovers lists rovers flagged active in the dataset, in canonical order.
func (c *Catalog) ActiveRovers() []mars.Rover {
	return slices.DeleteFunc(mars.Rovers(), func(r mars.Rover) bool {
		return !c.rovers[r].Active
	})
}
