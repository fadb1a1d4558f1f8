package mars

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Camera is a rover camera short code, canonically upper case ("NAVCAM").
type Camera string

var knownCameras = []Camera{
	"FHAZ", "NAVCAM", "MAST", "CHEMCAM", "MAHLI", "MARDI", "RHAZ",
	"MAST_LEFT", "MAST_RIGHT", "CHEMCAM_RMI",
	"FHAZ_LEFT_B", "FHAZ_RIGHT_B", "NAV_LEFT_B", "NAV_RIGHT_B", "RHAZ_LEFT_B", "RHAZ_RIGHT_B",
	"PANCAM", "MINITES", "ENTRY",
	"EDL_RUCAM", "EDL_DDCAM", "EDL_PUCAM1", "EDL_PUCAM2",
	"NAVCAM_LEFT", "NAVCAM_RIGHT", "MCZ_RIGHT", "MCZ_LEFT",
	"FRONT_HAZCAM_LEFT_A", "FRONT_HAZCAM_RIGHT_A", "REAR_HAZCAM_LEFT", "REAR_HAZCAM_RIGHT",
	"EDL_RDCAM", "SKYCAM", "SHERLOC_WATSON", "SUPERCAM_RMI", "LCAM",
}

// NormalizeCamera folds a provider or caller supplied code to its canonical form.
// Providers do not agree on case, so every comparison goes through here.
func NormalizeCamera(code string) Camera {
	return Camera(cases.Upper(language.Und).String(strings.TrimSpace(code)))
}

func (c Camera) Valid() bool {
	return slices.Contains(knownCameras, c)
}

// ParseCameras accepts repeated and comma separated values in any case.
func ParseCameras(values []string) ([]Camera, error) {
	var cameras []Camera
	for _, v := range splitValues(values) {
		c := NormalizeCamera(v)
		if !c.Valid() {
			return nil, fmt.Errorf("unknown camera '%s'", v)
		}
		if !slices.Contains(cameras, c) {
			cameras = append(cameras, c)
		}
	}
	return cameras, nil
}

// CameraSet is a set of canonical camera codes. A nil set means "no restriction".
type CameraSet map[Camera]struct{}

func NewCameraSet(cameras ...Camera) CameraSet {
	set := make(CameraSet, len(cameras))
	for _, c := range cameras {
		set[NormalizeCamera(string(c))] = struct{}{}
	}
	return set
}

// Keep reports whether an item with the given camera code survives the set.
func (s CameraSet) Keep(code string) bool {
	if s == nil {
		return true
	}
	_, ok := s[NormalizeCamera(code)]
	return ok
}

// CameraFilter narrows a request to the cameras a caller asked for.
type CameraFilter struct {
	requested CameraSet
}

// NewCameraFilter builds a filter; no cameras means every camera is kept.
func NewCameraFilter(cameras []Camera) CameraFilter {
	if len(cameras) == 0 {
		return CameraFilter{}
	}
	return CameraFilter{requested: NewCameraSet(cameras...)}
}

// Enabled reports whether the caller restricted cameras at all.
func (f CameraFilter) Enabled() bool {
	return f.requested != nil
}

// ForRover intersects the requested cameras with those a rover carries.
// The returned set is nil when the filter is disabled. query is false when the
// intersection is empty and the rover should not be asked at all.
func (f CameraFilter) ForRover(supported []Camera) (keep CameraSet, query bool) {
	if !f.Enabled() {
		return nil, true
	}

	keep = make(CameraSet)
	for _, c := range supported {
		c = NormalizeCamera(string(c))
		if _, ok := f.requested[c]; ok {
			keep[c] = struct{}{}
		}
	}
	return keep, len(keep) > 0
}

// FilterByCamera drops items whose camera code is not in keep.
func FilterByCamera[T any](items []T, keep CameraSet, code func(T) string) []T {
	if keep == nil {
		return items
	}
	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if keep.Keep(code(item)) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// CameraName pairs a camera short code with its long name.
type CameraName struct {
	Short string `json:"short"`
	Name  string `json:"name"`
}
