package mars

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Rover is a concrete Mars rover that can be queried.
type Rover string

const (
	Curiosity    Rover = "curiosity"
	Spirit       Rover = "spirit"
	Opportunity  Rover = "opportunity"
	Perseverance Rover = "perseverance"
)

// Group is a selection shorthand that expands into concrete rovers.
// Groups never reach a provider.
type Group string

const (
	GroupAll      Group = "all"
	GroupActive   Group = "active"
	GroupInactive Group = "inactive"
)

var (
	allRovers      = []Rover{Curiosity, Spirit, Opportunity, Perseverance}
	activeRovers   = []Rover{Curiosity, Perseverance}
	inactiveRovers = []Rover{Spirit, Opportunity}
)

// Rovers returns every concrete rover in canonical order.
func Rovers() []Rover {
	return slices.Clone(allRovers)
}

func ActiveRovers() []Rover {
	return slices.Clone(activeRovers)
}

func InactiveRovers() []Rover {
	return slices.Clone(inactiveRovers)
}

func (r Rover) Valid() bool {
	return slices.Contains(allRovers, r)
}

func (g Group) Valid() bool {
	return g == GroupAll || g == GroupActive || g == GroupInactive
}

// Selection is a parsed rover request: concrete rovers in caller order plus
// any groups that were named alongside them.
type Selection struct {
	Rovers []Rover
	Groups []Group
}

// ParseSelection accepts repeated and comma separated values in any case.
func ParseSelection(values []string) (Selection, error) {
	var sel Selection
	for _, name := range splitValues(values) {
		name = cases.Lower(language.Und).String(name)

		if g := Group(name); g.Valid() {
			if !slices.Contains(sel.Groups, g) {
				sel.Groups = append(sel.Groups, g)
			}
			continue
		}

		r := Rover(name)
		if !r.Valid() {
			return Selection{}, fmt.Errorf("unknown rover '%s'", name)
		}
		if !slices.Contains(sel.Rovers, r) {
			sel.Rovers = append(sel.Rovers, r)
		}
	}
	return sel, nil
}

// Empty reports whether nothing was selected.
func (s Selection) Empty() bool {
	return len(s.Rovers) == 0 && len(s.Groups) == 0
}

// Expand resolves groups into concrete rovers. "all" overrides everything
// else; "active" and "inactive" are unioned with the concrete rovers.
func (s Selection) Expand() []Rover {
	if len(s.Groups) == 0 {
		return slices.Clone(s.Rovers)
	}
	if slices.Contains(s.Groups, GroupAll) {
		return Rovers()
	}

	expanded := slices.Clone(s.Rovers)
	add := func(rovers []Rover) {
		for _, r := range rovers {
			if !slices.Contains(expanded, r) {
				expanded = append(expanded, r)
			}
		}
	}
	if slices.Contains(s.Groups, GroupActive) {
		add(activeRovers)
	}
	if slices.Contains(s.Groups, GroupInactive) {
		add(inactiveRovers)
	}
	return expanded
}

func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
