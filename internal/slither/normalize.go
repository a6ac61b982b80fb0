package slither

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xab-mack/reguard/internal/model"
)

// Slither JSON printer envelope (simplified)
type sourceMapping struct {
	Filename string `json:"filename"`
	Line     int    `json:"line"`
}

type functionSummary struct {
	Name          string        `json:"name"`
	CanonicalName string        `json:"canonical_name"`
	Visibility    string        `json:"visibility"`
	Mutability    string        `json:"mutability"`
	IsConstructor bool          `json:"is_constructor"`
	Modifiers     []string      `json:"modifiers"`
	SourceMapping sourceMapping `json:"source_mapping"`
}

type contractSummary struct {
	Name          string            `json:"name"`
	SourceMapping sourceMapping     `json:"source_mapping"`
	Functions     []functionSummary `json:"functions"`
}

type printerOut struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Results struct {
		Printers []struct {
			Elements []contractSummary `json:"elements"`
		} `json:"printers"`
	} `json:"results"`
}

// normalize converts the engine's printer JSON into the contract model.
// Entry points are the public/external functions, in engine order.
func normalize(raw []byte) (*model.Project, error) {
	var o printerOut
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	if !o.Success {
		msg := o.Error
		if msg == "" {
			msg = "engine reported failure"
		}
		return nil, fmt.Errorf("%w: %s", ErrLoad, msg)
	}
	proj := &model.Project{}
	for _, p := range o.Results.Printers {
		for _, cs := range p.Elements {
			c := model.Contract{
				Name: cs.Name,
				File: cs.SourceMapping.Filename,
				Line: cs.SourceMapping.Line,
			}
			for _, fn := range cs.Functions {
				if !isEntryPoint(fn.Visibility) {
					continue
				}
				mods := make([]model.Modifier, 0, len(fn.Modifiers))
				for _, m := range fn.Modifiers {
					mods = append(mods, model.Modifier{Name: m})
				}
				c.EntryPoints = append(c.EntryPoints, model.Function{
					Name:          fn.Name,
					CanonicalName: fn.CanonicalName,
					IsConstructor: fn.IsConstructor,
					IsView:        isView(fn.Mutability),
					Modifiers:     mods,
					File:          fn.SourceMapping.Filename,
					Line:          fn.SourceMapping.Line,
				})
			}
			proj.Contracts = append(proj.Contracts, c)
		}
	}
	return proj, nil
}

func isEntryPoint(visibility string) bool {
	switch strings.ToLower(visibility) {
	case "public", "external":
		return true
	}
	return false
}

func isView(mutability string) bool {
	switch strings.ToLower(mutability) {
	case "view", "pure":
		return true
	}
	return false
}
