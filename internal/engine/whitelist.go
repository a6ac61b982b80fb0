package engine

import (
	"encoding/json"
	"os"
	"sort"
	"time"

	"github.com/xab-mack/reguard/internal/model"
)

type whitelistFile struct {
	GeneratedAt time.Time `json:"generatedAt"`
	Functions   []string  `json:"functions"`
}

// LoadWhitelist reads a persisted whitelist: either a bare JSON array of
// function names or the full struct written by WriteWhitelist.
func LoadWhitelist(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(data, &names); err == nil {
		return names, nil
	}
	var wf whitelistFile
	if err := json.Unmarshal(data, &wf); err != nil {
		return nil, err
	}
	return wf.Functions, nil
}

// WriteWhitelist records the bare names of currently flagged functions so a
// later run can accept them as known exemptions.
func WriteWhitelist(path string, findings []model.Finding) error {
	if path == "" {
		return nil
	}
	seen := map[string]bool{}
	var names []string
	for _, f := range findings {
		if f.Name == "" || seen[f.Name] {
			continue
		}
		seen[f.Name] = true
		names = append(names, f.Name)
	}
	sort.Strings(names)
	data, _ := json.MarshalIndent(whitelistFile{GeneratedAt: time.Now().UTC(), Functions: names}, "", "  ")
	return os.WriteFile(path, data, 0o644)
}
