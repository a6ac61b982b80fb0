package report

import (
	"encoding/json"

	"github.com/xab-mack/reguard/internal/model"
)

// ToJSON renders the full check result as indented JSON.
func ToJSON(result *model.CheckResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
