package report

import (
	"fmt"
	"io"

	"github.com/xab-mack/reguard/internal/model"
)

// WriteText renders reports in the reference format: a header per contract,
// one line per flagged function, or a single "No bug found" line.
func WriteText(w io.Writer, reports []model.Report) error {
	for _, r := range reports {
		if _, err := fmt.Fprintf(w, "### Check %s access controls\n", r.Contract); err != nil {
			return err
		}
		for _, f := range r.Findings {
			if _, err := fmt.Fprintf(w, "\t- %s\n", f.Message); err != nil {
				return err
			}
		}
		if len(r.Findings) == 0 {
			if _, err := fmt.Fprintln(w, "\t- No bug found"); err != nil {
				return err
			}
		}
	}
	return nil
}
