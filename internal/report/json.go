package report

import (
	"encoding/json"
	"io"

	"github.com/acpkit/acp-conform/internal/harness"
)

// WriteJSON renders the run result as indented JSON for tooling.
func WriteJSON(out io.Writer, run *harness.RunResult) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	return enc.Encode(run)
}
