package compose

import (
	"fmt"
	"strings"

	"github.com/arqiv-labs/research-pipeline/internal/model"
)

const citationsHeader = "**Sources & Citations:**"

// Citations renders the sources carrying a citation string as a
// numbered block with trust annotations. Returns the empty string when
// no source has a citation.
func Citations(sources []model.ResearchSource) string {
	var lines []string
	for _, src := range sources {
		if src.Citation == "" {
			continue
		}
		line := fmt.Sprintf("%d. %s", len(lines)+1, src.Citation)
		if src.TrustScore > 0 {
			line += fmt.Sprintf(" (Rating: %g/5)", src.TrustScore)
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return ""
	}
	return "\n\n" + citationsHeader + "\n" + strings.Join(lines, "\n")
}
