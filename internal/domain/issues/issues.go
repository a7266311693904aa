// Package issues flags sustainability concerns in a product's raw fields
// using keyword heuristics.
package issues

import (
	"strings"

	"github.com/okian/ecoscore/internal/domain/model"
)

// Tag returns the issue labels detected in p, in fixed order:
// air transport, plastic material, non-recyclable packaging.
func Tag(p model.Product) []string {
	tags := make([]string, 0, 3)
	if strings.Contains(strings.ToLower(p.Transport), "air") {
		tags = append(tags, model.IssueAirTransport)
	}
	if usesPlastic(p.Materials) {
		tags = append(tags, model.IssuePlastic)
	}
	if !strings.Contains(strings.ToLower(p.Packaging), "recyclable") {
		tags = append(tags, model.IssueNonRecyclablePackaging)
	}
	return tags
}

// usesPlastic reports whether any material is exactly "plastic", ignoring case.
func usesPlastic(materials []string) bool {
	for _, m := range materials {
		if strings.ToLower(m) == "plastic" {
			return true
		}
	}
	return false
}
