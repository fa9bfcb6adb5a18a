// Package sanitize cleans user supplied HTML before it is stored.
package sanitize

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Policy names accepted by New.
const (
	PolicyStrict = "strict"
	PolicyUGC    = "ugc"
)

// Sanitizer turns raw HTML into safe HTML.
type Sanitizer interface {
	Sanitize(raw string) string
}

type policySanitizer struct {
	policy *bluemonday.Policy
}

// New builds a Sanitizer for the named policy. extraElements are additionally
// allowed (without attributes) on top of the ugc policy and ignored for strict.
func New(policy string, extraElements []string) (Sanitizer, error) {
	var p *bluemonday.Policy
	switch strings.ToLower(strings.TrimSpace(policy)) {
	case PolicyStrict:
		p = bluemonday.StrictPolicy()
	case PolicyUGC, "":
		p = bluemonday.UGCPolicy()
		p.RequireNoFollowOnLinks(true)
		p.AddTargetBlankToFullyQualifiedLinks(true)
		if len(extraElements) > 0 {
			p.AllowElements(extraElements...)
		}
	default:
		return nil, fmt.Errorf("unknown sanitizer policy %q", policy)
	}
	return &policySanitizer{policy: p}, nil
}

// Sanitize returns raw with disallowed markup removed and surrounding
// whitespace trimmed.
func (s *policySanitizer) Sanitize(raw string) string {
	return strings.TrimSpace(s.policy.Sanitize(raw))
}
