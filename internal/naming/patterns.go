package naming

import (
	"strings"
	"sync"
)

// BlockPattern maps label vocabulary to a BEM block name. The corpus is
// package data, built once and never mutated after construction.
type BlockPattern struct {
	Block    string
	Keywords []string
}

var (
	patternsOnce sync.Once
	patterns     []BlockPattern
)

// blockPatterns returns the shared vocabulary corpus.
func blockPatterns() []BlockPattern {
	patternsOnce.Do(func() {
		patterns = []BlockPattern{
			{
				Block: "owner-information",
				Keywords: []string{
					"owner", "applicant", "insured", "policyholder", "account holder",
					"first name", "last name", "middle", "name", "ssn",
					"social security", "date of birth", "dob",
				},
			},
			{
				Block: "contact-information",
				Keywords: []string{
					"address", "street", "city", "state", "zip", "postal",
					"phone", "telephone", "mobile", "email", "fax",
				},
			},
			{
				Block: "beneficiary-information",
				Keywords: []string{
					"beneficiary", "benefactor", "heir", "relationship",
					"percentage", "share", "contingent",
				},
			},
			{
				Block: "payment-information",
				Keywords: []string{
					"payment", "premium", "amount", "bank", "routing",
					"account number", "credit card", "billing",
				},
			},
			{
				Block: "employment-information",
				Keywords: []string{
					"employer", "employment", "occupation", "job title",
					"salary", "income", "work",
				},
			},
			{
				Block: "signatures",
				Keywords: []string{
					"signature", "sign", "signed", "date signed", "witness",
				},
			},
			{
				Block: "agreement",
				Keywords: []string{
					"agree", "consent", "acknowledge", "accept", "terms",
					"authorization", "authorize",
				},
			},
		}
	})
	return patterns
}

// MatchBlock finds the corpus block whose vocabulary best matches the given
// label text. Returns "" when nothing matches.
func MatchBlock(label string) string {
	text := strings.ToLower(label)
	if text == "" {
		return ""
	}
	best := ""
	bestHits := 0
	for _, p := range blockPatterns() {
		hits := 0
		for _, kw := range p.Keywords {
			if strings.Contains(text, kw) {
				hits++
			}
		}
		if hits > bestHits {
			best = p.Block
			bestHits = hits
		}
	}
	return best
}
