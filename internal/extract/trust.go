package extract

import "strings"

// TrustClassifier decides whether a citation domain is on the trusted list.
// Matching is by exact domain or registrable-suffix, with .gov and .edu
// hosts trusted regardless of the configured list.
type TrustClassifier struct {
	domains map[string]bool
}

// NewTrustClassifier builds a classifier from configured trusted domains
func NewTrustClassifier(trustedDomains []string) *TrustClassifier {
	t := &TrustClassifier{domains: make(map[string]bool, len(trustedDomains))}
	for _, d := range trustedDomains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			t.domains[d] = true
		}
	}
	return t
}

// IsTrusted reports whether the domain or any parent domain is trusted
func (t *TrustClassifier) IsTrusted(domain string) bool {
	domain = strings.ToLower(domain)
	if domain == "" {
		return false
	}

	if t.domains[domain] {
		return true
	}
	for trusted := range t.domains {
		if strings.HasSuffix(domain, "."+trusted) {
			return true
		}
	}

	if strings.HasSuffix(domain, ".gov") || strings.HasSuffix(domain, ".edu") {
		return true
	}
	return strings.HasSuffix(domain, ".ac.uk")
}
