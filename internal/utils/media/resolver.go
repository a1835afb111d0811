package media

import "strings"

// Resolver turns stored photo references into URLs clients can fetch.
type Resolver struct {
	BaseURL string
}

func NewResolver(baseURL string) Resolver {
	return Resolver{BaseURL: strings.TrimRight(baseURL, "/")}
}

// Resolve keeps absolute http(s) URLs and prefixes everything else with BaseURL.
// With an empty BaseURL the reference is returned rooted at "/".
func (r Resolver) Resolve(ref string) string {
	if ref == "" {
		return ""
	}
	lower := strings.ToLower(ref)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return ref
	}
	return r.BaseURL + "/" + strings.TrimLeft(ref, "/")
}

// ResolveAll resolves each reference, preserving order.
func (r Resolver) ResolveAll(refs []string) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		out = append(out, r.Resolve(ref))
	}
	return out
}
