package api

// CachePolicy controls how intermediary HTTP caches may answer a request.
// It maps onto the request's Cache-Control header.
type CachePolicy int

const (
	// PolicyDefault leaves caching to the protocol; no header is set.
	PolicyDefault CachePolicy = iota + 1
	// PolicyReload asks intermediaries to revalidate before serving.
	PolicyReload
	// PolicyPreferCache accepts stale cached responses.
	PolicyPreferCache
	// PolicyCacheOnly forbids going to the origin at all.
	PolicyCacheOnly
)

func (p CachePolicy) String() string {
	switch p {
	case PolicyDefault:
		return "default"
	case PolicyReload:
		return "reload"
	case PolicyPreferCache:
		return "prefer-cache"
	case PolicyCacheOnly:
		return "cache-only"
	default:
		return "unknown"
	}
}

// CacheControl returns the Cache-Control header value for the policy,
// or "" when the protocol default applies.
func (p CachePolicy) CacheControl() string {
	switch p {
	case PolicyReload:
		return "no-cache"
	case PolicyPreferCache:
		return "max-stale"
	case PolicyCacheOnly:
		return "only-if-cached"
	default:
		return ""
	}
}

// ParsePolicy maps a configuration string to a CachePolicy. Empty and
// unrecognized values fall back to PolicyDefault.
func ParsePolicy(s string) CachePolicy {
	switch s {
	case "reload":
		return PolicyReload
	case "prefer-cache":
		return PolicyPreferCache
	case "cache-only":
		return PolicyCacheOnly
	default:
		return PolicyDefault
	}
}
