// Package platform identifies the retailer whose email format is being processed.
// The platform tag is supplied by the caller; this package never guesses it from content.
package platform

import "strings"

// Platform selects which ordered pattern lists and post-processing rules apply.
type Platform string

const (
	Amazon   Platform = "amazon"
	Flipkart Platform = "flipkart"
	Myntra   Platform = "myntra"
	Ajio     Platform = "ajio"
	Meesho   Platform = "meesho"
	Nykaa    Platform = "nykaa"
	Generic  Platform = "generic"
)

// known lists every built-in platform in a stable order.
var known = []Platform{Amazon, Flipkart, Myntra, Ajio, Meesho, Nykaa, Generic}

// All returns the built-in platforms.
func All() []Platform {
	out := make([]Platform, len(known))
	copy(out, known)
	return out
}

// Parse maps a caller-supplied tag to a Platform.
// Matching is case-insensitive; anything unrecognized becomes Generic.
func Parse(s string) Platform {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if p.Known() {
		return p
	}
	return Generic
}

// Known reports whether p is one of the built-in platforms.
func (p Platform) Known() bool {
	for _, k := range known {
		if p == k {
			return true
		}
	}
	return false
}

// String returns the platform tag.
func (p Platform) String() string {
	return string(p)
}
