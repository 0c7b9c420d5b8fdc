// README: Region classification from coordinates and raw address text.
package region

import "strings"

// Unknown is the sentinel for an address outside the supported service
// area. Callers must refuse to match a drive or rider classified Unknown.
const Unknown = "Unknown"

// Rule names a zone and decides membership from the raw address and the
// geocoded point. Rules are additive: a point may satisfy several.
type Rule struct {
	Name  string
	Match func(address string, lat, lng float64) bool
}

// Box returns a rule matching a closed axis-aligned bounding box.
func Box(name string, latMin, latMax, lngMin, lngMax float64) Rule {
	return Rule{
		Name: name,
		Match: func(_ string, lat, lng float64) bool {
			return latMin <= lat && lat <= latMax && lngMin <= lng && lng <= lngMax
		},
	}
}

// Keyword returns a rule matching a case-insensitive substring of the raw
// address, independent of coordinates.
func Keyword(name, substr string) Rule {
	lowered := strings.ToLower(substr)
	return Rule{
		Name: name,
		Match: func(address string, _, _ float64) bool {
			return strings.Contains(strings.ToLower(address), lowered)
		},
	}
}

// Classifier evaluates an ordered rule table.
type Classifier struct {
	rules []Rule
}

func NewClassifier(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Classify returns every zone whose rule matches, in table order, or
// [Unknown] when none do.
func (c *Classifier) Classify(address string, lat, lng float64) []string {
	var regions []string
	for _, r := range c.rules {
		if r.Match(address, lat, lng) {
			regions = append(regions, r.Name)
		}
	}
	if len(regions) == 0 {
		return []string{Unknown}
	}
	return regions
}

// ContainsUnknown reports whether a region set carries the Unknown sentinel.
func ContainsUnknown(regions []string) bool {
	for _, r := range regions {
		if r == Unknown {
			return true
		}
	}
	return len(regions) == 0
}

// DefaultRules is the Ann Arbor deployment's zone table.
func DefaultRules() []Rule {
	return []Rule{
		Box("kerrytown", 42.279277, 42.286811, -83.747954, -83.733047),
		Box("central", 42.271742, 42.279677, -83.747954, -83.733047),
		Box("hill", 42.274770, 42.286811, -83.733447, -83.722809),
		Box("lower_bp", 42.264330, 42.272142, -83.747954, -83.733047),
		Box("upper_bp", 42.264330, 42.275170, -83.733447, -83.722809),
		Keyword("pierpont", "pierpont"),
	}
}
