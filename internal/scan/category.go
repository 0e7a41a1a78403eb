package scan

// Policy is the retention class a Category carries. It decides whether the
// most recently used entries in a category survive the cut.
type Policy int

const (
	// PolicyNone marks categories where every eligible candidate is removable.
	PolicyNone Policy = iota
	// PolicyKeepLatestDerived protects the newest entries of per-project
	// derived output stores (DerivedData, Archives).
	PolicyKeepLatestDerived
	// PolicyKeepLatestCache protects the newest entries of shared download
	// caches (Homebrew).
	PolicyKeepLatestCache
)

func (p Policy) String() string {
	switch p {
	case PolicyKeepLatestDerived:
		return "keep-latest-derived"
	case PolicyKeepLatestCache:
		return "keep-latest-cache"
	default:
		return "none"
	}
}

// Category identifies what kind of reclaimable directory a candidate is.
// Categories sharing a display label still keep separate retention pools.
type Category int

const (
	CategoryDerivedData Category = iota
	CategoryArchives
	CategoryCoreSimulator
	CategoryHomebrew
	CategoryPython
	CategoryNode
	CategoryCocoaPods
	CategoryGradle
	CategoryJetBrains
	CategoryVSCode
	CategorySlack
	CategoryProject
)

var categoryLabels = [...]string{
	CategoryDerivedData:   "Xcode",
	CategoryArchives:      "Xcode",
	CategoryCoreSimulator: "Xcode",
	CategoryHomebrew:      "Homebrew",
	CategoryPython:        "Python",
	CategoryNode:          "Node",
	CategoryCocoaPods:     "CocoaPods",
	CategoryGradle:        "Gradle",
	CategoryJetBrains:     "JetBrains",
	CategoryVSCode:        "VSCode",
	CategorySlack:         "Slack",
	CategoryProject:       "Project",
}

// Label returns the display group for the category.
func (c Category) Label() string {
	if int(c) < 0 || int(c) >= len(categoryLabels) {
		return "Unknown"
	}
	return categoryLabels[c]
}

// Policy returns the retention class for the category.
func (c Category) Policy() Policy {
	switch c {
	case CategoryDerivedData, CategoryArchives:
		return PolicyKeepLatestDerived
	case CategoryHomebrew:
		return PolicyKeepLatestCache
	default:
		return PolicyNone
	}
}

// Labels returns the distinct category labels in display order. Useful for
// category pickers and for validating filter values.
func Labels() []string {
	return []string{
		"Xcode", "Homebrew", "Python", "Node", "CocoaPods",
		"Gradle", "JetBrains", "VSCode", "Slack", "Project",
	}
}

// ValidLabel reports whether label names a known category group.
func ValidLabel(label string) bool {
	for _, l := range Labels() {
		if l == label {
			return true
		}
	}
	return false
}
