package scan

import (
	"path/filepath"
	"strings"
)

// Match is the catalog's verdict for a directory. When Owned is true the
// directory is a keep-latest base: its children become candidates (enumerated
// by the scanner) and the walker only prunes, never emits.
type Match struct {
	Category Category
	Reason   string
	Owned    bool
}

// LocationRule anchors a category to a well-known path under the home
// directory. PerChild marks keep-latest bases whose child directories are the
// actual candidates.
type LocationRule struct {
	Rel      string
	Category Category
	Reason   string
	PerChild bool

	path string
}

// Path returns the rule's absolute target path.
func (r LocationRule) Path() string {
	return r.path
}

// NameRule classifies project-local directories by name alone. Exactly one of
// Name or Suffix is set.
type NameRule struct {
	Name   string
	Suffix string
}

var defaultSkipNames = []string{".git", ".hg", ".svn", ".idea", ".vscode", ".gradle"}

var defaultLocationRules = []LocationRule{
	{Rel: "Library/Developer/Xcode/DerivedData", Category: CategoryDerivedData, Reason: "Old DerivedData projects", PerChild: true},
	{Rel: "Library/Developer/Xcode/Archives", Category: CategoryArchives, Reason: "Old Xcode archives", PerChild: true},
	{Rel: "Library/Caches/Homebrew", Category: CategoryHomebrew, Reason: "Homebrew download cache", PerChild: true},
	{Rel: "Library/Developer/CoreSimulator/Caches", Category: CategoryCoreSimulator, Reason: "CoreSimulator caches"},
	{Rel: "Library/Caches/pip", Category: CategoryPython, Reason: "pip cache"},
	{Rel: ".cache/pip", Category: CategoryPython, Reason: "pip cache"},
	{Rel: ".cache/pip-tools", Category: CategoryPython, Reason: "pip-tools cache"},
	{Rel: ".cache/pipenv", Category: CategoryPython, Reason: "pipenv cache"},
	{Rel: ".cache/pre-commit", Category: CategoryPython, Reason: "pre-commit cache"},
	{Rel: ".cache/matplotlib", Category: CategoryPython, Reason: "matplotlib cache"},
	{Rel: ".cache/pytest", Category: CategoryPython, Reason: "pytest cache"},
	{Rel: ".cache/ruff", Category: CategoryPython, Reason: "ruff cache"},
	{Rel: ".cache/uv", Category: CategoryPython, Reason: "uv cache"},
	{Rel: ".npm", Category: CategoryNode, Reason: "npm cache"},
	{Rel: "Library/Caches/npm", Category: CategoryNode, Reason: "npm cache"},
	{Rel: "Library/Caches/Yarn", Category: CategoryNode, Reason: "Yarn cache"},
	{Rel: ".cache/yarn", Category: CategoryNode, Reason: "Yarn cache"},
	{Rel: "Library/Caches/CocoaPods", Category: CategoryCocoaPods, Reason: "CocoaPods cache"},
	{Rel: ".gradle/caches", Category: CategoryGradle, Reason: "Gradle caches"},
	{Rel: ".gradle/daemon", Category: CategoryGradle, Reason: "Gradle daemons"},
	{Rel: ".gradle/native", Category: CategoryGradle, Reason: "Gradle native cache"},
	{Rel: "Library/Caches/JetBrains", Category: CategoryJetBrains, Reason: "JetBrains IDE caches"},
	{Rel: "Library/Application Support/Code/Cache", Category: CategoryVSCode, Reason: "VSCode cache"},
	{Rel: "Library/Application Support/Code/CachedData", Category: CategoryVSCode, Reason: "VSCode cached data"},
	{Rel: "Library/Application Support/Slack/Service Worker/CacheStorage", Category: CategorySlack, Reason: "Slack cache"},
}

var defaultNameRules = []NameRule{
	{Name: "build"},
	{Name: "dist"},
	{Name: "out"},
	{Name: "_build"},
	{Name: "target"},
	{Name: "node_modules"},
	{Name: "DerivedData"},
	{Name: ".pytest_cache"},
	{Name: ".mypy_cache"},
	{Name: ".ruff_cache"},
	{Name: ".tox"},
	{Name: ".eggs"},
	{Name: "coverage"},
	{Name: "__pycache__"},
	{Name: ".parcel-cache"},
	{Name: ".sass-cache"},
	{Name: ".cache"},
	{Suffix: ".egg-info"},
}

// Catalog is the ordered classification rule table. Location rules take
// precedence over name rules so a well-known cache root is never shadowed by
// a generic name match (a project-local DerivedData stays a Project
// candidate, the fixed Xcode one does not). The catalog holds no mutable
// state and is safe for concurrent readers.
type Catalog struct {
	locations []LocationRule
	byPath    map[string]*LocationRule
	names     []NameRule
	skip      map[string]bool
}

// DefaultCatalog builds the built-in rule table anchored at the given home
// directory. An empty home disables location rules.
func DefaultCatalog(home string) *Catalog {
	c := &Catalog{
		byPath: make(map[string]*LocationRule),
		names:  defaultNameRules,
		skip:   make(map[string]bool, len(defaultSkipNames)),
	}
	for _, n := range defaultSkipNames {
		c.skip[n] = true
	}
	if home == "" {
		return c
	}
	c.locations = make([]LocationRule, len(defaultLocationRules))
	copy(c.locations, defaultLocationRules)
	for i := range c.locations {
		c.locations[i].path = filepath.Join(home, filepath.FromSlash(c.locations[i].Rel))
		c.byPath[c.locations[i].path] = &c.locations[i]
	}
	return c
}

// Skip reports whether a directory name must never be classified or entered
// (VCS metadata and IDE state).
func (c *Catalog) Skip(name string) bool {
	return c.skip[name]
}

// Match classifies a directory, first against location rules by absolute
// path, then against name rules in table order. First match wins.
func (c *Catalog) Match(path, name string) (Match, bool) {
	if loc, ok := c.byPath[filepath.Clean(path)]; ok {
		return Match{Category: loc.Category, Reason: loc.Reason, Owned: loc.PerChild}, true
	}
	for _, r := range c.names {
		if r.Name != "" && r.Name == name {
			return Match{Category: CategoryProject, Reason: "Stale build or cache (" + name + ")"}, true
		}
		if r.Suffix != "" && strings.HasSuffix(name, r.Suffix) {
			return Match{Category: CategoryProject, Reason: "Stale build or cache (" + name + ")"}, true
		}
	}
	return Match{}, false
}

// Locations returns the location rules in table order.
func (c *Catalog) Locations() []LocationRule {
	return c.locations
}

// NameRules returns the name rules in table order.
func (c *Catalog) NameRules() []NameRule {
	return c.names
}

// SkipNames returns the skip set in table order.
func (c *Catalog) SkipNames() []string {
	return defaultSkipNames
}
