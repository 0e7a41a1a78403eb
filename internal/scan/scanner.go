package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// maxWarnings caps the warning list so a wide unreadable tree cannot grow it
// without bound.
const maxWarnings = 500

// Config carries everything a scan needs. The scanner never mutates it and
// reads no ambient state besides the filesystem itself; callers resolve the
// working directory and home directory up front.
type Config struct {
	Roots             []string
	Excludes          []string
	MinAge            time.Duration
	MaxDepth          int
	KeepLatestDerived int
	KeepLatestCache   int

	// Categories restricts the plan to the given category labels. Empty
	// means no restriction.
	Categories []string

	// Home anchors the well-known cache locations. Empty disables them.
	Home string
}

// Validate rejects configurations that cannot be scanned. It runs before any
// traversal so a bad flag never produces a partial walk.
func (c Config) Validate() error {
	if c.MinAge < 0 {
		return fmt.Errorf("min age must not be negative, got %s", c.MinAge)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	if c.KeepLatestDerived < 0 {
		return fmt.Errorf("keep-latest-derived must not be negative, got %d", c.KeepLatestDerived)
	}
	if c.KeepLatestCache < 0 {
		return fmt.Errorf("keep-latest-cache must not be negative, got %d", c.KeepLatestCache)
	}
	for _, label := range c.Categories {
		if !ValidLabel(label) {
			return fmt.Errorf("unknown category %q", label)
		}
	}
	return nil
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithWorkers sets the sizing pool width.
func WithWorkers(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithProgress streams the path currently being examined. The callback is
// invoked from walker goroutines and must not block.
func WithProgress(fn func(string)) Option {
	return func(s *Scanner) { s.progress = fn }
}

// WithCatalog replaces the built-in rule table.
func WithCatalog(c *Catalog) Option {
	return func(s *Scanner) { s.catalog = c }
}

// Scanner runs the full pipeline: the location seeder and one walker per root
// fan raw hits into a sizing pool, and the sized candidates are filtered and
// ranked into a Plan.
type Scanner struct {
	cfg      Config
	catalog  *Catalog
	workers  int
	progress func(string)

	mu       sync.Mutex
	warnings []string
	seen     map[string]bool
}

// New validates the config and prepares a scanner. Excludes are normalized
// once here so every later comparison is component-wise against resolved
// paths.
func New(cfg Config, opts ...Option) (*Scanner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Excludes = Normalize(cfg.Excludes)
	s := &Scanner{
		cfg:     cfg,
		catalog: DefaultCatalog(cfg.Home),
		workers: defaultWorkers(),
		seen:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func defaultWorkers() int {
	n := runtime.GOMAXPROCS(0)
	if n > 8 {
		n = 8
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Scan walks every root, sizes the discovered candidates, applies the
// category, age, exclusion, and retention filters, and ranks the survivors.
// On cancellation it returns the plan built from what was collected so far
// together with the context error, so callers can show partial results.
func (s *Scanner) Scan(ctx context.Context) (*Plan, error) {
	now := time.Now()
	s.reset()

	hits := make(chan Candidate)
	sized := make(chan Candidate)

	emit := func(c Candidate) {
		select {
		case hits <- c:
		case <-ctx.Done():
		}
	}

	var producers sync.WaitGroup
	producers.Add(1)
	go func() {
		defer producers.Done()
		s.seedLocations(ctx, emit)
	}()
	for _, root := range s.cfg.Roots {
		producers.Add(1)
		go func(root string) {
			defer producers.Done()
			w := &walker{
				catalog:  s.catalog,
				excludes: s.cfg.Excludes,
				maxDepth: s.cfg.MaxDepth,
				emit:     emit,
				visit:    s.report,
				warn:     s.warn,
				claimed:  s.claim,
			}
			w.walk(ctx, root)
		}(root)
	}
	go func() {
		producers.Wait()
		close(hits)
	}()

	var sizers sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		sizers.Add(1)
		go func() {
			defer sizers.Done()
			for c := range hits {
				if ctx.Err() != nil {
					continue
				}
				c.Size = dirSize(c.Path, s.warn)
				if c.Size == 0 {
					continue
				}
				select {
				case sized <- c:
				case <-ctx.Done():
				}
			}
		}()
	}
	go func() {
		sizers.Wait()
		close(sized)
	}()

	var collected []Candidate
	for c := range sized {
		collected = append(collected, c)
	}

	plan := BuildPlan(s.filter(collected, now))
	if err := ctx.Err(); err != nil {
		return plan, err
	}
	return plan, nil
}

// Warnings returns the problems encountered during the last scan.
func (s *Scanner) Warnings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.warnings...)
}

// filter applies the category restriction, then composes the eligibility and
// retention verdicts. The retention quota is computed over the full gathered
// set: a too-young DerivedData entry both fails the age check and fills the
// kept slot, so the two filters agree on it.
func (s *Scanner) filter(candidates []Candidate, now time.Time) []Candidate {
	enabled := make(map[string]bool, len(s.cfg.Categories))
	for _, label := range s.cfg.Categories {
		enabled[label] = true
	}
	if len(enabled) > 0 {
		inScope := candidates[:0]
		for _, c := range candidates {
			if enabled[c.Category.Label()] {
				inScope = append(inScope, c)
			}
		}
		candidates = inScope
	}

	retained := RetainedPaths(candidates, s.cfg.KeepLatestDerived, s.cfg.KeepLatestCache)

	var out []Candidate
	for _, c := range candidates {
		if retained[c.Path] {
			continue
		}
		if !Eligible(c, now, s.cfg.MinAge, s.cfg.Excludes) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// seedLocations turns the catalog's location rules into raw hits: whole-dir
// targets directly, keep-latest bases one hit per child directory. Missing
// targets are normal and stay silent; read failures are warned.
func (s *Scanner) seedLocations(ctx context.Context, emit func(Candidate)) {
	for _, rule := range s.catalog.Locations() {
		if ctx.Err() != nil {
			return
		}
		base := rule.Path()
		if Excluded(base, s.cfg.Excludes) {
			continue
		}

		if !rule.PerChild {
			info, err := os.Stat(base)
			if err != nil {
				continue
			}
			s.report(base)
			if s.claim(base) {
				continue
			}
			emit(Candidate{Path: base, Category: rule.Category, Reason: rule.Reason, ModTime: info.ModTime()})
			continue
		}

		entries, err := os.ReadDir(base)
		if err != nil {
			if !os.IsNotExist(err) {
				s.warn(base, err)
			}
			continue
		}
		s.report(base)
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			child := filepath.Join(base, entry.Name())
			if Excluded(child, s.cfg.Excludes) {
				continue
			}
			info, infoErr := entry.Info()
			if infoErr != nil {
				s.warn(child, infoErr)
				continue
			}
			if s.claim(child) {
				continue
			}
			emit(Candidate{Path: child, Category: rule.Category, Reason: rule.Reason, ModTime: info.ModTime()})
		}
	}
}

func (s *Scanner) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warnings = nil
	s.seen = make(map[string]bool)
}

func (s *Scanner) report(path string) {
	if s.progress != nil {
		s.progress(path)
	}
}

func (s *Scanner) warn(path string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.warnings) >= maxWarnings {
		return
	}
	s.warnings = append(s.warnings, fmt.Sprintf("cannot read %s: %v", path, err))
}

// claim records the canonical identity of a candidate path and reports
// whether it was already taken, so overlapping roots and seeded locations
// produce exactly one candidate per directory.
func (s *Scanner) claim(path string) bool {
	key := canonical(path)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen[key] {
		return true
	}
	s.seen[key] = true
	return false
}
