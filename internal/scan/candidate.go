package scan

import "time"

// Candidate is a directory the scanner proposes for removal. Path is always
// absolute. Size is the apparent size in bytes, filled in exactly once by the
// size estimator; candidates are treated as immutable afterwards.
type Candidate struct {
	Path     string
	Category Category
	Reason   string
	ModTime  time.Time
	Size     int64
}
