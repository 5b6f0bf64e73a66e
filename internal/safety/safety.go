// Package safety holds the shared path-classification policy every
// scanner and the execution engine consult before anything is deleted.
package safety

import (
	"path/filepath"
	"strings"
)

// Level classifies how dangerous it is to delete a path.
type Level int

const (
	// Safe items can be deleted without user hesitation.
	Safe Level = iota
	// Caution items are deletable but the user should look twice.
	Caution
	// Protected items are never deleted, even when explicitly selected.
	Protected
)

func (l Level) String() string {
	switch l {
	case Safe:
		return "Safe"
	case Caution:
		return "Caution"
	case Protected:
		return "Protected"
	default:
		return "Unknown"
	}
}

// Checker classifies paths against protected system prefixes and
// known-critical filename patterns.
type Checker struct {
	protectedPrefixes []string
	criticalPatterns  []string
}

// NewChecker returns a Checker loaded with the macOS policy.
func NewChecker() *Checker {
	return &Checker{
		protectedPrefixes: []string{
			"/System",
			"/usr",
			"/bin",
			"/sbin",
			"/etc",
			"/var/db",
			"/private/var/db",
		},
		criticalPatterns: []string{
			".Spotlight-",
			".fseventsd",
			".Trashes",
			"Library/Keychains",
			"Library/Security",
			"Library/CoreServices",
		},
	}
}

// Check returns the safety classification for a path: Protected for
// system prefixes and critical patterns, Caution for hidden dotfiles,
// Safe otherwise.
func (c *Checker) Check(path string) Level {
	for _, prefix := range c.protectedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return Protected
		}
	}

	for _, pattern := range c.criticalPatterns {
		if strings.Contains(path, pattern) {
			return Protected
		}
	}

	if c.isHidden(path) {
		return Caution
	}

	return Safe
}

func (c *Checker) isHidden(path string) bool {
	name := filepath.Base(path)
	return strings.HasPrefix(name, ".") && !strings.HasPrefix(name, "..")
}

// IsSafeToDelete reports whether the path may be deleted at all.
// This is the live re-check the execution engine runs immediately before
// each deletion; a Finding classified minutes earlier is not trusted.
func (c *Checker) IsSafeToDelete(path string) bool {
	lvl := c.Check(path)
	return lvl == Safe || lvl == Caution
}
