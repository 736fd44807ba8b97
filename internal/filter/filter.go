// Package filter selects archive entries by filename suffix.
package filter

import "strings"

// DefaultExtensions is the suffix list offered when the user gives none
const DefaultExtensions = ".txt, .md, .js, .ts, .tsx, .json, .css, .html"

// Spec is a normalized suffix filter. An empty Suffixes list and All are
// equivalent: both select every entry.
type Spec struct {
	Suffixes []string
	All      bool
}

// MatchAll returns the spec that selects every entry
func MatchAll() Spec {
	return Spec{All: true}
}

// Parse normalizes a comma-separated suffix list. Each suffix is trimmed,
// lowercased and given a leading "." when missing. Empty items and repeats
// are dropped. processAll overrides the list.
func Parse(raw string, processAll bool) Spec {
	if processAll {
		return MatchAll()
	}

	var suffixes []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		ext := strings.ToLower(strings.TrimSpace(part))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if seen[ext] {
			continue
		}
		seen[ext] = true
		suffixes = append(suffixes, ext)
	}

	if len(suffixes) == 0 {
		return MatchAll()
	}
	return Spec{Suffixes: suffixes}
}

// FromList builds a spec from already split suffixes, normalizing them the
// same way Parse does.
func FromList(exts []string, processAll bool) Spec {
	return Parse(strings.Join(exts, ","), processAll)
}

// IsMatchAll reports whether the spec applies no filtering
func (s Spec) IsMatchAll() bool {
	return s.All || len(s.Suffixes) == 0
}

// String renders the suffixes the way the combined document header lists them
func (s Spec) String() string {
	if s.IsMatchAll() {
		return "*"
	}
	return strings.Join(s.Suffixes, ", ")
}

// Matches reports whether name ends with one of the spec's suffixes,
// ignoring case. The check is a plain tail comparison on the whole name, so
// path separators get no special treatment.
func Matches(name string, spec Spec) bool {
	if spec.IsMatchAll() {
		return true
	}
	lower := strings.ToLower(name)
	for _, suffix := range spec.Suffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}
