package store

import (
	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// Filter keeps the names matching a glob pattern such as "*.txt" or "report*".
// An empty pattern keeps everything.
func Filter(names []string, pattern string) ([]string, error) {
	if pattern == "" {
		return names, nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, invalid("filter", pattern, errors.New("malformed glob pattern"))
	}

	matched := make([]string, 0, len(names))
	for _, name := range names {
		ok, err := doublestar.Match(pattern, name)
		if err != nil {
			return nil, invalid("filter", pattern, err)
		}
		if ok {
			matched = append(matched, name)
		}
	}
	return matched, nil
}
