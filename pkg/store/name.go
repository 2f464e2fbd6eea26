package store

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// tempPrefix marks in-flight atomic writes; such entries are hidden from List
const tempPrefix = ".replacer-tmp-"

// ValidateName checks that name addresses a single entry directly under the store root.
func ValidateName(name string) error {
	switch {
	case name == "":
		return invalid("validate", name, errors.New("name is required"))
	case name == "." || name == "..":
		return invalid("validate", name, errors.New("name must not be a relative directory"))
	case strings.ContainsAny(name, "/\\\x00"):
		return invalid("validate", name, errors.New("name must not contain path separators"))
	case strings.HasPrefix(name, tempPrefix):
		return invalid("validate", name, errors.New("name uses a reserved prefix"))
	}
	return nil
}
