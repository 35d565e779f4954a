package services

import (
	"errors"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidID          = errors.New("invalid id")
	ErrNoImages           = errors.New("no image to process")
	ErrMediaUnavailable   = errors.New("media provider not configured")
	ErrNotInAlbum         = errors.New("photo is not in this album")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports user input that cannot be saved as submitted.
type ValidationError struct {
	Fields []string
	Msg    string
}

func (e *ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func requireFields(values map[string]string, order ...string) error {
	var missing []string
	for _, name := range order {
		if strings.TrimSpace(values[name]) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Fields: missing}
}

// DuplicateTagError carries the id of the tag that already has the title.
type DuplicateTagError struct {
	ID int
}

func (e *DuplicateTagError) Error() string { return "tag already exists" }
