package questionnaire

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidBank is wrapped by every validation failure.
var ErrInvalidBank = errors.New("invalid question bank")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Parse decodes a YAML question bank and validates it.
func Parse(data []byte) (*Bank, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var b Bank
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}
	if err := Validate(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Load reads and parses a question bank file.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Validate checks field constraints and cross references: question IDs and
// option values are unique and every question names a declared category.
func Validate(b *Bank) error {
	if b == nil {
		return fmt.Errorf("%w: nil bank", ErrInvalidBank)
	}
	if err := validate.Struct(b); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}

	categories := make(map[string]bool, len(b.Categories))
	for _, c := range b.Categories {
		if categories[c.ID] {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidBank, c.ID)
		}
		categories[c.ID] = true
	}

	ids := make(map[int]bool, len(b.Questions))
	for _, q := range b.Questions {
		if ids[q.ID] {
			return fmt.Errorf("%w: duplicate question id %d", ErrInvalidBank, q.ID)
		}
		ids[q.ID] = true

		if !categories[q.Category] {
			return fmt.Errorf("%w: question %d references unknown category %q",
				ErrInvalidBank, q.ID, q.Category)
		}

		values := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			if values[o.Value] {
				return fmt.Errorf("%w: question %d has duplicate option value %q",
					ErrInvalidBank, q.ID, o.Value)
			}
			values[o.Value] = true
		}
	}
	return nil
}
