package slug

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// MaxAttempts bounds the number of suffixes EnsureUnique tries.
const MaxAttempts = 1000

// Fallback is used when a name slugifies to nothing.
const Fallback = "untitled"

var ErrExhausted = errors.New("no unique slug available")

// ExistsFunc reports whether a candidate slug is already taken in its scope.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

// Slugify converts text into a URL-friendly slug,
// e.g. "Q1 Survey!!" -> "q1-survey".
func Slugify(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	pendingDash := false
	for _, r := range strings.ToLower(input) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		case r == '-' || r == '_' || unicode.IsSpace(r):
			pendingDash = true
		}
	}
	return b.String()
}

// Base slugifies name, falling back to Fallback for names with no usable characters.
func Base(name string) string {
	if s := Slugify(name); s != "" {
		return s
	}
	return Fallback
}

// EnsureUnique returns base if it is free, otherwise the first free base-N.
func EnsureUnique(ctx context.Context, base string, exists ExistsFunc) (string, error) {
	candidate := base
	for n := 1; n <= MaxAttempts; n++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
	return "", ErrExhausted
}

// MaxInsertRetries bounds how often Claim checks again after losing an insert race.
const MaxInsertRetries = 3

// ErrConflict means every insert attempt collided with a concurrent writer.
var ErrConflict = errors.New("slug conflict")

// Claim picks a unique slug and hands it to insert. When insert fails with an
// error for which collided returns true, another writer took the slug between
// check and insert, so the slug is checked again.
func Claim(ctx context.Context, base string, exists ExistsFunc, insert func(ctx context.Context, slug string) error, collided func(error) bool) error {
	for attempt := 0; attempt < MaxInsertRetries; attempt++ {
		candidate, err := EnsureUnique(ctx, base, exists)
		if err != nil {
			return err
		}
		err = insert(ctx, candidate)
		if err == nil {
			return nil
		}
		if !collided(err) {
			return err
		}
	}
	return ErrConflict
}
