package service

import "strings"

// isDuplicateKeyError reports whether a write lost to a unique index.
// Postgres phrases this "duplicate key value violates unique constraint"
// while sqlite in tests says "UNIQUE constraint failed", so the match is
// case-insensitive.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
