package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	communityNameMinLen = 3
	communityNameMaxLen = 30
)

// ValidateCommunityName validates a community name after trimming whitespace.
func ValidateCommunityName(name string) error {
	trimmed := strings.TrimSpace(name)
	length := utf8.RuneCountInString(trimmed)
	if length < communityNameMinLen || length > communityNameMaxLen {
		return fmt.Errorf("community name must be between %d and %d characters", communityNameMinLen, communityNameMaxLen)
	}
	return nil
}
