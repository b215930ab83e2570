package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	postTitleMaxLen      = 300
	postContentMaxLen    = 10000
	commentContentMaxLen = 1000
)

// ValidatePostTitle validates a post title (1-300 characters after trimming).
func ValidatePostTitle(title string) error {
	length := utf8.RuneCountInString(strings.TrimSpace(title))
	if length == 0 {
		return fmt.Errorf("title is required")
	}
	if length > postTitleMaxLen {
		return fmt.Errorf("title must be at most %d characters", postTitleMaxLen)
	}
	return nil
}

// ValidatePostContent validates optional post content (up to 10000 characters).
func ValidatePostContent(content string) error {
	if utf8.RuneCountInString(content) > postContentMaxLen {
		return fmt.Errorf("content must be at most %d characters", postContentMaxLen)
	}
	return nil
}

// ValidateCommentContent validates comment content (1-1000 characters after trimming).
func ValidateCommentContent(content string) error {
	length := utf8.RuneCountInString(strings.TrimSpace(content))
	if length == 0 {
		return fmt.Errorf("content is required")
	}
	if length > commentContentMaxLen {
		return fmt.Errorf("content must be at most %d characters", commentContentMaxLen)
	}
	return nil
}
