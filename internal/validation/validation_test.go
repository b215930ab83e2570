package validation

import (
	"strings"
	"testing"
)

func TestValidateCommunityName(t *testing.T) {
	t.Parallel()

	valid := []string{"abc", "Book Club", strings.Repeat("x", 30), "  padded  "}
	for _, name := range valid {
		if err := ValidateCommunityName(name); err != nil {
			t.Errorf("ValidateCommunityName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "ab", "  a  ", strings.Repeat("x", 31)}
	for _, name := range invalid {
		if err := ValidateCommunityName(name); err == nil {
			t.Errorf("ValidateCommunityName(%q) = nil, want error", name)
		}
	}
}

func TestValidatePostTitle(t *testing.T) {
	t.Parallel()

	if err := ValidatePostTitle("a"); err != nil {
		t.Errorf("single-character title rejected: %v", err)
	}
	if err := ValidatePostTitle(strings.Repeat("x", 300)); err != nil {
		t.Errorf("300-character title rejected: %v", err)
	}
	if err := ValidatePostTitle("   "); err == nil {
		t.Errorf("whitespace-only title accepted")
	}
	if err := ValidatePostTitle(strings.Repeat("x", 301)); err == nil {
		t.Errorf("301-character title accepted")
	}
	// limits count runes, not bytes
	if err := ValidatePostTitle(strings.Repeat("é", 300)); err != nil {
		t.Errorf("300-rune multibyte title rejected: %v", err)
	}
}

func TestValidatePostContent(t *testing.T) {
	t.Parallel()

	if err := ValidatePostContent(""); err != nil {
		t.Errorf("empty content rejected: %v", err)
	}
	if err := ValidatePostContent(strings.Repeat("x", 10000)); err != nil {
		t.Errorf("10000-character content rejected: %v", err)
	}
	if err := ValidatePostContent(strings.Repeat("x", 10001)); err == nil {
		t.Errorf("10001-character content accepted")
	}
}

func TestValidateCommentContent(t *testing.T) {
	t.Parallel()

	if err := ValidateCommentContent("hi"); err != nil {
		t.Errorf("short comment rejected: %v", err)
	}
	if err := ValidateCommentContent(""); err == nil {
		t.Errorf("empty comment accepted")
	}
	if err := ValidateCommentContent(strings.Repeat("x", 1001)); err == nil {
		t.Errorf("1001-character comment accepted")
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"user@example.com", "a.b+c@sub.domain.org"}
	for _, email := range valid {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("ValidateEmail(%q) = %v, want nil", email, err)
		}
	}
	invalid := []string{"", "plain", "no@tld", "spaces in@example.com", "@example.com"}
	for _, email := range invalid {
		if err := ValidateEmail(email); err == nil {
			t.Errorf("ValidateEmail(%q) = nil, want error", email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	if err := ValidatePassword("abcdefg1"); err != nil {
		t.Errorf("valid password rejected: %v", err)
	}
	invalid := []string{"short1", "lettersonly", "12345678"}
	for _, password := range invalid {
		if err := ValidatePassword(password); err == nil {
			t.Errorf("ValidatePassword(%q) = nil, want error", password)
		}
	}
}

func TestValidateRealName(t *testing.T) {
	t.Parallel()

	if err := ValidateRealName(""); err != nil {
		t.Errorf("empty name rejected: %v", err)
	}
	if err := ValidateRealName(strings.Repeat("x", 121)); err == nil {
		t.Errorf("121-character name accepted")
	}
}
