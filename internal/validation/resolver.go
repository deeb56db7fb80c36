// Package validation derives the pattern and message used to check a
// form element's value.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"form-template-api/internal/domain"
)

const (
	EmailMessage   = "invalid email format"
	PhoneMessage   = "Format nomor telepon tidak valid"
	DefaultMessage = "invalid field"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Indonesian mobile numbers: optional +62, 62 or 0 prefix, then 2-9, then 7-11 digits
	phonePattern = regexp.MustCompile(`^(\+62|62|0)?[2-9][0-9]{7,11}$`)
	anyPattern   = regexp.MustCompile(`(?s).*`)
)

// Rule is a resolved pattern/message pair. It is always usable.
type Rule struct {
	Pattern *regexp.Regexp
	Message string
}

// Match reports whether value satisfies the rule
func (r Rule) Match(value string) bool {
	return r.Pattern.MatchString(value)
}

// Resolve returns the rule for an element: the custom pattern when one is
// stored and compiles, otherwise the built-in rule for its type.
func Resolve(el *domain.FormElement) Rule {
	builtin := builtinRule(el.Type)
	if !el.Validation.HasPattern() {
		return builtin
	}

	pattern, flags := el.Validation.Pattern, el.Validation.Flags
	if body, delimFlags, ok := ParseDelimited(pattern); ok {
		pattern, flags = body, delimFlags+flags
	}

	re, err := Compile(pattern, flags)
	if err != nil {
		return builtin
	}

	message := el.Validation.Message
	if message == "" {
		message = builtin.Message
	}
	return Rule{Pattern: re, Message: message}
}

// ResolvePattern returns only the pattern of Resolve
func ResolvePattern(el *domain.FormElement) *regexp.Regexp {
	return Resolve(el).Pattern
}

// ResolveMessage returns only the message of Resolve
func ResolveMessage(el *domain.FormElement) string {
	return Resolve(el).Message
}

func builtinRule(t domain.ElementType) Rule {
	switch t {
	case domain.ElementTypeEmail:
		return Rule{Pattern: emailPattern, Message: EmailMessage}
	case domain.ElementTypePhone:
		return Rule{Pattern: phonePattern, Message: PhoneMessage}
	default:
		return Rule{Pattern: anyPattern, Message: DefaultMessage}
	}
}

// legacyFlags are the flags a delimited pattern may carry. Only i, m and s
// change matching in Go; the rest are accepted and dropped.
const legacyFlags = "dgimsuvy"

// ParseDelimited splits a "/body/flags" string. ok is false when s is not in
// that form and should be treated as a bare pattern.
func ParseDelimited(s string) (body, flags string, ok bool) {
	if len(s) < 2 || s[0] != '/' {
		return "", "", false
	}
	end := strings.LastIndexByte(s, '/')
	if end == 0 {
		return "", "", false
	}
	flags = s[end+1:]
	for _, f := range flags {
		if !strings.ContainsRune(legacyFlags, f) {
			return "", "", false
		}
	}
	return s[1:end], flags, true
}

// SplitLegacy converts an imported pattern into the stored pattern and flags.
// Bare patterns are returned unchanged.
func SplitLegacy(s string) (pattern, flags string) {
	body, f, ok := ParseDelimited(s)
	if !ok {
		return s, ""
	}
	return body, NormalizeFlags(f)
}

// Compile builds a regular expression from a bare pattern and flags
func Compile(pattern, flags string) (*regexp.Regexp, error) {
	for _, f := range flags {
		if !strings.ContainsRune(legacyFlags, f) {
			return nil, fmt.Errorf("unsupported regex flag %q", f)
		}
	}
	if inline := NormalizeFlags(flags); inline != "" {
		pattern = "(?" + inline + ")" + pattern
	}
	return regexp.Compile(pattern)
}

// Check reports whether a pattern/flags pair can be stored
func Check(pattern, flags string) error {
	if body, f, ok := ParseDelimited(pattern); ok {
		pattern, flags = body, f+flags
	}
	_, err := Compile(pattern, flags)
	return err
}

// NormalizeFlags keeps the flags Go understands, once each, in a fixed order
func NormalizeFlags(flags string) string {
	var b strings.Builder
	for _, f := range "ims" {
		if strings.ContainsRune(flags, f) {
			b.WriteRune(f)
		}
	}
	return b.String()
}
