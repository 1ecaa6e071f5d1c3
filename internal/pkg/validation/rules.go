package validation

import (
	"net/url"
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// SlugPattern matches lowercase hyphen separated url segments
	SlugPattern = `^[a-z0-9]+(?:-[a-z0-9]+)*$`

	NameMinLength = 2
	NameMaxLength = 200

	RatingMin = 1
	RatingMax = 5
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email *regexp.Regexp
	Slug  *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
	Slug:  regexp.MustCompile(SlugPattern),
}

// StringValidation checks a single string value
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new required string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    strings.TrimSpace(value),
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return !v.Required
	}
	n := len([]rune(v.Value))
	if v.MinLen > 0 && n < v.MinLen {
		return false
	}
	if v.MaxLen > 0 && n > v.MaxLen {
		return false
	}
	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}
	return true
}

// NumericValidation checks an integer against bounds
type NumericValidation struct {
	Value int
	Min   *int
	Max   *int
}

// NewNumericValidation creates a new numeric validation
func NewNumericValidation(value int) *NumericValidation {
	return &NumericValidation{Value: value}
}

// WithMin sets minimum value
func (v *NumericValidation) WithMin(min int) *NumericValidation {
	v.Min = &min
	return v
}

// WithMax sets maximum value
func (v *NumericValidation) WithMax(max int) *NumericValidation {
	v.Max = &max
	return v
}

// Validate performs validation
func (v *NumericValidation) Validate() bool {
	if v.Min != nil && v.Value < *v.Min {
		return false
	}
	if v.Max != nil && v.Value > *v.Max {
		return false
	}
	return true
}

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool {
	return NewStringValidation(s).WithPattern(CompiledPatterns.Email).Validate()
}

// IsSlug reports whether s is a valid url slug.
func IsSlug(s string) bool {
	return NewStringValidation(s).WithPattern(CompiledPatterns.Slug).Validate()
}

// IsOptionalURL accepts the empty string or an absolute http(s) url.
func IsOptionalURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsRating reports whether r is within the star rating range.
func IsRating(r int) bool {
	return NewNumericValidation(r).WithMin(RatingMin).WithMax(RatingMax).Validate()
}
