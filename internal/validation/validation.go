// Package validation provides centralized input validation for pelorus.
package validation

import (
	"fmt"
	"strings"
	"unicode"
)

// KeyRules defines the validation rules for metric keys.
type KeyRules struct {
	MinLength    int
	MaxLength    int
	AllowDots    bool
	AllowHyphens bool
	AllowUnders  bool
}

// MetricKeyRules returns the rules for sensor metric keys.
// Keys are dotted paths like "battery.voltage" or "engine.rpm".
func MetricKeyRules() KeyRules {
	return KeyRules{
		MinLength:    1,
		MaxLength:    255,
		AllowDots:    true,
		AllowHyphens: true,
		AllowUnders:  true,
	}
}

// ValidateMetricKey validates a sensor metric key.
func ValidateMetricKey(key string) error {
	return ValidateKey(key, MetricKeyRules())
}

// ValidateKey validates a key according to the given rules.
func ValidateKey(key string, rules KeyRules) error {
	if len(key) < rules.MinLength {
		return fmt.Errorf("key too short: minimum %d characters required", rules.MinLength)
	}
	if len(key) > rules.MaxLength {
		return fmt.Errorf("key too long: maximum %d characters allowed", rules.MaxLength)
	}

	if key == "." || key == ".." {
		return fmt.Errorf("key cannot be '.' or '..'")
	}

	if strings.HasPrefix(key, ".") || strings.HasSuffix(key, ".") {
		return fmt.Errorf("key cannot start or end with '.'")
	}

	for i, r := range key {
		if r < 32 || r == 127 {
			return fmt.Errorf("key cannot contain control characters at position %d", i)
		}
		if r == '/' || r == '\\' {
			return fmt.Errorf("key cannot contain path separators at position %d", i)
		}
		if !isAllowedKeyChar(r, rules) {
			return fmt.Errorf("invalid character '%c' at position %d", r, i)
		}
	}

	return nil
}

func isAllowedKeyChar(r rune, rules KeyRules) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case '.':
		return rules.AllowDots
	case '-':
		return rules.AllowHyphens
	case '_':
		return rules.AllowUnders
	}
	return false
}
