package schema

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cast"
)

const (
	EmailPattern      = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	PhonePattern      = `^[\+]?[1-9][\d]{0,15}$`
	IdentifierPattern = `^[A-Za-z0-9_-]+$`
)

var (
	emailRe      = regexp.MustCompile(EmailPattern)
	phoneRe      = regexp.MustCompile(PhonePattern)
	identifierRe = regexp.MustCompile(IdentifierPattern)
	nonPhoneRe   = regexp.MustCompile(`[^\d+]`)
)

// IsMissing reports whether v counts as a missing cell.
func IsMissing(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	}
	return false
}

// ToNumber parses v as a number. Booleans and times are not numbers.
func ToNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case nil, bool, time.Time:
		return 0, false
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		f, err := cast.ToFloat64E(s)
		return f, err == nil
	}
	f, err := cast.ToFloat64E(v)
	return f, err == nil
}

// ToTime parses v as a timestamp.
func ToTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return time.Time{}, false
		}
		t, err := dateparse.ParseAny(s)
		return t, err == nil
	}
	return time.Time{}, false
}

// ToBool parses the boolean tokens true/false/1/0/yes/no, case-insensitively.
func ToBool(v any) (bool, bool) {
	if b, ok := v.(bool); ok {
		return b, true
	}
	switch strings.ToLower(strings.TrimSpace(ValueKey(v))) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	}
	return false, false
}

// ValueKey returns a canonical string for v, used for distinct counting and
// membership tests. Numbers compare by value, so "1" and 1.0 share a key.
func ValueKey(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case bool:
		return strconv.FormatBool(x)
	}
	return cast.ToString(v)
}

// NumericKey returns the key of v as a number when it parses as one.
func NumericKey(v any) string {
	if f, ok := ToNumber(v); ok {
		return ValueKey(f)
	}
	return ValueKey(v)
}

// MatchesEmail reports whether s looks like an email address.
func MatchesEmail(s string) bool { return emailRe.MatchString(s) }

// MatchesPhone reports whether s, stripped of everything but digits and '+',
// looks like a phone number.
func MatchesPhone(s string) bool { return phoneRe.MatchString(nonPhoneRe.ReplaceAllString(s, "")) }

// MatchesIdentifier reports whether s is a generic identifier token.
func MatchesIdentifier(s string) bool { return identifierRe.MatchString(s) }
