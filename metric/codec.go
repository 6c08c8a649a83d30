package metric

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"speedrun/app_error"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const maxDigits = 9

var printer = message.NewPrinter(language.English)

// plain digits, or groups of three after a leading group of one to three
var integerPattern = regexp.MustCompile(`^(\d+|\d{1,3}(,\d{3})+)$`)

// Encode turns user input into the stored value of kind.
//
// Times are "[H:]MM:SS[.mmm]" and stored as whole milliseconds, fractions
// beyond a millisecond are truncated. Counts and scores are non-negative
// integers and may carry "," thousands separators.
func Encode(kind Kind, raw string) (int64, error) {
	switch kind {
	case Time:
		return encodeTime(strings.TrimSpace(raw))
	case Count, Score:
		return encodeInteger(strings.TrimSpace(raw))
	}
	return 0, fmt.Errorf("%w: unknown metric type %q", app_error.ErrInvalidFormat, kind)
}

// EncodeLenient is Encode with malformed input coerced to zero. Only use it
// where the caller explicitly asked for that.
func EncodeLenient(kind Kind, raw string) int64 {
	value, err := Encode(kind, raw)
	if err != nil {
		return 0
	}
	return value
}

// Decode renders a stored value for display.
func Decode(kind Kind, value int64) string {
	if kind == Time {
		return decodeTime(value)
	}
	return printer.Sprintf("%d", value)
}

func invalidTime(raw string) error {
	return fmt.Errorf("%w: %q is not a time, use MM:SS.mmm or H:MM:SS.mmm", app_error.ErrInvalidFormat, raw)
}

func encodeTime(raw string) (int64, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, invalidTime(raw)
	}

	var hours, minutes int64
	var ok bool
	if len(parts) == 3 {
		if hours, ok = digits(parts[0]); !ok {
			return 0, invalidTime(raw)
		}
		if len(parts[1]) != 2 {
			return 0, invalidTime(raw)
		}
		if minutes, ok = digits(parts[1]); !ok || minutes >= 60 {
			return 0, invalidTime(raw)
		}
	} else if minutes, ok = digits(parts[0]); !ok {
		return 0, invalidTime(raw)
	}

	whole, fraction, hasFraction := strings.Cut(parts[len(parts)-1], ".")
	if len(whole) != 2 {
		return 0, invalidTime(raw)
	}
	seconds, ok := digits(whole)
	if !ok || seconds >= 60 {
		return 0, invalidTime(raw)
	}

	var millis int64
	if hasFraction {
		if !allDigits(fraction) {
			return 0, invalidTime(raw)
		}
		if len(fraction) > 3 {
			fraction = fraction[:3]
		}
		millis, _ = digits(fraction + strings.Repeat("0", 3-len(fraction)))
	}
	return ((hours*60+minutes)*60+seconds)*1000 + millis, nil
}

func encodeInteger(raw string) (int64, error) {
	if !integerPattern.MatchString(raw) {
		return 0, fmt.Errorf("%w: %q is not a whole number", app_error.ErrInvalidFormat, raw)
	}
	cleaned := strings.ReplaceAll(raw, ",", "")
	value, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is out of range", app_error.ErrInvalidFormat, raw)
	}
	return value, nil
}

func decodeTime(ms int64) string {
	sign := ""
	if ms < 0 {
		sign, ms = "-", -ms
	}
	totalSeconds := ms / 1000
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	millis := ms % 1000
	if hours > 0 {
		return fmt.Sprintf("%s%d:%02d:%02d.%03d", sign, hours, minutes, seconds, millis)
	}
	return fmt.Sprintf("%s%d:%02d.%03d", sign, minutes, seconds, millis)
}

// digits parses a short run of ASCII digits.
func digits(s string) (int64, bool) {
	if len(s) > maxDigits || !allDigits(s) {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	return v, err == nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
