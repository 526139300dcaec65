// internal/amadeus/validate.go
package amadeus

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// ValidationError reports an invalid search parameter. The HTTP layer maps it
// to a 400 response.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateCityCode checks an IATA-style city code: exactly 3 letters.
// Returns the code upper-cased.
func ValidateCityCode(code string) (string, error) {
	if len(code) != 3 {
		return "", &ValidationError{Field: "cityCode", Message: "city code must be exactly 3 letters"}
	}
	for _, r := range code {
		if !unicode.IsLetter(r) {
			return "", &ValidationError{Field: "cityCode", Message: "city code must be exactly 3 letters"}
		}
	}
	return strings.ToUpper(code), nil
}

// ValidateDate checks a YYYY-MM-DD date string and that it is a real date.
func ValidateDate(date, field string) (string, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", &ValidationError{Field: field, Message: fmt.Sprintf("%s must be a valid date in YYYY-MM-DD format", field)}
	}
	return date, nil
}

// ValidateRange checks an integer against an inclusive range.
func ValidateRange(value int, field string, min, max int) (int, error) {
	if value < min || value > max {
		return 0, &ValidationError{Field: field, Message: fmt.Sprintf("%s must be between %d and %d", field, min, max)}
	}
	return value, nil
}
