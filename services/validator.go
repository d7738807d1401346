package services

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// rosterHeader is the column set every roster file must declare in its
// first row.
var rosterHeader = []string{"username", "password"}

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateRoster checks that the file at filePath is a usable roster: a
// parseable CSV with a username,password header and at least one data row.
func ValidateRoster(filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return &ValidationError{Message: fmt.Sprintf("cannot open roster file: %v", err)}
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return &ValidationError{Message: fmt.Sprintf("cannot parse roster file: %v", err)}
	}

	if len(records) == 0 {
		return &ValidationError{Message: "roster file is empty"}
	}

	if !validateHeaders(records[0], rosterHeader) {
		return &ValidationError{Message: fmt.Sprintf(
			"roster header must be %q, got %q",
			strings.Join(rosterHeader, ","), strings.Join(records[0], ","),
		)}
	}

	if len(records) == 1 {
		return &ValidationError{Message: "roster file has a header but no rows"}
	}

	return nil
}

func validateHeaders(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i := range expected {
		if !strings.EqualFold(strings.TrimSpace(actual[i]), expected[i]) {
			return false
		}
	}
	return true
}
