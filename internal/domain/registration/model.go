package registration

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength       = 100
	MaxEmailLength      = 254
	MaxPhoneLength      = 32
	MaxDepartmentLength = 100
	MaxMotivationLength = 2000
)

// MaxPositions is the most positions an applicant may pick.
const MaxPositions = 2

// DefaultPositions is the catalog offered on the registration form.
var DefaultPositions = []string{
	"Technical Coordinator",
	"Research Coordinator",
	"Social Media Coordinator",
	"Public Relations & Outreach Coordinator",
	"Event Management Coordinator",
	"Design & Creative Coordinator",
}

// Domain errors
var (
	ErrNoPositions       = errors.New("at least one position must be selected")
	ErrTooManyPositions  = errors.New("at most 2 positions can be selected")
	ErrDuplicatePosition = errors.New("each position can only be selected once")
	ErrUnknownPosition   = errors.New("unknown position")
	ErrEmptyName         = errors.New("name cannot be empty")
	ErrNameTooLong       = errors.New("name cannot exceed 100 characters")
	ErrInvalidEmail      = errors.New("email must be valid")
	ErrEmptyPhone        = errors.New("phone cannot be empty")
	ErrEmptyDepartment   = errors.New("department cannot be empty")
	ErrFieldTooLong      = errors.New("field exceeds maximum length")
	ErrNoRegistrations   = errors.New("no registrations to export")
)

// Registration is one submitted membership application.
// It is never mutated after creation.
type Registration struct {
	ID         string    `json:"-"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Department string    `json:"department"`
	Motivation string    `json:"motivation"`
	Positions  []string  `json:"positions"`
	Timestamp  time.Time `json:"timestamp"`
}

// ValidatePositions checks the selection count independently of any UI guard.
// PRE: none
// POST: Returns ErrNoPositions for an empty selection, ErrTooManyPositions above MaxPositions
func ValidatePositions(positions []string) error {
	if len(positions) == 0 {
		return ErrNoPositions
	}
	if len(positions) > MaxPositions {
		return ErrTooManyPositions
	}
	seen := make(map[string]bool, len(positions))
	for _, p := range positions {
		if seen[p] {
			return ErrDuplicatePosition
		}
		seen[p] = true
	}
	return nil
}

// Validate checks if the Registration has valid data.
// PRE: Registration struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Positions holds 1 or 2 distinct entries from catalog (when catalog is non-empty)
func (r *Registration) Validate(catalog []string) error {
	if err := ValidatePositions(r.Positions); err != nil {
		return err
	}
	if len(catalog) > 0 {
		for _, p := range r.Positions {
			if !contains(catalog, p) {
				return ErrUnknownPosition
			}
		}
	}
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(r.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if !strings.Contains(r.Email, "@") || utf8.RuneCountInString(r.Email) > MaxEmailLength {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(r.Phone) == "" {
		return ErrEmptyPhone
	}
	if strings.TrimSpace(r.Department) == "" {
		return ErrEmptyDepartment
	}
	if utf8.RuneCountInString(r.Phone) > MaxPhoneLength ||
		utf8.RuneCountInString(r.Department) > MaxDepartmentLength ||
		utf8.RuneCountInString(r.Motivation) > MaxMotivationLength {
		return ErrFieldTooLong
	}
	return nil
}

// IsUserError reports whether err should be shown to the applicant as-is.
func IsUserError(err error) bool {
	for _, e := range []error{
		ErrNoPositions, ErrTooManyPositions, ErrDuplicatePosition, ErrUnknownPosition,
		ErrEmptyName, ErrNameTooLong, ErrInvalidEmail, ErrEmptyPhone, ErrEmptyDepartment, ErrFieldTooLong,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// UserMessage returns the text shown next to the form for a validation error.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoPositions):
		return "Please select at least one position you are interested in."
	case errors.Is(err, ErrTooManyPositions):
		return "Please select at most 2 positions."
	case errors.Is(err, ErrNoRegistrations):
		return "No data to download"
	case err == nil:
		return ""
	}
	msg := err.Error()
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

// IsPositionError reports whether err concerns the position selection.
func IsPositionError(err error) bool {
	return errors.Is(err, ErrNoPositions) || errors.Is(err, ErrTooManyPositions) ||
		errors.Is(err, ErrDuplicatePosition) || errors.Is(err, ErrUnknownPosition)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
