package booking

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"stayflow/cache"
	"stayflow/models"
)

// hurryThreshold is the remaining hold time under which ValidateBooking warns
// the caller to complete the booking quickly.
const hurryThreshold = 2 * time.Minute

// ValidationResult is the collected outcome of a pre-flight check. Every
// check runs independently so the caller sees the complete defect list, not
// just the first failure.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func (r *ValidationResult) addError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) addWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) finish() ValidationResult {
	r.Valid = len(r.Errors) == 0
	return *r
}

// Err converts a failed result into a ValidationError, nil when valid.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Errors: r.Errors, Warnings: r.Warnings}
}

// Validator gates the irreversible Book call. It reads reservation holds but
// never mutates them and never touches the network.
type Validator struct {
	Holds cache.HoldStore

	now func() time.Time
}

// NewValidator builds a validator over the given hold store.
func NewValidator(holds cache.HoldStore) *Validator {
	return &Validator{Holds: holds, now: time.Now}
}

// ValidateBooking runs every pre-flight check for a Book call: hold liveness,
// token match, price sanity, and guest data.
func (v *Validator) ValidateBooking(ctx context.Context, code, token string, guest models.GuestDetails, confirmedPrice float64) ValidationResult {
	var res ValidationResult

	hold, err := v.Holds.Get(ctx, code)
	switch {
	case err != nil:
		res.addError("could not read reservation hold: %v", err)
	case hold == nil:
		res.addError("reservation token for %s expired or missing, re-run search and prebook", code)
	default:
		if remaining := hold.Remaining(v.now()); remaining < hurryThreshold {
			res.addWarning("hold expires in under %d minutes, complete the booking quickly", int(hurryThreshold/time.Minute))
		}
		if hold.Token != token {
			res.addError("token mismatch for %s, re-run prebook", code)
		}
	}

	if confirmedPrice <= 0 {
		res.addError("confirmed price must be greater than zero")
	}

	v.checkGuest(&res, guest)
	return res.finish()
}

func (v *Validator) checkGuest(res *ValidationResult, guest models.GuestDetails) {
	switch guest.Title {
	case models.TitleMr, models.TitleMrs, models.TitleMs:
	default:
		res.addError("title must be one of MR, MRS, MS")
	}
	if len(guest.FirstName) < 2 {
		res.addError("first name must be at least 2 characters")
	}
	if len(guest.LastName) < 2 {
		res.addError("last name must be at least 2 characters")
	}
	if _, err := mail.ParseAddress(guest.Email); err != nil {
		res.addError("email address is not valid")
	}
	if len(guest.Phone) < 10 {
		res.addError("phone number must be at least 10 characters")
	}
	if guest.Country != "" && len(guest.Country) != 2 {
		res.addError("country must be a 2-letter ISO code")
	}
}

// ValidateDates checks a check-in/check-out pair (YYYY-MM-DD). Stays booked
// far ahead or unusually long produce warnings, not errors.
func (v *Validator) ValidateDates(checkIn, checkOut string) ValidationResult {
	var res ValidationResult

	in, errIn := time.Parse("2006-01-02", checkIn)
	out, errOut := time.Parse("2006-01-02", checkOut)
	if errIn != nil {
		res.addError("check-in date must be YYYY-MM-DD")
	}
	if errOut != nil {
		res.addError("check-out date must be YYYY-MM-DD")
	}
	if errIn != nil || errOut != nil {
		return res.finish()
	}

	today := v.now().Truncate(24 * time.Hour)
	if in.Before(today) {
		res.addError("check-in date is in the past")
	}
	if !out.After(in) {
		res.addError("check-out must be after check-in")
	}

	if in.Sub(today) > 365*24*time.Hour {
		res.addWarning("booking is more than a year ahead")
	}
	if nights := int(out.Sub(in) / (24 * time.Hour)); nights > 30 {
		res.addWarning("stay is longer than 30 nights")
	}
	return res.finish()
}

// ValidateGuests checks occupancy. Unusually large parties warn rather than
// fail, since some suppliers do accept them.
func (v *Validator) ValidateGuests(adults int, childAges []int) ValidationResult {
	var res ValidationResult

	if adults < 1 {
		res.addError("at least one adult is required")
	}
	for _, age := range childAges {
		if age < 0 || age > 17 {
			res.addError("child age %d is out of range 0-17", age)
		}
	}

	if adults > 10 {
		res.addWarning("more than 10 adults in one booking")
	}
	if len(childAges) > 5 {
		res.addWarning("more than 5 children in one booking")
	}
	if adults+len(childAges) > 15 {
		res.addWarning("party size exceeds 15 guests")
	}
	return res.finish()
}
