package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// BookingInput is the request to create a booking, from a guest or from staff.
type BookingInput struct {
	CustomerName string `json:"customer_name" validate:"required,min=2,max=100"`
	Email        string `json:"email" validate:"required,email,max=100"`
	Phone        string `json:"phone" validate:"required,min=10,max=20"`
	Date         string `json:"date" validate:"required"`
	Time         string `json:"time" validate:"required"`
	PartySize    int    `json:"party_size" validate:"required"`
	Notes        string `json:"notes" validate:"max=1000"`
}

func (in BookingInput) trimmed() BookingInput {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	in.Notes = strings.TrimSpace(in.Notes)
	return in
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// validateBooking collects every problem with in. Party size bounds and the past-date
// rule depend on settings and the current business day, so they are checked here
// rather than in struct tags.
func validateBooking(in BookingInput, snap Snapshot, today string, isStaff bool) []string {
	var problems []string

	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return []string{err.Error()}
		}
		for _, fe := range fieldErrs {
			problems = append(problems, fieldMessage(fe))
		}
	}

	if in.Date != "" {
		if _, err := ParseDate(in.Date, snap.Location); err != nil {
			problems = append(problems, "Please enter a valid date.")
		} else if !isStaff && in.Date < today {
			problems = append(problems, "Booking date cannot be in the past.")
		}
	}
	if in.Time != "" && !clockPattern.MatchString(in.Time) {
		problems = append(problems, "Please enter a valid time.")
	}
	if in.PartySize != 0 && (in.PartySize < snap.MinPartySize || in.PartySize > snap.MaxPartySize) {
		problems = append(problems, fmt.Sprintf("Party size must be between %d and %d.", snap.MinPartySize, snap.MaxPartySize))
	}
	return problems
}

func fieldMessage(fe validator.FieldError) string {
	label := humanize(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "email":
		return "Please enter a valid email address."
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
	}
	return label + " is invalid."
}

func humanize(field string) string {
	words := strings.Split(field, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
