// Package validation holds the field rules a registration must pass before
// it is sent to the registrations API. Everything here is pure.
package validation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/Dosada05/football-clinic/models"
)

var (
	// Optional +971/971/0 prefix, then a 9-digit subscriber number starting 2-9.
	uaePhoneRegex = regexp.MustCompile(`^(\+971|971|0)?[2-9][0-9]{8}$`)
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

const minNameLength = 2

// Error messages shown next to the offending field.
const (
	MsgFirstNameRequired   = "Player first name is required"
	MsgFirstNameTooShort   = "First name must be at least 2 characters"
	MsgLastNameRequired    = "Player last name is required"
	MsgLastNameTooShort    = "Last name must be at least 2 characters"
	MsgTeamNameRequired    = "Team name is required"
	MsgDateOfBirthRequired = "Date of birth is required"
	MsgPositionRequired    = "Playing position is required"
	MsgPositionInvalid     = "Please select a valid playing position"
	MsgDivisionRequired    = "Division competed at last season is required"
	MsgStrengthRequired    = "Please provide 1 strength & 1 weakness"
	MsgMobileRequired      = "Mobile number is required"
	MsgMobileInvalid       = "Please enter a valid UAE phone number (e.g., 0501234567, +971501234567)"
	MsgEmailRequired       = "Email address is required"
	MsgEmailInvalid        = "Please enter a valid email address"
	MsgAcademyRequired     = "Academy/Club is required"
	MsgLocationRequired    = "Please select a preferred location"
)

// FieldErrors maps a draft field name to its message. A missing key means
// the field is valid.
type FieldErrors map[string]string

// Clear drops the error of a single field, leaving the rest untouched.
func (e FieldErrors) Clear(field string) {
	delete(e, field)
}

func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// ValidateRegistration checks every field rule and returns all failures at
// once. The trial date is optional and never produces an error.
func ValidateRegistration(d models.RegistrationDraft) FieldErrors {
	errs := FieldErrors{}

	checkName(errs, models.FieldPlayerFirstName, d.PlayerFirstName, MsgFirstNameRequired, MsgFirstNameTooShort)
	checkName(errs, models.FieldPlayerLastName, d.PlayerLastName, MsgLastNameRequired, MsgLastNameTooShort)

	required(errs, models.FieldTeamName, d.TeamName, MsgTeamNameRequired)

	if d.DateOfBirth == "" {
		errs[models.FieldDateOfBirth] = MsgDateOfBirthRequired
	}

	switch {
	case d.PlayingPosition == "":
		errs[models.FieldPlayingPosition] = MsgPositionRequired
	case !models.Position(d.PlayingPosition).Valid():
		errs[models.FieldPlayingPosition] = MsgPositionInvalid
	}

	required(errs, models.FieldDivisionLastSeason, d.DivisionLastSeason, MsgDivisionRequired)
	required(errs, models.FieldStrengthWeakness, d.StrengthWeakness, MsgStrengthRequired)

	if strings.TrimSpace(d.MobileNumber) == "" {
		errs[models.FieldMobileNumber] = MsgMobileRequired
	} else if !IsUAEMobile(d.MobileNumber) {
		errs[models.FieldMobileNumber] = MsgMobileInvalid
	}

	if strings.TrimSpace(d.Email) == "" {
		errs[models.FieldEmail] = MsgEmailRequired
	} else if !IsValidEmail(d.Email) {
		errs[models.FieldEmail] = MsgEmailInvalid
	}

	required(errs, models.FieldAcademyClub, d.AcademyClub, MsgAcademyRequired)

	if len(d.PreferredLocations) == 0 {
		errs[models.FieldPreferredLocations] = MsgLocationRequired
	}

	return errs
}

// IsUAEMobile reports whether number, with all whitespace removed, is a UAE number.
func IsUAEMobile(number string) bool {
	return uaePhoneRegex.MatchString(stripSpaces(number))
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func checkName(errs FieldErrors, field, value, requiredMsg, shortMsg string) {
	trimmed := strings.TrimSpace(value)
	switch {
	case trimmed == "":
		errs[field] = requiredMsg
	case len([]rune(trimmed)) < minNameLength:
		errs[field] = shortMsg
	}
}

func required(errs FieldErrors, field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		errs[field] = msg
	}
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
