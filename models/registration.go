package models

import "time"

// RegistrationStatus соответствует жизненному циклу заявки во внешнем API.
type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationCancelled RegistrationStatus = "cancelled"
)

func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationPending, RegistrationConfirmed, RegistrationCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const PaymentCompleted PaymentStatus = "completed"

// Position is a playing position offered by the form.
type Position string

const (
	PositionGK  Position = "GK"
	PositionCB  Position = "CB"
	PositionRB  Position = "RB"
	PositionLB  Position = "LB"
	PositionCDM Position = "CDM"
	PositionCM  Position = "CM"
	PositionCAM Position = "CAM"
	PositionLW  Position = "LW"
	PositionRW  Position = "RW"
	PositionST  Position = "ST"
)

// PlayingPositions is the fixed, ordered set shown in the position select.
var PlayingPositions = []Position{
	PositionGK, PositionCB, PositionRB, PositionLB, PositionCDM,
	PositionCM, PositionCAM, PositionLW, PositionRW, PositionST,
}

func (p Position) Valid() bool {
	for _, known := range PlayingPositions {
		if p == known {
			return true
		}
	}
	return false
}

// RegistrationDraft is what the player fills in. Field names double as
// error-map keys, so they follow the wire names of the external API.
type RegistrationDraft struct {
	PlayerFirstName    string   `json:"playerFirstName"`
	PlayerLastName     string   `json:"playerLastName"`
	TeamName           string   `json:"teamName"`
	DateOfBirth        string   `json:"dateOfBirth"`
	PlayingPosition    string   `json:"playingPosition"`
	DivisionLastSeason string   `json:"divisionLastSeason"`
	StrengthWeakness   string   `json:"strengthWeakness"`
	MobileNumber       string   `json:"mobileNumber"`
	Email              string   `json:"email"`
	AcademyClub        string   `json:"academyClub"`
	PreferredLocations []string `json:"preferredLocations"`
	TrialDate          string   `json:"trialDate"`
}

// Field names of RegistrationDraft as used in error maps and SetField.
const (
	FieldPlayerFirstName    = "playerFirstName"
	FieldPlayerLastName     = "playerLastName"
	FieldTeamName           = "teamName"
	FieldDateOfBirth        = "dateOfBirth"
	FieldPlayingPosition    = "playingPosition"
	FieldDivisionLastSeason = "divisionLastSeason"
	FieldStrengthWeakness   = "strengthWeakness"
	FieldMobileNumber       = "mobileNumber"
	FieldEmail              = "email"
	FieldAcademyClub        = "academyClub"
	FieldPreferredLocations = "preferredLocations"
	FieldTrialDate          = "trialDate"
)

// Registration is the full payload posted to the registrations collection
// and the record returned by it. ID is assigned by the API.
type Registration struct {
	ID string `json:"_id,omitempty"`
	RegistrationDraft

	TrialDateLabel   string    `json:"trialDateLabel"`
	Tournament       string    `json:"tournament"`
	CupDates         string    `json:"cupDates"`
	Timings          string    `json:"timings"`
	Location         string    `json:"location"`
	RegistrationDate time.Time `json:"registrationDate"`

	Status                RegistrationStatus `json:"status,omitempty"`
	PaymentStatus         PaymentStatus      `json:"paymentStatus,omitempty"`
	StripePaymentIntentID string             `json:"stripePaymentIntentId,omitempty"`
}

func (r Registration) PlayerName() string {
	return r.PlayerFirstName + " " + r.PlayerLastName
}
