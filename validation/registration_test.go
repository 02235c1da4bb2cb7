package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/football-clinic/models"
)

func validDraft() models.RegistrationDraft {
	return models.RegistrationDraft{
		PlayerFirstName:    "Omar",
		PlayerLastName:     "Haddad",
		TeamName:           "Atomics",
		DateOfBirth:        "2012-04-03",
		PlayingPosition:    "CM",
		DivisionLastSeason: "U14",
		StrengthWeakness:   "Passing / heading",
		MobileNumber:       "0501234567",
		Email:              "parent@example.com",
		AcademyClub:        "Atomics Academy",
		PreferredLocations: []string{"saadiyat"},
	}
}

func TestValidateRegistration_ValidDraft(t *testing.T) {
	errs := ValidateRegistration(validDraft())
	assert.Empty(t, errs)
}

func TestValidateRegistration_TrialDateIsOptional(t *testing.T) {
	d := validDraft()
	d.TrialDate = ""
	assert.Empty(t, ValidateRegistration(d))

	d.TrialDate = "not-a-date"
	assert.Empty(t, ValidateRegistration(d))
}

func TestValidateRegistration_EmptyDraftFlagsEveryRequiredField(t *testing.T) {
	errs := ValidateRegistration(models.RegistrationDraft{})

	expected := map[string]string{
		models.FieldPlayerFirstName:    MsgFirstNameRequired,
		models.FieldPlayerLastName:     MsgLastNameRequired,
		models.FieldTeamName:           MsgTeamNameRequired,
		models.FieldDateOfBirth:        MsgDateOfBirthRequired,
		models.FieldPlayingPosition:    MsgPositionRequired,
		models.FieldDivisionLastSeason: MsgDivisionRequired,
		models.FieldStrengthWeakness:   MsgStrengthRequired,
		models.FieldMobileNumber:       MsgMobileRequired,
		models.FieldEmail:              MsgEmailRequired,
		models.FieldAcademyClub:        MsgAcademyRequired,
		models.FieldPreferredLocations: MsgLocationRequired,
	}
	assert.Equal(t, expected, map[string]string(errs))
	assert.False(t, errs.Has(models.FieldTrialDate))
}

func TestValidateRegistration_SingleMissingField(t *testing.T) {
	cases := []struct {
		name  string
		field string
		edit  func(d *models.RegistrationDraft)
	}{
		{"first name blank", models.FieldPlayerFirstName, func(d *models.RegistrationDraft) { d.PlayerFirstName = "   " }},
		{"last name blank", models.FieldPlayerLastName, func(d *models.RegistrationDraft) { d.PlayerLastName = "" }},
		{"team blank", models.FieldTeamName, func(d *models.RegistrationDraft) { d.TeamName = "\t" }},
		{"dob missing", models.FieldDateOfBirth, func(d *models.RegistrationDraft) { d.DateOfBirth = "" }},
		{"position missing", models.FieldPlayingPosition, func(d *models.RegistrationDraft) { d.PlayingPosition = "" }},
		{"division blank", models.FieldDivisionLastSeason, func(d *models.RegistrationDraft) { d.DivisionLastSeason = " " }},
		{"strength blank", models.FieldStrengthWeakness, func(d *models.RegistrationDraft) { d.StrengthWeakness = "" }},
		{"mobile blank", models.FieldMobileNumber, func(d *models.RegistrationDraft) { d.MobileNumber = "  " }},
		{"email blank", models.FieldEmail, func(d *models.RegistrationDraft) { d.Email = "" }},
		{"academy blank", models.FieldAcademyClub, func(d *models.RegistrationDraft) { d.AcademyClub = "" }},
		{"no location", models.FieldPreferredLocations, func(d *models.RegistrationDraft) { d.PreferredLocations = nil }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			tc.edit(&d)
			errs := ValidateRegistration(d)
			require.Len(t, errs, 1)
			assert.True(t, errs.Has(tc.field))
		})
	}
}

func TestValidateRegistration_ShortNames(t *testing.T) {
	d := validDraft()
	d.PlayerFirstName = " A "
	d.PlayerLastName = "B"

	errs := ValidateRegistration(d)
	assert.Equal(t, MsgFirstNameTooShort, errs[models.FieldPlayerFirstName])
	assert.Equal(t, MsgLastNameTooShort, errs[models.FieldPlayerLastName])
}

func TestValidateRegistration_UnknownPosition(t *testing.T) {
	d := validDraft()
	d.PlayingPosition = "SW"
	assert.Equal(t, MsgPositionInvalid, ValidateRegistration(d)[models.FieldPlayingPosition])
}

func TestIsUAEMobile(t *testing.T) {
	valid := []string{"0501234567", "+971501234567", "971501234567", "501234567", "050 123 4567", "+971 50 123 4567"}
	for _, n := range valid {
		assert.True(t, IsUAEMobile(n), n)
	}

	invalid := []string{"12345", "123", "0101234567", "+97150123456", "05012345678", "+44501234567", "abc"}
	for _, n := range invalid {
		assert.False(t, IsUAEMobile(n), n)
	}
}

func TestValidateRegistration_MobileMessageMentionsUAE(t *testing.T) {
	d := validDraft()
	d.MobileNumber = "123"
	msg := ValidateRegistration(d)[models.FieldMobileNumber]
	assert.Contains(t, msg, "valid UAE")
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("a@b.com"))
	assert.True(t, IsValidEmail("first.last+tag@club.co.ae"))

	assert.False(t, IsValidEmail("abc"))
	assert.False(t, IsValidEmail("a@b"))
	assert.False(t, IsValidEmail("a b@c.com"))
	assert.False(t, IsValidEmail("@b.com"))
}

func TestFieldErrors_ClearOnlyTouchesOneField(t *testing.T) {
	errs := ValidateRegistration(models.RegistrationDraft{})
	before := len(errs)

	errs.Clear(models.FieldEmail)

	assert.False(t, errs.Has(models.FieldEmail))
	assert.Len(t, errs, before-1)
	assert.True(t, errs.Has(models.FieldMobileNumber))
}
