package models

// TrialDate is one of the fixed days a player may attend a trial.
type TrialDate struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Time  string `json:"time"`
}

// TrainingLocation is a selectable preferred location on the form.
type TrainingLocation struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// TournamentInfo is the static metadata attached to every submission.
type TournamentInfo struct {
	Name     string `json:"tournament"`
	CupDates string `json:"cupDates"`
	Timings  string `json:"timings"`
	Location string `json:"location"`
}

// RandomlyAssignedLabel is used when a trial date has no catalogue entry.
const RandomlyAssignedLabel = "Randomly Assigned"

// PaymentTournamentTag goes into payment intent metadata.
const PaymentTournamentTag = "ATOMICS PRESEASON TRIAL"

var TrialDates = []TrialDate{
	{Date: "2025-08-26", Label: "Tuesday, 26th August", Time: "5:00 PM - 9:00 PM"},
	{Date: "2025-08-27", Label: "Wednesday, 27th August", Time: "5:00 PM - 9:00 PM"},
	{Date: "2025-08-28", Label: "Thursday, 28th August", Time: "5:00 PM - 9:00 PM"},
}

var TrainingLocations = []TrainingLocation{
	{ID: "active-mariah", Name: "Active Mariah Island", Address: "Mariah Island, Abu Dhabi"},
	{ID: "saadiyat", Name: "Saadiyat Island", Address: "Theodore Monod French School, Saadiyat"},
}

var PreseasonCup = TournamentInfo{
	Name:     "ATOMICS PRESEASON CUP",
	CupDates: "Tuesday - Thursday 26th - 28th August",
	Timings:  "5:00 PM to 9:00 PM",
	Location: "Active Sports Pitches",
}

// FindTrialDate returns the catalogue entry for date, if any.
func FindTrialDate(date string) (TrialDate, bool) {
	for _, d := range TrialDates {
		if d.Date == date {
			return d, true
		}
	}
	return TrialDate{}, false
}

func FindTrainingLocation(id string) (TrainingLocation, bool) {
	for _, l := range TrainingLocations {
		if l.ID == id {
			return l, true
		}
	}
	return TrainingLocation{}, false
}

// --- Landing page catalogue ---

type Session struct {
	AgeGroup string `json:"ageGroup"`
	Time     string `json:"time"`
	Duration string `json:"duration"`
	Note     string `json:"note,omitempty"`
}

type LocationSchedule struct {
	Key         string    `json:"key"`
	Label       string    `json:"label"`
	Days        string    `json:"days"`
	Age         string    `json:"age"`
	Time        string    `json:"time"`
	LocationURL string    `json:"locationUrl"`
	Sessions    []Session `json:"schedule"`
}

type Plan struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Features    []string `json:"features"`
}

type Clinic struct {
	Trial             Plan               `json:"trialPlan"`
	FocusAreas        []string           `json:"focusAreas"`
	Schedules         []LocationSchedule `json:"scheduleByLocation"`
	SkillsDevelopment []string           `json:"skillsDevelopment"`
	Benefits          []string           `json:"benefits"`
	Tournament        TournamentInfo     `json:"tournament"`
	Positions         []Position         `json:"playingPositions"`
	Locations         []TrainingLocation `json:"locations"`
	TrialDates        []TrialDate        `json:"trialDates"`
}

// FootballClinic is everything the landing page and form render.
var FootballClinic = Clinic{
	Trial: Plan{
		Name:        "Trial Session",
		Description: "One-time training session to experience our program",
		Price:       "0",
		Features: []string{
			"Professional coaching",
			"Open to U6–U18",
			"Training equipment provided",
		},
	},
	FocusAreas: []string{
		"Technical Skills",
		"Tactical Understanding",
		"Physical Conditioning",
		"Mental Preparation",
	},
	Schedules: []LocationSchedule{
		{
			Key:         "mariah",
			Label:       "Active Al Maryah Island",
			Days:        "Tuesday & Thursday",
			Age:         "U6 to U18",
			Time:        "4:45 PM – 9:00 PM",
			LocationURL: "https://maps.app.goo.gl/RuGrvSnHH5HNmiF19?g_st=ipc",
			Sessions: []Session{
				{AgeGroup: "U18 Elite", Time: "4:45 PM - 6:20 PM", Duration: "1h 35m"},
				{AgeGroup: "U10 Elite", Time: "5:00 PM - 6:30 PM", Duration: "1h 30m"},
				{AgeGroup: "U6, U7", Time: "5:30 PM - 6:30 PM", Duration: "1h"},
				{AgeGroup: "U8, U9, U10 (interm)", Time: "5:15 PM - 6:30 PM", Duration: "1h 15m"},
				{AgeGroup: "U12, U14", Time: "6:15 PM - 7:45 PM", Duration: "1h 30m"},
				{AgeGroup: "U14/U16 Girls", Time: "6:15 PM - 7:45 PM", Duration: "1h 30m"},
				{AgeGroup: "U15 Elite, U16 Elite", Time: "7:30 PM - 9:00 PM", Duration: "1h 30m"},
			},
		},
		{
			Key:         "saadiyat",
			Label:       "Saadiyat Theodore School",
			Days:        "Monday & Wednesday",
			Age:         "U6 to U16",
			Time:        "6:30 PM – 8:00 PM",
			LocationURL: "https://maps.app.goo.gl/dri8guSuCdT8zcST7?g_st=ipc",
			Sessions: []Session{
				{AgeGroup: "U6, U8", Time: "6:30 PM - 7:30 PM", Duration: "1h"},
				{AgeGroup: "U10, U12/13", Time: "6:30 PM - 7:50 PM", Duration: "1h 20m"},
				{AgeGroup: "U12 Elite", Time: "6:30 PM - 8:00 PM", Duration: "1h 30m", Note: "Monday Only"},
				{AgeGroup: "U14 Elite", Time: "6:30 PM - 8:00 PM", Duration: "1h 30m", Note: "Wednesday Only"},
				{AgeGroup: "U15 Elite", Time: "6:30 PM - 8:00 PM", Duration: "1h 30m", Note: "Wednesday Only"},
				{AgeGroup: "U16 Elite", Time: "6:30 PM - 8:00 PM", Duration: "1h 30m", Note: "Monday Only"},
			},
		},
	},
	SkillsDevelopment: []string{
		"Ball control and dribbling",
		"Passing and receiving",
		"Shooting techniques",
		"Defensive positioning",
		"Game strategy and tactics",
	},
	Benefits: []string{
		"Improve football skills",
		"Build confidence",
		"Develop teamwork",
		"Enhance fitness levels",
		"Learn from professionals",
	},
	Tournament: PreseasonCup,
	Positions:  PlayingPositions,
	Locations:  TrainingLocations,
	TrialDates: TrialDates,
}
