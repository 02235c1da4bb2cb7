package models

// RegistrationFilter is the query sent to the registrations list endpoint.
type RegistrationFilter struct {
	Page   int
	Limit  int
	Search string
	Status RegistrationStatus
}

type Pagination struct {
	Page       int `json:"page,omitempty"`
	Limit      int `json:"limit,omitempty"`
	Total      int `json:"total,omitempty"`
	TotalPages int `json:"totalPages"`
}

type RegistrationPage struct {
	Registrations []Registration `json:"data"`
	Pagination    Pagination     `json:"pagination"`
}

type RegistrationOverview struct {
	TotalRegistrations     int `json:"totalRegistrations"`
	PendingRegistrations   int `json:"pendingRegistrations"`
	ConfirmedRegistrations int `json:"confirmedRegistrations"`
	CancelledRegistrations int `json:"cancelledRegistrations"`
}

type RegistrationStats struct {
	Overview RegistrationOverview `json:"overview"`
}
