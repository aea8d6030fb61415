package models

// Passenger is a traveler record. The same struct backs both the
// global directory (key "passengers") and the per-reservation roster;
// the two are independent copies, not references.
type Passenger struct {
	ID                 string `json:"id"`
	DocumentType       string `json:"documentType"`
	DocumentNumber     string `json:"documentNumber"`
	DocumentExpiryDate string `json:"documentExpiryDate"`
	HasVisa            bool   `json:"hasVisa"`
	VisaNumber         string `json:"visaNumber"`
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	BirthDate          string `json:"birthDate"`
	Nationality        string `json:"nationality"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	Gender             string `json:"gender"`
	Address            string `json:"address"`
	EmergencyContact   string `json:"emergencyContact"`
	EmergencyPhone     string `json:"emergencyPhone"`
	SpecialNeeds       string `json:"specialNeeds"`
}

// PassengerID builds the directory id from the identity document.
// Uniqueness in the directory is enforced on this value.
func PassengerID(documentType, documentNumber string) string {
	return documentType + "_" + documentNumber
}
