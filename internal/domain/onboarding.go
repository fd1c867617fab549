package domain

// NextOfKin is the emergency contact captured during employee onboarding.
type NextOfKin struct {
	FullName     string `json:"fullName"`
	Relationship string `json:"relationship"`
	PhoneNumber  string `json:"phoneNumber"`
}

// Guarantor vouches for a new employee.
type Guarantor struct {
	FullName     string `json:"fullName"`
	Relationship string `json:"relationship"`
	PhoneNumber  string `json:"phoneNumber"`
	PassportFile string `json:"passportFile,omitempty"`
}

// OnboardingSubmission is the personal record an employee completes before console access.
type OnboardingSubmission struct {
	Bio           string      `json:"bio"`
	StateOfOrigin string      `json:"stateOfOrigin"`
	LGA           string      `json:"lga"`
	Nationality   string      `json:"nationality"`
	NextOfKin     NextOfKin   `json:"nextOfKin"`
	Guarantors    []Guarantor `json:"guarantors"`
}
