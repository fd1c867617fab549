package domain

// Department is an organisational unit created during initial setup.
type Department struct {
	ID          int    `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Tax is a payroll deduction configured during initial setup.
type Tax struct {
	TaxName       string  `json:"taxName"`
	TaxPercentage float64 `json:"taxPercentage"`
}

// SetupModel is the administrator's initial system configuration.
type SetupModel struct {
	Departments     []Department `json:"departments"`
	Taxes           []Tax        `json:"taxes"`
	DefaultCurrency string       `json:"defaultCurrency"`
	WorkweekDays    string       `json:"workweekDays"`
}
