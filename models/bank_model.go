package models

// Bank is reference data fetched fresh from the provider on each request.
type Bank struct {
	BankID    string  `json:"bank_id"`
	Name      string  `json:"name"`
	LogoURL   string  `json:"logo_url,omitempty"`
	MinAmount float64 `json:"min_amount,omitempty"`
	Message   string  `json:"message,omitempty"`
	Type      string  `json:"type,omitempty"`
}
