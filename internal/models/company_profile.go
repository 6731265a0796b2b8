package models

// CompanyProfile is the payer's own business record. The application keeps a
// single row by convention: reads take the first row ordered by company name,
// and upsert finds-or-creates.
type CompanyProfile struct {
	ID          string `json:"id"`
	CompanyName string `json:"company_name"`
	Address     string `json:"address,omitempty"`
	TaxID       string `json:"tax_id,omitempty"`
	Website     string `json:"website,omitempty"`
	BankName    string `json:"bank_name,omitempty"`
	IBAN        string `json:"iban,omitempty"`
	SWIFT       string `json:"swift,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// UpsertCompanyProfileRequest represents the request body for the profile upsert
type UpsertCompanyProfileRequest struct {
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	TaxID       string `json:"tax_id"`
	Website     string `json:"website"`
	BankName    string `json:"bank_name"`
	IBAN        string `json:"iban"`
	SWIFT       string `json:"swift"`
	Notes       string `json:"notes"`
}
