package models

// GenerateRequest is the contract generation form.
type GenerateRequest struct {
	ContractType string `json:"contract_type"`
	PartyA       string `json:"party_a"`
	PartyB       string `json:"party_b"`
	Duration     string `json:"duration"`
	ClauseQuery  string `json:"clause_query"`
	Jurisdiction string `json:"jurisdiction"`
}

type GenerateResponse struct {
	Message  string `json:"message,omitempty"`
	Contract string `json:"contract,omitempty"`
	Text     string `json:"text,omitempty"`
	PDFURL   string `json:"pdf_url,omitempty"`
}

// Body returns the generated contract text, preferring "contract" over
// "text".
func (r *GenerateResponse) Body() string {
	if r.Contract != "" {
		return r.Contract
	}
	return r.Text
}
