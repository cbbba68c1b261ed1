package models

type Clause struct {
	Clause string `json:"clause"`
	Reason string `json:"reason,omitempty"`
	Risk   string `json:"risk,omitempty"`
}

type Recommendation struct {
	Clause           string `json:"clause"`
	Reason           string `json:"reason,omitempty"`
	SuggestedRewrite string `json:"suggested_rewrite"`
}

type RiskAnalysis struct {
	GoodClauses     []Clause         `json:"good_clauses"`
	RiskClauses     []Clause         `json:"risk_clauses"`
	Recommendations []Recommendation `json:"recommendations"`
}
