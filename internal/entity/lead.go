package entity

import (
	"time"
)

// Entidade: Lead
// Acumula campos a cada step do funil (identidade, pessoal, endereço,
// requisito de empréstimo, emprego). Chave natural: pancard normalizado.
type Lead struct {
	LeadID    int64  `json:"lead_id"`
	Pancard   string `json:"pancard"`
	Mobile    string `json:"mobile"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	Gender    string `json:"gender"`
	DOB       string `json:"dob"`

	Pincode string `json:"pincode"`
	StateID *int64 `json:"state_id"`
	CityID  *int64 `json:"city_id"`

	LoanAmount    int64 `json:"loan_amount"`
	Obligations   int64 `json:"obligations"`
	MonthlyIncome int64 `json:"monthly_income"`

	CompanyName string `json:"company_name"`
	Designation string `json:"designation"`

	Stage          string `json:"stage"`
	LeadStatusID   int64  `json:"lead_status_id"`
	UserType       string `json:"user_type"`
	BlacklistFlag  int64  `json:"lead_black_list_flag"`
	MobileVerified int64  `json:"lead_is_mobile_verified"`
	QDEConsent     string `json:"qde_consent"`
	Source         string `json:"source"`
	UTMSource      string `json:"utm_source"`
	UTMCampaign    string `json:"utm_campaign"`
	IP             string `json:"ip"`

	CreatedOn time.Time  `json:"created_on"`
	UpdatedOn *time.Time `json:"updated_on,omitempty"`
}
