package usecase

import (
	"encoding/json"
	"fmt"
)

// Step é o número do passo do formulário multi-etapa.
type Step int

const (
	StepInitialInfo Step = iota + 1
	StepPersonalInfo
	StepAddressInfo
	StepLoanRequirement
	StepEmploymentInfo
	StepFinalize
)

// StepPayload é a variante fechada: cada step carrega seu próprio tipo de
// payload e o dispatcher trata o conjunto exaustivamente.
type StepPayload interface {
	step() Step
}

type InitialInfoPayload struct {
	Mobile      string `json:"mobile"`
	UTMSource   string `json:"utm_source"`
	UTMCampaign string `json:"utm_campaign"`
	IP          string `json:"ip"`
}

type PersonalInfoPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AddressInfoPayload struct {
	Pincode   string `json:"pincode"`
	CityName  string `json:"city_name"`
	StateName string `json:"state_name"`
}

type LoanRequirementPayload struct {
	LoanAmount  json.Number `json:"loan_amount"`
	Obligations json.Number `json:"obligations"`
}

type EmploymentInfoPayload struct {
	CompanyName   string      `json:"company_name"`
	Designation   string      `json:"designation"`
	MonthlyIncome json.Number `json:"monthly_income"`
}

type FinalizePayload struct{}

func (InitialInfoPayload) step() Step     { return StepInitialInfo }
func (PersonalInfoPayload) step() Step    { return StepPersonalInfo }
func (AddressInfoPayload) step() Step     { return StepAddressInfo }
func (LoanRequirementPayload) step() Step { return StepLoanRequirement }
func (EmploymentInfoPayload) step() Step  { return StepEmploymentInfo }
func (FinalizePayload) step() Step        { return StepFinalize }

// DecodeStepPayload transforma o corpo cru da requisição no payload tipado
// do step. Número de step fora de 1..6 é erro do caller.
func DecodeStepPayload(step int, raw json.RawMessage) (StepPayload, error) {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}

	decode := func(dst any) error {
		if err := json.Unmarshal(raw, dst); err != nil {
			return &DomainError{Code: "INVALID_PAYLOAD", Message: fmt.Sprintf("invalid payload for step %d", step)}
		}
		return nil
	}

	switch Step(step) {
	case StepInitialInfo:
		var p InitialInfoPayload
		return p, decode(&p)
	case StepPersonalInfo:
		var p PersonalInfoPayload
		return p, decode(&p)
	case StepAddressInfo:
		var p AddressInfoPayload
		return p, decode(&p)
	case StepLoanRequirement:
		var p LoanRequirementPayload
		return p, decode(&p)
	case StepEmploymentInfo:
		var p EmploymentInfoPayload
		return p, decode(&p)
	case StepFinalize:
		return FinalizePayload{}, nil
	default:
		return nil, &DomainError{Code: "UNSUPPORTED_STEP", Message: fmt.Sprintf("unsupported step: %d", step)}
	}
}
