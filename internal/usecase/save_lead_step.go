package usecase

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhishekdhull21/pos-server/internal/infra/database"
	"github.com/abhishekdhull21/pos-server/internal/infra/queue"
)

// SaveLeadStepUseCase é a máquina de estados do formulário multi-etapa.
// Cada step normaliza seu subconjunto de campos, resolve os lookups e emite
// o insert/update correspondente; o step final materializa Customer e
// Employment a partir do lead enriquecido.
type SaveLeadStepUseCase struct {
	Leads      LeadRepositoryInterface
	Customers  CustomerRepositoryInterface
	Employment EmploymentRepositoryInterface
	States     StateRepositoryInterface
	Pincodes   PincodeRepositoryInterface
	Blacklist  BlacklistRepositoryInterface
	Queue      QueueProducerInterface // opcional
	Logger     *zap.Logger
}

func NewSaveLeadStepUseCase(
	leads LeadRepositoryInterface,
	customers CustomerRepositoryInterface,
	employment EmploymentRepositoryInterface,
	states StateRepositoryInterface,
	pincodes PincodeRepositoryInterface,
	blacklist BlacklistRepositoryInterface,
	producer QueueProducerInterface,
	logger *zap.Logger,
) *SaveLeadStepUseCase {
	return &SaveLeadStepUseCase{
		Leads:      leads,
		Customers:  customers,
		Employment: employment,
		States:     states,
		Pincodes:   pincodes,
		Blacklist:  blacklist,
		Queue:      producer,
		Logger:     logger,
	}
}

// Execute despacha o payload tipado do step. Pancard ausente falha antes de
// qualquer lookup; erros de repositório sobem sem tratamento local.
func (uc *SaveLeadStepUseCase) Execute(ctx context.Context, pancard string, payload StepPayload) error {
	pancard = strings.ToUpper(strings.TrimSpace(pancard))
	if pancard == "" {
		return &DomainError{Code: "PANCARD_REQUIRED", Message: "pancard is required"}
	}

	switch p := payload.(type) {
	case InitialInfoPayload:
		return uc.saveInitialInfo(ctx, pancard, p)
	case PersonalInfoPayload:
		return uc.savePersonalInfo(ctx, pancard, p)
	case AddressInfoPayload:
		return uc.saveAddressInfo(ctx, pancard, p)
	case LoanRequirementPayload:
		return uc.saveLoanRequirement(ctx, pancard, p)
	case EmploymentInfoPayload:
		return uc.saveEmploymentInfo(ctx, pancard, p)
	case FinalizePayload:
		return uc.finalize(ctx, pancard)
	default:
		return &DomainError{Code: "UNSUPPORTED_STEP", Message: "unsupported step payload"}
	}
}

// Step 1: checagem de blacklist, atribuição e insert inicial.
func (uc *SaveLeadStepUseCase) saveInitialInfo(ctx context.Context, pancard string, p InitialInfoPayload) error {
	blacklisted, err := uc.Blacklist.IsBlacklisted(ctx, pancard)
	if err != nil {
		return err
	}
	blacklistFlag := 0
	if blacklisted {
		blacklistFlag = 1
	}

	utmSource := alphaUpper(p.UTMSource)
	source := "Import"
	switch utmSource {
	case "C4C":
		source = "C4C"
	case "REFCASE":
		source = "refcase"
	}

	now := time.Now()
	_, err = uc.Leads.Create(ctx, database.Fields{
		"lead_black_list_flag":    blacklistFlag,
		"mobile":                  digitsOnly(p.Mobile),
		"pancard":                 pancard,
		"user_type":               "NEW",
		"lead_entry_date":         now,
		"created_on":              now,
		"stage":                   "S1",
		"lead_status_id":          1,
		"qde_consent":             "Y",
		"utm_source":              "WEB",
		"lead_is_mobile_verified": 1,
		"source":                  source,
		"utm_campaign":            alphaUpper(p.UTMCampaign),
		"ip":                      p.IP,
	})
	return err
}

// Step 2: dados pessoais.
func (uc *SaveLeadStepUseCase) savePersonalInfo(ctx context.Context, pancard string, p PersonalInfoPayload) error {
	_, err := uc.Leads.Update(ctx, database.LeadPancard(pancard), database.Fields{
		"first_name": lettersOnly(p.Name),
		"email":      p.Email,
		"updated_on": time.Now(),
	})
	return err
}

// Step 3: endereço, com resolução de estado e pincode -> cidade.
// Linha inativa/deletada resolve para NULL, não para o id dela.
func (uc *SaveLeadStepUseCase) saveAddressInfo(ctx context.Context, pancard string, p AddressInfoPayload) error {
	pincode := digitsOnly(p.Pincode)

	var stateID any
	if p.StateName != "" {
		state, err := uc.States.FindByName(ctx, p.StateName)
		if err != nil {
			return err
		}
		if state != nil {
			stateID = state.StateID
		}
	}

	var cityID any
	if pincode != "" {
		mPincode, err := uc.Pincodes.FindByPincode(ctx, pincode)
		if err != nil {
			return err
		}
		if mPincode != nil {
			cityID = mPincode.CityID
		}
	}

	_, err := uc.Leads.Update(ctx, database.LeadPancard(pancard), database.Fields{
		"pincode":    pincode,
		"state_id":   stateID,
		"city_id":    cityID,
		"updated_on": time.Now(),
	})
	return err
}

// Step 4: requisito de empréstimo.
func (uc *SaveLeadStepUseCase) saveLoanRequirement(ctx context.Context, pancard string, p LoanRequirementPayload) error {
	_, err := uc.Leads.Update(ctx, database.LeadPancard(pancard), database.Fields{
		"loan_amount": coerceInt(p.LoanAmount),
		"obligations": coerceInt(p.Obligations),
		"updated_on":  time.Now(),
	})
	return err
}

// Step 5: emprego.
func (uc *SaveLeadStepUseCase) saveEmploymentInfo(ctx context.Context, pancard string, p EmploymentInfoPayload) error {
	_, err := uc.Leads.Update(ctx, database.LeadPancard(pancard), database.Fields{
		"company_name":   strings.ToUpper(strings.TrimSpace(p.CompanyName)),
		"designation":    strings.ToUpper(strings.TrimSpace(p.Designation)),
		"monthly_income": coerceInt(p.MonthlyIncome),
		"updated_on":     time.Now(),
	})
	return err
}

// Step 6: materializa Customer e Employment a partir do lead mais recente.
// Cliente já existente para o lead encerra como sucesso sem criar nada:
// é a trava contra duplicação em reenvio.
func (uc *SaveLeadStepUseCase) finalize(ctx context.Context, pancard string) error {
	lead, err := uc.Leads.FindOne(ctx, database.FindLeadOptions{
		Where:   database.Fields{"pancard": pancard},
		OrderBy: "created_on",
		Order:   "DESC",
	})
	if err != nil {
		return err
	}
	if lead == nil {
		return &DomainError{Code: "LEAD_NOT_FOUND", Message: "no lead found for pancard"}
	}

	exists, err := uc.Customers.ExistsForLead(ctx, lead.LeadID)
	if err != nil {
		return err
	}
	if exists {
		uc.Logger.Info("lead já finalizado, ignorando reenvio",
			zap.Int64("lead_id", lead.LeadID))
		return nil
	}

	// Ausência dos steps intermediários não bloqueia: os campos derivados
	// seguem com os defaults vazios do lead.
	parsed := ParseFullName(lead.FirstName)

	now := time.Now()
	customerID, err := uc.Customers.Create(ctx, database.Fields{
		"customer_lead_id":     lead.LeadID,
		"first_name":           parsed.FirstName,
		"middle_name":          parsed.MiddleName,
		"sur_name":             parsed.LastName,
		"gender":               lead.Gender,
		"dob":                  lead.DOB,
		"mobile":               lead.Mobile,
		"email":                lead.Email,
		"pancard":              pancard,
		"state_id":             lead.StateID,
		"city_id":              lead.CityID,
		"cr_residence_pincode": lead.Pincode,
		"created_date":         now,
	})
	if err != nil {
		return err
	}

	_, err = uc.Employment.Create(ctx, database.Fields{
		"lead_id":    lead.LeadID,
		"emp_email":  lead.Email,
		"created_on": now,
	})
	if err != nil {
		return err
	}

	if uc.Queue != nil {
		payload := queue.LeadFinalizedPayload{
			EventID:    uuid.New().String(),
			LeadID:     lead.LeadID,
			CustomerID: customerID,
			Pancard:    pancard,
			FirstName:  parsed.FirstName,
			Email:      lead.Email,
			Mobile:     lead.Mobile,
		}
		if err := uc.Queue.PublishLeadFinalized(ctx, payload); err != nil {
			// melhor esforço: o evento não pode falhar o step
			uc.Logger.Error("falha ao publicar lead finalizado", zap.Error(err))
		}
	}

	return nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func lettersOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == ' ' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func alphaUpper(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return strings.ToUpper(b.String())
}

func coerceInt(n json.Number) int64 {
	v, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
