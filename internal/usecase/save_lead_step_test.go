package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/abhishekdhull21/pos-server/internal/entity"
	"github.com/abhishekdhull21/pos-server/internal/infra/database"
	"github.com/abhishekdhull21/pos-server/internal/infra/queue"
	"github.com/abhishekdhull21/pos-server/internal/usecase"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Find(ctx context.Context, opts database.FindLeadOptions) ([]entity.Lead, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindOne(ctx context.Context, opts database.FindLeadOptions) (*entity.Lead, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Create(ctx context.Context, data database.Fields) (int64, error) {
	args := m.Called(ctx, data)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeadRepository) Update(ctx context.Context, key database.LeadKey, data database.Fields) (int64, error) {
	args := m.Called(ctx, key, data)
	return args.Get(0).(int64), args.Error(1)
}

// MockCustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, data database.Fields) (int64, error) {
	args := m.Called(ctx, data)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) ExistsForLead(ctx context.Context, leadID int64) (bool, error) {
	args := m.Called(ctx, leadID)
	return args.Bool(0), args.Error(1)
}

// MockEmploymentRepository
type MockEmploymentRepository struct {
	mock.Mock
}

func (m *MockEmploymentRepository) Create(ctx context.Context, data database.Fields) (int64, error) {
	args := m.Called(ctx, data)
	return args.Get(0).(int64), args.Error(1)
}

// MockStateRepository
type MockStateRepository struct {
	mock.Mock
}

func (m *MockStateRepository) FindByName(ctx context.Context, name string) (*entity.State, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.State), args.Error(1)
}

// MockPincodeRepository
type MockPincodeRepository struct {
	mock.Mock
}

func (m *MockPincodeRepository) FindByPincode(ctx context.Context, pincode string) (*entity.PincodeCity, error) {
	args := m.Called(ctx, pincode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PincodeCity), args.Error(1)
}

// MockBlacklistRepository
type MockBlacklistRepository struct {
	mock.Mock
}

func (m *MockBlacklistRepository) IsBlacklisted(ctx context.Context, pancard string) (bool, error) {
	args := m.Called(ctx, pancard)
	return args.Bool(0), args.Error(1)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishLeadFinalized(ctx context.Context, payload queue.LeadFinalizedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

type stepMocks struct {
	leads      *MockLeadRepository
	customers  *MockCustomerRepository
	employment *MockEmploymentRepository
	states     *MockStateRepository
	pincodes   *MockPincodeRepository
	blacklist  *MockBlacklistRepository
	producer   *MockQueueProducer
}

func newStepUseCase(t *testing.T) (*usecase.SaveLeadStepUseCase, *stepMocks) {
	m := &stepMocks{
		leads:      new(MockLeadRepository),
		customers:  new(MockCustomerRepository),
		employment: new(MockEmploymentRepository),
		states:     new(MockStateRepository),
		pincodes:   new(MockPincodeRepository),
		blacklist:  new(MockBlacklistRepository),
		producer:   new(MockQueueProducer),
	}
	uc := usecase.NewSaveLeadStepUseCase(
		m.leads, m.customers, m.employment,
		m.states, m.pincodes, m.blacklist,
		m.producer, zaptest.NewLogger(t),
	)
	return uc, m
}

func TestExecuteFailsFastWithoutPancard(t *testing.T) {
	uc, m := newStepUseCase(t)

	err := uc.Execute(context.Background(), "   ", usecase.InitialInfoPayload{})

	assert.True(t, usecase.IsDomainError(err))
	m.blacklist.AssertNotCalled(t, "IsBlacklisted", mock.Anything, mock.Anything)
	m.leads.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestStep1NormalizesAndInserts(t *testing.T) {
	uc, m := newStepUseCase(t)
	ctx := context.Background()

	m.blacklist.On("IsBlacklisted", ctx, "AB1234C").Return(true, nil)

	var got database.Fields
	m.leads.On("Create", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			got = args.Get(1).(database.Fields)
		}).
		Return(int64(1), nil)

	err := uc.Execute(ctx, " ab1234c ", usecase.InitialInfoPayload{
		Mobile:      "+91 98765-43210",
		UTMSource:   "ref-case!",
		UTMCampaign: "Summer_2025",
		IP:          "10.0.0.1",
	})

	require.NoError(t, err)
	assert.Equal(t, "AB1234C", got["pancard"])
	assert.Equal(t, "919876543210", got["mobile"])
	assert.Equal(t, 1, got["lead_black_list_flag"])
	assert.Equal(t, "refcase", got["source"])
	assert.Equal(t, "SUMMER", got["utm_campaign"])
	assert.Equal(t, "WEB", got["utm_source"])
	assert.Equal(t, "NEW", got["user_type"])
	assert.Equal(t, "S1", got["stage"])
	assert.Equal(t, 1, got["lead_status_id"])
	assert.Equal(t, "Y", got["qde_consent"])
	assert.Equal(t, "10.0.0.1", got["ip"])
}

func TestStep1SourceDefaultsToImport(t *testing.T) {
	uc, m := newStepUseCase(t)
	ctx := context.Background()

	m.blacklist.On("IsBlacklisted", ctx, "ABCDE1234F").Return(false, nil)

	var got database.Fields
	m.leads.On("Create", ctx, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(1).(database.Fields) }).
		Return(int64(1), nil)

	err := uc.Execute(ctx, "ABCDE1234F", usecase.InitialInfoPayload{UTMSource: "facebook"})

	require.NoError(t, err)
	assert.Equal(t, "Import", got["source"])
	assert.Equal(t, 0, got["lead_black_list_flag"])
}

func TestStep2StripsNonLettersFromName(t *testing.T) {
	uc, m := newStepUseCase(t)
	ctx := context.Background()

	var got database.Fields
	m.leads.On("Update", ctx, database.LeadPancard("ABCDE1234F"), mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(2).(database.Fields) }).
		Return(int64(1), nil)

	err := uc.Execute(ctx, "ABCDE1234F", usecase.PersonalInfoPayload{
		Name:  "John4 D'oe Jr.",
		Email: "john@doe.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "John Doe Jr", got["first_name"])
	assert.Equal(t, "john@doe.com", got["email"])
	assert.Contains(t, got, "updated_on")
}

func TestStep3InactiveStateResolvesToNull(t *testing.T) {
	uc, m := newStepUseCase(t)
	ctx := context.Background()

	// repositório já filtra active/deleted: inativo volta nil
	m.states.On("FindByName", ctx, "Haryana").Return(nil, nil)
	m.pincodes.On("FindByPincode", ctx, "122001").Return(&entity.PincodeCity{
		PincodeID: 1, Value: "122001", CityID: 55, Active: 1,
	}, nil)

	var got database.Fields
	m.leads.On("Update", ctx, database.LeadPancard("ABCDE1234F"), mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(2).(database.Fields) }).
		Return(int64(1), nil)

	err := uc.Execute(ctx, "ABCDE1234F", usecase.AddressInfoPayload{
		Pincode:   "122-001",
		StateName: "Haryana",
	})

	require.NoError(t, err)
	assert.Nil(t, got["state_id"])
	assert.Equal(t, int64(55), got["city_id"])
	assert.Equal(t, "122001", got["pincode"])
}

func TestStep3SkipsLookupsForEmptyInput(t *testing.T) {
	uc, m := newStepUseCase(t)
	ctx := context.Background()

	m.leads.On("Update", ctx, database.LeadPancard("ABCDE1234F"), mock.Anything).
		Return(int64(1), nil)

	err := uc.Execute(ctx, "ABCDE1234F", usecase.AddressInfoPayload{})

	require.NoError(t, err)
	m.states.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
	m.pincodes.AssertNotCalled(t, "FindByPincode", mock.Anything, mock.Anything)
}

func TestStep4CoercesAmountsWithDefaultZero(t *testing.T) {
	uc, m := newStepUseCase(t)
	ctx := context.Background()

	var got database.Fields
	m.leads.On("Update", ctx, database.LeadPancard("ABCDE1234F"), mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(2).(database.Fields) }).
		Return(int64(1), nil)

	err := uc.Execute(ctx, "ABCDE1234F", usecase.LoanRequirementPayload{
		LoanAmount:  json.Number("500000"),
		Obligations: json.Number("abc"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(500000), got["loan_amount"])
	assert.Equal(t, int64(0), got["obligations"])
}

func TestStep5UppercasesEmploymentFields(t *testing.T) {
	uc, m := newStepUseCase(t)
	ctx := context.Background()

	var got database.Fields
	m.leads.On("Update", ctx, database.LeadPancard("ABCDE1234F"), mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(2).(database.Fields) }).
		Return(int64(1), nil)

	err := uc.Execute(ctx, "ABCDE1234F", usecase.EmploymentInfoPayload{
		CompanyName:   "  Acme Corp ",
		Designation:   "engineer",
		MonthlyIncome: json.Number("85000"),
	})

	require.NoError(t, err)
	assert.Equal(t, "ACME CORP", got["company_name"])
	assert.Equal(t, "ENGINEER", got["designation"])
	assert.Equal(t, int64(85000), got["monthly_income"])
}

func TestStep6CreatesCustomerAndEmployment(t *testing.T) {
	uc, m := newStepUseCase(t)
	ctx := context.Background()

	stateID := int64(9)
	lead := &entity.Lead{
		LeadID:    5,
		Pancard:   "ABCDE1234F",
		Mobile:    "919876543210",
		Email:     "john@doe.com",
		FirstName: "John A B Doe",
		Gender:    "MALE",
		StateID:   &stateID,
		Pincode:   "122001",
	}

	m.leads.On("FindOne", ctx, mock.Anything).Return(lead, nil)
	m.customers.On("ExistsForLead", ctx, int64(5)).Return(false, nil)

	var customerFields database.Fields
	m.customers.On("Create", ctx, mock.Anything).
		Run(func(args mock.Arguments) { customerFields = args.Get(1).(database.Fields) }).
		Return(int64(77), nil)

	var empFields database.Fields
	m.employment.On("Create", ctx, mock.Anything).
		Run(func(args mock.Arguments) { empFields = args.Get(1).(database.Fields) }).
		Return(int64(88), nil)

	m.producer.On("PublishLeadFinalized", ctx, mock.Anything).Return(nil)

	err := uc.Execute(ctx, "ABCDE1234F", usecase.FinalizePayload{})

	require.NoError(t, err)
	assert.Equal(t, int64(5), customerFields["customer_lead_id"])
	assert.Equal(t, "John", customerFields["first_name"])
	assert.Equal(t, "A B", customerFields["middle_name"])
	assert.Equal(t, "Doe", customerFields["sur_name"])
	assert.Equal(t, "919876543210", customerFields["mobile"])
	assert.Equal(t, "ABCDE1234F", customerFields["pancard"])
	assert.Equal(t, "122001", customerFields["cr_residence_pincode"])

	assert.Equal(t, int64(5), empFields["lead_id"])
	assert.Equal(t, "john@doe.com", empFields["emp_email"])

	m.producer.AssertCalled(t, "PublishLeadFinalized", ctx, mock.MatchedBy(func(p queue.LeadFinalizedPayload) bool {
		return p.LeadID == 5 && p.CustomerID == 77 && p.EventID != ""
	}))
}

func TestStep6IsIdempotentWhenCustomerExists(t *testing.T) {
	uc, m := newStepUseCase(t)
	ctx := context.Background()

	m.leads.On("FindOne", ctx, mock.Anything).Return(&entity.Lead{LeadID: 5}, nil)
	m.customers.On("ExistsForLead", ctx, int64(5)).Return(true, nil)

	err := uc.Execute(ctx, "ABCDE1234F", usecase.FinalizePayload{})

	require.NoError(t, err)
	m.customers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.employment.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestStep6AfterOnlyStep1ProceedsWithDefaults(t *testing.T) {
	uc, m := newStepUseCase(t)
	ctx := context.Background()

	// lead criado no step 1: sem nome, sem contato, sem endereço
	m.leads.On("FindOne", ctx, mock.Anything).Return(&entity.Lead{
		LeadID:  5,
		Pancard: "ABCDE1234F",
		Mobile:  "919876543210",
	}, nil)
	m.customers.On("ExistsForLead", ctx, int64(5)).Return(false, nil)

	var customerFields database.Fields
	m.customers.On("Create", ctx, mock.Anything).
		Run(func(args mock.Arguments) { customerFields = args.Get(1).(database.Fields) }).
		Return(int64(1), nil)
	m.employment.On("Create", ctx, mock.Anything).Return(int64(2), nil)
	m.producer.On("PublishLeadFinalized", ctx, mock.Anything).Return(nil)

	err := uc.Execute(ctx, "ABCDE1234F", usecase.FinalizePayload{})

	require.NoError(t, err)
	assert.Equal(t, "", customerFields["first_name"])
	assert.Equal(t, "", customerFields["middle_name"])
	assert.Equal(t, "", customerFields["sur_name"])
	assert.Equal(t, "", customerFields["email"])
}

func TestStep6FailsWhenLeadMissing(t *testing.T) {
	uc, m := newStepUseCase(t)
	ctx := context.Background()

	m.leads.On("FindOne", ctx, mock.Anything).Return(nil, nil)

	err := uc.Execute(ctx, "ABCDE1234F", usecase.FinalizePayload{})

	assert.True(t, usecase.IsDomainError(err))
	m.customers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestStep6PublishFailureDoesNotFailTheStep(t *testing.T) {
	uc, m := newStepUseCase(t)
	ctx := context.Background()

	m.leads.On("FindOne", ctx, mock.Anything).Return(&entity.Lead{LeadID: 5}, nil)
	m.customers.On("ExistsForLead", ctx, int64(5)).Return(false, nil)
	m.customers.On("Create", ctx, mock.Anything).Return(int64(1), nil)
	m.employment.On("Create", ctx, mock.Anything).Return(int64(2), nil)
	m.producer.On("PublishLeadFinalized", ctx, mock.Anything).Return(errors.New("broker down"))

	err := uc.Execute(ctx, "ABCDE1234F", usecase.FinalizePayload{})

	assert.NoError(t, err)
}

func TestRepositoryErrorsPropagateUnchanged(t *testing.T) {
	uc, m := newStepUseCase(t)
	ctx := context.Background()

	boom := errors.New("connection lost")
	m.leads.On("Update", ctx, mock.Anything, mock.Anything).Return(int64(0), boom)

	err := uc.Execute(ctx, "ABCDE1234F", usecase.PersonalInfoPayload{Name: "John"})

	assert.ErrorIs(t, err, boom)
}

func TestDecodeStepPayload(t *testing.T) {
	payload, err := usecase.DecodeStepPayload(1, json.RawMessage(`{"mobile":"99"}`))
	require.NoError(t, err)
	assert.Equal(t, usecase.InitialInfoPayload{Mobile: "99"}, payload)

	payload, err = usecase.DecodeStepPayload(6, nil)
	require.NoError(t, err)
	assert.Equal(t, usecase.FinalizePayload{}, payload)

	_, err = usecase.DecodeStepPayload(7, nil)
	assert.True(t, usecase.IsDomainError(err))

	_, err = usecase.DecodeStepPayload(0, nil)
	assert.True(t, usecase.IsDomainError(err))

	_, err = usecase.DecodeStepPayload(2, json.RawMessage(`not-json`))
	assert.Error(t, err)
}
