package reward

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/vendaforte/cartela-reward-service/internal/domain"
	"github.com/vendaforte/cartela-reward-service/internal/infrastructure/postgres/repository"
	"github.com/vendaforte/cartela-reward-service/internal/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

type fixture struct {
	db        *gorm.DB
	uc        *DefaultRewardUsecase
	accounts  domain.AccountRepository
	campaigns domain.CampaignRepository
	events    domain.SpecialEventRepository
	tiers     domain.CardTierRepository
	completed domain.CompletedTierRepository
	sales     domain.SaleRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)

	accountRepo := repository.NewDefaultAccountRepository(db)
	campaignRepo := repository.NewDefaultCampaignRepository(db)
	eventRepo := repository.NewDefaultSpecialEventRepository(db)
	cardTierRepo := repository.NewDefaultCardTierRepository(db)
	completedRepo := repository.NewDefaultCompletedTierRepository(db)
	saleRepo := repository.NewDefaultSaleRepository(db)
	notifyRepo := repository.NewDefaultNotificationRepository(db)

	uc := NewDefaultRewardUsecase(
		db,
		saleRepo,
		accountRepo,
		campaignRepo,
		eventRepo,
		cardTierRepo,
		completedRepo,
		notifyRepo,
		nil, "", nil,
	)

	return &fixture{
		db:        db,
		uc:        uc,
		accounts:  accountRepo,
		campaigns: campaignRepo,
		events:    eventRepo,
		tiers:     cardTierRepo,
		completed: completedRepo,
		sales:     saleRepo,
	}
}

func (f *fixture) seedCampaign(t *testing.T, managerPct decimal.Decimal) *domain.Campaign {
	t.Helper()
	campaign := &domain.Campaign{
		ID:                uuid.New().String(),
		Name:              "Campanha Teste",
		ManagerPercentage: managerPct,
		Active:            true,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	require.NoError(t, f.campaigns.Create(campaign))
	return campaign
}

func (f *fixture) seedAccount(t *testing.T, role domain.AccountRole, managerID *string) *domain.UserAccount {
	t.Helper()
	account := &domain.UserAccount{
		ID:               uuid.New().String(),
		Name:             string(role) + "-" + uuid.New().String()[:8],
		Role:             role,
		ManagerID:        managerID,
		AvailableBalance: decimal.Zero,
		ReservedBalance:  decimal.Zero,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	require.NoError(t, f.accounts.Create(account))
	return account
}

type reqSpec struct {
	ordinal  int
	quantity int
}

func (f *fixture) seedTier(t *testing.T, campaignID string, tierNumber int, reqs ...reqSpec) *domain.CardTierRule {
	t.Helper()
	tier := &domain.CardTierRule{
		ID:         uuid.New().String(),
		CampaignID: campaignID,
		TierNumber: tierNumber,
		CreatedAt:  time.Now(),
	}
	for _, spec := range reqs {
		tier.Requirements = append(tier.Requirements, domain.Requirement{
			ID:               uuid.New().String(),
			CardTierRuleID:   tier.ID,
			RequiredQuantity: spec.quantity,
			UnitType:         "unidade",
			Ordinal:          spec.ordinal,
		})
	}
	require.NoError(t, f.tiers.Create(tier))
	return tier
}

func (f *fixture) seedPendingSale(t *testing.T, vendorID, campaignID, requirementID string, base decimal.Decimal, submittedAt time.Time) *domain.SaleSubmission {
	t.Helper()
	sale := &domain.SaleSubmission{
		ID:                uuid.New().String(),
		VendorID:          vendorID,
		CampaignID:        campaignID,
		RequirementID:     &requirementID,
		OrderNumber:       uuid.New().String()[:8],
		Status:            domain.SalePendingReview,
		SubmittedAt:       submittedAt,
		BaseRewardValue:   base,
		AppliedMultiplier: decimal.NewFromInt(1),
	}
	require.NoError(t, f.sales.Create(sale))
	return sale
}

func (f *fixture) seedValidatedSale(t *testing.T, vendorID, campaignID, requirementID string, tierNumber int, base decimal.Decimal, submittedAt time.Time) *domain.SaleSubmission {
	t.Helper()
	validatedAt := time.Now()
	sale := &domain.SaleSubmission{
		ID:                uuid.New().String(),
		VendorID:          vendorID,
		CampaignID:        campaignID,
		RequirementID:     &requirementID,
		OrderNumber:       uuid.New().String()[:8],
		Status:            domain.SaleValidated,
		SubmittedAt:       submittedAt,
		ValidatedAt:       &validatedAt,
		BaseRewardValue:   base,
		AppliedMultiplier: decimal.NewFromInt(1),
		CardTierAttained:  &tierNumber,
	}
	require.NoError(t, f.sales.Create(sale))
	return sale
}

func requireDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	require.True(t, actual.Equal(decimal.RequireFromString(expected)),
		"expected %s, got %s", expected, actual.String())
}

func TestValidateSaleCompletesTierAndCreditsVendor(t *testing.T) {
	f := newFixture(t)
	campaign := f.seedCampaign(t, decimal.Zero)
	vendor := f.seedAccount(t, domain.RoleVendor, nil)
	tier := f.seedTier(t, campaign.ID, 1, reqSpec{ordinal: 1, quantity: 1})
	sale := f.seedPendingSale(t, vendor.ID, campaign.ID, tier.Requirements[0].ID, decimal.NewFromInt(100), time.Now())

	output, err := f.uc.ValidateSale(context.Background(), sale.ID, "admin-1")
	require.NoError(t, err)
	require.Equal(t, 1, output.StartTier)
	require.Equal(t, 2, output.HaltedAtTier)
	require.Len(t, output.TiersRewarded, 1)
	require.Equal(t, 1, output.TiersRewarded[0].TierNumber)
	require.Equal(t, 1, output.TiersRewarded[0].SalesCredited)
	requireDecimal(t, "100", output.TiersRewarded[0].VendorAmount)

	account, err := f.accounts.GetByID(vendor.ID)
	require.NoError(t, err)
	requireDecimal(t, "100", account.AvailableBalance)

	reloaded, err := f.sales.GetByID(sale.ID)
	require.NoError(t, err)
	require.Equal(t, domain.SaleValidated, reloaded.Status)
	require.True(t, reloaded.RewardAddedToBalance)
	require.NotNil(t, reloaded.FinalValueWithEvent)
	requireDecimal(t, "100", *reloaded.FinalValueWithEvent)
	require.NotNil(t, reloaded.CardTierAttained)
	require.Equal(t, 1, *reloaded.CardTierAttained)

	completed, err := f.completed.Find(vendor.ID, campaign.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, completed)

	nextExists, err := f.tiers.TierExists(campaign.ID, 2)
	require.NoError(t, err)
	require.True(t, nextExists)
}

func TestValidateSaleRejectsNonPending(t *testing.T) {
	f := newFixture(t)
	campaign := f.seedCampaign(t, decimal.Zero)
	vendor := f.seedAccount(t, domain.RoleVendor, nil)
	tier := f.seedTier(t, campaign.ID, 1, reqSpec{ordinal: 1, quantity: 1})
	sale := f.seedValidatedSale(t, vendor.ID, campaign.ID, tier.Requirements[0].ID, 1, decimal.NewFromInt(50), time.Now())

	_, err := f.uc.ValidateSale(context.Background(), sale.ID, "admin-1")
	require.ErrorIs(t, err, domain.ErrSaleNotPending)
}

func TestValidateSaleWithoutRequirementReference(t *testing.T) {
	f := newFixture(t)
	campaign := f.seedCampaign(t, decimal.Zero)
	vendor := f.seedAccount(t, domain.RoleVendor, nil)
	f.seedTier(t, campaign.ID, 1, reqSpec{ordinal: 1, quantity: 1})

	sale := &domain.SaleSubmission{
		ID:                uuid.New().String(),
		VendorID:          vendor.ID,
		CampaignID:        campaign.ID,
		OrderNumber:       "no-req",
		Status:            domain.SalePendingReview,
		SubmittedAt:       time.Now(),
		BaseRewardValue:   decimal.NewFromInt(10),
		AppliedMultiplier: decimal.NewFromInt(1),
	}
	require.NoError(t, f.sales.Create(sale))

	_, err := f.uc.ValidateSale(context.Background(), sale.ID, "admin-1")
	require.ErrorIs(t, err, domain.ErrSaleWithoutTier)
}

func TestCascadeIsIdempotent(t *testing.T) {
	f := newFixture(t)
	campaign := f.seedCampaign(t, decimal.Zero)
	vendor := f.seedAccount(t, domain.RoleVendor, nil)
	tier := f.seedTier(t, campaign.ID, 1, reqSpec{ordinal: 1, quantity: 1})
	sale := f.seedPendingSale(t, vendor.ID, campaign.ID, tier.Requirements[0].ID, decimal.NewFromInt(100), time.Now())

	_, err := f.uc.ValidateSale(context.Background(), sale.ID, "admin-1")
	require.NoError(t, err)

	output, err := f.uc.RunCascade(context.Background(), vendor.ID, campaign.ID, 1)
	require.NoError(t, err)
	require.Empty(t, output.TiersRewarded)
	require.Equal(t, 2, output.HaltedAtTier)

	account, err := f.accounts.GetByID(vendor.ID)
	require.NoError(t, err)
	requireDecimal(t, "100", account.AvailableBalance)
}

func TestCascadeSpilloverRewardsEveryCompleteTier(t *testing.T) {
	f := newFixture(t)
	campaign := f.seedCampaign(t, decimal.Zero)
	vendor := f.seedAccount(t, domain.RoleVendor, nil)

	for tierNumber := 1; tierNumber <= 3; tierNumber++ {
		tier := f.seedTier(t, campaign.ID, tierNumber, reqSpec{ordinal: 1, quantity: 1})
		f.seedValidatedSale(t, vendor.ID, campaign.ID, tier.Requirements[0].ID, tierNumber, decimal.NewFromInt(50), time.Now())
	}

	output, err := f.uc.RunCascade(context.Background(), vendor.ID, campaign.ID, 1)
	require.NoError(t, err)
	require.Len(t, output.TiersRewarded, 3)
	require.Equal(t, 4, output.HaltedAtTier)

	account, err := f.accounts.GetByID(vendor.ID)
	require.NoError(t, err)
	requireDecimal(t, "150", account.AvailableBalance)

	exists, err := f.tiers.TierExists(campaign.ID, 4)
	require.NoError(t, err)
	require.True(t, exists)
}

func TestCascadeContinuesPastAlreadyProcessedTier(t *testing.T) {
	f := newFixture(t)
	campaign := f.seedCampaign(t, decimal.Zero)
	vendor := f.seedAccount(t, domain.RoleVendor, nil)

	tier1 := f.seedTier(t, campaign.ID, 1, reqSpec{ordinal: 1, quantity: 1})
	tier2 := f.seedTier(t, campaign.ID, 2, reqSpec{ordinal: 1, quantity: 1})

	// Tier 1 was rewarded in an earlier run; its sale is already credited.
	sale1 := f.seedValidatedSale(t, vendor.ID, campaign.ID, tier1.Requirements[0].ID, 1, decimal.NewFromInt(40), time.Now())
	require.NoError(t, f.sales.ApplyReward(sale1.ID, decimal.NewFromInt(1), decimal.NewFromInt(40)))
	require.NoError(t, f.completed.Insert(&domain.CompletedCardTier{
		ID:          uuid.New().String(),
		VendorID:    vendor.ID,
		CampaignID:  campaign.ID,
		TierNumber:  1,
		CompletedAt: time.Now(),
	}))

	f.seedValidatedSale(t, vendor.ID, campaign.ID, tier2.Requirements[0].ID, 2, decimal.NewFromInt(60), time.Now())

	output, err := f.uc.RunCascade(context.Background(), vendor.ID, campaign.ID, 1)
	require.NoError(t, err)
	require.Len(t, output.TiersRewarded, 1)
	require.Equal(t, 2, output.TiersRewarded[0].TierNumber)
	require.Equal(t, 3, output.HaltedAtTier)

	account, err := f.accounts.GetByID(vendor.ID)
	require.NoError(t, err)
	requireDecimal(t, "60", account.AvailableBalance)
}

func TestMultiplierMatchesSubmissionWindow(t *testing.T) {
	f := newFixture(t)
	campaign := f.seedCampaign(t, decimal.Zero)
	vendor := f.seedAccount(t, domain.RoleVendor, nil)
	tier := f.seedTier(t, campaign.ID, 1, reqSpec{ordinal: 1, quantity: 2})

	now := time.Now()
	require.NoError(t, f.events.Create(&domain.SpecialEvent{
		ID:         uuid.New().String(),
		CampaignID: campaign.ID,
		Name:       "Semana Dupla",
		Multiplier: decimal.NewFromInt(2),
		ActiveFrom: now.Add(-time.Hour),
		ActiveTo:   now.Add(time.Hour),
		Enabled:    true,
	}))

	inWindow := f.seedValidatedSale(t, vendor.ID, campaign.ID, tier.Requirements[0].ID, 1, decimal.NewFromInt(100), now)
	outside := f.seedValidatedSale(t, vendor.ID, campaign.ID, tier.Requirements[0].ID, 1, decimal.NewFromInt(100), now.Add(-72*time.Hour))

	output, err := f.uc.RunCascade(context.Background(), vendor.ID, campaign.ID, 1)
	require.NoError(t, err)
	require.Len(t, output.TiersRewarded, 1)
	requireDecimal(t, "300", output.TiersRewarded[0].VendorAmount)
	require.Equal(t, []string{"Semana Dupla"}, output.TiersRewarded[0].EventNames)

	boosted, err := f.sales.GetByID(inWindow.ID)
	require.NoError(t, err)
	requireDecimal(t, "2", boosted.AppliedMultiplier)
	requireDecimal(t, "200", *boosted.FinalValueWithEvent)

	plain, err := f.sales.GetByID(outside.ID)
	require.NoError(t, err)
	requireDecimal(t, "1", plain.AppliedMultiplier)
	requireDecimal(t, "100", *plain.FinalValueWithEvent)
}

func TestManagerCommissionUsesPreMultiplierBase(t *testing.T) {
	f := newFixture(t)
	campaign := f.seedCampaign(t, decimal.RequireFromString("0.10"))
	manager := f.seedAccount(t, domain.RoleManager, nil)
	vendor := f.seedAccount(t, domain.RoleVendor, &manager.ID)
	tier := f.seedTier(t, campaign.ID, 1, reqSpec{ordinal: 1, quantity: 1})

	now := time.Now()
	require.NoError(t, f.events.Create(&domain.SpecialEvent{
		ID:         uuid.New().String(),
		CampaignID: campaign.ID,
		Name:       "Dobro",
		Multiplier: decimal.NewFromInt(2),
		ActiveFrom: now.Add(-time.Hour),
		ActiveTo:   now.Add(time.Hour),
		Enabled:    true,
	}))

	sale := f.seedPendingSale(t, vendor.ID, campaign.ID, tier.Requirements[0].ID, decimal.NewFromInt(100), now)

	output, err := f.uc.ValidateSale(context.Background(), sale.ID, "admin-1")
	require.NoError(t, err)
	require.Len(t, output.TiersRewarded, 1)
	requireDecimal(t, "200", output.TiersRewarded[0].VendorAmount)
	requireDecimal(t, "10", output.TiersRewarded[0].ManagerAmount)

	vendorAccount, err := f.accounts.GetByID(vendor.ID)
	require.NoError(t, err)
	requireDecimal(t, "200", vendorAccount.AvailableBalance)

	managerAccount, err := f.accounts.GetByID(manager.ID)
	require.NoError(t, err)
	requireDecimal(t, "10", managerAccount.AvailableBalance)
}

func TestReplicationPreservesOrdinals(t *testing.T) {
	f := newFixture(t)
	campaign := f.seedCampaign(t, decimal.Zero)
	vendor := f.seedAccount(t, domain.RoleVendor, nil)
	tier := f.seedTier(t, campaign.ID, 1,
		reqSpec{ordinal: 1, quantity: 1},
		reqSpec{ordinal: 2, quantity: 2},
	)

	f.seedValidatedSale(t, vendor.ID, campaign.ID, tier.Requirements[0].ID, 1, decimal.NewFromInt(10), time.Now())
	f.seedValidatedSale(t, vendor.ID, campaign.ID, tier.Requirements[1].ID, 1, decimal.NewFromInt(10), time.Now())
	f.seedValidatedSale(t, vendor.ID, campaign.ID, tier.Requirements[1].ID, 1, decimal.NewFromInt(10), time.Now())

	_, err := f.uc.RunCascade(context.Background(), vendor.ID, campaign.ID, 1)
	require.NoError(t, err)

	next, err := f.tiers.GetByCampaignAndTier(campaign.ID, 2)
	require.NoError(t, err)
	require.Len(t, next.Requirements, 2)

	byOrdinal := make(map[int]domain.Requirement, 2)
	for _, req := range next.Requirements {
		byOrdinal[req.Ordinal] = req
	}
	require.Equal(t, 1, byOrdinal[1].RequiredQuantity)
	require.Equal(t, 2, byOrdinal[2].RequiredQuantity)
	require.NotEqual(t, tier.Requirements[0].ID, byOrdinal[1].ID)
	require.NotEqual(t, tier.ID, next.ID)
}

func TestCascadeHaltsOnMissingTier(t *testing.T) {
	f := newFixture(t)
	campaign := f.seedCampaign(t, decimal.Zero)
	vendor := f.seedAccount(t, domain.RoleVendor, nil)

	output, err := f.uc.RunCascade(context.Background(), vendor.ID, campaign.ID, 7)
	require.NoError(t, err)
	require.Empty(t, output.TiersRewarded)
	require.Equal(t, 7, output.HaltedAtTier)
}

func TestCascadeHaltsOnInsufficientSales(t *testing.T) {
	f := newFixture(t)
	campaign := f.seedCampaign(t, decimal.Zero)
	vendor := f.seedAccount(t, domain.RoleVendor, nil)
	tier := f.seedTier(t, campaign.ID, 1, reqSpec{ordinal: 1, quantity: 3})

	f.seedValidatedSale(t, vendor.ID, campaign.ID, tier.Requirements[0].ID, 1, decimal.NewFromInt(10), time.Now())
	f.seedValidatedSale(t, vendor.ID, campaign.ID, tier.Requirements[0].ID, 1, decimal.NewFromInt(10), time.Now())

	output, err := f.uc.RunCascade(context.Background(), vendor.ID, campaign.ID, 1)
	require.NoError(t, err)
	require.Empty(t, output.TiersRewarded)
	require.Equal(t, 1, output.HaltedAtTier)

	account, err := f.accounts.GetByID(vendor.ID)
	require.NoError(t, err)
	require.True(t, account.AvailableBalance.IsZero())
}

func TestCascadeHaltsOnTierWithoutRequirements(t *testing.T) {
	f := newFixture(t)
	campaign := f.seedCampaign(t, decimal.Zero)
	vendor := f.seedAccount(t, domain.RoleVendor, nil)
	f.seedTier(t, campaign.ID, 1)

	output, err := f.uc.RunCascade(context.Background(), vendor.ID, campaign.ID, 1)
	require.NoError(t, err)
	require.Empty(t, output.TiersRewarded)
	require.Equal(t, 1, output.HaltedAtTier)

	completed, err := f.completed.Find(vendor.ID, campaign.ID, 1)
	require.NoError(t, err)
	require.Nil(t, completed)
}

func TestEvaluatorExcludesDanglingRequirementReference(t *testing.T) {
	f := newFixture(t)
	campaign := f.seedCampaign(t, decimal.Zero)
	vendor := f.seedAccount(t, domain.RoleVendor, nil)
	f.seedTier(t, campaign.ID, 1, reqSpec{ordinal: 1, quantity: 1})

	// The sale points at a requirement that no longer exists, so it
	// cannot be counted against any ordinal.
	f.seedValidatedSale(t, vendor.ID, campaign.ID, uuid.New().String(), 1, decimal.NewFromInt(10), time.Now())

	output, err := f.uc.RunCascade(context.Background(), vendor.ID, campaign.ID, 1)
	require.NoError(t, err)
	require.Empty(t, output.TiersRewarded)
	require.Equal(t, 1, output.HaltedAtTier)

	account, err := f.accounts.GetByID(vendor.ID)
	require.NoError(t, err)
	require.True(t, account.AvailableBalance.IsZero())
}

func TestDuplicateOrdinalRejectedAtTierCreation(t *testing.T) {
	f := newFixture(t)
	campaign := f.seedCampaign(t, decimal.Zero)

	tier := &domain.CardTierRule{
		ID:         uuid.New().String(),
		CampaignID: campaign.ID,
		TierNumber: 1,
		Requirements: []domain.Requirement{
			{ID: uuid.New().String(), RequiredQuantity: 1, Ordinal: 1},
			{ID: uuid.New().String(), RequiredQuantity: 2, Ordinal: 1},
		},
	}
	err := f.tiers.Create(tier)
	require.ErrorIs(t, err, domain.ErrDuplicateOrdinal)
}
