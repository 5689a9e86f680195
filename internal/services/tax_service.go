package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"finnexus/internal/core"
	"finnexus/internal/store"
)

// TaxService manages the configured tax components and resolves the
// effective rate used by summaries and exports.
type TaxService struct {
	store store.TaxSettingStore
}

func NewTaxService(s store.TaxSettingStore) *TaxService {
	return &TaxService{store: s}
}

// List returns every configured tax component in insertion order.
func (s *TaxService) List(ctx context.Context) ([]core.TaxSetting, error) {
	return s.store.ListTaxSettings(ctx)
}

// Create validates and stores a new tax component.
func (s *TaxService) Create(ctx context.Context, setting core.TaxSetting) (core.TaxSetting, error) {
	setting.ID = uuid.NewString()
	if err := setting.Validate(); err != nil {
		return core.TaxSetting{}, err
	}

	if err := s.store.CreateTaxSetting(ctx, setting); err != nil {
		return core.TaxSetting{}, fmt.Errorf("create tax setting: %w", err)
	}
	return setting, nil
}

// Delete removes a tax component by ID.
func (s *TaxService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteTaxSetting(ctx, id)
}

// EffectiveRate resolves the tax rate applied to profit. With no components
// configured it falls back to the default rate.
func (s *TaxService) EffectiveRate(ctx context.Context) (decimal.Decimal, error) {
	settings, err := s.store.ListTaxSettings(ctx)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("list tax settings: %w", err)
	}
	return core.EffectiveTaxRate(settings), nil
}
