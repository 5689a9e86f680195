package services

import (
	"context"
	"errors"
	"testing"

	"finnexus/internal/core"
	"finnexus/internal/store/memory"
)

func TestTaxServiceCreateAndRate(t *testing.T) {
	svc := NewTaxService(memory.NewStore())
	ctx := context.Background()

	rate, err := svc.EffectiveRate(ctx)
	if err != nil {
		t.Fatalf("EffectiveRate: %v", err)
	}
	if !rate.Equal(dec("0.15")) {
		t.Fatalf("default rate = %s, want 0.15", rate)
	}

	created, err := svc.Create(ctx, core.TaxSetting{Name: "ISS", Percentage: dec("5")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("Create should assign an ID")
	}
	if _, err := svc.Create(ctx, core.TaxSetting{Name: "IRPJ", Percentage: dec("7.5")}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rate, err = svc.EffectiveRate(ctx)
	if err != nil {
		t.Fatalf("EffectiveRate: %v", err)
	}
	if !rate.Equal(dec("0.125")) {
		t.Fatalf("rate = %s, want 0.125", rate)
	}
}

func TestTaxServiceRejectsInvalid(t *testing.T) {
	svc := NewTaxService(memory.NewStore())

	if _, err := svc.Create(context.Background(), core.TaxSetting{Name: "", Percentage: dec("5")}); !errors.Is(err, core.ErrEmptyTaxName) {
		t.Fatalf("err = %v, want ErrEmptyTaxName", err)
	}
	if _, err := svc.Create(context.Background(), core.TaxSetting{Name: "ISS", Percentage: dec("120")}); !errors.Is(err, core.ErrInvalidPercentage) {
		t.Fatalf("err = %v, want ErrInvalidPercentage", err)
	}
}

func TestTaxServiceDelete(t *testing.T) {
	svc := NewTaxService(memory.NewStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, core.TaxSetting{Name: "ISS", Percentage: dec("5")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	rate, err := svc.EffectiveRate(ctx)
	if err != nil {
		t.Fatalf("EffectiveRate: %v", err)
	}
	if !rate.Equal(dec("0.15")) {
		t.Fatalf("rate should fall back to default, got %s", rate)
	}
}
