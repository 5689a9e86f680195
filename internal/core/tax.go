package core

import "github.com/shopspring/decimal"

// defaultTaxRate applies when no tax settings are configured.
var defaultTaxRate = decimal.New(15, -2) // 0.15

var oneHundred = decimal.NewFromInt(100)

// EffectiveTaxRate aggregates the configured settings into a single fraction:
// the sum of percentage/100 over every setting, or 0.15 when none exist.
// Every surface that estimates tax must resolve the rate through this
// function; the figures drift otherwise.
func EffectiveTaxRate(settings []TaxSetting) decimal.Decimal {
	if len(settings) == 0 {
		return defaultTaxRate
	}
	rate := decimal.Zero
	for _, s := range settings {
		rate = rate.Add(s.Percentage.Div(oneHundred))
	}
	return rate
}
