// Package calc holds the derived-field arithmetic for weights and charges.
// All inputs and outputs are decimals so money never drifts through float
// rounding.
package calc

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// NetWeight returns gross - tare, clamped at zero.
func NetWeight(gross, tare decimal.Decimal) decimal.Decimal {
	net := gross.Sub(tare)
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}

// ChargeInput are the user-editable inputs of a charge line.
type ChargeInput struct {
	PriceFC       decimal.Decimal
	ExchangeRate  decimal.Decimal
	TaxPercentage decimal.Decimal
}

// ChargeAmounts are the derived columns of a charge line.
type ChargeAmounts struct {
	PriceLC  decimal.Decimal
	TaxFC    decimal.Decimal
	TaxLC    decimal.Decimal
	AmountFC decimal.Decimal
	AmountLC decimal.Decimal
}

// Charge derives local-currency price, tax and totals from a charge line.
func Charge(in ChargeInput) ChargeAmounts {
	priceLC := in.PriceFC.Mul(in.ExchangeRate)
	taxFC := in.PriceFC.Mul(in.TaxPercentage).Div(hundred)
	taxLC := taxFC.Mul(in.ExchangeRate)
	return ChargeAmounts{
		PriceLC:  priceLC,
		TaxFC:    taxFC,
		TaxLC:    taxLC,
		AmountFC: in.PriceFC.Add(taxFC),
		AmountLC: priceLC.Add(taxLC),
	}
}

// Sum adds vals; an empty list sums to zero.
func Sum(vals ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range vals {
		total = total.Add(v)
	}
	return total
}
