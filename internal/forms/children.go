package forms

import (
	"github.com/alexanderramin/freightdesk/internal/calc"
	"github.com/alexanderramin/freightdesk/internal/domain"
	"github.com/alexanderramin/freightdesk/internal/form"
	"github.com/alexanderramin/freightdesk/internal/refdata"
	"github.com/shopspring/decimal"
)

func fmtDecimal(d decimal.Decimal) string {
	return d.Round(4).String()
}

func hidden(name string) form.Field {
	return form.Field{Name: name, Kind: form.KindHidden}
}

func auditFields() []form.Field {
	return []form.Field{hidden("createLog"), hidden("updateLog")}
}

func lookup(name, label string, kind refdata.Kind, required bool) form.Field {
	return form.Field{Name: name, Label: label, Kind: form.KindSelect, Lookup: string(kind), Required: required}
}

func number(name, label string) form.Field {
	return form.Field{Name: name, Label: label, Kind: form.KindNumber, Min: form.MinOf(0), Default: "0"}
}

func derived(name, label string) form.Field {
	return form.Field{Name: name, Label: label, Kind: form.KindNumber, Derived: true, Default: "0"}
}

func staticOptions(vals ...string) []domain.Option {
	opts := make([]domain.Option, len(vals))
	for i, v := range vals {
		opts[i] = domain.Option{Value: v, Label: v}
	}
	return opts
}

var netWeightWatcher = form.Derive("net weight", []string{"grossWeight", "tareWeight"}, func(v form.Values) map[string]string {
	return map[string]string{"netWeight": fmtDecimal(calc.NetWeight(v.Decimal("grossWeight"), v.Decimal("tareWeight")))}
})

var chargeAmountsWatcher = form.Derive("charge amounts", []string{"priceFC", "exchangeRate", "taxPercentage"}, func(v form.Values) map[string]string {
	a := calc.Charge(calc.ChargeInput{
		PriceFC:       v.Decimal("priceFC"),
		ExchangeRate:  v.Decimal("exchangeRate"),
		TaxPercentage: v.Decimal("taxPercentage"),
	})
	return map[string]string{
		"priceLC":  fmtDecimal(a.PriceLC),
		"taxFC":    fmtDecimal(a.TaxFC),
		"taxLC":    fmtDecimal(a.TaxLC),
		"amountFC": fmtDecimal(a.AmountFC),
		"amountLC": fmtDecimal(a.AmountLC),
	}
})

func chargeAmountFields() []form.Field {
	return []form.Field{
		{Name: "priceFC", Label: "Price (FC)", Kind: form.KindNumber, Min: form.MinOf(0), Required: true},
		{Name: "exchangeRate", Label: "Exchange rate", Kind: form.KindNumber, Min: form.MinOf(0), Default: "1"},
		{Name: "taxPercentage", Label: "Tax %", Kind: form.KindNumber, Min: form.MinOf(0), Default: "0"},
		derived("priceLC", "Price (LC)"),
		derived("taxFC", "Tax (FC)"),
		derived("taxLC", "Tax (LC)"),
		derived("amountFC", "Amount (FC)"),
		derived("amountLC", "Amount (LC)"),
	}
}

func equipmentSpec() ChildSpec {
	fields := []form.Field{
		hidden("jobEquipmentId"),
		lookup("containerTypeId", "Container type", refdata.ContainerTypes, true),
		lookup("containerSizeId", "Container size", refdata.ContainerSizes, true),
		{Name: "containerNo", Label: "Container no.", Kind: form.KindText, NonBlank: true},
		{Name: "sealNo", Label: "Seal no.", Kind: form.KindText},
		{Name: "quantity", Label: "Quantity", Kind: form.KindInteger, Min: form.MinOf(1), Default: "1"},
		number("grossWeight", "Gross weight (kg)"),
		number("tareWeight", "Tare weight (kg)"),
		derived("netWeight", "Net weight (kg)"),
	}
	return ChildSpec{
		Key:      "equipments",
		Title:    "Equipment",
		Singular: "Equipment",
		IDField:  "jobEquipmentId",
		Schema: &form.Schema{
			Name:     "equipment",
			Fields:   append(fields, auditFields()...),
			Watchers: []form.Watcher{netWeightWatcher},
		},
		Columns: []string{"containerTypeId", "containerSizeId", "containerNo", "quantity", "grossWeight", "netWeight"},
	}
}

func commoditySpec() ChildSpec {
	fields := []form.Field{
		hidden("jobCommodityId"),
		lookup("commodityId", "Commodity (HS code)", refdata.Commodities, true),
		{Name: "description", Label: "Description", Kind: form.KindText, NonBlank: true},
		{Name: "packages", Label: "Packages", Kind: form.KindInteger, Min: form.MinOf(0), Default: "0"},
		lookup("packageUnitId", "Package unit", refdata.Units, false),
		number("grossWeight", "Gross weight (kg)"),
		number("volume", "Volume (cbm)"),
	}
	return ChildSpec{
		Key:      "commodities",
		Title:    "Commodities",
		Singular: "Commodity",
		IDField:  "jobCommodityId",
		Schema:   &form.Schema{Name: "commodity", Fields: append(fields, auditFields()...)},
		Columns:  []string{"commodityId", "description", "packages", "packageUnitId", "grossWeight"},
	}
}

func chargeSpec() ChildSpec {
	fields := []form.Field{
		hidden("jobChargeId"),
		lookup("chargeId", "Charge", refdata.Charges, true),
		lookup("currencyId", "Currency", refdata.Currencies, true),
		lookup("partyId", "Bill to", refdata.Parties, false),
	}
	fields = append(fields, chargeAmountFields()...)
	fields = append(fields, form.Field{Name: "remarks", Label: "Remarks", Kind: form.KindText})
	return ChildSpec{
		Key:      "charges",
		Title:    "Charges",
		Singular: "Charge",
		IDField:  "jobChargeId",
		Schema: &form.Schema{
			Name:     "charge",
			Fields:   append(fields, auditFields()...),
			Watchers: []form.Watcher{chargeAmountsWatcher},
		},
		Columns: []string{"chargeId", "currencyId", "priceFC", "exchangeRate", "taxPercentage", "amountFC", "amountLC"},
	}
}

func invoiceItemSpec() ChildSpec {
	fields := []form.Field{
		hidden("invoiceItemId"),
		lookup("chargeId", "Charge", refdata.Charges, true),
		{Name: "description", Label: "Description", Kind: form.KindText},
	}
	fields = append(fields, chargeAmountFields()...)
	return ChildSpec{
		Key:      "invoiceItems",
		Title:    "Invoice items",
		Singular: "Item",
		IDField:  "invoiceItemId",
		Schema: &form.Schema{
			Name:     "invoice item",
			Fields:   append(fields, auditFields()...),
			Watchers: []form.Watcher{chargeAmountsWatcher},
		},
		Columns: []string{"chargeId", "description", "priceFC", "taxPercentage", "amountFC", "amountLC"},
	}
}

// invoiceTotals sums the item amounts into the invoice header.
func invoiceTotals(rec *Record) {
	var fc, lc []decimal.Decimal
	for _, item := range rec.Children["invoiceItems"] {
		fc = append(fc, item.Values.Decimal("amountFC"))
		lc = append(lc, item.Values.Decimal("amountLC"))
	}
	rec.Values["totalFC"] = fmtDecimal(calc.Sum(fc...))
	rec.Values["totalLC"] = fmtDecimal(calc.Sum(lc...))
}

func invoiceSpec() ChildSpec {
	fields := []form.Field{
		hidden("invoiceId"),
		{Name: "invoiceNo", Label: "Invoice no.", Kind: form.KindText, NonBlank: true},
		{Name: "invoiceDate", Label: "Invoice date", Kind: form.KindDate},
		lookup("partyId", "Bill to", refdata.Parties, true),
		lookup("currencyId", "Currency", refdata.Currencies, true),
		derived("totalFC", "Total (FC)"),
		derived("totalLC", "Total (LC)"),
	}
	return ChildSpec{
		Key:      "invoices",
		Title:    "Invoices",
		Singular: "Invoice",
		IDField:  "invoiceId",
		Schema:   &form.Schema{Name: "invoice", Fields: append(fields, auditFields()...)},
		Columns:  []string{"invoiceNo", "invoiceDate", "partyId", "currencyId", "totalFC", "totalLC"},
		Children: []ChildSpec{invoiceItemSpec()},
		Finalize: invoiceTotals,
	}
}

func blContainerSpec() ChildSpec {
	fields := []form.Field{
		hidden("blContainerId"),
		{Name: "containerNo", Label: "Container no.", Kind: form.KindText, Required: true, NonBlank: true},
		lookup("containerTypeId", "Container type", refdata.ContainerTypes, false),
		lookup("containerSizeId", "Container size", refdata.ContainerSizes, false),
		{Name: "sealNo", Label: "Seal no.", Kind: form.KindText},
		{Name: "packages", Label: "Packages", Kind: form.KindInteger, Min: form.MinOf(0), Default: "0"},
		lookup("packageUnitId", "Package unit", refdata.Units, false),
		number("grossWeight", "Gross weight (kg)"),
		number("tareWeight", "Tare weight (kg)"),
		derived("netWeight", "Net weight (kg)"),
		number("volume", "Volume (cbm)"),
	}
	return ChildSpec{
		Key:      "blContainers",
		Title:    "Containers",
		Singular: "Container",
		IDField:  "blContainerId",
		Schema: &form.Schema{
			Name:     "bl container",
			Fields:   append(fields, auditFields()...),
			Watchers: []form.Watcher{netWeightWatcher},
		},
		Columns: []string{"containerNo", "containerTypeId", "containerSizeId", "sealNo", "packages", "netWeight"},
	}
}
