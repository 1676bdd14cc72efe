package forms

import (
	"time"

	"github.com/alexanderramin/freightdesk/internal/domain"
	"github.com/alexanderramin/freightdesk/internal/form"
	"github.com/alexanderramin/freightdesk/internal/refdata"
)

func seaOnly(v form.Values) bool { return v.String("shippingMode") == string(domain.ModeSea) }

func notSea(v form.Values) bool { return !seaOnly(v) }

func jobSchema() *form.Schema {
	s := &form.Schema{
		Name: "job",
		Fields: []form.Field{
			hidden("jobId"),
			hidden("companyId"),
			{Name: "jobNumber", Label: "Job Number", Kind: form.KindText, Required: true, NonBlank: true},
			{Name: "jobDate", Label: "Job Date", Kind: form.KindDate, Required: true},
			lookup("operationType", "Operation type", refdata.OperationTypes, true),
			lookup("jobSubType", "Job sub-type", refdata.JobSubTypes, false),
			lookup("gdType", "GD type", refdata.GDTypes, false),
			{Name: "status", Label: "Status", Kind: form.KindSelect, Required: true, Default: string(domain.JobOpen),
				Options: staticOptions(domain.JobStatuses...)},

			lookup("customerPartyId", "Customer", refdata.Parties, true),
			lookup("shipperPartyId", "Shipper", refdata.Parties, false),
			lookup("consigneePartyId", "Consignee", refdata.Parties, false),
			lookup("notifyPartyId", "Notify party", refdata.Parties, false),

			{Name: "shippingMode", Label: "Shipping mode", Kind: form.KindSelect, Required: true, Default: string(domain.ModeSea),
				Options: staticOptions(domain.ShippingModes...)},
			{Name: "containerLoad", Label: "Container load", Kind: form.KindSelect, Default: string(domain.LoadFCL),
				Options: staticOptions(string(domain.LoadFCL), string(domain.LoadLCL)), VisibleWhen: seaOnly},
			lookup("polId", "Port of loading", refdata.Ports, true),
			lookup("podId", "Port of discharge", refdata.Ports, true),
			{Name: "vesselId", Label: "Vessel", Kind: form.KindSelect, Lookup: string(refdata.Vessels), VisibleWhen: seaOnly},
			{Name: "voyageNo", Label: "Voyage no.", Kind: form.KindText, VisibleWhen: seaOnly},
			{Name: "etd", Label: "ETD", Kind: form.KindDate},
			{Name: "eta", Label: "ETA", Kind: form.KindDate},

			{Name: "remarks", Label: "Remarks", Kind: form.KindText},
			hidden("createLog"),
			hidden("updateLog"),
		},
		Watchers: []form.Watcher{
			form.ClearWhen("shippingMode", notSea, "containerLoad", "vesselId", "voyageNo"),
		},
	}
	s.Watchers = append(s.Watchers, s.RestoreWhen("shippingMode", seaOnly, "containerLoad"))
	return s
}

// Job is the multi-step job order wizard.
func Job() *Entity {
	return &Entity{
		Name:     "job",
		Title:    "Job Order",
		Endpoint: "Job",
		IDField:  "jobId",
		Schema:   jobSchema(),
		Wizard:   true,
		Steps: []form.Step{
			{Name: "general", Title: "General", Fields: []string{"jobNumber", "jobDate", "operationType", "jobSubType", "gdType", "status"}},
			{Name: "parties", Title: "Parties", Fields: []string{"customerPartyId", "shipperPartyId", "consigneePartyId", "notifyPartyId"}},
			{Name: "routing", Title: "Routing", Fields: []string{"shippingMode", "containerLoad", "polId", "podId", "vesselId", "voyageNo", "etd", "eta"}},
			{Name: "equipment", Title: "Equipment", Collection: "equipments"},
			{Name: "commodities", Title: "Commodities", Collection: "commodities"},
			{Name: "charges", Title: "Charges", Collection: "charges"},
			{Name: "invoices", Title: "Invoices", Collection: "invoices"},
			{Name: "review", Title: "Review", Fields: []string{"remarks"}},
		},
		Children: []ChildSpec{equipmentSpec(), commoditySpec(), chargeSpec(), invoiceSpec()},
		Requires: []Requirement{{
			Key:     "equipments",
			Message: "Add at least one equipment line for a sea job",
			When:    seaOnly,
		}},
		Initial: func(now time.Time) form.Values {
			return form.Values{"jobDate": now.Format(form.DateLayout)}
		},
		Build: buildJob,
	}
}

func buildJob(rec Record, a Audit) any {
	v := rec.Values
	jobID := v.Int("jobId")
	p := domain.JobPayload{
		JobID:            jobID,
		CompanyID:        domain.CoalesceInt(v.Int("companyId"), a.CompanyID),
		JobNumber:        v.String("jobNumber"),
		JobDate:          form.NormalizeDate(v.String("jobDate")),
		OperationType:    v.String("operationType"),
		JobSubType:       v.String("jobSubType"),
		GDType:           v.String("gdType"),
		ShippingMode:     v.String("shippingMode"),
		ContainerLoad:    v.String("containerLoad"),
		CustomerPartyID:  v.Int("customerPartyId"),
		ShipperPartyID:   v.Int("shipperPartyId"),
		ConsigneePartyID: v.Int("consigneePartyId"),
		NotifyPartyID:    v.Int("notifyPartyId"),
		PolID:            v.Int("polId"),
		PodID:            v.Int("podId"),
		VesselID:         v.Int("vesselId"),
		VoyageNo:         v.String("voyageNo"),
		Etd:              v.DatePtr("etd"),
		Eta:              v.DatePtr("eta"),
		Remarks:          v.String("remarks"),
		Status:           domain.CoalesceStr(v.String("status"), string(domain.JobOpen)),

		Equipments:  make([]domain.EquipmentPayload, 0, len(rec.Children["equipments"])),
		Commodities: make([]domain.CommodityPayload, 0, len(rec.Children["commodities"])),
		Charges:     make([]domain.ChargePayload, 0, len(rec.Children["charges"])),
		Invoices:    make([]domain.InvoicePayload, 0, len(rec.Children["invoices"])),
	}
	p.CreateLog, p.UpdateLog = a.logs(v, a.Mode == ModeEdit)

	for _, kid := range rec.Children["equipments"] {
		kv := kid.Values
		id := kv.Int("jobEquipmentId")
		e := domain.EquipmentPayload{
			JobEquipmentID:  id,
			JobID:           jobID,
			ContainerTypeID: kv.Int("containerTypeId"),
			ContainerSizeID: kv.Int("containerSizeId"),
			ContainerNo:     kv.String("containerNo"),
			SealNo:          kv.String("sealNo"),
			Quantity:        kv.Int("quantity"),
			GrossWeight:     kv.Float("grossWeight"),
			TareWeight:      kv.Float("tareWeight"),
			NetWeight:       kv.Float("netWeight"),
		}
		e.CreateLog, e.UpdateLog = a.logs(kv, id > 0)
		p.Equipments = append(p.Equipments, e)
	}

	for _, kid := range rec.Children["commodities"] {
		kv := kid.Values
		id := kv.Int("jobCommodityId")
		c := domain.CommodityPayload{
			JobCommodityID: id,
			JobID:          jobID,
			CommodityID:    kv.Int("commodityId"),
			Description:    kv.String("description"),
			Packages:       kv.Int("packages"),
			PackageUnitID:  kv.Int("packageUnitId"),
			GrossWeight:    kv.Float("grossWeight"),
			Volume:         kv.Float("volume"),
		}
		c.CreateLog, c.UpdateLog = a.logs(kv, id > 0)
		p.Commodities = append(p.Commodities, c)
	}

	for _, kid := range rec.Children["charges"] {
		kv := kid.Values
		id := kv.Int("jobChargeId")
		c := domain.ChargePayload{
			JobChargeID:        id,
			JobID:              jobID,
			ChargeID:           kv.Int("chargeId"),
			CurrencyID:         kv.Int("currencyId"),
			PartyID:            kv.Int("partyId"),
			ChargeAmountFields: amountFields(kv),
			Remarks:            kv.String("remarks"),
		}
		c.CreateLog, c.UpdateLog = a.logs(kv, id > 0)
		p.Charges = append(p.Charges, c)
	}

	for _, kid := range rec.Children["invoices"] {
		p.Invoices = append(p.Invoices, buildInvoice(kid, jobID, a))
	}
	return p
}

func buildInvoice(rec Record, jobID int, a Audit) domain.InvoicePayload {
	v := rec.Values
	id := v.Int("invoiceId")
	inv := domain.InvoicePayload{
		InvoiceID:   id,
		JobID:       jobID,
		InvoiceNo:   v.String("invoiceNo"),
		InvoiceDate: v.DatePtr("invoiceDate"),
		PartyID:     v.Int("partyId"),
		CurrencyID:  v.Int("currencyId"),
		TotalFC:     v.Float("totalFC"),
		TotalLC:     v.Float("totalLC"),
		Items:       make([]domain.InvoiceItemPayload, 0, len(rec.Children["invoiceItems"])),
	}
	inv.CreateLog, inv.UpdateLog = a.logs(v, id > 0)
	for _, item := range rec.Children["invoiceItems"] {
		iv := item.Values
		itemID := iv.Int("invoiceItemId")
		it := domain.InvoiceItemPayload{
			InvoiceItemID:      itemID,
			InvoiceID:          id,
			ChargeID:           iv.Int("chargeId"),
			Description:        iv.String("description"),
			ChargeAmountFields: amountFields(iv),
		}
		it.CreateLog, it.UpdateLog = a.logs(iv, itemID > 0)
		inv.Items = append(inv.Items, it)
	}
	return inv
}

func amountFields(v form.Values) domain.ChargeAmountFields {
	return domain.ChargeAmountFields{
		PriceFC:       v.Float("priceFC"),
		ExchangeRate:  v.Float("exchangeRate"),
		TaxPercentage: v.Float("taxPercentage"),
		PriceLC:       v.Float("priceLC"),
		TaxFC:         v.Float("taxFC"),
		TaxLC:         v.Float("taxLC"),
		AmountFC:      v.Float("amountFC"),
		AmountLC:      v.Float("amountLC"),
	}
}
