package forms

import (
	"time"

	"github.com/alexanderramin/freightdesk/internal/domain"
	"github.com/alexanderramin/freightdesk/internal/form"
	"github.com/alexanderramin/freightdesk/internal/refdata"
)

func blSchema() *form.Schema {
	return &form.Schema{
		Name: "bl",
		Fields: []form.Field{
			hidden("blId"),
			hidden("companyId"),
			lookup("jobId", "Job", refdata.Jobs, false),
			{Name: "blNumber", Label: "B/L Number", Kind: form.KindText, Required: true, NonBlank: true},
			{Name: "blDate", Label: "B/L Date", Kind: form.KindDate, Required: true},
			{Name: "blType", Label: "B/L type", Kind: form.KindSelect, Default: string(domain.BLHouse),
				Options: staticOptions(string(domain.BLMaster), string(domain.BLHouse))},
			{Name: "freightTerms", Label: "Freight terms", Kind: form.KindSelect, Default: string(domain.FreightPrepaid),
				Options: staticOptions(string(domain.FreightPrepaid), string(domain.FreightCollect))},
			{Name: "noOfOriginals", Label: "No. of originals", Kind: form.KindInteger, Min: form.MinOf(0), Default: "3"},

			lookup("shipperPartyId", "Shipper", refdata.Parties, true),
			lookup("consigneePartyId", "Consignee", refdata.Parties, true),
			lookup("notifyPartyId", "Notify party", refdata.Parties, false),

			lookup("polId", "Port of loading", refdata.Ports, true),
			lookup("podId", "Port of discharge", refdata.Ports, true),
			lookup("vesselId", "Vessel", refdata.Vessels, false),
			{Name: "voyageNo", Label: "Voyage no.", Kind: form.KindText},
			{Name: "onBoardDate", Label: "On board date", Kind: form.KindDate},

			{Name: "marksAndNumbers", Label: "Marks and numbers", Kind: form.KindText},
			{Name: "goodsDescription", Label: "Description of goods", Kind: form.KindText, NonBlank: true},
			{Name: "remarks", Label: "Remarks", Kind: form.KindText},
			hidden("createLog"),
			hidden("updateLog"),
		},
	}
}

// BillOfLading is the tabbed bill-of-lading form.
func BillOfLading() *Entity {
	return &Entity{
		Name:     "bl",
		Title:    "Bill of Lading",
		Endpoint: "bl",
		IDField:  "blId",
		Schema:   blSchema(),
		Steps: []form.Step{
			{Name: "details", Title: "Details", Fields: []string{"jobId", "blNumber", "blDate", "blType", "freightTerms", "noOfOriginals"}},
			{Name: "parties", Title: "Parties", Fields: []string{"shipperPartyId", "consigneePartyId", "notifyPartyId"}},
			{Name: "routing", Title: "Routing", Fields: []string{"polId", "podId", "vesselId", "voyageNo", "onBoardDate"}},
			{Name: "cargo", Title: "Cargo", Fields: []string{"marksAndNumbers", "goodsDescription", "remarks"}},
			{Name: "containers", Title: "Containers", Collection: "blContainers"},
		},
		Children: []ChildSpec{blContainerSpec()},
		Initial: func(now time.Time) form.Values {
			return form.Values{"blDate": now.Format(form.DateLayout)}
		},
		Build: buildBL,
	}
}

func buildBL(rec Record, a Audit) any {
	v := rec.Values
	blID := v.Int("blId")
	p := domain.BillOfLadingPayload{
		BlID:             blID,
		CompanyID:        domain.CoalesceInt(v.Int("companyId"), a.CompanyID),
		JobID:            v.Int("jobId"),
		BlNumber:         v.String("blNumber"),
		BlDate:           form.NormalizeDate(v.String("blDate")),
		BlType:           v.String("blType"),
		ShipperPartyID:   v.Int("shipperPartyId"),
		ConsigneePartyID: v.Int("consigneePartyId"),
		NotifyPartyID:    v.Int("notifyPartyId"),
		PolID:            v.Int("polId"),
		PodID:            v.Int("podId"),
		VesselID:         v.Int("vesselId"),
		VoyageNo:         v.String("voyageNo"),
		OnBoardDate:      v.DatePtr("onBoardDate"),
		FreightTerms:     v.String("freightTerms"),
		NoOfOriginals:    v.Int("noOfOriginals"),
		MarksAndNumbers:  v.String("marksAndNumbers"),
		GoodsDescription: v.String("goodsDescription"),
		Remarks:          v.String("remarks"),
		Containers:       make([]domain.BLContainerPayload, 0, len(rec.Children["blContainers"])),
	}
	p.CreateLog, p.UpdateLog = a.logs(v, a.Mode == ModeEdit)

	for _, kid := range rec.Children["blContainers"] {
		kv := kid.Values
		id := kv.Int("blContainerId")
		c := domain.BLContainerPayload{
			BlContainerID:   id,
			BlID:            blID,
			ContainerNo:     kv.String("containerNo"),
			ContainerTypeID: kv.Int("containerTypeId"),
			ContainerSizeID: kv.Int("containerSizeId"),
			SealNo:          kv.String("sealNo"),
			Packages:        kv.Int("packages"),
			PackageUnitID:   kv.Int("packageUnitId"),
			GrossWeight:     kv.Float("grossWeight"),
			TareWeight:      kv.Float("tareWeight"),
			NetWeight:       kv.Float("netWeight"),
			Volume:          kv.Float("volume"),
		}
		c.CreateLog, c.UpdateLog = a.logs(kv, id > 0)
		p.Containers = append(p.Containers, c)
	}
	return p
}

// Entities lists every form by name.
func Entities() map[string]*Entity {
	return map[string]*Entity{"job": Job(), "bl": BillOfLading()}
}
