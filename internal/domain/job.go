package domain

// JobPayload is the create/update body for the Job endpoint. Every key is
// always present: unset scalars travel as 0, "" or null, unset collections
// as [].
type JobPayload struct {
	JobID            int     `json:"jobId" validate:"gte=0"`
	CompanyID        int     `json:"companyId" validate:"gte=0"`
	JobNumber        string  `json:"jobNumber" validate:"required"`
	JobDate          string  `json:"jobDate" validate:"required,datetime=2006-01-02"`
	OperationType    string  `json:"operationType"`
	JobSubType       string  `json:"jobSubType"`
	GDType           string  `json:"gdType"`
	ShippingMode     string  `json:"shippingMode" validate:"omitempty,oneof=SEA AIR LAND"`
	ContainerLoad    string  `json:"containerLoad" validate:"omitempty,oneof=FCL LCL"`
	CustomerPartyID  int     `json:"customerPartyId" validate:"gte=0"`
	ShipperPartyID   int     `json:"shipperPartyId" validate:"gte=0"`
	ConsigneePartyID int     `json:"consigneePartyId" validate:"gte=0"`
	NotifyPartyID    int     `json:"notifyPartyId" validate:"gte=0"`
	PolID            int     `json:"polId" validate:"gte=0"`
	PodID            int     `json:"podId" validate:"gte=0"`
	VesselID         int     `json:"vesselId" validate:"gte=0"`
	VoyageNo         string  `json:"voyageNo"`
	Etd              *string `json:"etd" validate:"omitempty,datetime=2006-01-02"`
	Eta              *string `json:"eta" validate:"omitempty,datetime=2006-01-02"`
	Remarks          string  `json:"remarks"`
	Status           string  `json:"status" validate:"required,oneof=OPEN CLOSED CANCELLED"`
	CreateLog        string  `json:"createLog"`
	UpdateLog        string  `json:"updateLog"`

	Equipments  []EquipmentPayload `json:"equipments" validate:"dive"`
	Commodities []CommodityPayload `json:"commodities" validate:"dive"`
	Charges     []ChargePayload    `json:"charges" validate:"dive"`
	Invoices    []InvoicePayload   `json:"invoices" validate:"dive"`
}

type EquipmentPayload struct {
	JobEquipmentID  int     `json:"jobEquipmentId" validate:"gte=0"`
	JobID           int     `json:"jobId" validate:"gte=0"`
	ContainerTypeID int     `json:"containerTypeId" validate:"gte=0"`
	ContainerSizeID int     `json:"containerSizeId" validate:"gte=0"`
	ContainerNo     string  `json:"containerNo"`
	SealNo          string  `json:"sealNo"`
	Quantity        int     `json:"quantity" validate:"gte=0"`
	GrossWeight     float64 `json:"grossWeight" validate:"gte=0"`
	TareWeight      float64 `json:"tareWeight" validate:"gte=0"`
	NetWeight       float64 `json:"netWeight" validate:"gte=0"`
	CreateLog       string  `json:"createLog"`
	UpdateLog       string  `json:"updateLog"`
}

type CommodityPayload struct {
	JobCommodityID int     `json:"jobCommodityId" validate:"gte=0"`
	JobID          int     `json:"jobId" validate:"gte=0"`
	CommodityID    int     `json:"commodityId" validate:"gte=0"`
	Description    string  `json:"description"`
	Packages       int     `json:"packages" validate:"gte=0"`
	PackageUnitID  int     `json:"packageUnitId" validate:"gte=0"`
	GrossWeight    float64 `json:"grossWeight" validate:"gte=0"`
	Volume         float64 `json:"volume" validate:"gte=0"`
	CreateLog      string  `json:"createLog"`
	UpdateLog      string  `json:"updateLog"`
}

// ChargeAmountFields are the derived money columns shared by charges and
// invoice lines.
type ChargeAmountFields struct {
	PriceFC       float64 `json:"priceFC" validate:"gte=0"`
	ExchangeRate  float64 `json:"exchangeRate" validate:"gte=0"`
	TaxPercentage float64 `json:"taxPercentage" validate:"gte=0"`
	PriceLC       float64 `json:"priceLC"`
	TaxFC         float64 `json:"taxFC"`
	TaxLC         float64 `json:"taxLC"`
	AmountFC      float64 `json:"amountFC"`
	AmountLC      float64 `json:"amountLC"`
}

type ChargePayload struct {
	JobChargeID int    `json:"jobChargeId" validate:"gte=0"`
	JobID       int    `json:"jobId" validate:"gte=0"`
	ChargeID    int    `json:"chargeId" validate:"gte=0"`
	CurrencyID  int    `json:"currencyId" validate:"gte=0"`
	PartyID     int    `json:"partyId" validate:"gte=0"`
	ChargeAmountFields
	Remarks   string `json:"remarks"`
	CreateLog string `json:"createLog"`
	UpdateLog string `json:"updateLog"`
}

type InvoicePayload struct {
	InvoiceID    int     `json:"invoiceId" validate:"gte=0"`
	JobID        int     `json:"jobId" validate:"gte=0"`
	InvoiceNo    string  `json:"invoiceNo"`
	InvoiceDate  *string `json:"invoiceDate" validate:"omitempty,datetime=2006-01-02"`
	PartyID      int     `json:"partyId" validate:"gte=0"`
	CurrencyID   int     `json:"currencyId" validate:"gte=0"`
	TotalFC      float64 `json:"totalFC"`
	TotalLC      float64 `json:"totalLC"`
	CreateLog    string  `json:"createLog"`
	UpdateLog    string  `json:"updateLog"`

	Items []InvoiceItemPayload `json:"invoiceItems" validate:"dive"`
}

type InvoiceItemPayload struct {
	InvoiceItemID int    `json:"invoiceItemId" validate:"gte=0"`
	InvoiceID     int    `json:"invoiceId" validate:"gte=0"`
	ChargeID      int    `json:"chargeId" validate:"gte=0"`
	Description   string `json:"description"`
	ChargeAmountFields
	CreateLog string `json:"createLog"`
	UpdateLog string `json:"updateLog"`
}
