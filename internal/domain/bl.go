package domain

// BillOfLadingPayload is the create/update body for the bl endpoint.
type BillOfLadingPayload struct {
	BlID             int     `json:"blId" validate:"gte=0"`
	CompanyID        int     `json:"companyId" validate:"gte=0"`
	JobID            int     `json:"jobId" validate:"gte=0"`
	BlNumber         string  `json:"blNumber" validate:"required"`
	BlDate           string  `json:"blDate" validate:"required,datetime=2006-01-02"`
	BlType           string  `json:"blType" validate:"omitempty,oneof=MASTER HOUSE"`
	ShipperPartyID   int     `json:"shipperPartyId" validate:"gte=0"`
	ConsigneePartyID int     `json:"consigneePartyId" validate:"gte=0"`
	NotifyPartyID    int     `json:"notifyPartyId" validate:"gte=0"`
	PolID            int     `json:"polId" validate:"gte=0"`
	PodID            int     `json:"podId" validate:"gte=0"`
	VesselID         int     `json:"vesselId" validate:"gte=0"`
	VoyageNo         string  `json:"voyageNo"`
	OnBoardDate      *string `json:"onBoardDate" validate:"omitempty,datetime=2006-01-02"`
	FreightTerms     string  `json:"freightTerms" validate:"omitempty,oneof=PREPAID COLLECT"`
	NoOfOriginals    int     `json:"noOfOriginals" validate:"gte=0"`
	MarksAndNumbers  string  `json:"marksAndNumbers"`
	GoodsDescription string  `json:"goodsDescription"`
	Remarks          string  `json:"remarks"`
	CreateLog        string  `json:"createLog"`
	UpdateLog        string  `json:"updateLog"`

	Containers []BLContainerPayload `json:"blContainers" validate:"dive"`
}

type BLContainerPayload struct {
	BlContainerID   int     `json:"blContainerId" validate:"gte=0"`
	BlID            int     `json:"blId" validate:"gte=0"`
	ContainerNo     string  `json:"containerNo"`
	ContainerTypeID int     `json:"containerTypeId" validate:"gte=0"`
	ContainerSizeID int     `json:"containerSizeId" validate:"gte=0"`
	SealNo          string  `json:"sealNo"`
	Packages        int     `json:"packages" validate:"gte=0"`
	PackageUnitID   int     `json:"packageUnitId" validate:"gte=0"`
	GrossWeight     float64 `json:"grossWeight" validate:"gte=0"`
	TareWeight      float64 `json:"tareWeight" validate:"gte=0"`
	NetWeight       float64 `json:"netWeight" validate:"gte=0"`
	Volume          float64 `json:"volume" validate:"gte=0"`
	CreateLog       string  `json:"createLog"`
	UpdateLog       string  `json:"updateLog"`
}
