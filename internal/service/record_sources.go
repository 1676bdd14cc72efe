package service

// source maps one record list to its backend list entity and the column
// that links it to its parent.
type source struct {
	Key      string
	Entity   string
	Column   string // filter column, e.g. "JobId"
	IDField  string // field of the parent record holding the filter value
	SortOn   string
	Children []source
}

var masterSources = map[string]source{
	"job": {
		Entity: "Job", Column: "JobId", IDField: "jobId", SortOn: "JobId DESC",
		Children: []source{
			{Key: "equipments", Entity: "JobEquipment", Column: "JobId", IDField: "jobId", SortOn: "JobEquipmentId"},
			{Key: "commodities", Entity: "JobCommodity", Column: "JobId", IDField: "jobId", SortOn: "JobCommodityId"},
			{Key: "charges", Entity: "JobCharge", Column: "JobId", IDField: "jobId", SortOn: "JobChargeId"},
			{Key: "invoices", Entity: "Invoice", Column: "JobId", IDField: "jobId", SortOn: "InvoiceId",
				Children: []source{
					{Key: "invoiceItems", Entity: "InvoiceItem", Column: "InvoiceId", IDField: "invoiceId", SortOn: "InvoiceItemId"},
				}},
		},
	},
	"bl": {
		Entity: "bl", Column: "BlId", IDField: "blId", SortOn: "BlId DESC",
		Children: []source{
			{Key: "blContainers", Entity: "BlContainer", Column: "BlId", IDField: "blId", SortOn: "BlContainerId"},
		},
	},
}
