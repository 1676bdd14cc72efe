// Package refdata loads the reference lists the forms pick values from.
package refdata

import (
	"encoding/json"

	"github.com/alexanderramin/freightdesk/internal/backend"
	"github.com/alexanderramin/freightdesk/internal/domain"
)

// Kind names one reference list.
type Kind string

const (
	Parties        Kind = "parties"
	Ports          Kind = "ports"
	ContainerTypes Kind = "container_types"
	ContainerSizes Kind = "container_sizes"
	Currencies     Kind = "currencies"
	Commodities    Kind = "commodities"
	Charges        Kind = "charges"
	Vessels        Kind = "vessels"
	Units          Kind = "units"
	Jobs           Kind = "jobs"
	OperationTypes Kind = "operation_types"
	JobSubTypes    Kind = "job_sub_types"
	GDTypes        Kind = "gd_types"
)

// Lookup describes how one list is fetched and projected. Exactly one of
// Query (a generic list query) or TypeName (a type-values fetch) is used.
type Lookup struct {
	Kind     Kind
	Title    string
	Query    backend.ListQuery
	TypeName string
	// Decode projects raw list records into options.
	Decode func([]json.RawMessage) (opts []domain.Option, skipped int)
	// Fallback replaces the list when the fetch fails.
	Fallback []domain.Option
}

func (l Lookup) typeValues() bool { return l.TypeName != "" }

// Records decodes each raw record as R, drops the ones that fail to decode
// or validate, and projects the rest into options in response order.
func Records[R domain.OptionSource](raws []json.RawMessage) ([]domain.Option, int) {
	opts := make([]domain.Option, 0, len(raws))
	skipped := 0
	for _, raw := range raws {
		var rec R
		if err := json.Unmarshal(raw, &rec); err != nil {
			skipped++
			continue
		}
		if err := domain.Validate(rec); err != nil {
			skipped++
			continue
		}
		opts = append(opts, rec.Option())
	}
	return opts, skipped
}

const activeOnly = "IsActive = 1"

// DefaultLookups is the reference data used by the job and BL forms.
func DefaultLookups() []Lookup {
	return []Lookup{
		{
			Kind:   Parties,
			Title:  "Parties",
			Query:  backend.ListQuery{Entity: "Party", Select: []string{"PartyId", "PartyCode", "PartyName"}, Where: activeOnly, SortOn: "PartyName"},
			Decode: Records[domain.PartyRecord],
		},
		{
			Kind:   Ports,
			Title:  "Ports",
			Query:  backend.ListQuery{Entity: "UnLocation", Select: []string{"UnLocationId", "UnLocationCode", "UnLocationName"}, Where: activeOnly, SortOn: "UnLocationCode"},
			Decode: Records[domain.PortRecord],
		},
		{
			Kind:     ContainerTypes,
			Title:    "Container types",
			Query:    backend.ListQuery{Entity: "SetupContainerType", Select: []string{"ContainerTypeId", "ContainerTypeCode", "ContainerTypeName"}, Where: activeOnly, SortOn: "ContainerTypeCode"},
			Decode:   Records[domain.ContainerTypeRecord],
			Fallback: containerTypeFallback,
		},
		{
			Kind:     ContainerSizes,
			Title:    "Container sizes",
			Query:    backend.ListQuery{Entity: "SetupContainerSize", Select: []string{"ContainerSizeId", "ContainerSizeCode", "ContainerSizeName"}, Where: activeOnly, SortOn: "ContainerSizeCode"},
			Decode:   Records[domain.ContainerSizeRecord],
			Fallback: containerSizeFallback,
		},
		{
			Kind:   Currencies,
			Title:  "Currencies",
			Query:  backend.ListQuery{Entity: "SetupCurrency", Select: []string{"CurrencyId", "CurrencyCode", "CurrencyName"}, Where: activeOnly, SortOn: "CurrencyCode"},
			Decode: Records[domain.CurrencyRecord],
		},
		{
			Kind:   Commodities,
			Title:  "Commodities (HS codes)",
			Query:  backend.ListQuery{Entity: "Commodity", Select: []string{"CommodityId", "HsCode", "CommodityName"}, Where: activeOnly, SortOn: "HsCode"},
			Decode: Records[domain.CommodityRecord],
		},
		{
			Kind:   Charges,
			Title:  "Charges",
			Query:  backend.ListQuery{Entity: "SetupCharge", Select: []string{"ChargeId", "ChargeCode", "ChargeName"}, Where: activeOnly, SortOn: "ChargeName"},
			Decode: Records[domain.ChargeRecord],
		},
		{
			Kind:   Vessels,
			Title:  "Vessels",
			Query:  backend.ListQuery{Entity: "VesselMaster", Select: []string{"VesselId", "VesselCode", "VesselName"}, Where: activeOnly, SortOn: "VesselName"},
			Decode: Records[domain.VesselRecord],
		},
		{
			Kind:   Units,
			Title:  "Package units",
			Query:  backend.ListQuery{Entity: "SetupUnit", Select: []string{"UnitId", "UnitCode", "UnitName"}, Where: activeOnly, SortOn: "UnitCode"},
			Decode: Records[domain.UnitRecord],
		},
		{
			Kind:   Jobs,
			Title:  "Jobs",
			Query:  backend.ListQuery{Entity: "Job", Select: []string{"JobId", "JobNumber", "JobDate"}, SortOn: "JobId DESC"},
			Decode: Records[domain.JobRefRecord],
		},
		{Kind: OperationTypes, Title: "Operation types", TypeName: "OperationType"},
		{Kind: JobSubTypes, Title: "Job sub-types", TypeName: "JobSubType"},
		{Kind: GDTypes, Title: "GD types", TypeName: "GDType"},
	}
}

// Fallback ids match the seeded setup tables of a fresh backend.
var containerTypeFallback = []domain.Option{
	{Value: "1", Label: "GP - General Purpose"},
	{Value: "2", Label: "HC - High Cube"},
	{Value: "3", Label: "RF - Reefer"},
	{Value: "4", Label: "OT - Open Top"},
	{Value: "5", Label: "FR - Flat Rack"},
}

var containerSizeFallback = []domain.Option{
	{Value: "1", Label: "20 - 20 ft"},
	{Value: "2", Label: "40 - 40 ft"},
	{Value: "3", Label: "45 - 45 ft"},
}
