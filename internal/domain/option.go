package domain

import (
	"strconv"
	"strings"
)

// Option is one selectable reference-data entry.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OptionSource is implemented by every reference record the backend returns.
type OptionSource interface {
	Option() Option
}

// codeLabel renders "CODE - Name", or just the name when no code is set.
func codeLabel(code, name string) string {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	switch {
	case code == "":
		return name
	case name == "":
		return code
	default:
		return code + " - " + name
	}
}

type PartyRecord struct {
	PartyID   int    `json:"partyId" validate:"gt=0"`
	PartyCode string `json:"partyCode"`
	PartyName string `json:"partyName" validate:"required"`
}

func (r PartyRecord) Option() Option {
	return Option{Value: strconv.Itoa(r.PartyID), Label: codeLabel(r.PartyCode, r.PartyName)}
}

// PortRecord is a UN/LOCODE location.
type PortRecord struct {
	UnLocationID   int    `json:"unLocationId" validate:"gt=0"`
	UnLocationCode string `json:"unLocationCode" validate:"required"`
	UnLocationName string `json:"unLocationName"`
}

func (r PortRecord) Option() Option {
	return Option{Value: strconv.Itoa(r.UnLocationID), Label: codeLabel(r.UnLocationCode, r.UnLocationName)}
}

type ContainerTypeRecord struct {
	ContainerTypeID   int    `json:"containerTypeId" validate:"gt=0"`
	ContainerTypeCode string `json:"containerTypeCode"`
	ContainerTypeName string `json:"containerTypeName" validate:"required"`
}

func (r ContainerTypeRecord) Option() Option {
	return Option{Value: strconv.Itoa(r.ContainerTypeID), Label: codeLabel(r.ContainerTypeCode, r.ContainerTypeName)}
}

type ContainerSizeRecord struct {
	ContainerSizeID   int    `json:"containerSizeId" validate:"gt=0"`
	ContainerSizeCode string `json:"containerSizeCode" validate:"required"`
	ContainerSizeName string `json:"containerSizeName"`
}

func (r ContainerSizeRecord) Option() Option {
	return Option{Value: strconv.Itoa(r.ContainerSizeID), Label: codeLabel(r.ContainerSizeCode, r.ContainerSizeName)}
}

type CurrencyRecord struct {
	CurrencyID   int    `json:"currencyId" validate:"gt=0"`
	CurrencyCode string `json:"currencyCode" validate:"required"`
	CurrencyName string `json:"currencyName"`
}

func (r CurrencyRecord) Option() Option {
	return Option{Value: strconv.Itoa(r.CurrencyID), Label: codeLabel(r.CurrencyCode, r.CurrencyName)}
}

// CommodityRecord is an HS-coded commodity.
type CommodityRecord struct {
	CommodityID   int    `json:"commodityId" validate:"gt=0"`
	HsCode        string `json:"hsCode"`
	CommodityName string `json:"commodityName" validate:"required"`
}

func (r CommodityRecord) Option() Option {
	return Option{Value: strconv.Itoa(r.CommodityID), Label: codeLabel(r.HsCode, r.CommodityName)}
}

type ChargeRecord struct {
	ChargeID   int    `json:"chargeId" validate:"gt=0"`
	ChargeCode string `json:"chargeCode"`
	ChargeName string `json:"chargeName" validate:"required"`
}

func (r ChargeRecord) Option() Option {
	return Option{Value: strconv.Itoa(r.ChargeID), Label: codeLabel(r.ChargeCode, r.ChargeName)}
}

type VesselRecord struct {
	VesselID   int    `json:"vesselId" validate:"gt=0"`
	VesselCode string `json:"vesselCode"`
	VesselName string `json:"vesselName" validate:"required"`
}

func (r VesselRecord) Option() Option {
	return Option{Value: strconv.Itoa(r.VesselID), Label: codeLabel(r.VesselCode, r.VesselName)}
}

type UnitRecord struct {
	UnitID   int    `json:"unitId" validate:"gt=0"`
	UnitCode string `json:"unitCode" validate:"required"`
	UnitName string `json:"unitName"`
}

func (r UnitRecord) Option() Option {
	return Option{Value: strconv.Itoa(r.UnitID), Label: codeLabel(r.UnitCode, r.UnitName)}
}

// JobRefRecord is the trimmed job row used for job pickers and the job list.
type JobRefRecord struct {
	JobID     int    `json:"jobId" validate:"gt=0"`
	JobNumber string `json:"jobNumber" validate:"required"`
	JobDate   string `json:"jobDate"`
}

func (r JobRefRecord) Option() Option {
	label := r.JobNumber
	if len(r.JobDate) >= 10 {
		label += " (" + r.JobDate[:10] + ")"
	}
	return Option{Value: strconv.Itoa(r.JobID), Label: label}
}
