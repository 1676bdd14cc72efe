package domain

type ShippingMode string

const (
	ModeSea  ShippingMode = "SEA"
	ModeAir  ShippingMode = "AIR"
	ModeLand ShippingMode = "LAND"
)

type ContainerLoad string

const (
	LoadFCL ContainerLoad = "FCL"
	LoadLCL ContainerLoad = "LCL"
)

type JobStatus string

const (
	JobOpen      JobStatus = "OPEN"
	JobClosed    JobStatus = "CLOSED"
	JobCancelled JobStatus = "CANCELLED"
)

type BLType string

const (
	BLMaster BLType = "MASTER"
	BLHouse  BLType = "HOUSE"
)

type FreightTerms string

const (
	FreightPrepaid FreightTerms = "PREPAID"
	FreightCollect FreightTerms = "COLLECT"
)

// ShippingModes lists the accepted shipping modes in display order.
var ShippingModes = []string{string(ModeSea), string(ModeAir), string(ModeLand)}

// JobStatuses lists the accepted job statuses in display order.
var JobStatuses = []string{string(JobOpen), string(JobClosed), string(JobCancelled)}
