package domain

type DeviceStatus string

const (
	StatusFound    DeviceStatus = "Found"
	StatusNotFound DeviceStatus = "Not found in inventory"
)

type Compliance string

const (
	ComplianceYes           Compliance = "Yes"
	ComplianceNo            Compliance = "No"
	ComplianceNotApplicable Compliance = "N/A"
)

type DNSStatus string

const (
	DNSFound    DNSStatus = "Found in DNS"
	DNSNotFound DNSStatus = "Not found in DNS"
	DNSError    DNSStatus = "DNS lookup error"
)

// DeviceInfo is the inventory API's view of a device. Fields the API
// omitted are left empty.
type DeviceInfo struct {
	Hostname   string
	IP         string
	SysDescr   string
	Hardware   string
	OS         string
	Version    string
	LastPolled string
	Location   string
}

// DNSResult is the outcome of the DNS fallback. Message carries the
// resolution error text when Status is DNSError.
type DNSResult struct {
	IP      string
	Status  DNSStatus
	Message string
}

// Record is one fully classified workbook row.
//
// Invariants: DNS is non-nil exactly when Status is StatusNotFound, and
// Compliance is ComplianceNotApplicable exactly in that same case.
type Record struct {
	DeviceName       string
	QueriedHostname  string
	Info             *DeviceInfo
	ExpectedLocation string
	Compliance       Compliance
	Status           DeviceStatus
	DNS              *DNSResult
}
