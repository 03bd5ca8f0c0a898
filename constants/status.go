package constants

// User roles
const (
	RoleMember = 0
	RoleAdmin  = 1
)

// User status
const (
	UserStatusActive   = 1
	UserStatusInactive = 0
)

// Cache keys
const (
	SiteCacheKeyPrefix    = "site:"
	HistoryCacheKeyPrefix = "attendance_history:"
	ScanGateKeyPrefix     = "scan_gate:"
)

const (
	HistoryDefaultLimit = 50
	UnknownSiteName     = "Unknown Site"
)
