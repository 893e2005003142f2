package models

// Criticality levels, lowest to highest.
const (
	CriticalityLow      = "low"
	CriticalityMedium   = "medium"
	CriticalityHigh     = "high"
	CriticalityCritical = "critical"
)

// Defaults applied when a field is omitted on the wire.
const (
	DefaultTier        = CriticalityMedium
	DefaultServiceType = "service"
	DefaultProtocol    = "https"
	DefaultCriticality = CriticalityMedium
)

var (
	Criticalities = []string{"critical", "high", "medium", "low"}
	ServiceTypes  = []string{"service", "database", "queue", "cache", "external", "cdn", "storage"}
	Protocols     = []string{"http", "https", "grpc", "tcp", "udp", "amqp", "redis", "postgres", "mysql", "custom"}
	AuthMethods   = []string{"none", "api_key", "oauth2", "mtls", "jwt", "basic", "custom"}
)

var criticalityOrder = map[string]int{
	CriticalityLow:      0,
	CriticalityMedium:   1,
	CriticalityHigh:     2,
	CriticalityCritical: 3,
}

// CriticalityRank returns the ordering of a criticality value for worst-case
// aggregation. Unknown values rank below "low".
func CriticalityRank(c string) int {
	rank, ok := criticalityOrder[c]
	if !ok {
		return -1
	}
	return rank
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func IsCriticality(v string) bool { return contains(Criticalities, v) }
func IsServiceType(v string) bool { return contains(ServiceTypes, v) }
func IsProtocol(v string) bool    { return contains(Protocols, v) }
func IsAuthMethod(v string) bool  { return contains(AuthMethods, v) }
