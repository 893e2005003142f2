package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCriticalityRank(t *testing.T) {
	assert.Less(t, CriticalityRank(CriticalityLow), CriticalityRank(CriticalityMedium))
	assert.Less(t, CriticalityRank(CriticalityMedium), CriticalityRank(CriticalityHigh))
	assert.Less(t, CriticalityRank(CriticalityHigh), CriticalityRank(CriticalityCritical))

	// Unknown values sort below everything legitimate.
	assert.Less(t, CriticalityRank("severe"), CriticalityRank(CriticalityLow))
	assert.Less(t, CriticalityRank(""), CriticalityRank(CriticalityLow))
}

func TestEnumMembership(t *testing.T) {
	assert.True(t, IsCriticality("critical"))
	assert.False(t, IsCriticality("severe"))

	assert.True(t, IsServiceType(DefaultServiceType))
	assert.False(t, IsServiceType("microservice"))

	assert.True(t, IsProtocol(DefaultProtocol))
	assert.False(t, IsProtocol("ftp"))

	assert.True(t, IsAuthMethod("mtls"))
	assert.False(t, IsAuthMethod("kerberos"))
}
