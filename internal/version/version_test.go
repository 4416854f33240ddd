package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVersion(t *testing.T) {
	assert.Equal(t, Version, GetVersion())
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate())
}

func TestGetInfo(t *testing.T) {
	info := GetInfo()

	assert.Equal(t, Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
	assert.Contains(t, info.String(), "QueryDesk v"+Version)
}

func TestIsPrerelease(t *testing.T) {
	assert.False(t, IsPrerelease())
}
