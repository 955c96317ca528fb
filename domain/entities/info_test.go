package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInstanceMode(t *testing.T) {
	assert.Equal(t, InstanceModeSingleton, ParseInstanceMode("singleton"))
	assert.Equal(t, InstanceModePerChain, ParseInstanceMode("per-chain"))
	assert.Equal(t, InstanceModePerExecution, ParseInstanceMode("per-execution"))
	assert.Equal(t, InstanceModePerNode, ParseInstanceMode("per-node"))

	// Unknown tokens fall back rather than fail.
	assert.Equal(t, InstanceModePerNode, ParseInstanceMode("per-galaxy"))
	assert.Equal(t, InstanceModePerNode, ParseInstanceMode(""))
}

func TestBlockInfo_Validate(t *testing.T) {
	valid := BlockInfo{
		Name:         "auth-guard",
		Version:      "1.2.0",
		Interface:    "http",
		InstanceMode: InstanceModeSingleton,
	}
	assert.NoError(t, valid.Validate())

	missing := valid
	missing.Version = ""
	assert.Error(t, missing.Validate())

	noMode := valid
	noMode.InstanceMode = ""
	assert.Error(t, noMode.Validate())
}

func TestBlockInfo_Allowed(t *testing.T) {
	info := BlockInfo{InstanceMode: InstanceModeSingleton}
	assert.Equal(t, []InstanceMode{InstanceModeSingleton}, info.Allowed())

	info.AllowedModes = []InstanceMode{InstanceModePerNode, InstanceModeSingleton}
	assert.Equal(t, info.AllowedModes, info.Allowed())
}

func TestLifecycleType_IsKnown(t *testing.T) {
	assert.True(t, LifecycleInit.IsKnown())
	assert.True(t, LifecycleStart.IsKnown())
	assert.True(t, LifecycleStop.IsKnown())
	assert.False(t, LifecycleType("drain").IsKnown())
}
