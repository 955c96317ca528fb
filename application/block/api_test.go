package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wafer "github.com/wafer-dev/wafer-sdk"
	"github.com/wafer-dev/wafer-sdk/domain/entities"
)

type namedBlock struct{ name string }

func (b namedBlock) Info() entities.BlockInfo {
	return entities.BlockInfo{
		Name:         b.name,
		Version:      "1.0.0",
		Interface:    "test",
		InstanceMode: entities.InstanceModePerNode,
	}
}

func (namedBlock) Handle(_ *wafer.Context, msg *entities.Message) entities.Result {
	return msg.Cont()
}

func TestRegister_FirstWins(t *testing.T) {
	Register(namedBlock{name: "first"})
	Register(namedBlock{name: "second"})

	d := registered()
	require.NotNil(t, d)
	assert.Equal(t, "first", d.block.Info().Name)
}
