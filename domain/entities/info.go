package entities

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

// InstanceMode declares how many concurrently-live instances of a block the
// host may create. Purely declarative; the guest does not enforce it.
type InstanceMode string

const (
	InstanceModePerNode      InstanceMode = "per-node"
	InstanceModeSingleton    InstanceMode = "singleton"
	InstanceModePerChain     InstanceMode = "per-chain"
	InstanceModePerExecution InstanceMode = "per-execution"
)

// ParseInstanceMode maps a wire token to an InstanceMode. Unknown tokens fall
// back to per-node so newer hosts can introduce modes without breaking older
// guests, mirroring the action-tag policy.
func ParseInstanceMode(s string) InstanceMode {
	switch InstanceMode(s) {
	case InstanceModeSingleton, InstanceModePerChain, InstanceModePerExecution:
		return InstanceMode(s)
	default:
		return InstanceModePerNode
	}
}

// BlockInfo is the static identity record a block reports to the host. It is
// produced once per describe call and has no mutable state.
type BlockInfo struct {
	Name         string         `validate:"required"`
	Version      string         `validate:"required"`
	Interface    string         `validate:"required"`
	Summary      string
	InstanceMode InstanceMode   `validate:"required"`
	AllowedModes []InstanceMode `validate:"dive,required"`
}

var (
	validateOnce sync.Once
	infoValidate *validator.Validate
)

// Validate checks that the identity record is complete enough to publish.
func (i BlockInfo) Validate() error {
	validateOnce.Do(func() {
		infoValidate = validator.New(validator.WithRequiredStructEnabled())
	})
	if err := infoValidate.Struct(i); err != nil {
		return fmt.Errorf("invalid block info: %w", err)
	}
	return nil
}

// Allowed returns the declared allowed modes, defaulting to the preferred
// instance mode when none were declared.
func (i BlockInfo) Allowed() []InstanceMode {
	if len(i.AllowedModes) == 0 {
		return []InstanceMode{i.InstanceMode}
	}
	return i.AllowedModes
}
