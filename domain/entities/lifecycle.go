package entities

// LifecycleType marks a phase transition the host announces to a block.
type LifecycleType string

const (
	LifecycleInit  LifecycleType = "init"
	LifecycleStart LifecycleType = "start"
	LifecycleStop  LifecycleType = "stop"
)

// LifecycleEvent is sent by the host at well-defined transition points and
// consumed once. The payload is opaque to the SDK.
type LifecycleEvent struct {
	Type LifecycleType
	Data []byte
}

// IsKnown reports whether the event type is one the SDK understands. Unknown
// types are acknowledged as success by the dispatcher rather than rejected.
func (t LifecycleType) IsKnown() bool {
	switch t {
	case LifecycleInit, LifecycleStart, LifecycleStop:
		return true
	}
	return false
}
