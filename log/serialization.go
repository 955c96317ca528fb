package log

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// recordWire is the JSON payload of one log message sent to the host.
type recordWire struct {
	Timestamp time.Time  `json:"timestamp"`
	Level     string     `json:"level"`
	Message   string     `json:"message"`
	Attrs     []attrWire `json:"attrs,omitempty"`
}

// attrWire is a single attribute in string form. Type tells the host how to
// interpret Value.
type attrWire struct {
	Key   string `json:"key"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

func encodeRecord(rec slog.Record, bound []slog.Attr, group string) ([]byte, error) {
	wire := recordWire{
		Timestamp: rec.Time,
		Level:     levelName(rec.Level),
		Message:   rec.Message,
	}
	for _, attr := range bound {
		wire.Attrs = append(wire.Attrs, toAttrWire(attr, group))
	}
	rec.Attrs(func(attr slog.Attr) bool {
		wire.Attrs = append(wire.Attrs, toAttrWire(attr, group))
		return true
	})
	return json.Marshal(wire)
}

func toAttrWire(attr slog.Attr, group string) attrWire {
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	wire := attrWire{Key: key}
	attr.Value = attr.Value.Resolve()

	switch attr.Value.Kind() {
	case slog.KindString:
		wire.Type = "string"
		wire.Value = attr.Value.String()
	case slog.KindInt64:
		wire.Type = "int64"
		wire.Value = fmt.Sprintf("%d", attr.Value.Int64())
	case slog.KindUint64:
		wire.Type = "uint64"
		wire.Value = fmt.Sprintf("%d", attr.Value.Uint64())
	case slog.KindBool:
		wire.Type = "bool"
		wire.Value = fmt.Sprintf("%t", attr.Value.Bool())
	case slog.KindFloat64:
		wire.Type = "float64"
		wire.Value = fmt.Sprintf("%g", attr.Value.Float64())
	case slog.KindTime:
		wire.Type = "time"
		wire.Value = attr.Value.Time().Format(time.RFC3339Nano)
	case slog.KindDuration:
		wire.Type = "duration"
		wire.Value = attr.Value.Duration().String()
	case slog.KindAny:
		v := attr.Value.Any()
		if v == nil {
			wire.Type = "any"
			wire.Value = "<nil>"
			break
		}
		if err, ok := v.(error); ok {
			wire.Type = "error"
			wire.Value = err.Error()
			break
		}
		if data, err := json.Marshal(v); err == nil {
			wire.Type = "json"
			wire.Value = string(data)
		} else {
			wire.Type = "any"
			wire.Value = fmt.Sprintf("%v", v)
		}
	default:
		wire.Type = "any"
		wire.Value = fmt.Sprintf("%v", attr.Value.Any())
	}
	return wire
}
