package services

import (
	wafer "github.com/wafer-dev/wafer-sdk"
	"github.com/wafer-dev/wafer-sdk/domain/entities"
)

// ConfigClient reads and writes key-value configuration held by the host.
type ConfigClient struct {
	ctx *wafer.Context
}

// NewConfigClient creates a config client bound to the given context.
func NewConfigClient(ctx *wafer.Context) *ConfigClient {
	return &ConfigClient{ctx: ctx}
}

// Get retrieves a config value by key. The second return is false when the
// key is absent or the lookup failed.
func (c *ConfigClient) Get(key string) (string, bool) {
	msg := entities.NewMessage("svc.config.get", nil)
	msg.SetMeta("key", key)

	resp, werr := call(c.ctx, msg)
	if werr != nil {
		return "", false
	}
	return string(resp.Data), true
}

// GetDefault retrieves a config value, falling back to defaultValue when the
// key is absent.
func (c *ConfigClient) GetDefault(key, defaultValue string) string {
	if v, ok := c.Get(key); ok {
		return v
	}
	return defaultValue
}

// Set stores a config key-value pair.
func (c *ConfigClient) Set(key, value string) error {
	msg := entities.NewMessage("svc.config.set", []byte(value))
	msg.SetMeta("key", key)

	if werr := callAck(c.ctx, msg); werr != nil {
		return werr
	}
	return nil
}
