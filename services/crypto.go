package services

import (
	wafer "github.com/wafer-dev/wafer-sdk"
	"github.com/wafer-dev/wafer-sdk/domain/entities"
)

// CryptoClient delegates hashing and signing to the host, which holds the
// key material. The guest never sees raw keys.
type CryptoClient struct {
	ctx *wafer.Context
}

// NewCryptoClient creates a crypto client bound to the given context.
func NewCryptoClient(ctx *wafer.Context) *CryptoClient {
	return &CryptoClient{ctx: ctx}
}

// Hash computes a host-side hash of data and returns its encoded form.
func (c *CryptoClient) Hash(data []byte) (string, error) {
	msg := entities.NewMessage("svc.crypto.hash", data)

	resp, werr := call(c.ctx, msg)
	if werr != nil {
		return "", werr
	}
	return string(resp.Data), nil
}

// CompareHash checks data against a previously computed hash.
func (c *CryptoClient) CompareHash(data []byte, hash string) (bool, error) {
	msg := entities.NewMessage("svc.crypto.compare_hash", data)
	msg.SetMeta("hash", hash)

	resp, werr := call(c.ctx, msg)
	if werr != nil {
		return false, werr
	}
	return string(resp.Data) == "true", nil
}

// Sign produces a host-side signature over data using the named key.
func (c *CryptoClient) Sign(keyID string, data []byte) ([]byte, error) {
	msg := entities.NewMessage("svc.crypto.sign", data)
	msg.SetMeta("key_id", keyID)

	resp, werr := call(c.ctx, msg)
	if werr != nil {
		return nil, werr
	}
	return resp.Data, nil
}

// Verify checks a signature over data using the named key.
func (c *CryptoClient) Verify(keyID string, data, signature []byte) (bool, error) {
	msg := entities.NewMessage("svc.crypto.verify", data)
	msg.SetMeta("key_id", keyID)
	msg.SetMeta("signature", string(signature))

	resp, werr := call(c.ctx, msg)
	if werr != nil {
		return false, werr
	}
	return string(resp.Data) == "true", nil
}
