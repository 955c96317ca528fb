package services

import (
	wafer "github.com/wafer-dev/wafer-sdk"
	"github.com/wafer-dev/wafer-sdk/domain/entities"
)

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key         string `json:"key"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

// Object is a stored object's content together with its metadata.
type Object struct {
	Data []byte
	Info ObjectInfo
}

// StorageClient accesses the host's object storage service.
type StorageClient struct {
	ctx *wafer.Context
}

// NewStorageClient creates a storage client bound to the given context.
func NewStorageClient(ctx *wafer.Context) *StorageClient {
	return &StorageClient{ctx: ctx}
}

// Put stores an object in the given bucket under the given key.
func (c *StorageClient) Put(bucket, key string, data []byte, contentType string) error {
	msg := entities.NewMessage("svc.storage.put", data)
	msg.SetMeta("bucket", bucket)
	msg.SetMeta("key", key)
	if contentType != "" {
		msg.SetMeta("content_type", contentType)
	}

	if werr := callAck(c.ctx, msg); werr != nil {
		return werr
	}
	return nil
}

// Get retrieves an object from the given bucket and key.
func (c *StorageClient) Get(bucket, key string) (Object, error) {
	msg := entities.NewMessage("svc.storage.get", nil)
	msg.SetMeta("bucket", bucket)
	msg.SetMeta("key", key)

	resp, werr := call(c.ctx, msg)
	if werr != nil {
		return Object{}, werr
	}

	return Object{
		Data: resp.Data,
		Info: ObjectInfo{
			Key:         key,
			Size:        int64(len(resp.Data)),
			ContentType: resp.GetMeta("content_type"),
		},
	}, nil
}

// Delete removes an object from the given bucket and key.
func (c *StorageClient) Delete(bucket, key string) error {
	msg := entities.NewMessage("svc.storage.delete", nil)
	msg.SetMeta("bucket", bucket)
	msg.SetMeta("key", key)

	if werr := callAck(c.ctx, msg); werr != nil {
		return werr
	}
	return nil
}
