package services

import (
	"encoding/json"
	"strconv"

	wafer "github.com/wafer-dev/wafer-sdk"
	"github.com/wafer-dev/wafer-sdk/domain/entities"
)

// Record is a single document in a collection. Data holds the document body
// as raw JSON.
type Record struct {
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}

// Bind unmarshals the record body into v.
func (r Record) Bind(v any) error {
	return json.Unmarshal(r.Data, v)
}

// RecordList is one page of a collection listing.
type RecordList struct {
	Records    []Record `json:"records"`
	TotalCount int64    `json:"total_count"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
}

// ListOptions narrows and pages a collection listing. Zero values are
// omitted from the request so the host applies its defaults.
type ListOptions struct {
	Filter   string
	Sort     string
	Page     int
	PageSize int
}

// DatabaseClient accesses the host's document database service.
type DatabaseClient struct {
	ctx *wafer.Context
}

// NewDatabaseClient creates a database client bound to the given context.
func NewDatabaseClient(ctx *wafer.Context) *DatabaseClient {
	return &DatabaseClient{ctx: ctx}
}

// Get retrieves one record by id.
func (c *DatabaseClient) Get(collection, id string) (Record, error) {
	msg := entities.NewMessage("svc.database.get", nil)
	msg.SetMeta("collection", collection)
	msg.SetMeta("id", id)

	resp, werr := call(c.ctx, msg)
	if werr != nil {
		return Record{}, werr
	}

	var rec Record
	if werr := decodeInto(resp, &rec); werr != nil {
		return Record{}, werr
	}
	return rec, nil
}

// List retrieves one page of records from a collection.
func (c *DatabaseClient) List(collection string, opts ListOptions) (RecordList, error) {
	msg := entities.NewMessage("svc.database.list", nil)
	msg.SetMeta("collection", collection)
	if opts.Filter != "" {
		msg.SetMeta("filter", opts.Filter)
	}
	if opts.Sort != "" {
		msg.SetMeta("sort", opts.Sort)
	}
	if opts.Page > 0 {
		msg.SetMeta("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		msg.SetMeta("page_size", strconv.Itoa(opts.PageSize))
	}

	resp, werr := call(c.ctx, msg)
	if werr != nil {
		return RecordList{}, werr
	}

	var list RecordList
	if werr := decodeInto(resp, &list); werr != nil {
		return RecordList{}, werr
	}
	return list, nil
}

// Create inserts a new record and returns it with its host-assigned id.
func (c *DatabaseClient) Create(collection string, body any) (Record, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return Record{}, entities.NewError(entities.CodeEncodeError, err.Error())
	}

	msg := entities.NewMessage("svc.database.create", data)
	msg.SetMeta("collection", collection)

	resp, werr := call(c.ctx, msg)
	if werr != nil {
		return Record{}, werr
	}

	var rec Record
	if werr := decodeInto(resp, &rec); werr != nil {
		return Record{}, werr
	}
	return rec, nil
}

// Update replaces the body of an existing record.
func (c *DatabaseClient) Update(collection, id string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return entities.NewError(entities.CodeEncodeError, err.Error())
	}

	msg := entities.NewMessage("svc.database.update", data)
	msg.SetMeta("collection", collection)
	msg.SetMeta("id", id)

	if werr := callAck(c.ctx, msg); werr != nil {
		return werr
	}
	return nil
}

// Delete removes a record by id.
func (c *DatabaseClient) Delete(collection, id string) error {
	msg := entities.NewMessage("svc.database.delete", nil)
	msg.SetMeta("collection", collection)
	msg.SetMeta("id", id)

	if werr := callAck(c.ctx, msg); werr != nil {
		return werr
	}
	return nil
}
