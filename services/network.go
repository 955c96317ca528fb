package services

import (
	"encoding/json"
	"strconv"

	wafer "github.com/wafer-dev/wafer-sdk"
	"github.com/wafer-dev/wafer-sdk/domain/entities"
)

// Request is an outbound HTTP request proxied through the host.
type Request struct {
	Method  string            `json:"method"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    []byte            `json:"body,omitempty"`
}

// HTTPResponse is the host's reply to a proxied request.
type HTTPResponse struct {
	Status  int               `json:"status"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    []byte            `json:"body,omitempty"`
}

// OK reports whether the status is in the 2xx range.
func (r HTTPResponse) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Bind unmarshals the response body into v.
func (r HTTPResponse) Bind(v any) error {
	return json.Unmarshal(r.Body, v)
}

// NetworkClient performs outbound HTTP through the host's egress proxy. The
// host enforces its own allowlist; a blocked destination surfaces as a
// permission_denied error.
type NetworkClient struct {
	ctx *wafer.Context
}

// NewNetworkClient creates a network client bound to the given context.
func NewNetworkClient(ctx *wafer.Context) *NetworkClient {
	return &NetworkClient{ctx: ctx}
}

// Do performs one proxied request.
func (c *NetworkClient) Do(req Request) (HTTPResponse, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return HTTPResponse{}, entities.NewError(entities.CodeEncodeError, err.Error())
	}

	msg := entities.NewMessage("svc.network.do", data)
	msg.SetMeta("method", req.Method)
	msg.SetMeta("url", req.URL)

	resp, werr := call(c.ctx, msg)
	if werr != nil {
		return HTTPResponse{}, werr
	}

	var out HTTPResponse
	if werr := decodeInto(resp, &out); werr != nil {
		return HTTPResponse{}, werr
	}
	if out.Status == 0 {
		if s, err := strconv.Atoi(resp.GetMeta("status")); err == nil {
			out.Status = s
		}
	}
	return out, nil
}

// Get performs a proxied GET request.
func (c *NetworkClient) Get(url string) (HTTPResponse, error) {
	return c.Do(Request{Method: "GET", URL: url})
}

// PostJSON performs a proxied POST with a JSON-encoded body.
func (c *NetworkClient) PostJSON(url string, body any) (HTTPResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return HTTPResponse{}, entities.NewError(entities.CodeEncodeError, err.Error())
	}
	return c.Do(Request{
		Method:  "POST",
		URL:     url,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    data,
	})
}
