package entities

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Well-known metadata keys set by the host on inbound messages and read by
// the host on responses. These mirror the host runtime's meta conventions.
const (
	MetaReqAction      = "req.action"
	MetaReqResource    = "req.resource"
	MetaReqParamPrefix = "req.param."
	MetaReqQueryPrefix = "req.query."
	MetaReqClientIP    = "req.client.ip"
	MetaReqContentType = "req.content_type"

	MetaAuthUserID    = "auth.user_id"
	MetaAuthUserEmail = "auth.user_email"
	MetaAuthUserRoles = "auth.user_roles"

	MetaRespStatus       = "resp.status"
	MetaRespContentType  = "resp.content_type"
	MetaRespHeaderPrefix = "resp.header."
	MetaRespCookiePrefix = "resp.set_cookie."
)

// Message is one unit of work flowing through a processing pipeline: an
// operation identifier, an opaque payload, and string metadata. Metadata keys
// are unique; setting an existing key overwrites its value.
type Message struct {
	Kind string
	Data []byte
	Meta map[string]string
}

// NewMessage creates a message with the given kind and payload.
func NewMessage(kind string, data []byte) Message {
	return Message{Kind: kind, Data: data}
}

// GetMeta returns the value for key, or the empty string if absent.
func (m *Message) GetMeta(key string) string {
	return m.Meta[key]
}

// SetMeta sets a metadata key, overwriting any previous value.
func (m *Message) SetMeta(key, value string) {
	if m.Meta == nil {
		m.Meta = make(map[string]string)
	}
	m.Meta[key] = value
}

// MetaMap returns a copy of the metadata mapping.
func (m *Message) MetaMap() map[string]string {
	out := make(map[string]string, len(m.Meta))
	for k, v := range m.Meta {
		out[k] = v
	}
	return out
}

// Bind unmarshals the JSON payload into v.
func (m *Message) Bind(v any) error {
	return json.Unmarshal(m.Data, v)
}

// SetJSON replaces the payload with the JSON encoding of v.
func (m *Message) SetJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.Data = data
	return nil
}

// Var returns a path parameter set by the host router.
func (m *Message) Var(name string) string {
	return m.GetMeta(MetaReqParamPrefix + name)
}

// Query returns a query-string parameter.
func (m *Message) Query(name string) string {
	return m.GetMeta(MetaReqQueryPrefix + name)
}

// Header returns an inbound HTTP header value.
func (m *Message) Header(name string) string {
	return m.GetMeta("http.header." + name)
}

// ActionName returns the request action (retrieve, create, ...).
func (m *Message) ActionName() string {
	return m.GetMeta(MetaReqAction)
}

// Path returns the request resource path.
func (m *Message) Path() string {
	return m.GetMeta(MetaReqResource)
}

// ContentType returns the inbound content type.
func (m *Message) ContentType() string {
	return m.GetMeta(MetaReqContentType)
}

// UserID returns the authenticated user ID, if any.
func (m *Message) UserID() string {
	return m.GetMeta(MetaAuthUserID)
}

// UserEmail returns the authenticated user email, if any.
func (m *Message) UserEmail() string {
	return m.GetMeta(MetaAuthUserEmail)
}

// UserRoles returns the authenticated user's roles.
func (m *Message) UserRoles() []string {
	roles := m.GetMeta(MetaAuthUserRoles)
	if roles == "" {
		return nil
	}
	return strings.Split(roles, ",")
}

// IsAdmin reports whether the authenticated user has the admin role.
func (m *Message) IsAdmin() bool {
	for _, r := range m.UserRoles() {
		if r == "admin" {
			return true
		}
	}
	return false
}

// RemoteAddr returns the client IP recorded by the host.
func (m *Message) RemoteAddr() string {
	return m.GetMeta(MetaReqClientIP)
}

// Cookie returns the named cookie from the inbound Cookie header.
func (m *Message) Cookie(name string) string {
	raw := m.GetMeta("http.header.Cookie")
	if raw == "" {
		return ""
	}
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if eq := strings.IndexByte(part, '='); eq >= 0 && part[:eq] == name {
			return part[eq+1:]
		}
	}
	return ""
}

// QueryParams returns all query-string parameters as a map.
func (m *Message) QueryParams() map[string]string {
	out := make(map[string]string)
	for k, v := range m.Meta {
		if strings.HasPrefix(k, MetaReqQueryPrefix) {
			out[strings.TrimPrefix(k, MetaReqQueryPrefix)] = v
		}
	}
	return out
}

// PaginationParams parses the page and page_size query parameters, applying
// defaultPageSize when page_size is absent or out of the 1..100 range.
// Returns (page, pageSize, offset).
func (m *Message) PaginationParams(defaultPageSize int) (int, int, int) {
	page := 1
	if p, err := strconv.Atoi(m.Query("page")); err == nil && p > 0 {
		page = p
	}
	pageSize := defaultPageSize
	if ps, err := strconv.Atoi(m.Query("page_size")); err == nil && ps > 0 && ps <= 100 {
		pageSize = ps
	}
	return page, pageSize, (page - 1) * pageSize
}

// Response is the payload returned to the original caller when an outcome
// short-circuits the pipeline.
type Response struct {
	Data []byte
	Meta map[string]string
}

// SetMeta sets a metadata key on the response, overwriting any previous value.
func (r *Response) SetMeta(key, value string) {
	if r.Meta == nil {
		r.Meta = make(map[string]string)
	}
	r.Meta[key] = value
}

// GetMeta returns the value for key, or the empty string if absent.
func (r *Response) GetMeta(key string) string {
	return r.Meta[key]
}
