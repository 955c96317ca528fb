package wafer

import (
	"encoding/json"
	"strconv"

	"github.com/wafer-dev/wafer-sdk/domain/entities"
)

// Respond builds a Respond outcome with a status code, body, and content
// type.
func Respond(msg *Message, status int, data []byte, contentType string) Result {
	resp := Response{Data: data}
	resp.SetMeta(MetaRespStatus, strconv.Itoa(status))
	if contentType != "" {
		resp.SetMeta(MetaRespContentType, contentType)
	}
	return msg.RespondWith(resp)
}

// JSONRespond serializes v as JSON and responds with the given status code.
func JSONRespond(msg *Message, status int, v any) Result {
	body, err := json.Marshal(v)
	if err != nil {
		return Error(msg, 500, CodeInternal, err.Error())
	}
	return Respond(msg, status, body, "application/json")
}

// Error builds an Error outcome with a status code, error code, and message.
func Error(msg *Message, status int, code, text string) Result {
	werr := entities.NewError(code, text).WithMeta(MetaRespStatus, strconv.Itoa(status))
	return msg.Err(werr)
}

// ErrBadRequest returns a 400 Bad Request error outcome.
func ErrBadRequest(msg *Message, text string) Result {
	return Error(msg, 400, CodeInvalidArgument, text)
}

// ErrUnauthorized returns a 401 Unauthorized error outcome.
func ErrUnauthorized(msg *Message, text string) Result {
	return Error(msg, 401, CodeUnauthenticated, text)
}

// ErrForbidden returns a 403 Forbidden error outcome.
func ErrForbidden(msg *Message, text string) Result {
	return Error(msg, 403, CodePermissionDenied, text)
}

// ErrNotFound returns a 404 Not Found error outcome.
func ErrNotFound(msg *Message, text string) Result {
	return Error(msg, 404, CodeNotFound, text)
}

// ErrConflict returns a 409 Conflict error outcome.
func ErrConflict(msg *Message, text string) Result {
	return Error(msg, 409, CodeAlreadyExists, text)
}

// ErrValidation returns a 422 Unprocessable Entity error outcome.
func ErrValidation(msg *Message, text string) Result {
	return Error(msg, 422, CodeInvalidArgument, text)
}

// ErrInternal returns a 500 Internal Server Error outcome.
func ErrInternal(msg *Message, text string) Result {
	return Error(msg, 500, CodeInternal, text)
}

// ResponseBuilder assembles a response with headers, cookies, and a status
// code before finalizing it into a Respond outcome.
//
//	result := wafer.NewResponse(msg, 200).
//	    SetHeader("X-Request-Id", "abc123").
//	    SetCookie("session=xyz; HttpOnly; Path=/").
//	    JSON(payload)
type ResponseBuilder struct {
	msg         *Message
	meta        map[string]string
	cookieCount int
}

// NewResponse creates a response builder with the given message and status.
func NewResponse(msg *Message, status int) *ResponseBuilder {
	return &ResponseBuilder{
		msg:  msg,
		meta: map[string]string{MetaRespStatus: strconv.Itoa(status)},
	}
}

// SetHeader adds a response header.
func (b *ResponseBuilder) SetHeader(key, value string) *ResponseBuilder {
	b.meta[MetaRespHeader+key] = value
	return b
}

// SetCookie adds a Set-Cookie header to the response.
func (b *ResponseBuilder) SetCookie(cookie string) *ResponseBuilder {
	b.meta[MetaRespCookie+strconv.Itoa(b.cookieCount)] = cookie
	b.cookieCount++
	return b
}

// JSON serializes v and finalizes the response as application/json.
func (b *ResponseBuilder) JSON(v any) Result {
	body, err := json.Marshal(v)
	if err != nil {
		return Error(b.msg, 500, CodeInternal, err.Error())
	}
	meta := b.finalizeMeta()
	meta[MetaRespContentType] = "application/json"
	return b.msg.RespondWith(Response{Data: body, Meta: meta})
}

// Body finalizes the response with a raw body and content type.
func (b *ResponseBuilder) Body(data []byte, contentType string) Result {
	meta := b.finalizeMeta()
	if contentType != "" {
		meta[MetaRespContentType] = contentType
	}
	return b.msg.RespondWith(Response{Data: data, Meta: meta})
}

// finalizeMeta snapshots the builder's metadata so the finalized response
// does not alias the builder's live map.
func (b *ResponseBuilder) finalizeMeta() map[string]string {
	meta := make(map[string]string, len(b.meta)+1)
	for k, v := range b.meta {
		meta[k] = v
	}
	return meta
}
