package log_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wafer-dev/wafer-sdk/blocktest"
	"github.com/wafer-dev/wafer-sdk/log"
)

type recordPayload struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Attrs     []struct {
		Key   string `json:"key"`
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"attrs"`
}

func TestChannelHandler_SendsRecord(t *testing.T) {
	ch := blocktest.NewFakeChannel()
	logger := slog.New(log.NewHandler(ch))

	logger.Info("request served", "path", "/users", "status", 200)

	sent := ch.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "svc.logger.info", sent[0].Kind)
	assert.Equal(t, "info", sent[0].GetMeta("level"))

	var rec recordPayload
	require.NoError(t, json.Unmarshal(sent[0].Data, &rec))
	assert.Equal(t, "request served", rec.Message)
	assert.Equal(t, "info", rec.Level)
	require.Len(t, rec.Attrs, 2)
	assert.Equal(t, "path", rec.Attrs[0].Key)
	assert.Equal(t, "string", rec.Attrs[0].Type)
	assert.Equal(t, "/users", rec.Attrs[0].Value)
	assert.Equal(t, "status", rec.Attrs[1].Key)
	assert.Equal(t, "int64", rec.Attrs[1].Type)
	assert.Equal(t, "200", rec.Attrs[1].Value)
}

func TestChannelHandler_LevelFilter(t *testing.T) {
	ch := blocktest.NewFakeChannel()
	logger := slog.New(log.NewHandler(ch, log.WithLevel(slog.LevelWarn)))

	logger.Debug("noisy")
	logger.Info("still noisy")
	logger.Warn("something off")
	logger.Error("broken")

	kinds := ch.SentKinds()
	assert.Equal(t, []string{"svc.logger.warn", "svc.logger.error"}, kinds)
}

func TestChannelHandler_WithAttrs(t *testing.T) {
	ch := blocktest.NewFakeChannel()
	logger := slog.New(log.NewHandler(ch)).With("block", "gateway")

	logger.Info("started")

	sent := ch.Sent()
	require.Len(t, sent, 1)

	var rec recordPayload
	require.NoError(t, json.Unmarshal(sent[0].Data, &rec))
	require.Len(t, rec.Attrs, 1)
	assert.Equal(t, "block", rec.Attrs[0].Key)
	assert.Equal(t, "gateway", rec.Attrs[0].Value)
}

func TestChannelHandler_WithGroup(t *testing.T) {
	ch := blocktest.NewFakeChannel()
	logger := slog.New(log.NewHandler(ch)).WithGroup("req")

	logger.Info("handled", "id", "r-7")

	sent := ch.Sent()
	require.Len(t, sent, 1)

	var rec recordPayload
	require.NoError(t, json.Unmarshal(sent[0].Data, &rec))
	require.Len(t, rec.Attrs, 1)
	assert.Equal(t, "req.id", rec.Attrs[0].Key)
}

func TestChannelHandler_ErrorAttr(t *testing.T) {
	ch := blocktest.NewFakeChannel()
	logger := slog.New(log.NewHandler(ch))

	logger.Error("lookup failed", "error", errors.New("connection refused"))

	sent := ch.Sent()
	require.Len(t, sent, 1)

	var rec recordPayload
	require.NoError(t, json.Unmarshal(sent[0].Data, &rec))
	require.Len(t, rec.Attrs, 1)
	assert.Equal(t, "error", rec.Attrs[0].Type)
	assert.Equal(t, "connection refused", rec.Attrs[0].Value)
}
