package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestIndexHandler(t *testing.T) {
	api := newTestMiddlewareHandler()
	w := httptest.NewRecorder()
	api.Index(w, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/status", w.Header().Get("Location"))
}

func TestStatusHandler(t *testing.T) {
	api := newTestMiddlewareHandler()
	w := httptest.NewRecorder()
	api.Status(w, newTestRequest(http.MethodGet, "/status", nil), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "test-request-id", body["requestid"])
	assert.Contains(t, body["status"], "up & running since")
}

func TestGetConfigsHandler(t *testing.T) {
	api := newTestMiddlewareHandler()
	w := httptest.NewRecorder()
	api.GetConfigs(w, newTestRequest(http.MethodGet, "/ops/configs", nil), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Contains(t, body, "configs")
}

func TestGetAuditTrailHandler(t *testing.T) {
	audit := &MockAuditStorage{}
	now := time.Date(2023, 7, 1, 20, 19, 10, 0, time.UTC)
	require.NoError(t, audit.Save(context.Background(), BookEvent{Action: ActionCreate, BookID: 1, Success: true, At: now}))
	require.NoError(t, audit.Save(context.Background(), BookEvent{Action: ActionDelete, BookID: 1, Success: true, At: now}))

	config := &Config{Cache: CacheConfig{AllBooksKey: "allBooks", TTL: 5 * time.Minute}}
	clock := NewMockClocker()
	bs := NewBookService(zap.NewNop(), config, clock, &MockBookStorage{}, NewMemoryBookCache(), &MockQueuer{})
	api := NewAPIHandler(zap.NewNop(), config, &Statistics{started: time.Now()}, clock, NewMockUIDHandler("test-request-id"), bs, audit)

	w := httptest.NewRecorder()
	api.GetAuditTrail(w, newTestRequest(http.MethodGet, "/ops/audit?limit=1", nil), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w.Body)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Total)
	assert.Equal(t, 1, *resp.Total)

	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var records []AuditRecord
	require.NoError(t, json.Unmarshal(raw, &records))
	require.Len(t, records, 1)
	assert.Equal(t, ActionDelete, records[0].Action, "records must come back newest first")
}

func TestGetAuditTrailHandler_StorageFault(t *testing.T) {
	audit := &MockAuditStorage{Err: errors.New("store unavailable")}
	config := &Config{Cache: CacheConfig{AllBooksKey: "allBooks", TTL: 5 * time.Minute}}
	clock := NewMockClocker()
	bs := NewBookService(zap.NewNop(), config, clock, &MockBookStorage{}, NewMemoryBookCache(), &MockQueuer{})
	api := NewAPIHandler(zap.NewNop(), config, &Statistics{started: time.Now()}, clock, NewMockUIDHandler("test-request-id"), bs, audit)

	w := httptest.NewRecorder()
	api.GetAuditTrail(w, newTestRequest(http.MethodGet, "/ops/audit", nil), nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeEnvelope(t, w.Body)
	assert.False(t, resp.Success)
}

func TestNotFoundHandler(t *testing.T) {
	api := newTestMiddlewareHandler()
	w := httptest.NewRecorder()
	api.NotFound().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeEnvelope(t, w.Body)
	assert.False(t, resp.Success)
	assert.Equal(t, "route does not exist", resp.Message)
}
