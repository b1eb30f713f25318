package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appDocument "github.com/geniehq/genie-search/pkg/app/document"
	domain "github.com/geniehq/genie-search/pkg/domain/document"
	domainerrors "github.com/geniehq/genie-search/pkg/domain/errors"
	"github.com/geniehq/genie-search/pkg/domain/progress"
)

type mockFinder struct {
	mock.Mock
}

func (m *mockFinder) FindAll(ctx context.Context) ([]domain.Document, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	docs, _ := args.Get(0).([]domain.Document)
	return docs, args.Error(1)
}

type mockSyncer struct {
	mock.Mock
}

func (m *mockSyncer) SyncOnce(ctx context.Context) (appDocument.SyncResult, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).(appDocument.SyncResult)
	return result, args.Error(1)
}

type mockSearcher struct {
	mock.Mock
}

func (m *mockSearcher) Search(ctx context.Context, query string, limit int, threshold float64) ([]domain.ScoredDocument, error) {
	args := m.Called(ctx, query, limit, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	results, _ := args.Get(0).([]domain.ScoredDocument)
	return results, args.Error(1)
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	return logger
}

func newTestApp(method, path string, handler Handler) *fiber.App {
	app := fiber.New()
	app.Add(method, path, handler.Handle)
	return app
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out))
}

func TestListDocumentsHandler_ReturnsDocuments(t *testing.T) {
	finder := new(mockFinder)
	date := time.Date(2025, 2, 1, 9, 30, 0, 0, time.UTC)
	finder.On("FindAll", mock.Anything).Return([]domain.Document{
		{Question: "q1", Answer: "a1", Link: "https://example.com/1", QuestionDate: &date},
		{Question: "q2"},
	}, nil)

	app := newTestApp(fiber.MethodGet, "/documents", NewListDocumentsHandler(newTestLogger(), finder))

	req, _ := http.NewRequest(http.MethodGet, "/documents", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out []map[string]string
	decodeBody(t, resp, &out)
	require.Len(t, out, 2)
	assert.Equal(t, "q1", out[0]["question"])
	assert.Equal(t, "2025-02-01", out[0]["date"])
	// Nullable source fields come out as empty strings, never null.
	assert.Equal(t, "", out[1]["answer"])
	assert.Equal(t, "", out[1]["date"])
}

func TestListDocumentsHandler_StoreUnavailable(t *testing.T) {
	finder := new(mockFinder)
	finder.On("FindAll", mock.Anything).
		Return(nil, domainerrors.NewStoreUnavailableError("target", errors.New("dial tcp: refused")))

	app := newTestApp(fiber.MethodGet, "/documents", NewListDocumentsHandler(newTestLogger(), finder))

	req, _ := http.NewRequest(http.MethodGet, "/documents", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	var out map[string]string
	decodeBody(t, resp, &out)
	assert.Equal(t, "Database service unavailable", out["error"])
}

func TestSyncDocumentsHandler_ReturnsSyncedCount(t *testing.T) {
	syncer := new(mockSyncer)
	syncer.On("SyncOnce", mock.Anything).Return(appDocument.SyncResult{Synced: 7}, nil)

	app := newTestApp(fiber.MethodPost, "/sync", NewSyncDocumentsHandler(newTestLogger(), syncer))

	req, _ := http.NewRequest(http.MethodPost, "/sync", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out map[string]any
	decodeBody(t, resp, &out)
	assert.Equal(t, "ok", out["status"])
	assert.Equal(t, float64(7), out["documents_synced"])
}

func TestSyncDocumentsHandler_TrackingNotConfigured(t *testing.T) {
	syncer := new(mockSyncer)
	syncer.On("SyncOnce", mock.Anything).
		Return(appDocument.SyncResult{}, progress.ErrTrackingNotConfigured)

	app := newTestApp(fiber.MethodPost, "/sync", NewSyncDocumentsHandler(newTestLogger(), syncer))

	req, _ := http.NewRequest(http.MethodPost, "/sync", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var out map[string]string
	decodeBody(t, resp, &out)
	assert.Equal(t, "Sync progress tracking is not configured", out["error"])
}

func TestSyncDocumentsHandler_StoreUnavailable(t *testing.T) {
	syncer := new(mockSyncer)
	syncer.On("SyncOnce", mock.Anything).
		Return(appDocument.SyncResult{}, domainerrors.NewStoreUnavailableError("source", errors.New("bad handshake")))

	app := newTestApp(fiber.MethodPost, "/sync", NewSyncDocumentsHandler(newTestLogger(), syncer))

	req, _ := http.NewRequest(http.MethodPost, "/sync", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestSearchDocumentsHandler_ReturnsResultsAndDigest(t *testing.T) {
	searcher := new(mockSearcher)
	searcher.On("Search", mock.Anything, "refund policy", 2, 0.75).
		Return([]domain.ScoredDocument{
			{Document: domain.Document{Question: "what is the refund window"}, Score: 0.9},
		}, nil)

	app := newTestApp(fiber.MethodPost, "/search", NewSearchDocumentsHandler(newTestLogger(), searcher))

	body := bytes.NewBufferString(`{"query":"refund policy","limit":2,"threshold":0.75}`)
	req, _ := http.NewRequest(http.MethodPost, "/search", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Results []map[string]any `json:"results"`
		Digest  string           `json:"digest"`
	}
	decodeBody(t, resp, &out)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "what is the refund window", out.Results[0]["question"])
	assert.Equal(t, 0.9, out.Results[0]["score"])
	assert.Contains(t, out.Digest, "Question: what is the refund window")
	assert.Contains(t, out.Digest, "Relevance: 0.900")
}

func TestSearchDocumentsHandler_UsesDefaultsWhenOmitted(t *testing.T) {
	searcher := new(mockSearcher)
	searcher.On("Search", mock.Anything, "anything",
		appDocument.DefaultSearchLimit, appDocument.DefaultSearchThreshold).
		Return([]domain.ScoredDocument{}, nil)

	app := newTestApp(fiber.MethodPost, "/search", NewSearchDocumentsHandler(newTestLogger(), searcher))

	body := bytes.NewBufferString(`{"query":"anything"}`)
	req, _ := http.NewRequest(http.MethodPost, "/search", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	searcher.AssertExpectations(t)
}

func TestSearchDocumentsHandler_RejectsEmptyQuery(t *testing.T) {
	searcher := new(mockSearcher)
	app := newTestApp(fiber.MethodPost, "/search", NewSearchDocumentsHandler(newTestLogger(), searcher))

	body := bytes.NewBufferString(`{"query":""}`)
	req, _ := http.NewRequest(http.MethodPost, "/search", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	searcher.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchDocumentsHandler_RejectsInvalidThreshold(t *testing.T) {
	searcher := new(mockSearcher)
	app := newTestApp(fiber.MethodPost, "/search", NewSearchDocumentsHandler(newTestLogger(), searcher))

	body := bytes.NewBufferString(`{"query":"x","threshold":1.5}`)
	req, _ := http.NewRequest(http.MethodPost, "/search", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSearchDocumentsHandler_StoreUnavailable(t *testing.T) {
	searcher := new(mockSearcher)
	searcher.On("Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domainerrors.NewStoreUnavailableError("target", errors.New("refused")))

	app := newTestApp(fiber.MethodPost, "/search", NewSearchDocumentsHandler(newTestLogger(), searcher))

	body := bytes.NewBufferString(`{"query":"x"}`)
	req, _ := http.NewRequest(http.MethodPost, "/search", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestGetVersionHandler(t *testing.T) {
	app := newTestApp(fiber.MethodGet, "/version", NewGetVersionHandler(newTestLogger()))

	req, _ := http.NewRequest(http.MethodGet, "/version", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out map[string]string
	decodeBody(t, resp, &out)
	assert.NotEmpty(t, out["version"])
	assert.Equal(t, "genie-search", out["app_name"])
}
