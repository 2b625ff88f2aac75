package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradegate/internal/document"
	"tradegate/internal/exporter"
	"tradegate/internal/license"
	"tradegate/internal/license/handler"
)

var issueDay = time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)

type fixedSource struct{ v int }

func (f fixedSource) Intn(int) int { return f.v }

func newTestRouter(t *testing.T) (chi.Router, *exporter.InMemoryStore) {
	t.Helper()

	exporters := exporter.NewInMemoryStore()
	licenses := license.NewInMemoryStore()
	service := license.NewService(licenses, exporters,
		license.WithClock(func() time.Time { return issueDay }),
		license.WithNumberSource(fixedSource{0}),
	)
	assembler := document.NewAssembler(licenses, exporters)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	handler.New(service, assembler, logger).Register(r)
	return r, exporters
}

func registerExporter(t *testing.T, store *exporter.InMemoryStore) int64 {
	t.Helper()
	id, err := store.Create(context.Background(), &exporter.Exporter{
		FirmName:      "Acme Exports",
		IEC:           "IEC001",
		ContactPerson: "R. Sharma",
		Country:       "India",
	})
	require.NoError(t, err)
	return id
}

func doJSON(t *testing.T, r chi.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleIssue(t *testing.T) {
	t.Run("issues a license and returns 201", func(t *testing.T) {
		r, exporters := newTestRouter(t)
		expID := registerExporter(t, exporters)

		rec := doJSON(t, r, http.MethodPost, "/licenses",
			`{"iec_number":"IEC001","expiry_period_days":90}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "IND-2026-10000", resp["license_number"])
		assert.Equal(t, float64(expID), resp["exporter_id"])
		assert.Equal(t, "2026-03-15", resp["issue_date"])
		assert.Equal(t, "2026-06-13", resp["expiry_date"])
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		r, _ := newTestRouter(t)
		rec := doJSON(t, r, http.MethodPost, "/licenses", `{"iec_number":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unregistered exporter is a 422", func(t *testing.T) {
		r, _ := newTestRouter(t)
		rec := doJSON(t, r, http.MethodPost, "/licenses",
			`{"iec_number":"IEC404","expiry_period_days":90}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "prerequisite", resp["error"])
	})

	t.Run("non positive expiry period is a 400", func(t *testing.T) {
		r, exporters := newTestRouter(t)
		registerExporter(t, exporters)
		rec := doJSON(t, r, http.MethodPost, "/licenses",
			`{"iec_number":"IEC001","expiry_period_days":0}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleValidity(t *testing.T) {
	r, exporters := newTestRouter(t)
	registerExporter(t, exporters)

	rec := doJSON(t, r, http.MethodPost, "/licenses",
		`{"iec_number":"IEC001","expiry_period_days":90}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("known license reports valid", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/licenses/IND-2026-10000/validity", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, true, resp["valid"])
		assert.Equal(t, "2026-06-13", resp["expiry_date"])
	})

	t.Run("unknown license is a 404", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/licenses/IND-2026-99999/validity", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandleCertificate(t *testing.T) {
	r, exporters := newTestRouter(t)
	registerExporter(t, exporters)

	rec := doJSON(t, r, http.MethodPost, "/licenses",
		`{"iec_number":"IEC001","expiry_period_days":90}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/licenses/IND-2026-10000/certificate", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Acme Exports", resp["firm_name"])
	assert.True(t, strings.HasPrefix(resp["signature_ref"].(string), "/signatures/"))
}

func TestHandleList(t *testing.T) {
	r, exporters := newTestRouter(t)
	registerExporter(t, exporters)

	rec := doJSON(t, r, http.MethodGet, "/licenses", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}
