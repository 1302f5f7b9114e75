package mockapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rhystmorgan/clientDesk/internal/models"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv := NewServer(NewRepository(SeedRecords()...), "/api/users", nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func TestListReturnsSeedInOrder(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/users")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var records []models.Record
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&records))
	require.Len(t, records, 5)
	for i, record := range records {
		assert.Equal(t, int64(i+1), record.ID)
	}
}

func TestCreateAssignsID(t *testing.T) {
	srv, ts := newTestServer(t)

	body := `{"name":"Novo","email":"novo@example.com","phone":"1","address":"a","status":"ATIVO"}`
	resp, err := http.Post(ts.URL+"/api/users", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Record
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, int64(6), created.ID)
	assert.Equal(t, 6, srv.Repository().Len())
}

func TestCreateDuplicateEmail(t *testing.T) {
	_, ts := newTestServer(t)

	body := `{"name":"Outra Ana","email":"ANA.SOUZA@example.com"}`
	resp, err := http.Post(ts.URL+"/api/users", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	text, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(text), "duplicate key")
}

func TestReplaceAndDelete(t *testing.T) {
	srv, ts := newTestServer(t)

	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/users/2",
		strings.NewReader(`{"name":"Bruno Lima","email":"bruno.lima@example.com","status":"ATIVO"}`))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	record, err := srv.Repository().Get(2)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, record.Status)

	req, _ = http.NewRequest(http.MethodDelete, ts.URL+"/api/users/2", nil)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	req, _ = http.NewRequest(http.MethodDelete, ts.URL+"/api/users/2", nil)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFailNext(t *testing.T) {
	srv, ts := newTestServer(t)
	srv.FailNext(http.StatusInternalServerError, "boom")

	resp, err := http.Get(ts.URL + "/api/users")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/users")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "failure should only apply once")
}

func TestMetricsCountRequests(t *testing.T) {
	srv, ts := newTestServer(t)

	for i := 0; i < 3; i++ {
		resp, err := http.Get(ts.URL + "/api/users")
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, float64(3), testutil.ToFloat64(srv.Metrics().RequestsTotal.WithLabelValues("list", "200")))
	assert.Equal(t, float64(5), testutil.ToFloat64(srv.Metrics().RecordsStored))

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	text, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(text), "clientdesk_mock_requests_total")
}
