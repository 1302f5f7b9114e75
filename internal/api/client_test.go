package api

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"rhystmorgan/clientDesk/internal/mockapi"
	"rhystmorgan/clientDesk/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

func newMockBackend(t *testing.T) (*mockapi.Server, *Client) {
	t.Helper()

	srv := mockapi.NewServer(mockapi.NewRepository(mockapi.SeedRecords()...), DefaultCollection, nil)
	ts := httptest.NewServer(srv.Handler())

	client, err := NewClient(Config{BaseURL: ts.URL, Timeout: 5 * time.Second}, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		client.Close()
		ts.Close()
	})
	return srv, client
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(Config{}, nil)
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, DefaultBaseURL+DefaultCollection, client.CollectionURL())
	assert.Equal(t, DefaultTimeout, client.config.Timeout)
	assert.False(t, client.GetStatus().Connected)
}

func TestNewClientNormalizesURL(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "http://example.com/", Collection: "clients/"}, nil)
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, "http://example.com/clients", client.CollectionURL())
	assert.Equal(t, "http://example.com/clients/7", client.itemURL(7))
}

func TestNewClientRejectsBadURL(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "not a url"}, nil)
	assert.Error(t, err)
}

func TestClientList(t *testing.T) {
	_, client := newMockBackend(t)

	records, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, "Ana Souza", records[0].Name)
	assert.Equal(t, int64(5), records[4].ID)

	status := client.GetStatus()
	assert.True(t, status.Connected)
	assert.Equal(t, http.StatusOK, status.LastStatus)
}

func TestClientListServerError(t *testing.T) {
	srv, client := newMockBackend(t)
	srv.FailNext(http.StatusInternalServerError, "database unavailable")

	records, err := client.List(context.Background())
	require.Error(t, err)
	assert.Nil(t, records)

	apiErr := ClassifyError(err)
	assert.Equal(t, ErrStatus, apiErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "database unavailable", apiErr.ServerText)
	assert.Contains(t, apiErr.UserMessage(), "500")
	assert.Contains(t, apiErr.UserMessage(), "database unavailable")
}

func TestClientListTransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	client, err := NewClient(Config{BaseURL: url, Timeout: time.Second}, nil)
	require.NoError(t, err)
	defer client.Close()

	_, err = client.List(context.Background())
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrTransport), "expected transport error, got %v", err)
	assert.False(t, client.GetStatus().Connected)
}

func TestClientListDecodeError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"sem id"}]`))
	}))
	defer ts.Close()

	client, err := NewClient(Config{BaseURL: ts.URL}, nil)
	require.NoError(t, err)
	defer client.Close()

	_, err = client.List(context.Background())
	assert.True(t, IsKind(err, ErrDecode), "expected decode error, got %v", err)
}

func photoHeavyServer(t *testing.T, count, photoSize int) *httptest.Server {
	t.Helper()

	photo := "data:image/png;base64," + strings.Repeat("A", photoSize)
	records := make([]map[string]interface{}, 0, count)
	for i := 1; i <= count; i++ {
		records = append(records, map[string]interface{}{
			"id":     i,
			"name":   "Cliente",
			"email":  "cliente@example.com",
			"status": "ATIVO",
			"photo":  photo,
		})
	}
	body, err := json.Marshal(records)
	require.NoError(t, err)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestClientListTooLarge(t *testing.T) {
	ts := photoHeavyServer(t, 3, 3<<20)

	client, err := NewClient(Config{BaseURL: ts.URL, MaxResponseSize: 8 << 20}, nil)
	require.NoError(t, err)
	defer client.Close()

	records, err := client.List(context.Background())
	assert.Nil(t, records)
	require.True(t, IsKind(err, ErrTooLarge), "expected too large error, got %v", err)

	apiErr := ClassifyError(err)
	assert.Equal(t, int64(8<<20), apiErr.Limit)
	assert.Contains(t, apiErr.UserMessage(), "8,0 MB")
	assert.Contains(t, apiErr.UserMessage(), "max_response_mb")
}

func TestClientListLargePhotosWithinLimit(t *testing.T) {
	ts := photoHeavyServer(t, 3, 3<<20)

	client, err := NewClient(Config{BaseURL: ts.URL}, nil)
	require.NoError(t, err)
	defer client.Close()
	assert.Equal(t, int64(DefaultMaxResponseSize), client.config.MaxResponseSize)

	records, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Len(t, records[2].PhotoRef(), len("data:image/png;base64,")+3<<20)
}

func TestClientCreateUnencodableRecord(t *testing.T) {
	_, client := newMockBackend(t)

	record := models.Record{Name: "x", Email: "x@example.com", Status: models.StatusActive, Income: math.NaN()}
	_, err := client.Create(context.Background(), record)
	require.True(t, IsKind(err, ErrValidation))
	assert.Equal(t, "Não foi possível preparar o registro para envio.", ClassifyError(err).UserMessage())
}

func TestClientCreate(t *testing.T) {
	srv, client := newMockBackend(t)

	record := *models.NewRecord("Novo Cliente", "novo@example.com", "(11) 1111-1111", "Rua Nova, 1", 1000, 1, models.StatusPending, "")
	created, err := client.Create(context.Background(), record)
	require.NoError(t, err)

	assert.Equal(t, int64(6), created.ID)
	assert.Equal(t, "Novo Cliente", created.Name)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Equal(t, 6, srv.Repository().Len())
}

func TestClientCreateDuplicate(t *testing.T) {
	_, client := newMockBackend(t)

	record := *models.NewRecord("Ana Dois", "ana.souza@example.com", "1", "a", 0, 0, models.StatusActive, "")
	_, err := client.Create(context.Background(), record)
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrDuplicate))
	assert.Contains(t, ClassifyError(err).UserMessage(), "Email já cadastrado")
}

func TestClientCreateIDOnlyResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 42}`))
	}))
	defer ts.Close()

	client, err := NewClient(Config{BaseURL: ts.URL}, nil)
	require.NoError(t, err)
	defer client.Close()

	created, err := client.Create(context.Background(), models.Record{Name: "Só Id", Email: "id@example.com", Status: models.StatusActive})
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, "Só Id", created.Name)
}

func TestClientUpdate(t *testing.T) {
	srv, client := newMockBackend(t)

	records, err := client.List(context.Background())
	require.NoError(t, err)

	target := records[1]
	target.Status = models.StatusActive
	target.Observations = "Regularizado"

	updated, err := client.Update(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, target.ID, updated.ID)
	assert.Equal(t, models.StatusActive, updated.Status)

	stored, err := srv.Repository().Get(target.ID)
	require.NoError(t, err)
	assert.Equal(t, "Regularizado", stored.Observations)
}

func TestClientUpdateNotFound(t *testing.T) {
	_, client := newMockBackend(t)

	_, err := client.Update(context.Background(), models.Record{ID: 999, Name: "x", Email: "x@example.com"})
	assert.True(t, IsKind(err, ErrNotFound), "expected not found, got %v", err)
}

func TestClientUpdateRequiresID(t *testing.T) {
	_, client := newMockBackend(t)

	_, err := client.Update(context.Background(), models.Record{Name: "x"})
	require.True(t, IsKind(err, ErrValidation))
	assert.Contains(t, ClassifyError(err).UserMessage(), "Registro sem id")
}

func TestClientDelete(t *testing.T) {
	srv, client := newMockBackend(t)

	require.NoError(t, client.Delete(context.Background(), 3))
	assert.Equal(t, 4, srv.Repository().Len())

	err := client.Delete(context.Background(), 3)
	assert.True(t, IsKind(err, ErrNotFound))
}

func TestClientHonoursContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	client, err := NewClient(Config{BaseURL: ts.URL}, nil)
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.List(ctx)
	assert.True(t, IsKind(err, ErrTransport), "expected transport error, got %v", err)
}
