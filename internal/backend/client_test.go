package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) Config {
	cfg := DefaultConfig()
	cfg.BaseURL = endpoint + "/api/"
	cfg.TypesBaseURL = endpoint
	return cfg
}

type recordingObserver struct {
	events []CallEvent
}

func (r *recordingObserver) OnCallComplete(e CallEvent) { r.events = append(r.events, e) }

func TestHTTPClient_List_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/Party/GetList", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req listRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "PartyId,PartyCode,PartyName", req.Select)
		assert.Equal(t, "IsActive = 1", req.Where)
		assert.Equal(t, "PartyName", req.SortOn)
		assert.Equal(t, 1, req.Page)
		assert.Equal(t, 1000, req.PageSize)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"partyId":1,"partyName":"Acme"},{"partyId":2,"partyName":"Globex"}]`))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := NewHTTPClient(testConfig(srv.URL), obs)
	records, err := client.List(context.Background(), ListQuery{
		Entity: "Party",
		Select: []string{"PartyId", "PartyCode", "PartyName"},
		Where:  "IsActive = 1",
		SortOn: "PartyName",
	})

	require.NoError(t, err)
	assert.Len(t, records, 2)
	require.Len(t, obs.events, 1)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, CallList, obs.events[0].Call)
	assert.Equal(t, http.StatusOK, obs.events[0].Status)
}

func TestHTTPClient_List_NonArrayIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": []}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(testConfig(srv.URL), NoopObserver{})
	records, err := client.List(context.Background(), ListQuery{Entity: "Party"})

	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestHTTPClient_List_RetryOnServerError(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("internal error"))
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.ListRetries = 1

	client := NewHTTPClient(cfg, NoopObserver{})
	_, err := client.List(context.Background(), ListQuery{Entity: "SetupCurrency"})

	require.NoError(t, err)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestHTTPClient_List_NoRetryOnClientError(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"bad where clause"}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.ListRetries = 3

	client := NewHTTPClient(cfg, NoopObserver{})
	_, err := client.List(context.Background(), ListQuery{Entity: "Party"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "bad where clause", apiErr.Message)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestHTTPClient_List_RetryAfterTimeout(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			time.Sleep(150 * time.Millisecond)
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.ListRetries = 1
	cfg.Timeouts = map[CallKind]int{CallList: 50}

	client := NewHTTPClient(cfg, NoopObserver{})
	_, err := client.List(context.Background(), ListQuery{Entity: "Party"})

	require.NoError(t, err)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestHTTPClient_List_TimeoutExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.ListRetries = 1
	cfg.Timeouts = map[CallKind]int{CallList: 30}

	client := NewHTTPClient(cfg, NoopObserver{})
	_, err := client.List(context.Background(), ListQuery{Entity: "Party"})

	assert.ErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, ErrRetryExhausted)
}

func TestHTTPClient_CallerCancelIsNotTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.ListRetries = 2
	cfg.Timeouts = map[CallKind]int{CallList: 5000}

	obs := &recordingObserver{}
	client := NewHTTPClient(cfg, obs)
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(30*time.Millisecond, cancel)

	_, err := client.List(ctx, ListQuery{Entity: "Party"})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrTimeout)
	require.Len(t, obs.events, 1)
	assert.Equal(t, 1, obs.events[0].Attempts)
	assert.Equal(t, "CANCELLED", obs.events[0].ErrorCode)
}

func TestHTTPClient_Unavailable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1") // nothing listening
	cfg.ListRetries = 0

	client := NewHTTPClient(cfg, NoopObserver{})
	_, err := client.List(context.Background(), ListQuery{Entity: "Party"})

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_TypeValues_KeepsDocumentOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/General/GetTypeValues", r.URL.Path)
		assert.Equal(t, "OperationType", r.URL.Query().Get("typeName"))
		assert.Equal(t, http.MethodGet, r.Method)
		w.Write([]byte(`{"z":"Import","a":"Export","m":"","n":null,"k":3,"b":"Cross Trade"}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(testConfig(srv.URL), NoopObserver{})
	values, err := client.TypeValues(context.Background(), "OperationType")

	require.NoError(t, err)
	assert.Equal(t, []string{"Import", "Export", "Cross Trade"}, values)
}

func TestHTTPClient_TypeValues_NonObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["Import"]`))
	}))
	defer srv.Close()

	client := NewHTTPClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.TypeValues(context.Background(), "OperationType")

	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestHTTPClient_GenerateJobNumber(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"quoted", `"JOB-2026-0042"`, "JOB-2026-0042"},
		{"bare", "JOB-7\n", "JOB-7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/Job/GenerateJobNumber", r.URL.Path)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewHTTPClient(testConfig(srv.URL), NoopObserver{})
			got, err := client.GenerateJobNumber(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHTTPClient_GenerateJobNumber_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`""`))
	}))
	defer srv.Close()

	client := NewHTTPClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.GenerateJobNumber(context.Background())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestHTTPClient_Save_SingleAttempt(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/Job", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.ListRetries = 5

	client := NewHTTPClient(cfg, NoopObserver{})
	_, err := client.Save(context.Background(), SaveRequest{Path: "Job", Method: http.MethodPut, Payload: map[string]int{"jobId": 3}})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "upstream down", apiErr.Message)
	assert.NotErrorIs(t, err, ErrRetryExhausted)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestHTTPClient_Save_ReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"jobId":0,"jobNumber":"J-1"}`, string(body))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"jobId":55}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(testConfig(srv.URL), NoopObserver{})
	resp, err := client.Save(context.Background(), SaveRequest{
		Path:    "Job",
		Method:  http.MethodPost,
		Payload: map[string]any{"jobId": 0, "jobNumber": "J-1"},
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"jobId":55}`, string(resp))
}
