package clients

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"hyperstat/internal/codec"
	"hyperstat/internal/providers"
	"hyperstat/internal/structures"
	"hyperstat/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testOCID = "985664fe5f82eeae91b658c5b5f650ab"
	testKey  = "test_key"
	okBody   = `{"date":"2024-01-09T00:00:00+09:00","character_class":"Hero","use_preset_no":"1",
		"use_available_hyper_stat":1309,
		"hyper_stat_preset_1":[{"stat_type":"STR","stat_name":10,"stat_level":10,"stat_increase":"STR 300 increase"}],
		"hyper_stat_preset_1_remain_point":2,
		"hyper_stat_preset_3":[],"hyper_stat_preset_3_remain_point":0}`
)

func clientConfig(baseURL string) *structures.Config {
	return &structures.Config{
		Nexon: structures.NexonConfig{
			BaseURL:      baseURL,
			Path:         "/maplestory/v1/character/hyper-stat",
			APIKeyHeader: "x-nxopen-api-key",
			Timeout:      2 * time.Second,
		},
	}
}

func newTestClient(conf *structures.Config, metrics *testutil.MockMetrics) NexonClientInterface {
	return NewNexonClient(conf, &http.Client{}, codec.NewHyperStatDecoder(), &testutil.MockLogger{}, metrics)
}

func TestGetCharacterHyperStat_BuildsRequest(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(okBody))
	}))
	defer srv.Close()

	c := newTestClient(clientConfig(srv.URL), &testutil.MockMetrics{})
	_, err := c.GetCharacterHyperStat(context.Background(), testOCID, "2024-01-09", testKey)
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/maplestory/v1/character/hyper-stat", got.URL.Path)
	assert.Equal(t, testOCID, got.URL.Query().Get("ocid"))
	assert.Equal(t, "2024-01-09", got.URL.Query().Get("date"))
	assert.Equal(t, testKey, got.Header.Get("x-nxopen-api-key"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.NotEmpty(t, got.Header.Get("X-Request-ID"))
}

func TestGetCharacterHyperStat_EmptyDateOmitted(t *testing.T) {
	var query map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_, _ = w.Write([]byte(okBody))
	}))
	defer srv.Close()

	c := newTestClient(clientConfig(srv.URL), &testutil.MockMetrics{})
	_, err := c.GetCharacterHyperStat(context.Background(), testOCID, "", testKey)
	require.NoError(t, err)

	assert.Contains(t, query, "ocid")
	assert.NotContains(t, query, "date")
}

func TestGetCharacterHyperStat_CustomKeyHeader(t *testing.T) {
	var key string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key = r.Header.Get("x-api-key")
		_, _ = w.Write([]byte(okBody))
	}))
	defer srv.Close()

	conf := clientConfig(srv.URL + "/")
	conf.Nexon.APIKeyHeader = "x-api-key"
	c := newTestClient(conf, &testutil.MockMetrics{})
	_, err := c.GetCharacterHyperStat(context.Background(), testOCID, "2024-01-09", testKey)
	require.NoError(t, err)
	assert.Equal(t, testKey, key)
}

func TestGetCharacterHyperStat_DecodesSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(okBody))
	}))
	defer srv.Close()

	metrics := &testutil.MockMetrics{}
	c := newTestClient(clientConfig(srv.URL), metrics)
	s, err := c.GetCharacterHyperStat(context.Background(), testOCID, "2024-01-09", testKey)
	require.NoError(t, err)

	assert.Equal(t, "Hero", s.CharacterClass)
	require.Len(t, s.Presets[0].Entries, 1)
	assert.Equal(t, int64(10), s.Presets[0].Entries[0].StatPoint)
	assert.Empty(t, s.Presets[1].Entries)
	assert.Equal(t, 1, metrics.Outcome(providers.OutcomeOK))
	assert.Equal(t, 1, metrics.Durations)
}

func TestGetCharacterHyperStat_UnauthorizedIsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"name":"OPENAPI00005","message":"Please input valid parameter"}}`))
	}))
	defer srv.Close()

	metrics := &testutil.MockMetrics{}
	c := newTestClient(clientConfig(srv.URL), metrics)
	_, err := c.GetCharacterHyperStat(context.Background(), testOCID, "2024-01-09", "bad")

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Equal(t, "OPENAPI00005", se.UpstreamName)
	assert.Equal(t, "Please input valid parameter", se.UpstreamMessage)
	assert.ErrorIs(t, err, ErrUpstream)

	var de *codec.DecodeError
	assert.False(t, errors.As(err, &de))
	assert.Equal(t, 1, metrics.Outcome(providers.OutcomeStatus))
}

func TestGetCharacterHyperStat_ServerErrorWithoutEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(clientConfig(srv.URL), &testutil.MockMetrics{})
	_, err := c.GetCharacterHyperStat(context.Background(), testOCID, "2024-01-09", testKey)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.StatusCode)
	assert.Empty(t, se.UpstreamName)
	assert.Contains(t, string(se.Body), "boom")
}

func TestGetCharacterHyperStat_MalformedBodyIsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"date":"2024-01-09T00:00:00+09:00","character_class":"Hero"`))
	}))
	defer srv.Close()

	metrics := &testutil.MockMetrics{}
	c := newTestClient(clientConfig(srv.URL), metrics)
	_, err := c.GetCharacterHyperStat(context.Background(), testOCID, "2024-01-09", testKey)

	var de *codec.DecodeError
	require.ErrorAs(t, err, &de)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.ErrorIs(t, err, codec.ErrMalformedBody)

	var te *TransportError
	assert.False(t, errors.As(err, &te))
	var se *StatusError
	assert.False(t, errors.As(err, &se))
	assert.Equal(t, 1, metrics.Outcome(providers.OutcomeDecode))
}

func TestGetCharacterHyperStat_ConnectionRefusedIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	metrics := &testutil.MockMetrics{}
	c := newTestClient(clientConfig(url), metrics)
	_, err := c.GetCharacterHyperStat(context.Background(), testOCID, "2024-01-09", testKey)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.False(t, te.Timeout())
	assert.Equal(t, 1, metrics.Outcome(providers.OutcomeTransport))
}

func TestGetCharacterHyperStat_TimeoutIsTransportError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	conf := clientConfig(srv.URL)
	conf.Nexon.Timeout = 50 * time.Millisecond
	c := newTestClient(conf, &testutil.MockMetrics{})

	_, err := c.GetCharacterHyperStat(context.Background(), testOCID, "2024-01-09", testKey)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.True(t, te.Timeout())
}

func TestGetCharacterHyperStat_CancelledContext(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(okBody))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestClient(clientConfig(srv.URL), &testutil.MockMetrics{})
	_, err := c.GetCharacterHyperStat(ctx, testOCID, "2024-01-09", testKey)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), hits.Load())
}

func TestGetCharacterHyperStat_MissingParameters(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c := newTestClient(clientConfig(srv.URL), &testutil.MockMetrics{})

	_, err := c.GetCharacterHyperStat(context.Background(), "", "2024-01-09", testKey)
	assert.ErrorIs(t, err, ErrMissingParameter)
	assert.NotErrorIs(t, err, ErrUpstream)

	_, err = c.GetCharacterHyperStat(context.Background(), testOCID, "2024-01-09", "")
	assert.ErrorIs(t, err, ErrMissingParameter)

	assert.Equal(t, int32(0), hits.Load())
}

func TestGetCharacterHyperStat_SingleAttemptOnFailure(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(clientConfig(srv.URL), &testutil.MockMetrics{})
	_, err := c.GetCharacterHyperStat(context.Background(), testOCID, "2024-01-09", testKey)
	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestGetCharacterHyperStat_RateLimitWaitHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(okBody))
	}))
	defer srv.Close()

	conf := clientConfig(srv.URL)
	conf.Nexon.RateLimit = 0.01
	conf.Nexon.Burst = 1
	c := newTestClient(conf, &testutil.MockMetrics{})

	_, err := c.GetCharacterHyperStat(context.Background(), testOCID, "2024-01-09", testKey)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.GetCharacterHyperStat(ctx, testOCID, "2024-01-09", testKey)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "rate limit wait", te.Op)
}

func TestNewStatusError_TruncatesBody(t *testing.T) {
	body := make([]byte, maxErrorBodySize+100)
	se := newStatusError(http.StatusBadGateway, body)
	assert.Len(t, se.Body, maxErrorBodySize)
	assert.Equal(t, "nexon open api returned status 502", se.Error())
}
