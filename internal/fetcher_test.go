package internal

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"hyperstat/internal/clients"
	"hyperstat/internal/codec"
	"hyperstat/internal/services"
	"hyperstat/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_RunWritesWireJSON(t *testing.T) {
	client := &testutil.MockNexonClient{Snapshot: routeTestSnapshot()}
	logger := &testutil.MockLogger{}
	decoder := codec.NewHyperStatDecoder()
	f := NewFetcher(services.NewHyperStatService(routeTestConfig(), client, logger), decoder, logger)

	var out bytes.Buffer
	err := f.Run(context.Background(), services.Query{OCID: "abc", Date: "2024-01-09"}, &out)
	require.NoError(t, err)

	require.True(t, bytes.HasSuffix(out.Bytes(), []byte("\n")))
	decoded, err := decoder.Decode(bytes.TrimSpace(out.Bytes()))
	require.NoError(t, err)
	assert.True(t, decoded.Equal(routeTestSnapshot()))

	require.Len(t, client.Calls, 1)
	assert.Equal(t, "abc", client.Calls[0].OCID)
	assert.Equal(t, "test-key", client.Calls[0].APIKey)
}

func TestFetcher_RunReturnsUpstreamError(t *testing.T) {
	client := &testutil.MockNexonClient{Err: &clients.StatusError{StatusCode: 401}}
	logger := &testutil.MockLogger{}
	f := NewFetcher(services.NewHyperStatService(routeTestConfig(), client, logger), codec.NewHyperStatDecoder(), logger)

	var out bytes.Buffer
	err := f.Run(context.Background(), services.Query{}, &out)

	assert.True(t, errors.Is(err, clients.ErrUpstream))
	assert.Zero(t, out.Len())
}
