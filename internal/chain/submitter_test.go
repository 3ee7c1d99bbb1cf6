package chain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelayerClient_Submit(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/submit", r.URL.Path)

		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, OpLockup, req.Operation)
		assert.Equal(t, "0xCallerAccount", req.Account)
		assert.Equal(t, 137, req.ChainID)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Result{TxHash: "0xdeadbeef", BlockNumber: 1042})
	}))
	defer server.Close()

	client := NewRelayerClient(server.URL, 137, 5*time.Second)

	result, err := client.Submit(context.Background(), Request{
		Operation:   OpLockup,
		Account:     "0xCallerAccount",
		NoteAddress: "0xaaa",
		Amount:      decimal.NewFromInt(200),
	})

	require.NoError(t, err)
	assert.Equal(t, "0xdeadbeef", result.TxHash)
	assert.Equal(t, int64(1042), result.BlockNumber)
}

func TestRelayerClient_Submit_RejectedWithMessage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(relayerError{Error: "insufficient allowance"})
	}))
	defer server.Close()

	client := NewRelayerClient(server.URL, 137, 5*time.Second)

	result, err := client.Submit(context.Background(), Request{Operation: OpRedeem, Account: "0xCallerAccount"})

	assert.Nil(t, result)
	assert.ErrorContains(t, err, "insufficient allowance")
}

func TestRelayerClient_Submit_RejectedWithoutBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewRelayerClient(server.URL, 137, 5*time.Second)

	_, err := client.Submit(context.Background(), Request{Operation: OpClaim, Account: "0xCallerAccount"})

	assert.ErrorContains(t, err, "status 502")
}

func TestRelayerClient_Submit_MissingTxHash(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Result{})
	}))
	defer server.Close()

	client := NewRelayerClient(server.URL, 137, 5*time.Second)

	_, err := client.Submit(context.Background(), Request{Operation: OpLockup, Account: "0xCallerAccount"})

	assert.ErrorContains(t, err, "no transaction hash")
}

func TestRelayerClient_Submit_SlowConfirmationSucceeds(t *testing.T) {
	t.Parallel()

	// The relayer holds the connection open until the tx is mined. With no
	// client timer the submission waits it out and the confirmation is not
	// misreported as a failure.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(Result{TxHash: "0xslowbutmined", BlockNumber: 2048})
	}))
	defer server.Close()

	client := NewRelayerClient(server.URL, 137, 0)

	result, err := client.Submit(context.Background(), Request{Operation: OpLockup, Account: "0xCallerAccount"})

	require.NoError(t, err)
	assert.Equal(t, "0xslowbutmined", result.TxHash)
}

func TestRelayerClient_Submit_ContextCanceled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewRelayerClient(server.URL, 137, 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Submit(ctx, Request{Operation: OpLockup, Account: "0xCallerAccount"})

	assert.Error(t, err)
}
