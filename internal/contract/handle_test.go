package contract

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proptoken/chaincore/internal/addr"
	"github.com/proptoken/chaincore/internal/chain"
	"github.com/proptoken/chaincore/internal/wallet"
)

const (
	testKey      = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testContract = "0x1234567890abcdef1234567890abcdef12345678"
)

// rpcMock answers each JSON-RPC method with a canned result and counts calls.
func rpcMock(t *testing.T, responses map[string]interface{}, calls *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		var req struct {
			Method string `json:"method"`
			ID     int    `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if result, ok := responses[req.Method]; ok {
			json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
				"jsonrpc": "2.0", "id": req.ID, "result": result,
			})
		} else {
			json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
				"jsonrpc": "2.0", "id": req.ID,
				"error": map[string]interface{}{"code": -32601, "message": "method not found"},
			})
		}
	}))
}

func testSigner(t *testing.T) *wallet.Signer {
	t.Helper()
	s, err := wallet.NewSigner(testKey)
	require.NoError(t, err)
	return s
}

func TestBindRejectsInvalidAddress(t *testing.T) {
	_, err := Bind("0xnot-an-address", GetBuiltinABI("proptoken"), chain.NewClient("http://unused"), testSigner(t), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, addr.ErrInvalidAddress)
}

func TestBindNormalizesAddress(t *testing.T) {
	h, err := Bind("0x1234567890ABCDEF1234567890ABCDEF12345678", GetBuiltinABI("proptoken"), chain.NewClient("http://unused"), testSigner(t), Options{})
	require.NoError(t, err)
	assert.Equal(t, testContract, h.Address)
}

func TestHandleCall(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_call": "0x00000000000000000000000000000000000000000000000000000000000F4240",
	}, nil)
	defer srv.Close()

	h, err := Bind(testContract, GetBuiltinABI("proptoken"), chain.NewClient(srv.URL), testSigner(t), Options{})
	require.NoError(t, err)

	out, err := h.Call(context.Background(), "balanceOf", "0xd8da6bf26964af9d7eed9e03e53415d37aa96045")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "1000000", out[0])
}

func TestHandleCallUnknownFunction(t *testing.T) {
	h, err := Bind(testContract, GetBuiltinABI("proptoken"), chain.NewClient("http://unused"), testSigner(t), Options{})
	require.NoError(t, err)

	_, err = h.Call(context.Background(), "nonexistent")
	assert.Error(t, err)
}

func TestHandleCallRejectsWriteFunction(t *testing.T) {
	h, err := Bind(testContract, GetBuiltinABI("proptoken"), chain.NewClient("http://unused"), testSigner(t), Options{})
	require.NoError(t, err)

	_, err = h.Call(context.Background(), "mint", "0xd8da6bf26964af9d7eed9e03e53415d37aa96045", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a read function")
}

func TestHandleSend(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_estimateGas":         "0x13880",
		"eth_gasPrice":            "0x77359400",
		"eth_chainId":             "0x7a69",
		"eth_getTransactionCount": "0x5",
		"eth_sendRawTransaction":  "0xabcdef0000000000000000000000000000000000000000000000000000000000",
	}, nil)
	defer srv.Close()

	h, err := Bind(testContract, GetBuiltinABI("proptoken"), chain.NewClient(srv.URL), testSigner(t), Options{})
	require.NoError(t, err)

	hash, err := h.Send(context.Background(), "mint", "0xd8da6bf26964af9d7eed9e03e53415d37aa96045", "1000000")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
}

func TestHandleSendRejectsReadFunction(t *testing.T) {
	h, err := Bind(testContract, GetBuiltinABI("proptoken"), chain.NewClient("http://unused"), testSigner(t), Options{})
	require.NoError(t, err)

	_, err = h.Send(context.Background(), "balanceOf", "0xd8da6bf26964af9d7eed9e03e53415d37aa96045")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a write function")
}

func TestHandleSendUsesConfiguredGas(t *testing.T) {
	var estimateCalls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string `json:"method"`
			ID     int    `json:"id"`
		}
		json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
		if req.Method == "eth_estimateGas" {
			estimateCalls.Add(1)
		}
		results := map[string]interface{}{
			"eth_gasPrice":            "0x77359400",
			"eth_getTransactionCount": "0x0",
			"eth_sendRawTransaction":  "0xhash",
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
			"jsonrpc": "2.0", "id": req.ID, "result": results[req.Method],
		})
	}))
	defer srv.Close()

	h, err := Bind(testContract, GetBuiltinABI("proptoken"), chain.NewClient(srv.URL), testSigner(t), Options{
		ChainID:  big.NewInt(31337),
		GasLimit: 150_000,
		GasPrice: big.NewInt(2_000_000_000),
	})
	require.NoError(t, err)

	_, err = h.Send(context.Background(), "mint", "0xd8da6bf26964af9d7eed9e03e53415d37aa96045", "1")
	require.NoError(t, err)
	assert.Zero(t, estimateCalls.Load(), "configured gas limit must skip estimation")
}
