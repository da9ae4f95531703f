// Package chain is a minimal JSON-RPC client for EVM-style endpoints.
// It is the only place in the codebase that talks to the network; every
// failure to reach or parse the endpoint is wrapped in ErrConnection so
// callers can distinguish transport faults from on-chain outcomes.
package chain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"
)

// ErrConnection indicates the endpoint was unreachable or returned garbage.
var ErrConnection = errors.New("chain endpoint unreachable")

// Client is a JSON-RPC client bound to one endpoint URL. It is safe for
// concurrent use; the underlying http.Client handles connection pooling.
type Client struct {
	url    string
	client *http.Client
}

// NewClient creates a Client pointed at url.
func NewClient(url string) *Client {
	return &Client{
		url: url,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// URL returns the endpoint this client talks to.
func (c *Client) URL() string { return c.url }

// CallContract issues an eth_call against a contract with raw calldata and
// returns the hex-encoded return data.
func (c *Client) CallContract(ctx context.Context, to, calldata string) (string, error) {
	result, err := c.call(ctx, "eth_call", map[string]string{
		"to":   to,
		"data": calldata,
	}, "latest")
	if err != nil {
		return "", err
	}
	return asString(result)
}

// GetCode returns the bytecode at an address. "0x" means no code deployed.
func (c *Client) GetCode(ctx context.Context, address string) (string, error) {
	result, err := c.call(ctx, "eth_getCode", address, "latest")
	if err != nil {
		return "", err
	}
	return asString(result)
}

// GasPrice returns the current gas price in wei.
func (c *Client) GasPrice(ctx context.Context) (*big.Int, error) {
	return c.callBig(ctx, "eth_gasPrice")
}

// BlockNumber returns the latest block number.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	n, err := c.callBig(ctx, "eth_blockNumber")
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

// ChainID returns the chain identifier reported by the endpoint.
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	return c.callBig(ctx, "eth_chainId")
}

// PendingNonce returns the transaction count for address including queued
// transactions, so concurrent senders observe each other's submissions.
func (c *Client) PendingNonce(ctx context.Context, address string) (uint64, error) {
	n, err := c.callBig(ctx, "eth_getTransactionCount", address, "pending")
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

// EstimateGas estimates the gas needed for a contract call.
func (c *Client) EstimateGas(ctx context.Context, from, to, calldata string) (uint64, error) {
	params := map[string]string{"from": from, "to": to}
	if calldata != "" {
		params["data"] = calldata
	}
	n, err := c.callBig(ctx, "eth_estimateGas", params, "latest")
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

// SendRawTransaction broadcasts a signed raw transaction and returns its hash.
func (c *Client) SendRawTransaction(ctx context.Context, rawTx string) (string, error) {
	result, err := c.call(ctx, "eth_sendRawTransaction", rawTx)
	if err != nil {
		return "", err
	}
	return asString(result)
}

// Receipt holds the on-chain receipt of a mined transaction.
type Receipt struct {
	Hash        string
	Status      uint64 // 1 = success, 0 = reverted
	BlockNumber uint64
	BlockHash   string
	GasUsed     uint64
	Logs        []LogEntry
}

// TransactionReceipt fetches the receipt for hash.
// Returns nil, nil while the transaction is not yet included in a block.
func (c *Client) TransactionReceipt(ctx context.Context, hash string) (*Receipt, error) {
	result, err := c.call(ctx, "eth_getTransactionReceipt", hash)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil // still pending
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	var r struct {
		Status      string     `json:"status"`
		BlockNumber string     `json:"blockNumber"`
		BlockHash   string     `json:"blockHash"`
		GasUsed     string     `json:"gasUsed"`
		Logs        []LogEntry `json:"logs"`
	}
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("parsing receipt: %w", err)
	}

	receipt := &Receipt{Hash: hash, BlockHash: r.BlockHash, Logs: r.Logs}
	if s, ok := parseBigHex(r.Status); ok {
		receipt.Status = s.Uint64()
	}
	if bn, ok := parseBigHex(r.BlockNumber); ok {
		receipt.BlockNumber = bn.Uint64()
	}
	if gu, ok := parseBigHex(r.GasUsed); ok {
		receipt.GasUsed = gu.Uint64()
	}
	return receipt, nil
}

// WaitForReceipt polls until the transaction is mined or the deadline
// expires. A reverted transaction returns the receipt together with an
// error. A deadline hit is inconclusive: the transaction may still be
// included later, so the caller should poll the receipt again.
func (c *Client) WaitForReceipt(ctx context.Context, hash string, timeout time.Duration) (*Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		receipt, err := c.TransactionReceipt(ctx, hash)
		if err != nil {
			return nil, err
		}
		if receipt != nil {
			if receipt.Status == 0 {
				return receipt, fmt.Errorf("transaction reverted (hash: %s)", hash)
			}
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("transaction %s not mined within %s", hash, timeout)
		case <-ticker.C:
		}
	}
}

// LogEntry holds one event log as reported by the endpoint.
type LogEntry struct {
	Address     string   `json:"address"`
	Topics      []string `json:"topics"`
	Data        string   `json:"data"`
	BlockNumber string   `json:"blockNumber"`
	TxHash      string   `json:"transactionHash"`
	LogIndex    string   `json:"logIndex"`
}

// Block returns the log's block number, or 0 if unparseable.
func (l LogEntry) Block() uint64 {
	if n, ok := parseBigHex(l.BlockNumber); ok {
		return n.Uint64()
	}
	return 0
}

// GetLogs queries event logs for address matching the topic filter.
func (c *Client) GetLogs(ctx context.Context, address string, topics []string, fromBlock, toBlock string) ([]LogEntry, error) {
	filter := map[string]interface{}{
		"address":   address,
		"fromBlock": fromBlock,
		"toBlock":   toBlock,
	}
	if len(topics) > 0 {
		filter["topics"] = topics
	}

	result, err := c.call(ctx, "eth_getLogs", filter)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	var logs []LogEntry
	if err := json.Unmarshal(raw, &logs); err != nil {
		return nil, fmt.Errorf("parsing logs: %w", err)
	}
	return logs, nil
}

// --- JSON-RPC plumbing ---

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      int           `json:"id"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (c *Client) call(ctx context.Context, method string, params ...interface{}) (interface{}, error) {
	reqBody, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(string(reqBody)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrConnection, err)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return nil, fmt.Errorf("%w: parsing response: %v", ErrConnection, err)
	}

	if rpcResp.Error != nil {
		return nil, fmt.Errorf("RPC error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}

	if len(rpcResp.Result) == 0 {
		return nil, nil
	}
	var result interface{}
	if err := json.Unmarshal(rpcResp.Result, &result); err != nil {
		return nil, fmt.Errorf("%w: parsing result: %v", ErrConnection, err)
	}
	return result, nil
}

// callBig issues an RPC call whose result is a hex quantity.
func (c *Client) callBig(ctx context.Context, method string, params ...interface{}) (*big.Int, error) {
	result, err := c.call(ctx, method, params...)
	if err != nil {
		return nil, err
	}
	hexStr, err := asString(result)
	if err != nil {
		return nil, err
	}
	n, ok := parseBigHex(hexStr)
	if !ok {
		return nil, fmt.Errorf("could not parse %s result: %s", method, hexStr)
	}
	return n, nil
}

func asString(result interface{}) (string, error) {
	s, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("unexpected result type: %T", result)
	}
	return s, nil
}

func parseBigHex(s string) (*big.Int, bool) {
	n, ok := new(big.Int).SetString(strings.TrimPrefix(s, "0x"), 16)
	return n, ok
}

// RevertReason pulls the human-readable revert reason out of an RPC error
// message, falling back to the full message.
func RevertReason(errMsg string) string {
	if idx := strings.Index(errMsg, "execution reverted:"); idx >= 0 {
		return strings.TrimSpace(errMsg[idx:])
	}
	if idx := strings.Index(errMsg, "revert"); idx >= 0 {
		return strings.TrimSpace(errMsg[idx:])
	}
	return errMsg
}
