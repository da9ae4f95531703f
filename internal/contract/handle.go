package contract

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/proptoken/chaincore/internal/addr"
	"github.com/proptoken/chaincore/internal/chain"
	"github.com/proptoken/chaincore/internal/wallet"
)

// fallbackGasLimit is used when estimation fails and no override is configured.
const fallbackGasLimit = 200_000

// Options tune how a Handle issues write transactions.
type Options struct {
	ChainID  *big.Int
	GasLimit uint64      // 0 = estimate per call
	GasPrice *big.Int    // nil = query the endpoint per call
	NonceMu  *sync.Mutex // shared across handles signing with the same key
}

// Handle is an address bound to an interface definition through a chain
// connection and a signer. Addresses and their interfaces are immutable
// once deployed, so a Handle may be memoized by address indefinitely.
type Handle struct {
	Address string

	abi    []ABIEntry
	client *chain.Client
	signer *wallet.Signer
	opts   Options
}

// Bind validates the address and returns a callable handle.
func Bind(address string, abi []ABIEntry, client *chain.Client, signer *wallet.Signer, opts Options) (*Handle, error) {
	if !addr.IsValidAddress(address) {
		return nil, fmt.Errorf("%w: %s", addr.ErrInvalidAddress, address)
	}
	if opts.NonceMu == nil {
		opts.NonceMu = &sync.Mutex{}
	}
	return &Handle{
		Address: strings.ToLower(address),
		abi:     abi,
		client:  client,
		signer:  signer,
		opts:    opts,
	}, nil
}

// ABI returns the bound interface definition.
func (h *Handle) ABI() []ABIEntry { return h.abi }

// Call invokes a read-only function and returns the decoded outputs.
func (h *Handle) Call(ctx context.Context, funcName string, args ...string) ([]string, error) {
	fn := FindFunction(h.abi, funcName)
	if fn == nil {
		return nil, fmt.Errorf("function %q not found in ABI", funcName)
	}
	if !fn.IsReadFunction() {
		return nil, fmt.Errorf("function %q is not a read function (stateMutability: %s)", funcName, fn.StateMutability)
	}

	calldata, err := encodeCall(fn, args)
	if err != nil {
		return nil, fmt.Errorf("encoding call: %w", err)
	}

	result, err := h.client.CallContract(ctx, h.Address, calldata)
	if err != nil {
		return nil, fmt.Errorf("contract call failed: %w", err)
	}

	decoded, err := decodeResult(fn, result)
	if err != nil {
		return nil, fmt.Errorf("decoding result: %w", err)
	}
	return decoded, nil
}

// Send invokes a state-changing function: builds calldata, resolves gas and
// nonce, signs and broadcasts. Returns the transaction hash without waiting
// for inclusion — confirmation is the caller's concern.
//
// The nonce mutex serializes fetch-and-use across concurrent sends with the
// same signing key, so parallel mint/transfer calls do not collide.
func (h *Handle) Send(ctx context.Context, funcName string, args ...string) (string, error) {
	fn := FindFunction(h.abi, funcName)
	if fn == nil {
		return "", fmt.Errorf("function %q not found in ABI", funcName)
	}
	if !fn.IsWriteFunction() {
		return "", fmt.Errorf("function %q is not a write function", funcName)
	}

	calldata, err := encodeCall(fn, args)
	if err != nil {
		return "", fmt.Errorf("encoding call: %w", err)
	}

	from := h.signer.Address()

	gas := h.opts.GasLimit
	if gas == 0 {
		gas, err = h.client.EstimateGas(ctx, from, h.Address, calldata)
		if err != nil {
			gas = fallbackGasLimit
		}
	}

	gasPrice := h.opts.GasPrice
	if gasPrice == nil {
		gasPrice, err = h.client.GasPrice(ctx)
		if err != nil {
			return "", fmt.Errorf("getting gas price: %w", err)
		}
	}

	chainID := h.opts.ChainID
	if chainID == nil {
		chainID, err = h.client.ChainID(ctx)
		if err != nil {
			return "", fmt.Errorf("getting chain id: %w", err)
		}
	}

	h.opts.NonceMu.Lock()
	defer h.opts.NonceMu.Unlock()

	nonce, err := h.client.PendingNonce(ctx, from)
	if err != nil {
		return "", fmt.Errorf("getting nonce: %w", err)
	}

	toAddr := common.HexToAddress(h.Address)
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: gasPrice,
		GasFeeCap: new(big.Int).Mul(gasPrice, big.NewInt(2)),
		Gas:       gas,
		To:        &toAddr,
		Value:     big.NewInt(0),
		Data:      common.FromHex(calldata),
	})

	raw, err := h.signer.SignTx(tx, chainID)
	if err != nil {
		return "", fmt.Errorf("signing transaction: %w", err)
	}

	hash, err := h.client.SendRawTransaction(ctx, "0x"+common.Bytes2Hex(raw))
	if err != nil {
		return "", fmt.Errorf("broadcasting transaction: %w", err)
	}
	return hash, nil
}

// WaitMined blocks until hash is included in a block or timeout expires.
func (h *Handle) WaitMined(ctx context.Context, hash string, timeout time.Duration) (*chain.Receipt, error) {
	return h.client.WaitForReceipt(ctx, hash, timeout)
}
