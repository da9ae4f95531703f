package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/proptoken/chaincore/internal/addr"
	"github.com/proptoken/chaincore/internal/amount"
	"github.com/proptoken/chaincore/internal/chain"
	"github.com/proptoken/chaincore/internal/contract"
)

// TxStatus is the lifecycle state of a submitted transaction.
type TxStatus string

const (
	StatusPending   TxStatus = "pending"
	StatusConfirmed TxStatus = "confirmed"
	StatusFailed    TxStatus = "failed"
)

// TxReceipt is a point-in-time read of a transaction's inclusion outcome.
type TxReceipt struct {
	Hash        string   `json:"hash"`
	Status      TxStatus `json:"status"`
	BlockNumber uint64   `json:"blockNumber"`
	BlockHash   string   `json:"blockHash"`
	GasUsed     uint64   `json:"gasUsed"`
	Events      []string `json:"events"`
}

// Mint issues tokens to recipient and blocks until the transaction is
// included in a block. amount is a human-decimal string scaled by the
// token's own decimals, fetched fresh for this call.
func (s *Service) Mint(ctx context.Context, contractAddress, recipient, amt string) (string, error) {
	return s.submit(ctx, contractAddress, "mint", recipient, amt)
}

// Transfer moves tokens from the platform account to recipient and blocks
// until the transaction is included in a block.
func (s *Service) Transfer(ctx context.Context, contractAddress, recipient, amt string) (string, error) {
	return s.submit(ctx, contractAddress, "transfer", recipient, amt)
}

// submit validates, converts, signs, broadcasts and waits for one
// confirmation. There is no retry and no deduplication here: a repeated
// call issues a second on-chain transaction, and retry policy belongs to
// the caller.
func (s *Service) submit(ctx context.Context, contractAddress, funcName, recipient, amt string) (string, error) {
	if !addr.IsValidAddress(recipient) {
		return "", fmt.Errorf("%w: recipient %s", addr.ErrInvalidAddress, recipient)
	}

	h, err := s.handle(contractAddress)
	if err != nil {
		return "", err
	}

	decimals, err := s.tokenDecimals(ctx, h)
	if err != nil {
		return "", err
	}

	baseUnits, err := amount.ToBaseUnits(amt, decimals)
	if err != nil {
		return "", err
	}

	hash, err := h.Send(ctx, funcName, recipient, baseUnits)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrTransactionFailed, chain.RevertReason(err.Error()))
	}

	s.log.Info().
		Str("contract", h.Address).
		Str("function", funcName).
		Str("recipient", recipient).
		Str("baseUnits", baseUnits).
		Str("hash", hash).
		Msg("transaction submitted, awaiting inclusion")

	if _, err := h.WaitMined(ctx, hash, confirmTimeout); err != nil {
		return "", fmt.Errorf("%w: %s (hash: %s)", ErrTransactionFailed, chain.RevertReason(err.Error()), hash)
	}

	return hash, nil
}

// tokenDecimals reads the token's decimals fresh, defaulting to 18 when the
// contract does not expose a decimals reader.
func (s *Service) tokenDecimals(ctx context.Context, h *contract.Handle) (int, error) {
	out, err := h.Call(ctx, "decimals")
	if err != nil || len(out) == 0 || out[0] == "" {
		return defaultDecimals, nil
	}
	n, err := strconv.Atoi(out[0])
	if err != nil {
		return defaultDecimals, nil
	}
	return n, nil
}

// Receipt looks up the inclusion outcome for hash. A hash the endpoint has
// no record of yet is a normal state for a just-submitted transaction: it
// yields StatusPending with zeroed block fields, not an error.
func (s *Service) Receipt(ctx context.Context, hash string) (*TxReceipt, error) {
	if !addr.IsValidTxHash(hash) {
		return nil, fmt.Errorf("%w: %s", addr.ErrInvalidTxHash, hash)
	}

	r, err := s.client.TransactionReceipt(ctx, hash)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return &TxReceipt{Hash: hash, Status: StatusPending}, nil
	}

	status := StatusConfirmed
	if r.Status == 0 {
		status = StatusFailed
	}

	return &TxReceipt{
		Hash:        hash,
		Status:      status,
		BlockNumber: r.BlockNumber,
		BlockHash:   r.BlockHash,
		GasUsed:     r.GasUsed,
		Events:      s.decodeEventNames(r.Logs),
	}, nil
}
