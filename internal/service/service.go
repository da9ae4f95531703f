// Package service orchestrates contract handles into the chain operations
// the platform consumes: contract validation, metadata and balance reads,
// mint/transfer issuance, receipt polling and event subscriptions.
//
// A Service is constructed once at startup from the resolved configuration
// and passed by reference to every caller. It keeps no cache of on-chain
// state: every read reflects the chain at call time.
package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/proptoken/chaincore/internal/addr"
	"github.com/proptoken/chaincore/internal/chain"
	"github.com/proptoken/chaincore/internal/config"
	"github.com/proptoken/chaincore/internal/contract"
	"github.com/proptoken/chaincore/internal/wallet"
)

// defaultDecimals is assumed when a token does not expose a decimals reader.
const defaultDecimals = 18

// confirmTimeout bounds how long Mint/Transfer wait for block inclusion.
// A timeout is inconclusive, not proof of failure: the returned error
// carries the hash so callers can keep polling Receipt.
const confirmTimeout = 90 * time.Second

var (
	// ErrInvalidWalletAddress is returned for malformed holder addresses.
	ErrInvalidWalletAddress = errors.New("invalid wallet address")

	// ErrMetadataUnavailable is returned when a required token field cannot be read.
	ErrMetadataUnavailable = errors.New("token metadata unavailable")

	// ErrTransactionFailed wraps signing, submission and confirmation failures.
	ErrTransactionFailed = errors.New("transaction failed")
)

// Service exposes the chain operations backing the token and admin workflows.
// Safe for concurrent use.
type Service struct {
	cfg         *config.Config
	client      *chain.Client
	signer      *wallet.Signer
	abi         []contract.ABIEntry
	deployments *contract.Deployments
	log         zerolog.Logger

	chainID  *big.Int // nil = query per send
	gasPrice *big.Int // nil = query per send
	nonceMu  sync.Mutex

	handleMu sync.Mutex
	handles  map[string]*contract.Handle

	subMu        sync.Mutex
	subs         map[string]*subscription
	pollInterval time.Duration
}

// New builds a Service from cfg. The token interface definition is loaded
// from the configured artifact; when no artifact is present on disk the
// embedded property-token ABI is used instead.
func New(cfg *config.Config, log zerolog.Logger) (*Service, error) {
	signer, err := wallet.NewSigner(cfg.SigningKey)
	if err != nil {
		return nil, err
	}

	abi, err := loadABI(cfg, log)
	if err != nil {
		return nil, err
	}

	deployments, err := contract.LoadDeployments(cfg.ContractsDir, log)
	if err != nil {
		return nil, err
	}

	s := &Service{
		cfg:          cfg,
		client:       chain.NewClient(cfg.RPCURL),
		signer:       signer,
		abi:          abi,
		deployments:  deployments,
		log:          log,
		handles:      make(map[string]*contract.Handle),
		subs:         make(map[string]*subscription),
		pollInterval: 5 * time.Second,
	}

	if cfg.ChainID != 0 {
		s.chainID = big.NewInt(cfg.ChainID)
	}
	if cfg.GasPriceHint != "" {
		gp, ok := new(big.Int).SetString(cfg.GasPriceHint, 10)
		if !ok {
			return nil, fmt.Errorf("invalid gas price hint: %s", cfg.GasPriceHint)
		}
		s.gasPrice = gp
	}

	return s, nil
}

func loadABI(cfg *config.Config, log zerolog.Logger) ([]contract.ABIEntry, error) {
	path, err := contract.ResolveArtifactPath(cfg.ArtifactName, contract.DefaultResolvers(cfg.ContractsDir))
	if errors.Is(err, contract.ErrArtifactNotFound) {
		log.Warn().Str("artifact", cfg.ArtifactName).Msg("artifact not found, using embedded property-token ABI")
		return contract.GetBuiltinABI("proptoken"), nil
	}
	if err != nil {
		return nil, err
	}
	return contract.LoadInterfaceDefinition(path)
}

// Deployments returns the name → address registry loaded at startup.
func (s *Service) Deployments() *contract.Deployments { return s.deployments }

// SignerAddress returns the platform account used for state-changing calls.
func (s *Service) SignerAddress() string { return s.signer.Address() }

// handle returns a memoized bound handle for address. Contract addresses
// and their interfaces are immutable once deployed, so entries never need
// invalidation.
func (s *Service) handle(address string) (*contract.Handle, error) {
	key := strings.ToLower(address)

	s.handleMu.Lock()
	defer s.handleMu.Unlock()

	if h, ok := s.handles[key]; ok {
		return h, nil
	}

	h, err := contract.Bind(address, s.abi, s.client, s.signer, contract.Options{
		ChainID:  s.chainID,
		GasLimit: s.cfg.GasLimit,
		GasPrice: s.gasPrice,
		NonceMu:  &s.nonceMu,
	})
	if err != nil {
		return nil, err
	}
	s.handles[key] = h
	return h, nil
}

// Metadata is a read-only snapshot of a token's on-chain state at query
// time. Supply and ownership change independently of this service, so a
// snapshot is never cached beyond the call that produced it.
type Metadata struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Decimals    int    `json:"decimals"`
	TotalSupply string `json:"totalSupply"` // base units
	Owner       string `json:"owner,omitempty"`
}

// probeOutcome carries one metadata read, degraded to ok=false on failure.
type probeOutcome struct {
	value string
	ok    bool
}

// probeMetadata issues the name/symbol/totalSupply/decimals reads (plus the
// optional owner read) concurrently, so latency is bounded by the slowest
// probe rather than their sum. Individual failures degrade to absent values.
func (s *Service) probeMetadata(ctx context.Context, h *contract.Handle, withOwner bool) (name, symbol, supply, owner probeOutcome, decimals int) {
	probe := func(fn string, out *probeOutcome) func() {
		return func() {
			res, err := h.Call(ctx, fn)
			if err != nil || len(res) == 0 || res[0] == "" {
				return
			}
			*out = probeOutcome{value: res[0], ok: true}
		}
	}

	var decimalsOut probeOutcome
	probes := []func(){
		probe("name", &name),
		probe("symbol", &symbol),
		probe("totalSupply", &supply),
		probe("decimals", &decimalsOut),
	}
	if withOwner {
		probes = append(probes, probe("owner", &owner))
	}

	var wg sync.WaitGroup
	for _, p := range probes {
		wg.Add(1)
		go func(run func()) {
			defer wg.Done()
			run()
		}(p)
	}
	wg.Wait()

	decimals = defaultDecimals
	if decimalsOut.ok {
		if n, err := strconv.Atoi(decimalsOut.value); err == nil {
			decimals = n
		}
	}
	return name, symbol, supply, owner, decimals
}

// TokenMetadata reads a token's metadata fresh from the chain. It fails
// with ErrMetadataUnavailable when any of name/symbol/totalSupply cannot be
// read; decimals default to 18 and owner is optional.
func (s *Service) TokenMetadata(ctx context.Context, address string) (*Metadata, error) {
	h, err := s.handle(address)
	if err != nil {
		return nil, err
	}

	name, symbol, supply, owner, decimals := s.probeMetadata(ctx, h, true)
	if !name.ok || !symbol.ok || !supply.ok {
		return nil, fmt.Errorf("%w: %s", ErrMetadataUnavailable, address)
	}

	return &Metadata{
		Name:        name.value,
		Symbol:      symbol.value,
		Decimals:    decimals,
		TotalSupply: supply.value,
		Owner:       owner.value,
	}, nil
}

// BalanceOf returns walletAddress's balance on the token contract, in base
// units as an arbitrary-precision decimal string.
func (s *Service) BalanceOf(ctx context.Context, contractAddress, walletAddress string) (string, error) {
	if !addr.IsValidAddress(walletAddress) {
		return "", fmt.Errorf("%w: %s", ErrInvalidWalletAddress, walletAddress)
	}

	h, err := s.handle(contractAddress)
	if err != nil {
		return "", err
	}

	out, err := h.Call(ctx, "balanceOf", walletAddress)
	if err != nil {
		return "", err
	}
	if len(out) == 0 || out[0] == "" {
		return "", fmt.Errorf("%w: empty balanceOf result from %s", ErrMetadataUnavailable, contractAddress)
	}
	return out[0], nil
}

// GasPrice returns the current gas price in wei as a decimal string.
func (s *Service) GasPrice(ctx context.Context) (string, error) {
	gp, err := s.client.GasPrice(ctx)
	if err != nil {
		return "", err
	}
	return gp.String(), nil
}

// BlockNumber returns the latest block number.
func (s *Service) BlockNumber(ctx context.Context) (uint64, error) {
	return s.client.BlockNumber(ctx)
}
