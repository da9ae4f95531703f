package wallet

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hardhat's well-known first dev account.
const (
	devKey     = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	devAddress = "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"
)

func TestNewSignerDerivesAddress(t *testing.T) {
	s, err := NewSigner(devKey)
	require.NoError(t, err)
	assert.Equal(t, devAddress, s.Address())
}

func TestNewSignerAcceptsPrefix(t *testing.T) {
	s, err := NewSigner("0x" + devKey)
	require.NoError(t, err)
	assert.Equal(t, devAddress, s.Address())
}

func TestNewSignerRejectsGarbage(t *testing.T) {
	_, err := NewSigner("not-a-key")
	require.Error(t, err)

	_, err = NewSigner("")
	require.Error(t, err)
}

func TestSignTx(t *testing.T) {
	s, err := NewSigner(devKey)
	require.NoError(t, err)

	to := common.HexToAddress("0x1234567890abcdef1234567890abcdef12345678")
	chainID := big.NewInt(31337)
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     0,
		GasTipCap: big.NewInt(1_000_000_000),
		GasFeeCap: big.NewInt(2_000_000_000),
		Gas:       21000,
		To:        &to,
		Value:     big.NewInt(0),
	})

	raw, err := s.SignTx(tx, chainID)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)

	// Signed bytes must decode back to a transaction from our address.
	var decoded types.Transaction
	require.NoError(t, decoded.UnmarshalBinary(raw))
	from, err := types.Sender(types.NewLondonSigner(chainID), &decoded)
	require.NoError(t, err)
	assert.Equal(t, devAddress, strings.ToLower(from.Hex()))
}
