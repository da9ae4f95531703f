package contract

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deploymentsJSON = `{
	"137": {
		"PropertyToken": "0x1111111111111111111111111111111111111111",
		"Escrow": "0x2222222222222222222222222222222222222222"
	},
	"80002": {
		"PropertyToken": "0x3333333333333333333333333333333333333333"
	}
}`

func TestLoadDeployments(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "contracts", "artifacts"), "deployments.json", deploymentsJSON)

	d, err := LoadDeployments(base, zerolog.Nop())
	require.NoError(t, err)

	got, err := d.Address("PropertyToken", "137")
	require.NoError(t, err)
	assert.Equal(t, "0x1111111111111111111111111111111111111111", got)

	avail := d.Available("137")
	assert.Len(t, avail, 2)
}

func TestLoadDeploymentsLegacyLocation(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "contracts"), "deployments.json", deploymentsJSON)

	d, err := LoadDeployments(base, zerolog.Nop())
	require.NoError(t, err)

	_, err = d.Address("Escrow", "137")
	require.NoError(t, err)
}

func TestLoadDeploymentsAbsentYieldsEmpty(t *testing.T) {
	d, err := LoadDeployments(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	_, err = d.Address("PropertyToken", "137")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrContractNotFound)

	assert.Empty(t, d.Available("137"))
}

func TestLoadDeploymentsMalformed(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "contracts"), "deployments.json", "not-json")

	_, err := LoadDeployments(base, zerolog.Nop())
	require.Error(t, err)
}

func TestDeploymentsUnknownNetwork(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "contracts"), "deployments.json", deploymentsJSON)

	d, err := LoadDeployments(base, zerolog.Nop())
	require.NoError(t, err)

	assert.Empty(t, d.Available("1"))

	_, err = d.Address("PropertyToken", "1")
	assert.ErrorIs(t, err, ErrContractNotFound)
}
