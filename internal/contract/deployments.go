package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// ErrContractNotFound is returned when a name has no deployed address on a network.
var ErrContractNotFound = errors.New("contract not found")

// deploymentsFile is the deployments artifact name.
const deploymentsFile = "deployments.json"

// Deployments maps networkID → contract name → deployed address. It is
// loaded once at startup and read-only for the process lifetime.
type Deployments struct {
	networks map[string]map[string]string
}

// LoadDeployments reads the deployments artifact, trying the module-local
// artifact directory first and the legacy contracts directory second.
// A missing artifact yields an empty registry, not a failure: deployment
// metadata is advisory and the service can start without it.
func LoadDeployments(baseDir string, log zerolog.Logger) (*Deployments, error) {
	candidates := []string{
		filepath.Join(baseDir, "contracts", "artifacts", deploymentsFile),
		filepath.Join(baseDir, "contracts", deploymentsFile),
	}

	for _, p := range candidates {
		data, err := os.ReadFile(p)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading deployments: %w", err)
		}

		var networks map[string]map[string]string
		if err := json.Unmarshal(data, &networks); err != nil {
			return nil, fmt.Errorf("parsing deployments %s: %w", p, err)
		}
		log.Debug().Str("path", p).Int("networks", len(networks)).Msg("loaded deployment registry")
		return &Deployments{networks: networks}, nil
	}

	log.Warn().Str("dir", baseDir).Msg("no deployments artifact found, starting with empty registry")
	return &Deployments{networks: map[string]map[string]string{}}, nil
}

// Address returns the deployed address of a named contract on a network.
func (d *Deployments) Address(name, networkID string) (string, error) {
	if addr, ok := d.networks[networkID][name]; ok {
		return addr, nil
	}
	return "", fmt.Errorf("%w: %s on network %s", ErrContractNotFound, name, networkID)
}

// Available returns all name → address entries for a network. An unknown
// network yields an empty map, not an error.
func (d *Deployments) Available(networkID string) map[string]string {
	out := make(map[string]string, len(d.networks[networkID]))
	for name, addr := range d.networks[networkID] {
		out[name] = addr
	}
	return out
}
