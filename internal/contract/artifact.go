package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrArtifactNotFound is returned when no candidate location holds the artifact.
var ErrArtifactNotFound = errors.New("artifact not found")

// ErrArtifactParse is returned for artifacts with malformed content.
var ErrArtifactParse = errors.New("artifact parse error")

// PathResolver maps an artifact file name to a candidate path. ok is false
// when the candidate does not exist. Resolvers are pure: they only stat.
type PathResolver func(name string) (path string, ok bool)

// DirResolver resolves artifacts inside dir.
func DirResolver(dir string) PathResolver {
	return func(name string) (string, bool) {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err != nil {
			return "", false
		}
		return p, true
	}
}

// DefaultResolvers returns the candidate locations in precedence order:
// the module-local artifact directory, the legacy top-level contracts
// directory, then the build-output artifacts directory.
func DefaultResolvers(baseDir string) []PathResolver {
	return []PathResolver{
		DirResolver(filepath.Join(baseDir, "contracts", "artifacts")),
		DirResolver(filepath.Join(baseDir, "contracts")),
		DirResolver(filepath.Join(baseDir, "artifacts", "contracts")),
	}
}

// ResolveArtifactPath tries each resolver in order and returns the first hit.
func ResolveArtifactPath(name string, resolvers []PathResolver) (string, error) {
	for _, resolve := range resolvers {
		if p, ok := resolve(name); ok {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrArtifactNotFound, name)
}

// LoadInterfaceDefinition parses an artifact file and extracts its ABI.
// The file is either a Hardhat/Foundry artifact ({"abi":[...], ...}) or a
// raw ABI JSON array; both formats are detected automatically.
func LoadInterfaceDefinition(path string) ([]ABIEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrArtifactParse, path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: artifact file is empty: %s", ErrArtifactParse, path)
	}

	// Hardhat/Foundry artifact: object with an "abi" key.
	var artifact struct {
		ABI json.RawMessage `json:"abi"`
	}
	if json.Unmarshal(data, &artifact) == nil && len(artifact.ABI) > 1 && artifact.ABI[0] == '[' {
		abi, err := parseABI(artifact.ABI)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrArtifactParse, err)
		}
		if err := validateABI(abi, path); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrArtifactParse, err)
		}
		return abi, nil
	}

	// Fall back: treat the whole file as a raw ABI array.
	abi, err := parseABI(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactParse, err)
	}
	if err := validateABI(abi, path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactParse, err)
	}
	return abi, nil
}
