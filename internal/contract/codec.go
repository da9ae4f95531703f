package contract

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/sha3"
)

// encodeCall builds calldata: 4-byte selector + 32-byte-word encoded args.
func encodeCall(fn *ABIEntry, args []string) (string, error) {
	if len(args) != len(fn.Inputs) {
		return "", fmt.Errorf("%s expects %d args, got %d", fn.Name, len(fn.Inputs), len(args))
	}

	var encoded strings.Builder
	encoded.WriteString(functionSelector(fn))

	for i, param := range fn.Inputs {
		enc, err := encodeParam(param.Type, args[i])
		if err != nil {
			return "", fmt.Errorf("encoding param %s: %w", param.Name, err)
		}
		encoded.WriteString(enc)
	}

	return encoded.String(), nil
}

// functionSelector computes the 4-byte selector for a function.
func functionSelector(fn *ABIEntry) string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(fn.Signature()))
	return "0x" + hex.EncodeToString(h.Sum(nil)[:4])
}

// encodeParam encodes a single ABI parameter value as a 32-byte hex word.
// Covers the types the token interfaces actually use: address, integers,
// bool and bytes32. Dynamic types are out of scope for this core.
func encodeParam(typ, val string) (string, error) {
	val = strings.TrimPrefix(val, "0x")

	switch {
	case typ == "address":
		if _, err := hex.DecodeString(val); err != nil {
			return "", fmt.Errorf("invalid address payload: %s", val)
		}
		if len(val) > 64 {
			return "", fmt.Errorf("address payload too long: %s", val)
		}
		return strings.Repeat("0", 64-len(val)) + strings.ToLower(val), nil

	case strings.HasPrefix(typ, "uint") || strings.HasPrefix(typ, "int"):
		n := new(big.Int)
		if _, ok := n.SetString(val, 0); !ok {
			return "", fmt.Errorf("invalid integer: %s", val)
		}
		if n.Sign() < 0 {
			return "", fmt.Errorf("negative values not supported: %s", val)
		}
		return fmt.Sprintf("%064x", n), nil

	case typ == "bool":
		if val == "true" || val == "1" {
			return fmt.Sprintf("%064d", 1), nil
		}
		return fmt.Sprintf("%064d", 0), nil

	case typ == "bytes32":
		if _, err := hex.DecodeString(val); err != nil || len(val) > 64 {
			return "", fmt.Errorf("invalid bytes32 payload: %s", val)
		}
		return val + strings.Repeat("0", 64-len(val)), nil

	default:
		return "", fmt.Errorf("unsupported parameter type: %s", typ)
	}
}

// decodeResult decodes raw hex return data into one string per output.
// A short or undecodable word degrades to an empty string so partial
// results remain usable.
func decodeResult(fn *ABIEntry, hexData string) ([]string, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(hexData, "0x"))
	if err != nil {
		return nil, fmt.Errorf("decoding hex result: %w", err)
	}

	if len(fn.Outputs) == 0 {
		return nil, nil
	}

	var results []string
	offset := 0

	for _, out := range fn.Outputs {
		if offset+32 > len(data) {
			results = append(results, "")
			continue
		}

		word := data[offset : offset+32]
		offset += 32

		val, err := decodeWord(out.Type, word, data)
		if err != nil {
			results = append(results, "")
			continue
		}
		results = append(results, val)
	}

	return results, nil
}

func decodeWord(typ string, word []byte, fullData []byte) (string, error) {
	switch {
	case typ == "address":
		return "0x" + hex.EncodeToString(word[12:]), nil

	case strings.HasPrefix(typ, "uint") || strings.HasPrefix(typ, "int"):
		return new(big.Int).SetBytes(word).String(), nil

	case typ == "bool":
		if word[31] == 1 {
			return "true", nil
		}
		return "false", nil

	case typ == "string":
		// Offset + length encoding.
		offsetVal := new(big.Int).SetBytes(word).Uint64()
		if offsetVal+32 > uint64(len(fullData)) {
			return "", nil
		}
		length := new(big.Int).SetBytes(fullData[offsetVal : offsetVal+32]).Uint64()
		start := offsetVal + 32
		if start+length > uint64(len(fullData)) {
			return "", nil
		}
		return string(fullData[start : start+length]), nil

	default:
		return "0x" + hex.EncodeToString(word), nil
	}
}
