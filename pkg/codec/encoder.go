package codec

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// ErrParameterCount is returned when the number of values does not match
// the number of type tags.
var ErrParameterCount = errors.New("parameter count does not match type count")

// EncodedCall is a selector followed by one 32 byte word per parameter.
type EncodedCall struct {
	Selector Selector
	Words    []string // 64 lowercase hex characters each, no prefix
}

// Hex returns the 0x-prefixed call data string. Its length is always
// 10 + 64*len(Words).
func (c EncodedCall) Hex() string {
	var sb strings.Builder
	sb.Grow(2 + SelectorHexLen + WordHexLen*len(c.Words))
	sb.WriteString(c.Selector.Hex())
	for _, w := range c.Words {
		sb.WriteString(w)
	}
	return sb.String()
}

// Bytes returns the raw call data.
func (c EncodedCall) Bytes() []byte {
	return common.FromHex(c.Hex())
}

// EncodeCall resolves the selector for name(tags...) and encodes values.
func EncodeCall(name string, tags []TypeTag, values []any) (EncodedCall, error) {
	sel, err := ResolveSelector(name, tags)
	if err != nil {
		return EncodedCall{}, err
	}
	words, err := encodeWords(tags, values)
	if err != nil {
		return EncodedCall{}, fmt.Errorf("encoding %s: %w", NewSignature(name, tags...), err)
	}
	return EncodedCall{Selector: sel, Words: words}, nil
}

// BuildCallData returns the 0x-prefixed call data for name(tags...) applied
// to values.
func BuildCallData(name string, tags []TypeTag, values []any) (string, error) {
	call, err := EncodeCall(name, tags, values)
	if err != nil {
		return "", err
	}
	return call.Hex(), nil
}

// EncodeParameters concatenates the encoded words of values, in order.
func EncodeParameters(tags []TypeTag, values []any) (string, error) {
	words, err := encodeWords(tags, values)
	if err != nil {
		return "", err
	}
	return strings.Join(words, ""), nil
}

func encodeWords(tags []TypeTag, values []any) ([]string, error) {
	if len(tags) != len(values) {
		return nil, fmt.Errorf("%w: %d types, %d values", ErrParameterCount, len(tags), len(values))
	}
	words := make([]string, len(tags))
	for i, t := range tags {
		w, err := EncodeParameter(t, values[i])
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", i, err)
		}
		words[i] = w
	}
	return words, nil
}

// EncodeParameter encodes a single value as a 64 hex character word.
// Addresses and integers are left padded; bytes32 data is right padded.
func EncodeParameter(tag TypeTag, value any) (string, error) {
	switch tag {
	case Address:
		return encodeAddress(value)
	case Uint256:
		return encodeUint256(value)
	case Bytes32:
		return encodeBytes32(value)
	case Int224, Uint32:
		return "", &FormatError{Kind: "type tag", Input: tag.String(), Reason: "type is decode-only"}
	default:
		return "", &FormatError{Kind: "type tag", Input: tag.String(), Reason: "unsupported type"}
	}
}

func encodeAddress(value any) (string, error) {
	var digits string
	switch v := value.(type) {
	case common.Address:
		digits = common.Bytes2Hex(v.Bytes())
	case *common.Address:
		if v == nil {
			return "", &FormatError{Kind: "address", Input: "<nil>", Reason: "nil address"}
		}
		digits = common.Bytes2Hex(v.Bytes())
	case string:
		if !common.IsHexAddress(v) {
			return "", &FormatError{Kind: "address", Input: v, Reason: "expected 20 bytes of hex"}
		}
		digits = strings.ToLower(strip0x(v))
	default:
		return "", &FormatError{Kind: "address", Input: fmt.Sprint(value), Reason: fmt.Sprintf("unsupported Go type %T", value)}
	}
	return leftPad(digits), nil
}

func encodeUint256(value any) (string, error) {
	n, err := toBigInt(value)
	if err != nil {
		return "", err
	}
	if n.Sign() < 0 {
		return "", &FormatError{Kind: "uint256", Input: n.String(), Reason: "negative value"}
	}
	u, overflow := uint256.FromBig(n)
	if overflow {
		return "", &FormatError{Kind: "uint256", Input: n.String(), Reason: "value exceeds 256 bits"}
	}
	word := u.Bytes32()
	return common.Bytes2Hex(word[:]), nil
}

func toBigInt(value any) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		if v == nil {
			return nil, &FormatError{Kind: "uint256", Input: "<nil>", Reason: "nil integer"}
		}
		return v, nil
	case *uint256.Int:
		if v == nil {
			return nil, &FormatError{Kind: "uint256", Input: "<nil>", Reason: "nil integer"}
		}
		return v.ToBig(), nil
	case int:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case uint:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case string:
		s := strings.TrimSpace(v)
		base := 10
		if has0x(s) {
			s, base = s[2:], 16
		}
		if s == "" {
			return nil, &FormatError{Kind: "uint256", Input: v, Reason: "empty value"}
		}
		n, ok := new(big.Int).SetString(s, base)
		if !ok {
			return nil, &FormatError{Kind: "uint256", Input: v, Reason: "not an integer"}
		}
		return n, nil
	default:
		return nil, &FormatError{Kind: "uint256", Input: fmt.Sprint(value), Reason: fmt.Sprintf("unsupported Go type %T", value)}
	}
}

func encodeBytes32(value any) (string, error) {
	var digits string
	switch v := value.(type) {
	case common.Hash:
		digits = common.Bytes2Hex(v.Bytes())
	case [32]byte:
		digits = common.Bytes2Hex(v[:])
	case []byte:
		if len(v) > WordSize {
			return "", &FormatError{Kind: "bytes32", Input: hexutil.Encode(v), Reason: "longer than 32 bytes"}
		}
		digits = common.Bytes2Hex(v)
	case string:
		if has0x(v) {
			digits = strings.ToLower(v[2:])
			if !isHex(digits) {
				return "", &FormatError{Kind: "bytes32", Input: v, Reason: "invalid hex characters"}
			}
			if len(digits)%2 != 0 {
				return "", &FormatError{Kind: "bytes32", Input: v, Reason: "odd length hex"}
			}
			if len(digits) > WordHexLen {
				return "", &FormatError{Kind: "bytes32", Input: v, Reason: "longer than 32 bytes"}
			}
		} else {
			// Plain strings such as dAPI names are encoded as their UTF-8 bytes.
			if len(v) > WordSize {
				return "", &FormatError{Kind: "bytes32", Input: v, Reason: "string longer than 32 bytes"}
			}
			digits = common.Bytes2Hex([]byte(v))
		}
	default:
		return "", &FormatError{Kind: "bytes32", Input: fmt.Sprint(value), Reason: fmt.Sprintf("unsupported Go type %T", value)}
	}
	return rightPad(digits), nil
}

func leftPad(digits string) string {
	return strings.Repeat("0", WordHexLen-len(digits)) + digits
}

func rightPad(digits string) string {
	return digits + strings.Repeat("0", WordHexLen-len(digits))
}

func has0x(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

func strip0x(s string) string {
	if has0x(s) {
		return s[2:]
	}
	return s
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}
