package codec

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// DefaultTimestampOffset is where a (value, timestamp) pair keeps its
// timestamp word.
const DefaultTimestampOffset = WordSize

// ReadWord returns the 32 byte word starting at byteOffset of a hex encoded
// return blob. The offset must be word aligned.
func ReadWord(hexResponse string, byteOffset int) ([]byte, error) {
	data := strip0x(hexResponse)
	if len(data)%2 != 0 || !isHex(data) {
		return nil, &DecodeError{Offset: byteOffset, Length: len(data) / 2, Reason: "malformed hex response"}
	}
	length := len(data) / 2
	if byteOffset < 0 || byteOffset%WordSize != 0 {
		return nil, &DecodeError{Offset: byteOffset, Length: length, Reason: "offset is not a multiple of 32 bytes"}
	}
	if length < byteOffset+WordSize {
		return nil, &DecodeError{Offset: byteOffset, Length: length, Reason: "response shorter than word boundary"}
	}
	start := byteOffset * 2
	return common.Hex2Bytes(data[start : start+WordHexLen]), nil
}

// DecodeUnsigned reads the word at byteOffset as an unsigned 256 bit integer.
// Narrowing to a smaller width is left to the caller, see Narrow.
func DecodeUnsigned(hexResponse string, byteOffset int) (*big.Int, error) {
	word, err := ReadWord(hexResponse, byteOffset)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(word), nil
}

// DecodeSigned reads the word at byteOffset as a two's complement integer
// that must fit in bitWidth bits. ABI encoding sign-extends sub-word signed
// values to the full word. A DecodeError is returned both for a response
// too short to hold the word and for a value outside the bitWidth range.
func DecodeSigned(hexResponse string, byteOffset int, bitWidth int) (*big.Int, error) {
	u, err := DecodeUnsigned(hexResponse, byteOffset)
	if err != nil {
		return nil, err
	}
	v := toSigned256(u)
	if bitWidth > 0 && bitWidth < 256 {
		limit := new(big.Int).Lsh(big.NewInt(1), uint(bitWidth-1))
		if v.Cmp(limit) >= 0 || v.Cmp(new(big.Int).Neg(limit)) < 0 {
			return nil, &DecodeError{
				Offset: byteOffset,
				Length: len(strip0x(hexResponse)) / 2,
				Reason: fmt.Sprintf("value out of range for int%d", bitWidth),
			}
		}
	}
	return v, nil
}

// toSigned256 interprets a 256 bit word as two's complement.
func toSigned256(u *big.Int) *big.Int {
	v := new(big.Int).Set(u)
	if v.Bit(255) == 1 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), 256))
	}
	return v
}

// DecodeSigned224 reads the first word as an int224, the value type of
// Api3ServerV1 data feeds.
func DecodeSigned224(hexResponse string) (*big.Int, error) {
	return DecodeSigned(hexResponse, 0, Int224.BitWidth())
}

// DecodeUint32At reads the word at byteOffset and narrows it to 32 bits.
func DecodeUint32At(hexResponse string, byteOffset int) (uint32, error) {
	u, err := DecodeUnsigned(hexResponse, byteOffset)
	if err != nil {
		return 0, err
	}
	return uint32(Narrow(u, Uint32.BitWidth()).Uint64()), nil
}

// Narrow keeps the low bitWidth bits of n.
func Narrow(n *big.Int, bitWidth int) *big.Int {
	if bitWidth <= 0 || bitWidth >= 256 {
		return new(big.Int).Set(n)
	}
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(bitWidth)), big.NewInt(1))
	return new(big.Int).And(n, mask)
}

// WordCount returns the number of whole words in a hex response.
func WordCount(hexResponse string) int {
	return len(strip0x(hexResponse)) / WordHexLen
}
