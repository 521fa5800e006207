// Package codec encodes contract calls and decodes their return data for
// the oracle contracts, and converts fixed-point integers to decimal strings.
package codec

import (
	"fmt"
	"strings"
)

const (
	// WordSize is the size in bytes of a single ABI word.
	WordSize = 32
	// WordHexLen is the number of hex characters in a single ABI word.
	WordHexLen = WordSize * 2
	// SelectorHexLen is the number of hex characters in a selector, without 0x.
	SelectorHexLen = 8
)

// TypeTag is one of the primitive ABI types used by the oracle contracts.
type TypeTag string

const (
	Address TypeTag = "address"
	Uint256 TypeTag = "uint256"
	Bytes32 TypeTag = "bytes32"

	// Int224 and Uint32 are only ever decoded, never encoded.
	Int224 TypeTag = "int224"
	Uint32 TypeTag = "uint32"
)

var knownTags = map[TypeTag]struct {
	encodable bool
	bits      int
}{
	Address: {encodable: true, bits: 160},
	Uint256: {encodable: true, bits: 256},
	Bytes32: {encodable: true, bits: 256},
	Int224:  {encodable: false, bits: 224},
	Uint32:  {encodable: false, bits: 32},
}

// Valid reports whether t is a recognized tag.
func (t TypeTag) Valid() bool {
	_, ok := knownTags[t]
	return ok
}

// Encodable reports whether t may appear in call data.
func (t TypeTag) Encodable() bool {
	return knownTags[t].encodable
}

// BitWidth is the width of the value inside its 32 byte word.
func (t TypeTag) BitWidth() int {
	return knownTags[t].bits
}

func (t TypeTag) String() string {
	return string(t)
}

// ParseTypeTag parses a tag name such as "uint256".
func ParseTypeTag(s string) (TypeTag, error) {
	t := TypeTag(strings.TrimSpace(s))
	if !t.Valid() {
		return "", &FormatError{Kind: "type tag", Input: s, Reason: "unsupported type"}
	}
	return t, nil
}

// ParseTypeTags parses a comma separated list such as "address,uint256".
// An empty string yields no tags.
func ParseTypeTags(s string) ([]TypeTag, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	tags := make([]TypeTag, 0, len(parts))
	for _, p := range parts {
		t, err := ParseTypeTag(p)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, nil
}

func joinTags(tags []TypeTag) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.String()
	}
	return strings.Join(names, ",")
}

// FunctionSignature is a function name with its ordered parameter types.
type FunctionSignature struct {
	Name           string
	ParameterTypes []TypeTag
}

// NewSignature builds a FunctionSignature.
func NewSignature(name string, types ...TypeTag) FunctionSignature {
	return FunctionSignature{Name: name, ParameterTypes: types}
}

// Canonical returns the "name(type,type)" form that is hashed into a selector.
func (s FunctionSignature) Canonical() string {
	return fmt.Sprintf("%s(%s)", s.Name, joinTags(s.ParameterTypes))
}

func (s FunctionSignature) String() string {
	return s.Canonical()
}
