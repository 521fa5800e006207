package codec

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Selector is the 4 byte function identifier that prefixes call data.
type Selector [4]byte

// Hex returns the 0x-prefixed lowercase form, e.g. 0xa9059cbb.
func (s Selector) Hex() string {
	return hexutil.Encode(s[:])
}

func (s Selector) String() string {
	return s.Hex()
}

// Selector derives the selector of the signature: the first four bytes of
// keccak256 over the canonical "name(type,...)" string.
func (s FunctionSignature) Selector() (Selector, error) {
	canonical := s.Canonical()
	if s.Name == "" {
		return Selector{}, &SelectorResolutionError{Signature: canonical, Reason: "empty function name"}
	}
	if strings.ContainsAny(s.Name, "(), \t") {
		return Selector{}, &SelectorResolutionError{Signature: canonical, Reason: "function name contains signature punctuation"}
	}
	for _, t := range s.ParameterTypes {
		if !t.Valid() {
			return Selector{}, &SelectorResolutionError{Signature: canonical, Reason: fmt.Sprintf("unsupported parameter type %q", t)}
		}
	}

	var sel Selector
	copy(sel[:], crypto.Keccak256([]byte(canonical))[:4])
	return sel, nil
}

// ResolveSelector returns the selector for name(types...).
func ResolveSelector(name string, types []TypeTag) (Selector, error) {
	return NewSignature(name, types...).Selector()
}

// wellKnownSignatures are the signatures this tool calls. They are only used
// to name a selector found in call data; resolution always hashes.
var wellKnownSignatures = []string{
	// ERC-20
	"name()",
	"symbol()",
	"decimals()",
	"totalSupply()",
	"balanceOf(address)",
	"transfer(address,uint256)",
	"approve(address,uint256)",
	"allowance(address,address)",
	// Api3ServerV1
	"readDataFeedWithDapiName(bytes32)",
	"readDataFeedWithDapiNameHash(bytes32)",
	"readDataFeedWithId(bytes32)",
	"dapiNameHashToDataFeedId(bytes32)",
	// Api3Pool
	"userStake(address)",
	"totalStake()",
	"apr()",
	"depositAndStake(uint256)",
	"scheduleUnstake(uint256)",
	// Api3Voting
	"votesLength()",
}

var selectorToSignature = func() map[Selector]string {
	m := make(map[Selector]string, len(wellKnownSignatures))
	for _, sig := range wellKnownSignatures {
		var sel Selector
		copy(sel[:], crypto.Keccak256([]byte(sig))[:4])
		m[sel] = sig
	}
	return m
}()

// LookupSignature names a selector if it belongs to a well-known signature.
func LookupSignature(sel Selector) (string, bool) {
	sig, ok := selectorToSignature[sel]
	return sig, ok
}

// ParseSelector parses a 0x-prefixed 8 hex character selector.
func ParseSelector(s string) (Selector, error) {
	var sel Selector
	b, err := hexutil.Decode(s)
	if err != nil {
		return sel, &FormatError{Kind: "selector", Input: s, Reason: err.Error()}
	}
	if len(b) != len(sel) {
		return sel, &FormatError{Kind: "selector", Input: s, Reason: fmt.Sprintf("expected %d bytes, got %d", len(sel), len(b))}
	}
	copy(sel[:], b)
	return sel, nil
}
