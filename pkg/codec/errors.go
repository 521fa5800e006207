package codec

import "fmt"

// FormatError reports malformed caller input: a decimal string, an address,
// a bytes32 value or a type tag.
type FormatError struct {
	Kind   string
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.Input, e.Reason)
}

// DecodeError reports a return blob that cannot hold the requested word.
type DecodeError struct {
	Offset int
	Length int
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding word at byte offset %d of %d byte response: %s", e.Offset, e.Length, e.Reason)
}

// SelectorResolutionError reports a signature that cannot be turned into a
// selector. Resolution never falls back to a zero selector.
type SelectorResolutionError struct {
	Signature string
	Reason    string
}

func (e *SelectorResolutionError) Error() string {
	return fmt.Sprintf("resolving selector for %q: %s", e.Signature, e.Reason)
}
