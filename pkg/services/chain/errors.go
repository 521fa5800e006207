package chain

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
)

// RPCCallError is a failed JSON-RPC request. Code is the node-reported
// JSON-RPC error code, or zero when the request never got a JSON-RPC answer
// (connection failure, HTTP error, malformed response).
type RPCCallError struct {
	Method  string
	Code    int
	Message string
	Data    string
	Err     error
}

func (e *RPCCallError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s: rpc error %d: %s", e.Method, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Method, e.Message)
}

func (e *RPCCallError) Unwrap() error {
	return e.Err
}

// NodeReported is true when the node answered with a JSON-RPC error object,
// e.g. an execution revert. Retrying those does not help.
func (e *RPCCallError) NodeReported() bool {
	return e.Code != 0
}

// newRPCCallError converts a transport error into an *RPCCallError, decoding
// revert reasons carried in the error data when there are any.
func newRPCCallError(method string, err error) *RPCCallError {
	callErr := &RPCCallError{Method: method, Message: err.Error(), Err: err}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		callErr.Code = rpcErr.ErrorCode()
		callErr.Message = rpcErr.Error()
	}

	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if data, ok := dataErr.ErrorData().(string); ok {
			callErr.Data = data
			if reason, unpackErr := abi.UnpackRevert(common.FromHex(data)); unpackErr == nil {
				callErr.Message = fmt.Sprintf("%s: %s", callErr.Message, reason)
			}
		}
	}
	return callErr
}

// isNodeReported reports whether err carries a JSON-RPC error object.
func isNodeReported(err error) bool {
	var rpcErr rpc.Error
	return errors.As(err, &rpcErr)
}
