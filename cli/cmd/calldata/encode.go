package calldata

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/storacha/api3ctl/cli/cmd/cmdutil"
	"github.com/storacha/api3ctl/cli/printer"
	"github.com/storacha/api3ctl/pkg/codec"
)

var (
	buildTypes    string
	selectorTypes string
)

var buildCmd = &cobra.Command{
	Use:   "build <function> [values...]",
	Short: "Build call data for a function call",
	Example: `  api3ctl calldata build balanceOf 0x0b38210ea11411557c13457D4dA7dC6ea731B88a --types address
  api3ctl calldata build readDataFeedWithDapiName ETH/USD --types bytes32`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBuild,
}

var selectorCmd = &cobra.Command{
	Use:   "selector <function|0xselector>",
	Short: "Compute the 4 byte selector of a function signature",
	Long: `Compute the 4 byte selector of a function signature. Given a 0x-prefixed
selector instead, name it if it belongs to a contract function this tool
calls.`,
	Example: `  api3ctl calldata selector transfer --types address,uint256
  api3ctl calldata selector 0x70a08231`,
	Args: cobra.ExactArgs(1),
	RunE: runSelector,
}

func init() {
	buildCmd.Flags().StringVar(&buildTypes, "types", "", "comma separated parameter types, e.g. address,uint256")
	selectorCmd.Flags().StringVar(&selectorTypes, "types", "", "comma separated parameter types")
}

type builtCall struct {
	Signature string `json:"signature"`
	Selector  string `json:"selector"`
	Data      string `json:"data"`
}

func runBuild(cmd *cobra.Command, args []string) error {
	tags, err := codec.ParseTypeTags(buildTypes)
	if err != nil {
		return err
	}
	name, rawValues := args[0], args[1:]
	if len(rawValues) != len(tags) {
		return fmt.Errorf("%w: %d types, %d values", codec.ErrParameterCount, len(tags), len(rawValues))
	}
	values := make([]any, len(rawValues))
	for i, v := range rawValues {
		values[i] = v
	}

	call, err := codec.EncodeCall(name, tags, values)
	if err != nil {
		return err
	}
	out := builtCall{
		Signature: codec.NewSignature(name, tags...).Canonical(),
		Selector:  call.Selector.Hex(),
		Data:      call.Hex(),
	}
	return cmdutil.Output(cmd, out, func(w io.Writer) error {
		return printer.KeyValues(w, [][2]string{
			{"Signature", out.Signature},
			{"Selector", out.Selector},
			{"Data", out.Data},
		})
	})
}

type selectorInfo struct {
	Signature string `json:"signature,omitempty"`
	Selector  string `json:"selector"`
	Known     bool   `json:"known"`
}

func runSelector(cmd *cobra.Command, args []string) error {
	var out selectorInfo
	if strings.HasPrefix(args[0], "0x") {
		sel, err := codec.ParseSelector(args[0])
		if err != nil {
			return err
		}
		sig, known := codec.LookupSignature(sel)
		out = selectorInfo{Signature: sig, Selector: sel.Hex(), Known: known}
	} else {
		tags, err := codec.ParseTypeTags(selectorTypes)
		if err != nil {
			return err
		}
		sel, err := codec.ResolveSelector(args[0], tags)
		if err != nil {
			return err
		}
		_, known := codec.LookupSignature(sel)
		out = selectorInfo{
			Signature: codec.NewSignature(args[0], tags...).Canonical(),
			Selector:  sel.Hex(),
			Known:     known,
		}
	}
	return cmdutil.Output(cmd, out, func(w io.Writer) error {
		signature := out.Signature
		if signature == "" {
			signature = "unknown"
		}
		return printer.KeyValues(w, [][2]string{
			{"Signature", signature},
			{"Selector", out.Selector},
		})
	})
}
