package calldata

import (
	"io"
	"math/big"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/storacha/api3ctl/cli/cmd/cmdutil"
	"github.com/storacha/api3ctl/cli/printer"
	"github.com/storacha/api3ctl/pkg/codec"
)

var (
	decodeType     string
	decodeOffset   int
	decodeDecimals int
)

var decodeCmd = &cobra.Command{
	Use:   "decode <hex>",
	Short: "Decode one word of a hex encoded return value",
	Long: `Decode one word of a hex encoded return value.

Supported types are uint256, int224 and uint32. --offset is in bytes and must
be a multiple of 32. With --decimals the value is also shown as a fixed-point
decimal.`,
	Example: `  api3ctl calldata decode 0x...  --type int224 --decimals 18
  api3ctl calldata decode 0x...  --type uint32 --offset 32`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().StringVar(&decodeType, "type", "uint256", "type of the word: uint256, int224 or uint32")
	decodeCmd.Flags().IntVar(&decodeOffset, "offset", 0, "byte offset of the word")
	decodeCmd.Flags().IntVar(&decodeDecimals, "decimals", 0, "format the value with this many decimals")
}

type decodedWord struct {
	Type      string `json:"type"`
	Offset    int    `json:"offset"`
	Words     int    `json:"words"`
	Value     string `json:"value"`
	Formatted string `json:"formatted,omitempty"`
}

func runDecode(cmd *cobra.Command, args []string) error {
	value, err := decodeWord(args[0], decodeType, decodeOffset)
	if err != nil {
		return err
	}

	out := decodedWord{Type: decodeType, Offset: decodeOffset, Words: codec.WordCount(args[0]), Value: value.String()}
	if decodeDecimals > 0 {
		out.Formatted = codec.ToDecimalString(value, decodeDecimals)
	}
	return cmdutil.Output(cmd, out, func(w io.Writer) error {
		pairs := [][2]string{
			{"Type", out.Type},
			{"Offset", strconv.Itoa(out.Offset)},
			{"Value", out.Value},
		}
		if out.Formatted != "" {
			pairs = append(pairs, [2]string{"Formatted", out.Formatted})
		}
		return printer.KeyValues(w, pairs)
	})
}

func decodeWord(hexResponse, typeName string, offset int) (*big.Int, error) {
	tag, err := codec.ParseTypeTag(typeName)
	if err != nil {
		return nil, err
	}
	switch tag {
	case codec.Int224:
		return codec.DecodeSigned(hexResponse, offset, tag.BitWidth())
	case codec.Uint32:
		v, err := codec.DecodeUint32At(hexResponse, offset)
		if err != nil {
			return nil, err
		}
		return new(big.Int).SetUint64(uint64(v)), nil
	case codec.Uint256:
		return codec.DecodeUnsigned(hexResponse, offset)
	default:
		return nil, &codec.FormatError{Kind: "type tag", Input: typeName, Reason: "only uint256, int224 and uint32 can be decoded"}
	}
}
