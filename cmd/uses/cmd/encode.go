package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/tokenuses/pkg/record"
	"github.com/ssargent/tokenuses/pkg/uses"
)

func newEncodeCmd() *cobra.Command {
	encodeCmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a Uses record",
		Long: `Encode a Uses record and print it in the configured encoding.

With --option the record is framed as Option<Uses> the way token metadata
embeds it; add --none to produce the empty option.

Examples:
  uses encode --method multiple --total 10 --remaining 7
  uses encode --method burn --total 1 --remaining 1 --option -e base64
  uses encode --option --none`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := envFrom(cmd)
			if err != nil {
				return err
			}

			methodName, _ := cmd.Flags().GetString("method")
			total, _ := cmd.Flags().GetUint64("total")
			remaining, _ := cmd.Flags().GetUint64("remaining")
			asOption, _ := cmd.Flags().GetBool("option")
			none, _ := cmd.Flags().GetBool("none")

			if none && !asOption {
				return fmt.Errorf("--none requires --option")
			}

			var data []byte
			if none {
				data, err = record.EncodeOption[uses.Uses](e.codec, nil)
			} else {
				method, perr := uses.ParseUseMethod(methodName)
				if perr != nil {
					return perr
				}
				u := uses.Uses{UseMethod: method, Total: total, Remaining: remaining}
				if cerr := u.CheckRemaining(); cerr != nil {
					e.logger.Warn("encoding record that violates remaining <= total", "total", total, "remaining", remaining)
				}
				if asOption {
					data, err = record.EncodeOption(e.codec, &u)
				} else {
					data, err = e.codec.Encode(u)
				}
			}
			if err != nil {
				return fmt.Errorf("failed to encode: %w", err)
			}

			out, err := encodeData(e.config.Codec.Encoding, data)
			if err != nil {
				return err
			}
			e.logger.Debug("encoded record", "bytes", len(data), "encoding", e.config.Codec.Encoding)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	encodeCmd.Flags().StringP("method", "m", "burn", "Use method: burn, multiple or single")
	encodeCmd.Flags().Uint64P("total", "t", 0, "Total number of uses")
	encodeCmd.Flags().Uint64P("remaining", "r", 0, "Remaining number of uses")
	encodeCmd.Flags().Bool("option", false, "Frame the record as Option<Uses>")
	encodeCmd.Flags().Bool("none", false, "With --option, encode the empty option")

	return encodeCmd
}
