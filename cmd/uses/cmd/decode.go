package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/tokenuses/pkg/record"
	"github.com/ssargent/tokenuses/pkg/uses"
)

func newDecodeCmd() *cobra.Command {
	decodeCmd := &cobra.Command{
		Use:   "decode [data]",
		Short: "Decode a Uses record",
		Long: `Decode a Uses record given as an argument or on stdin.

Bytes after the record are ignored. Decoding does not check who owns the
data; use "uses verify" for account data from an untrusted source.

Examples:
  uses decode 010a000000000000000700000000000000
  uses decode -o yaml --check 010a000000000000000700000000000000
  echo AQEKAAAAAAAAAAcAAAAAAAAA | uses decode -e base64 --option`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := envFrom(cmd)
			if err != nil {
				return err
			}

			asOption, _ := cmd.Flags().GetBool("option")
			check, _ := cmd.Flags().GetBool("check")

			data, err := readData(cmd, args, e.config.Codec.Encoding)
			if err != nil {
				return err
			}

			var u *uses.Uses
			if asOption {
				u, _, err = record.DecodeOption(e.codec, data)
			} else {
				var v uses.Uses
				v, err = e.codec.Decode(data)
				u = &v
			}
			if err != nil {
				return fmt.Errorf("failed to decode: %w", err)
			}
			if extra := len(data) - consumed(u, asOption); extra > 0 {
				e.logger.Debug("ignored trailing bytes", "count", extra)
			}

			if check && u != nil {
				if err := u.CheckRemaining(); err != nil {
					return err
				}
			}

			return printUses(cmd.OutOrStdout(), e.config.Codec.Output, u)
		},
	}

	decodeCmd.Flags().Bool("option", false, "Data is framed as Option<Uses>")
	decodeCmd.Flags().Bool("check", false, "Fail if remaining exceeds total")

	return decodeCmd
}

func consumed(u *uses.Uses, asOption bool) int {
	n := 0
	if asOption {
		n++
	}
	if u != nil {
		n += uses.Size
	}
	return n
}
