package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/tokenuses/pkg/owner"
	"github.com/ssargent/tokenuses/pkg/uses"
)

func newVerifyCmd() *cobra.Command {
	verifyCmd := &cobra.Command{
		Use:   "verify [data]",
		Short: "Check an account's owner, then decode its Uses record",
		Long: `Check that account data is owned by the expected program and only then
decode it. A foreign or missing owner is always reported as a failure, even
when the data itself would decode.

The expected program defaults to owner.expected_program from the config.

Examples:
  uses verify --owner metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s 010a000000000000000700000000000000
  uses verify --owner <key> --expected <program> -e base64 AQoAAAAAAAAABwAAAAAAAAA=`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := envFrom(cmd)
			if err != nil {
				return err
			}

			declaredText, _ := cmd.Flags().GetString("owner")
			expectedText, _ := cmd.Flags().GetString("expected")
			accountText, _ := cmd.Flags().GetString("account")

			expected, err := e.config.ExpectedOwner()
			if expectedText != "" {
				expected, err = owner.ParseTag(expectedText)
			}
			if err != nil {
				return fmt.Errorf("invalid expected owner: %w", err)
			}

			acct := owner.Account{}
			if declaredText != "" {
				declared, err := owner.ParseTag(declaredText)
				if err != nil {
					return fmt.Errorf("invalid declared owner: %w", err)
				}
				acct.Owner = declared[:]
			}
			if accountText != "" {
				if acct.Key, err = owner.ParseTag(accountText); err != nil {
					return fmt.Errorf("invalid account key: %w", err)
				}
			}

			acct.Data, err = readData(cmd, args, e.config.Codec.Encoding)
			if err != nil {
				return err
			}

			validator := e.metrics.InstrumentValidator(owner.Strict{})
			u, err := owner.Load[uses.Uses](acct, expected, validator, e.codec)
			if err != nil {
				e.logger.Warn("account rejected", "account", acct.Key, "expected_owner", expected, "error", err)
				return err
			}

			e.logger.Debug("account verified", "account", acct.Key, "owner", expected)
			return printUses(cmd.OutOrStdout(), e.config.Codec.Output, &u)
		},
	}

	verifyCmd.Flags().String("owner", "", "Owner declared by the account (base58)")
	verifyCmd.Flags().String("expected", "", "Program expected to own the account (base58)")
	verifyCmd.Flags().String("account", "", "Account key, used in messages (base58)")

	return verifyCmd
}
