package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"client-portal-api/internal/auth"
)

func newPasscodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passcode",
		Short: "Project passcode helpers",
	}
	cmd.AddCommand(newPasscodeGenerateCmd())
	cmd.AddCommand(newPasscodeCheckCmd())
	return cmd
}

func newPasscodeGenerateCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print random passcodes shaped XXXX-XXXX",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("count must be at least 1, got %d", count)
			}
			for i := 0; i < count; i++ {
				code, err := auth.GeneratePasscode()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), code)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of passcodes to print")
	return cmd
}

func newPasscodeCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <passcode>",
		Short: "Normalize a passcode and report whether it has the generated shape",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			normalized := auth.NormalizePasscode(args[0])
			if !auth.ValidPasscode(normalized) {
				return fmt.Errorf("%q is not shaped XXXX-XXXX over %s", normalized, auth.PasscodeAlphabet)
			}
			fmt.Fprintln(cmd.OutOrStdout(), normalized)
			return nil
		},
	}
}
