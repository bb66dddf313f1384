package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func signCmd() *cobra.Command {
	var flags backendFlags

	cmd := &cobra.Command{
		Use:   "sign key=value...",
		Short: "Pack attributes into a signed cookie value",
		Long: `Encode the given attributes, sign them and print the escaped cookie value.

Integer and boolean values are stored with their type; anything else is a string.

Examples:
  sessionctl sign --secret 0123456789abcdef user_id=42 role=admin`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := flags.backend()
			if err != nil {
				return err
			}

			sess, err := backend.Generate(cmd.Context())
			if err != nil {
				return err
			}
			for _, arg := range args {
				key, value, ok := strings.Cut(arg, "=")
				if !ok || key == "" {
					return fmt.Errorf("invalid attribute %q: want key=value", arg)
				}
				sess.Set(key, parseValue(value))
			}

			packed, err := backend.Pack(cmd.Context(), sess)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), packed)
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
