package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

type inspectOutput struct {
	State      string         `json:"state"`
	Keys       []string       `json:"keys"`
	Attributes map[string]any `json:"attributes"`
}

func inspectCmd() *cobra.Command {
	var flags backendFlags

	cmd := &cobra.Command{
		Use:   "inspect VALUE",
		Short: "Verify a cookie value and print its attributes",
		Long: `Verify the signature of a packed cookie value and print the decoded
attributes as JSON. A signature mismatch exits non-zero unless
--ignore-tampered is set, in which case an empty fresh session is printed.

Examples:
  sessionctl inspect --secret 0123456789abcdef "$COOKIE"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := flags.backend()
			if err != nil {
				return err
			}

			sess, err := backend.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			attrs := sess.Attributes()
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(inspectOutput{
				State:      sess.State().String(),
				Keys:       attrs.Keys(),
				Attributes: attrs.Map(),
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.ignoreTampered, "ignore-tampered", false, "Treat a bad signature as an empty session")

	return cmd
}
