package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/smallnest/clickflow/store"
)

func newStoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect the key-value store shared with the workflow",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print the value stored under a key",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				value, found, err := a.repo.GetItem(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("%s: %w", args[0], store.ErrNotFound)
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Store a value under a key",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.repo.SetItem(cmd.Context(), args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "delete <key>",
			Short: "Delete a key",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				err := a.kv.Delete(cmd.Context(), args[0])
				if err != nil && !errors.Is(err, store.ErrNotFound) {
					return err
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List the stored keys",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				keys, err := a.kv.Keys(cmd.Context())
				if err != nil {
					return err
				}
				sort.Strings(keys)
				for _, key := range keys {
					fmt.Fprintln(cmd.OutOrStdout(), key)
				}
				return nil
			},
		},
	)
	return cmd
}
