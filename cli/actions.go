package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smallnest/clickflow/catalog"
)

func newActionsCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:         "actions",
		Short:       "List the available action types",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"store": "none"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(catalog.Kinds()))
			for _, def := range catalog.All() {
				rows = append(rows, []string{def.Kind, def.Label, describeFields(def), def.Description})
			}
			return writeTable(cmd.OutOrStdout(), []string{"TYPE", "LABEL", "PARAMS", "DESCRIPTION"}, rows)
		},
	}
}

func describeFields(def catalog.Definition) string {
	if len(def.Fields) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(def.Fields))
	for _, f := range def.Fields {
		name := fmt.Sprintf("%s:%s", f.Name, f.Type)
		if f.Required {
			name += "*"
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, " ")
}
