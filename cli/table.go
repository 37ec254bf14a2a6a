package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/smallnest/clickflow/workflow"
)

const tablePadding = 2

func writeTable(out io.Writer, headers []string, rows [][]string) error {
	writer := tabwriter.NewWriter(out, 0, 0, tablePadding, ' ', 0)
	if len(headers) > 0 {
		fmt.Fprintln(writer, strings.Join(headers, "\t"))
	}
	for _, row := range rows {
		fmt.Fprintln(writer, strings.Join(row, "\t"))
	}
	return writer.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatParams renders params as sorted key=value pairs.
func formatParams(p workflow.Params) string {
	if len(p) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%q", k, p.String(k, "")))
	}
	return strings.Join(parts, " ")
}
