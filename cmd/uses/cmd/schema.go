package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the Uses wire layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := envFrom(cmd)
			if err != nil {
				return err
			}

			desc := e.codec.Schema()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "OFFSET\tSIZE\tFIELD\tTYPE")
			for i, off := range desc.FieldOffsets() {
				f, _ := desc.At(i)
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", off, f.Size(), f.Name, f.Kind)
			}
			fmt.Fprintf(w, "\t%d\ttotal\t\n", desc.TotalSize())
			return w.Flush()
		},
	}
}
