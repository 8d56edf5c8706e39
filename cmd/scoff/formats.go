// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newFormatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the registered demuxers and codecs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := a.registry()
			w := cmd.OutOrStdout()
			head := color.New(color.FgCyan, color.Bold)

			head.Fprintln(w, "Demuxers (probe order):")
			for _, d := range reg.Demuxers() {
				color.New(color.FgGreen).Fprintf(w, "  %-6s", d.Name())
				fmt.Fprintf(w, " .%s\n", strings.Join(d.Extensions(), " ."))
			}

			head.Fprintln(w, "Codecs:")
			for _, id := range reg.Codecs() {
				fmt.Fprintf(w, "  %s\n", id)
			}
			return nil
		},
	}
}
