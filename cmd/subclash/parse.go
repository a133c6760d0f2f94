package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"subclash/internal/link"
	"subclash/internal/logger"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <link>...",
	Short: "Show how links are parsed",
	Long:  `Parses every argument as a proxy link and prints the resulting fields. Exits non-zero if any argument fails to parse.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if failed := printRecords(cmd.OutOrStdout(), args); failed > 0 {
			logger.Log.Errorf("❌ %d of %d links failed to parse", failed, len(args))
			logger.Sync()
			os.Exit(1)
		}
	},
}

// printRecords writes one block per link and returns how many failed.
func printRecords(out io.Writer, links []string) int {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	failed := 0

	for i, raw := range links {
		r, err := link.Parse(raw)
		if err != nil {
			fmt.Fprintf(w, "[ %d ]\t%v\n", i+1, err)
			fmt.Fprintln(w, "\t")
			failed++
			continue
		}

		fmt.Fprintf(w, "[ %d ]\t%s\n", i+1, r.Kind)
		fmt.Fprintf(w, "  name:\t%s\n", r.Name)
		fmt.Fprintf(w, "  server:\t%s:%d\n", r.Server, r.Port)
		fmt.Fprintf(w, "  network:\t%s\n", r.Network)
		fmt.Fprintf(w, "  tls:\t%t\n", r.TLS)
		if r.ServerName != "" {
			fmt.Fprintf(w, "  servername:\t%s\n", r.ServerName)
		}
		if r.WSOpts != nil {
			fmt.Fprintf(w, "  ws path:\t%s\n", r.WSOpts.Path)
			fmt.Fprintf(w, "  ws host:\t%s\n", r.WSOpts.Host)
		}
		fmt.Fprintln(w, "\t")
	}

	w.Flush()
	return failed
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
