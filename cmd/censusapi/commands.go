package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"censusapi/internal/app"
	"censusapi/internal/census"
	"censusapi/internal/config"
	"censusapi/internal/logging"
	"censusapi/internal/store"
)

type rootFlags struct {
	configPath string
	dataDir    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "censusapi",
		Short: "Serve normalized Census QuickFacts documents for states and cities",
		Long: `censusapi reads flat label/value statistics for U.S. states and cities
and reshapes them into a normalized document: census and estimate counts,
age and race distributions, and every other field grouped by subject.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", config.DefaultPath, "Path to configuration file")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "Directory holding states/ and cities/ record files")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newServeCmd(flags),
		newTransformCmd(flags),
		newInspectCmd(flags),
		newReportCmd(flags),
		newListCmd(flags),
	)
	return root
}

// newService loads config, applies flag overrides and wires the service.
func newService(flags *rootFlags) (*app.Service, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.dataDir != "" {
		cfg.Data.Dir = flags.dataDir
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}

	log := logging.New(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	return app.NewService(cfg, log)
}

func newServeCmd(flags *rootFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newService(flags)
			if err != nil {
				return err
			}
			if addr != "" {
				svc.Config.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return svc.Serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	return cmd
}

func newTransformCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "transform <file|identifier>",
		Short: "Print the normalized document for a record file or stored entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(flags)
			if err != nil {
				return err
			}
			doc, err := svc.Document(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), doc)
		},
	}
}

func newInspectCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file|identifier>",
		Short: "Show how many records are routed to each destination",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(flags)
			if err != nil {
				return err
			}
			tally, total, err := svc.Tally(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printTally(cmd.OutOrStdout(), tally, total)
			return nil
		},
	}
}

func newReportCmd(flags *rootFlags) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "report <file|identifier>",
		Short: "Write a Word report of the normalized document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(flags)
			if err != nil {
				return err
			}
			if out == "" {
				out = "census_report.docx"
			}
			if err := svc.GenerateReport(cmd.Context(), args[0], out); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Report written:", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output .docx path")
	return cmd
}

func newListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:       "list <states|cities>",
		Short:     "List available identifiers",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"states", "cities"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := store.ParseKind(args[0])
			if err != nil {
				return err
			}
			svc, err := newService(flags)
			if err != nil {
				return err
			}
			names, err := svc.List(cmd.Context(), kind)
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printTally(w io.Writer, tally map[census.Destination]int, total int) {
	lines := make([]string, 0, len(tally))
	for d, n := range tally {
		lines = append(lines, fmt.Sprintf("%-50s %d", d.String(), n))
	}
	sort.Strings(lines)

	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	fmt.Fprintf(w, "%-50s %d\n", "total", total)
}
