package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avnixm/pcapsum/internal/analyzer"
)

var (
	flagLimit  uint
	flagHex    bool
	flagPretty bool
	flagOutput string
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <capture-file>",
	Short: "Summarise a PCAP or PCAPNG capture file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummarize,
}

func init() {
	summarizeCmd.Flags().UintVarP(&flagLimit, "limit", "n", analyzer.DefaultPacketLimit,
		"maximum number of packets to analyze")
	summarizeCmd.Flags().BoolVar(&flagHex, "hex", false,
		"include a hex preview of each sampled packet")
	summarizeCmd.Flags().BoolVar(&flagPretty, "pretty", false,
		"indent the JSON output")
	summarizeCmd.Flags().StringVarP(&flagOutput, "output", "o", "",
		"write the summary to a file instead of stdout")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := analyzer.Options{
		PacketLimit: cfg.Analyzer.PacketLimit,
		IncludeHex:  cfg.Analyzer.IncludeHex,
	}
	if cmd.Flags().Changed("limit") {
		opts.PacketLimit = flagLimit
	}
	if cmd.Flags().Changed("hex") {
		opts.IncludeHex = flagHex
	}

	summary, err := analyzer.Summarize(args[0], opts)
	if err != nil {
		return err
	}

	pretty := cfg.Output.Pretty
	if cmd.Flags().Changed("pretty") {
		pretty = flagPretty
	}
	var data []byte
	if pretty {
		data, err = json.MarshalIndent(summary, "", "  ")
	} else {
		data, err = json.Marshal(summary)
	}
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	out := os.Stdout
	if flagOutput != "" {
		f, err := os.Create(flagOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
