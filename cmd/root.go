// Package cmd implements CLI commands using cobra framework.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/avnixm/pcapsum/internal/config"
	"github.com/avnixm/pcapsum/internal/log"
)

var (
	// Global flags
	configFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pcapsum",
	Short: "Pcapsum - offline packet capture summarizer for forensic triage",
	Long: `Pcapsum summarises packet captures without shelling out to external tools.
It parses Legacy PCAP and PCAPNG containers, decodes Ethernet/ARP/IPv4/TCP/UDP/ICMP
headers, and reports protocol breakdown, top talkers, conversations, and packet
samples as JSON.

The parser is built for hostile input: truncated, malformed, or hand-crafted
captures degrade gracefully instead of aborting the scan.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"config file path (optional)")

	// Add subcommands
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(formatsCmd)
}

// loadConfig loads configuration and initializes logging for a command run.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if err := log.Init(cfg.Log); err != nil {
		return nil, err
	}
	return cfg, nil
}
