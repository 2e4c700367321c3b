package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the capture formats and magics pcapsum understands",
	Run:   runFormats,
}

func runFormats(cmd *cobra.Command, args []string) {
	fmt.Println("Supported capture containers:")
	fmt.Println()
	fmt.Println("  Legacy PCAP")
	fmt.Println("    d4 c3 b2 a1   little-endian, microsecond timestamps")
	fmt.Println("    a1 b2 c3 d4   big-endian, microsecond timestamps")
	fmt.Println("    4d 3c b2 a1   little-endian, nanosecond timestamps")
	fmt.Println("    a1 b2 3c 4d   big-endian, nanosecond timestamps")
	fmt.Println()
	fmt.Println("  PCAPNG")
	fmt.Println("    0a 0d 0d 0a   byte order taken from the Section Header Block")
	fmt.Println()
	fmt.Println("Frame decoding covers Ethernet, ARP, IPv4 (TCP/UDP/ICMP), and")
	fmt.Println("labels IPv6 and other EtherTypes without decoding their payload.")
}
