// Command hexmem inspects firmware record files (Intel HEX, S-Record, .cyacd).
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled in at build time with -ldflags.
var Version string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hexmem",
	Short: "Inspect firmware record files.",
	Long: "Decode Intel HEX, Motorola S-Record and Cypress .cyacd files into a sparse\n" +
		"memory image and report on, dump or flatten its contents.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if getFlag(cmd, "version") {
			fmt.Print("hexmem ")
			if Version != "" {
				fmt.Printf("%s", Version)
			} else if info, ok := debug.ReadBuildInfo(); ok {
				fmt.Printf("%s", info.Main.Version)
			} else {
				fmt.Printf("(unknown version)")
			}
			fmt.Println()
			return
		}
		_ = cmd.Help()
	},
}

func init() {
	log.SetOutput(os.Stderr)
	rootCmd.Flags().Bool("version", false, "Report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log every decoded record")
	rootCmd.PersistentFlags().Int("max-line", 0, "reject lines longer than this many characters (0 = default)")
	rootCmd.PersistentFlags().Uint64("array-size", 0, "address span of one flash array for .cyacd files (0 = 64 KiB)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
