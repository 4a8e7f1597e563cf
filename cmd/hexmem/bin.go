package main

import (
	"fmt"
	"io"
	"os"

	"github.com/moffa90/go-hexmem/sparse"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var binCmd = &cobra.Command{
	Use:   "bin FILE",
	Short: "Write the image as a flat binary.",
	Long: "Materialize a window of the decoded image as raw bytes, filling addresses\n" +
		"the file never writes with --fill. Output goes to --output or stdout.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := decodeInput(cmd, args[0])
		if err != nil {
			return err
		}
		start, length, err := window(cmd, res)
		if err != nil {
			return err
		}
		if limit := getUint64(cmd, "max-size"); length > limit {
			return fmt.Errorf("window of %d bytes exceeds --max-size %d", length, limit)
		}

		fill, err := cmd.Flags().GetUint8("fill")
		if err != nil {
			return err
		}

		out, closeOut, err := binOutput(cmd)
		if err != nil {
			return err
		}
		defer closeOut()

		data := sparse.ToBinary(res.Image, start, int(length), fill)
		if _, err := out.Write(data); err != nil {
			return fmt.Errorf("write output: %w", err)
		}

		log.WithFields(log.Fields{
			"start":  fmt.Sprintf("0x%08X", start),
			"length": length,
		}).Debug("wrote binary")
		return nil
	},
}

// binOutput opens the --output file, or stdout when none is given. Writing
// raw bytes to a terminal needs --force.
func binOutput(cmd *cobra.Command) (io.Writer, func(), error) {
	name, err := cmd.Flags().GetString("output")
	if err != nil {
		return nil, nil, err
	}

	if name == "" || name == "-" {
		if term.IsTerminal(int(os.Stdout.Fd())) && !getFlag(cmd, "force") {
			return nil, nil, fmt.Errorf("refusing to write binary data to a terminal (use --output or --force)")
		}
		return os.Stdout, func() {}, nil
	}

	f, err := os.Create(name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output: %w", err)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			log.Errorf("close %s: %v", name, err)
		}
	}, nil
}

func init() {
	binCmd.Flags().Uint64("start", 0, "first address to write (default: lowest address in the image)")
	binCmd.Flags().Uint64("length", 0, "number of bytes to write (default: up to the highest address)")
	binCmd.Flags().Uint8("fill", 0xFF, "value for addresses the file does not write")
	binCmd.Flags().Uint64("max-size", 256<<20, "refuse to write windows larger than this many bytes")
	binCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	binCmd.Flags().Bool("force", false, "write to stdout even if it is a terminal")
	rootCmd.AddCommand(binCmd)
}
