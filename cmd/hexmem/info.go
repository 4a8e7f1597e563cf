package main

import (
	"fmt"
	"io"

	"github.com/moffa90/go-hexmem/format"
	"github.com/moffa90/go-hexmem/sparse"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info FILE",
	Short: "Summarise the contents of a record file.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := decodeInput(cmd, args[0])
		if err != nil {
			return err
		}
		writeInfo(cmd.OutOrStdout(), res)
		return nil
	},
}

var segmentsCmd = &cobra.Command{
	Use:   "segments FILE",
	Short: "List the contiguous address ranges of a record file.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := decodeInput(cmd, args[0])
		if err != nil {
			return err
		}
		writeSegments(cmd.OutOrStdout(), sparse.Segments(res.Image))
		return nil
	},
}

func writeInfo(w io.Writer, res *format.Result) {
	fmt.Fprintf(w, "Format:    %s\n", res.Format)
	fmt.Fprintf(w, "Bytes:     %d\n", res.Image.Len())

	lo, hi, ok := res.Image.Bounds()
	if !ok {
		fmt.Fprintf(w, "Range:     (empty)\n")
		return
	}
	fmt.Fprintf(w, "Range:     0x%08X - 0x%08X\n", lo, hi)
	fmt.Fprintf(w, "Segments:  %d\n", len(sparse.Segments(res.Image)))
}

func writeSegments(w io.Writer, segs []sparse.Segment) {
	for _, seg := range segs {
		fmt.Fprintf(w, "0x%08X - 0x%08X  %d bytes\n", seg.Address, seg.End()-1, len(seg.Data))
	}
}

func init() {
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(segmentsCmd)
}
