package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/moffa90/go-hexmem/sparse"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump FILE",
	Short: "Print a hex dump of a record file's image.",
	Long: "Print a hex dump of the decoded image. Addresses that the file never\n" +
		"writes are shown as \"..\"; rows with no data at all are collapsed to \"*\".",
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
		width := getInt(cmd, "width")
		if width <= 0 {
			return fmt.Errorf("width must be positive, got %d", width)
		}
		writeDump(cmd.OutOrStdout(), res.Image, start, length, width)
		return nil
	},
}

// writeDump prints rows of width bytes covering [start, start+length).
// Rows are aligned to multiples of width and only rows holding data are
// printed; a run of empty rows becomes a single "*".
func writeDump(w io.Writer, img *sparse.Image, start, length uint64, width int) {
	if length == 0 {
		return
	}
	end := start + length - 1 // inclusive, so the top of the range fits
	if end < start {
		end = ^uint64(0)
	}

	var (
		printed bool
		last    uint64
	)
	for addr := range img.Addresses() {
		if addr < start {
			continue
		}
		if addr > end {
			break
		}
		row := addr - addr%uint64(width)
		if printed && row == last {
			continue
		}
		if printed && row != last+uint64(width) {
			fmt.Fprintln(w, "*")
		}
		writeRow(w, img, row, width, start, end)
		printed, last = true, row
	}
}

func writeRow(w io.Writer, img *sparse.Image, row uint64, width int, start, end uint64) {
	var hexs, text strings.Builder
	for i := 0; i < width; i++ {
		addr := row + uint64(i)
		v, ok := img.Get(addr)
		if addr < row || addr < start || addr > end || !ok {
			hexs.WriteString(" ..")
			text.WriteByte(' ')
			continue
		}
		fmt.Fprintf(&hexs, " %02X", v)
		if v >= 0x20 && v < 0x7F {
			text.WriteByte(v)
		} else {
			text.WriteByte('.')
		}
	}
	fmt.Fprintf(w, "%08X %s  |%s|\n", row, hexs.String(), text.String())
}

func init() {
	dumpCmd.Flags().Uint64("start", 0, "first address to dump (default: lowest address in the image)")
	dumpCmd.Flags().Uint64("length", 0, "number of addresses to dump (default: up to the highest address)")
	dumpCmd.Flags().Int("width", 16, "bytes per row")
	rootCmd.AddCommand(dumpCmd)
}
