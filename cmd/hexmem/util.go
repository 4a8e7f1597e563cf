package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/moffa90/go-hexmem/format"
	"github.com/moffa90/go-hexmem/record"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Get an expected flag, or exit if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected integer flag, or exit if an error arises.
func getInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected unsigned flag, or exit if an error arises.
func getUint64(cmd *cobra.Command, flag string) uint64 {
	r, err := cmd.Flags().GetUint64(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// decoderOptions turns the persistent flags into decoder options.
func decoderOptions(cmd *cobra.Command) []record.Option {
	opts := []record.Option{
		record.WithMaxLineLength(getInt(cmd, "max-line")),
		record.WithArraySize(getUint64(cmd, "array-size")),
	}

	if log.IsLevelEnabled(log.DebugLevel) {
		opts = append(opts, record.WithRecordCallback(func(info record.Info) {
			log.WithFields(log.Fields{
				"line":    info.Line,
				"type":    fmt.Sprintf("%02X", info.Type),
				"address": fmt.Sprintf("0x%08X", info.Address),
				"length":  info.Length,
			}).Debug("record")
		}))
	}

	return opts
}

// decodeInput decodes the named file, or stdin for "-". Interrupts cancel
// the decode between records.
func decodeInput(cmd *cobra.Command, name string) (*format.Result, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var (
		res *format.Result
		err error
	)
	if name == "-" {
		res, err = format.DecodeReader(ctx, os.Stdin, decoderOptions(cmd)...)
	} else {
		res, err = format.DecodeFile(ctx, name, decoderOptions(cmd)...)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	log.WithFields(log.Fields{
		"file":   name,
		"format": res.Format,
		"bytes":  res.Image.Len(),
	}).Debug("decoded")

	return res, nil
}

// window resolves --start/--length against the image bounds.
func window(cmd *cobra.Command, res *format.Result) (start uint64, length uint64, err error) {
	lo, hi, ok := res.Image.Bounds()
	if !ok {
		return 0, 0, fmt.Errorf("image is empty")
	}

	start = lo
	if cmd.Flags().Changed("start") {
		start = getUint64(cmd, "start")
	}
	length = hi - start + 1
	if start > hi {
		length = 0
	}
	if cmd.Flags().Changed("length") {
		length = getUint64(cmd, "length")
	}
	return start, length, nil
}
