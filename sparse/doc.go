// Package sparse provides an address space that stores only the addresses
// that were explicitly written.
//
// # Overview
//
// Firmware images rarely cover their whole address range. A typical
// microcontroller image has a vector table near zero, application code a few
// kilobytes later and perhaps a configuration block at the top of flash.
// Space keeps one entry per written address and nothing else, so a 32-bit
// image with two small regions costs memory proportional to those regions.
//
// # Usage
//
//	img := sparse.NewImage()
//	img.Set(0x08000000, 0x20)
//	img.Set(0x08000001, 0x00)
//
//	if v, ok := img.Get(0x08000000); ok {
//	    fmt.Printf("0x%02X\n", v)
//	}
//
//	for addr, v := range img.All() {
//	    fmt.Printf("%08X: %02X\n", addr, v)
//	}
//
// Contiguous runs are available through Segments, and ToBinary flattens a
// window of the space into a byte slice with a fill value for the gaps:
//
//	for _, seg := range img.Segments() {
//	    fmt.Printf("0x%08X +%d\n", seg.Address, len(seg.Data))
//	}
//	flash := img.ToBinary(0x08000000, 64*1024, 0xFF)
//
// # Concurrency
//
// A Space has a single writer. It is not safe to call Set concurrently with
// any other method.
package sparse
