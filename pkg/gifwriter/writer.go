// Package gifwriter encodes a sequence of layer.Frame sub-images into a
// byte-exact GIF89a stream: header, logical screen descriptor, optional
// global color table and NETSCAPE2.0 loop extension, then per-frame graphic
// control extension, image descriptor, local color table, and LZW image
// data.
package gifwriter

import (
	"encoding/binary"
	"fmt"
	"image"
	"io"

	"github.com/kieranjs/hicolorgif/pkg/colorspace"
	"github.com/kieranjs/hicolorgif/pkg/layer"
	"github.com/kieranjs/hicolorgif/pkg/palette"
)

// Writer streams GIF89a bytes to an underlying io.Writer. A zero Writer is
// not usable; build one with NewWriter.
type Writer struct {
	w             io.Writer
	width, height int
	globalPalette palette.Palette
	loopCount     *uint16
	mode          Mode

	wroteHeader  bool
	prevDisposal layer.Disposal
	closed       bool
}

// NewWriter prepares a writer for a width×height logical screen. A nil or
// empty globalPalette omits the Global Color Table entirely. A non-nil
// loopCount emits the NETSCAPE2.0 looping extension.
func NewWriter(w io.Writer, width, height int, globalPalette palette.Palette, loopCount *uint16, mode Mode) (*Writer, error) {
	if width <= 0 || height <= 0 || width > 0xFFFF || height > 0xFFFF {
		return nil, fmt.Errorf("gifwriter: invalid dimensions %dx%d: %w", width, height, colorspace.ErrInvalidArgument)
	}
	return &Writer{
		w:             w,
		width:         width,
		height:        height,
		globalPalette: globalPalette,
		loopCount:     loopCount,
		mode:          mode,
	}, nil
}

func writeU16LE(w io.Writer, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// sizeBits returns the smallest n in [0,7] with 2^(n+1) >= count.
func sizeBits(count int) int {
	for n := 0; n <= 7; n++ {
		if (1 << uint(n+1)) >= count {
			return n
		}
	}
	return 7
}

// minCodeSize returns the LZW minimum code size for a palette of the given
// length: the bit width of its largest index, floored at 2 as GIF decoders
// require.
func minCodeSize(paletteLen int) int {
	width := 2
	for (1 << uint(width)) < paletteLen {
		width++
	}
	return width
}

func writeColorTable(w io.Writer, pal palette.Palette) error {
	n := sizeBits(len(pal))
	entries := 1 << uint(n+1)
	buf := make([]byte, 0, entries*3)
	for i := 0; i < entries; i++ {
		if i < len(pal) {
			c := pal[i]
			buf = append(buf, c.R, c.G, c.B)
		} else {
			buf = append(buf, 0, 0, 0)
		}
	}
	_, err := w.Write(buf)
	return err
}

// WriteHeader emits "GIF89a", the Logical Screen Descriptor, the Global
// Color Table if one was supplied, and the NETSCAPE2.0 loop extension if a
// loop count was supplied. Callers must invoke it exactly once, before any
// WriteFrame call.
func (gw *Writer) WriteHeader() error {
	if gw.wroteHeader {
		panic(colorspace.ErrInternalInvariant)
	}
	gw.wroteHeader = true

	if _, err := io.WriteString(gw.w, "GIF89a"); err != nil {
		return gw.ioErr(err)
	}
	if err := writeU16LE(gw.w, uint16(gw.width)); err != nil {
		return gw.ioErr(err)
	}
	if err := writeU16LE(gw.w, uint16(gw.height)); err != nil {
		return gw.ioErr(err)
	}

	hasGCT := len(gw.globalPalette) > 0
	var packed byte = 0x70 // colorResolution bits 6-4 = 7 (8-bit color depth), sort flag 0
	gctBits := 0
	if hasGCT {
		packed |= 0x80
		gctBits = sizeBits(len(gw.globalPalette))
		packed |= byte(gctBits)
	}
	if _, err := gw.w.Write([]byte{packed, 0, 0}); err != nil { // backgroundColorIndex, pixelAspectRatio
		return gw.ioErr(err)
	}

	if hasGCT {
		if err := writeColorTable(gw.w, gw.globalPalette); err != nil {
			return gw.ioErr(err)
		}
	}

	if gw.loopCount != nil {
		header := []byte{0x21, 0xFF, 0x0B}
		header = append(header, []byte("NETSCAPE2.0")...)
		header = append(header, 0x03, 0x01)
		if _, err := gw.w.Write(header); err != nil {
			return gw.ioErr(err)
		}
		if err := writeU16LE(gw.w, *gw.loopCount); err != nil {
			return gw.ioErr(err)
		}
		if _, err := gw.w.Write([]byte{0x00}); err != nil {
			return gw.ioErr(err)
		}
	}
	return nil
}

// WriteFrame emits one frame's Graphic Control Extension, Image Descriptor,
// Local Color Table, and LZW-coded image data. Frames must be written in
// playback order.
func (gw *Writer) WriteFrame(f layer.Frame) error {
	if !gw.wroteHeader {
		panic(colorspace.ErrInternalInvariant)
	}

	background := uint8(0)
	if f.TransparentColorIndex != nil {
		background = *f.TransparentColorIndex
	}

	rect := image.Rect(0, 0, f.Image.Width, f.Image.Height)
	if gw.prevDisposal == layer.DisposalDoNotDispose {
		if cropped, ok := dirtyRect(f.Image, background); ok {
			rect = cropped
		} else {
			rect = image.Rect(0, 0, 1, 1)
		}
	}

	if err := gw.writeGraphicControlExtension(f); err != nil {
		return err
	}
	if err := gw.writeImageDescriptor(f, rect); err != nil {
		return err
	}
	if err := gw.writeImageData(f, rect); err != nil {
		return err
	}

	gw.prevDisposal = f.Disposal
	return nil
}

func (gw *Writer) writeGraphicControlExtension(f layer.Frame) error {
	var packed byte
	packed |= byte(f.Disposal&0x7) << 2
	if f.TransparentColorIndex != nil {
		packed |= 0x01
	}

	delayMs := f.Duration.Milliseconds()
	delayCentis := delayMs / 10
	if delayCentis < 0 {
		delayCentis = 0
	}
	if delayCentis > 0xFFFF {
		delayCentis = 0xFFFF
	}

	transparentIndex := byte(0)
	if f.TransparentColorIndex != nil {
		transparentIndex = *f.TransparentColorIndex
	}

	if _, err := gw.w.Write([]byte{0x21, 0xF9, 0x04, packed}); err != nil {
		return gw.ioErr(err)
	}
	if err := writeU16LE(gw.w, uint16(delayCentis)); err != nil {
		return gw.ioErr(err)
	}
	if _, err := gw.w.Write([]byte{transparentIndex, 0x00}); err != nil {
		return gw.ioErr(err)
	}
	return nil
}

func (gw *Writer) writeImageDescriptor(f layer.Frame, rect image.Rectangle) error {
	left := f.Offset.X + rect.Min.X
	top := f.Offset.Y + rect.Min.Y

	if _, err := gw.w.Write([]byte{0x2C}); err != nil {
		return gw.ioErr(err)
	}
	if err := writeU16LE(gw.w, uint16(left)); err != nil {
		return gw.ioErr(err)
	}
	if err := writeU16LE(gw.w, uint16(top)); err != nil {
		return gw.ioErr(err)
	}
	if err := writeU16LE(gw.w, uint16(rect.Dx())); err != nil {
		return gw.ioErr(err)
	}
	if err := writeU16LE(gw.w, uint16(rect.Dy())); err != nil {
		return gw.ioErr(err)
	}

	lctBits := sizeBits(len(f.Image.Palette))
	packed := byte(0x80) | byte(lctBits) // LCT present, not interlaced, not sorted
	if _, err := gw.w.Write([]byte{packed}); err != nil {
		return gw.ioErr(err)
	}
	return writeColorTable(gw.w, f.Image.Palette)
}

func (gw *Writer) writeImageData(f layer.Frame, rect image.Rectangle) error {
	codeSize := minCodeSize(len(f.Image.Palette))
	if gw.mode == Degenerate {
		// Uncompressed mode always emits fixed 9-bit literal codes (8-bit
		// pixel values plus Clear/EOI), regardless of the frame's actual
		// palette size.
		codeSize = 8
	}
	if _, err := gw.w.Write([]byte{byte(codeSize)}); err != nil {
		return gw.ioErr(err)
	}

	pw := NewPacketWriter(gw.w)
	data := cropPixels(f.Image, rect)
	if err := encodeIndexStream(pw, codeSize, data, gw.mode); err != nil {
		return err
	}
	return pw.Close()
}

// Close writes the GIF trailer byte. It does not close the underlying
// io.Writer.
func (gw *Writer) Close() error {
	if gw.closed {
		return nil
	}
	gw.closed = true
	_, err := gw.w.Write([]byte{0x3B})
	return gw.ioErr(err)
}

func (gw *Writer) ioErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("gifwriter: %v: %w", err, colorspace.ErrIOFailure)
}
