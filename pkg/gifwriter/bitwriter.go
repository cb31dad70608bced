package gifwriter

import (
	"fmt"
	"io"

	"github.com/kieranjs/hicolorgif/pkg/colorspace"
)

// PacketWriter buffers output into GIF sub-blocks: each written chunk of up
// to 255 bytes is preceded by its own length byte. Close flushes any
// partial block and writes the zero-length terminator.
type PacketWriter struct {
	w   io.Writer
	buf [255]byte
	n   int
}

// NewPacketWriter wraps w.
func NewPacketWriter(w io.Writer) *PacketWriter {
	return &PacketWriter{w: w}
}

// WriteByte appends a single byte, flushing a full 255-byte block when the
// buffer fills.
func (p *PacketWriter) WriteByte(b byte) error {
	p.buf[p.n] = b
	p.n++
	if p.n == 255 {
		return p.flushBlock()
	}
	return nil
}

func (p *PacketWriter) flushBlock() error {
	if p.n == 0 {
		return nil
	}
	if _, err := p.w.Write([]byte{byte(p.n)}); err != nil {
		return fmt.Errorf("gifwriter: write sub-block length: %w", joinIO(err))
	}
	if _, err := p.w.Write(p.buf[:p.n]); err != nil {
		return fmt.Errorf("gifwriter: write sub-block: %w", joinIO(err))
	}
	p.n = 0
	return nil
}

// Close flushes any partial block and writes the terminating zero-length
// block.
func (p *PacketWriter) Close() error {
	if err := p.flushBlock(); err != nil {
		return err
	}
	if _, err := p.w.Write([]byte{0}); err != nil {
		return fmt.Errorf("gifwriter: write block terminator: %w", joinIO(err))
	}
	return nil
}

func joinIO(err error) error {
	return fmt.Errorf("%v: %w", err, colorspace.ErrIOFailure)
}

// BitWriter packs variable-width codes LSB-first into bytes and forwards
// completed bytes to a PacketWriter, the bit-level half of the LZW output
// path.
type BitWriter struct {
	out      *PacketWriter
	bitBuf   uint32
	bitCount uint
}

// NewBitWriter wraps out.
func NewBitWriter(out *PacketWriter) *BitWriter {
	return &BitWriter{out: out}
}

// WriteCode appends code's low `width` bits to the stream, LSB first.
func (bw *BitWriter) WriteCode(code uint16, width int) error {
	bw.bitBuf |= uint32(code) << bw.bitCount
	bw.bitCount += uint(width)
	for bw.bitCount >= 8 {
		if err := bw.out.WriteByte(byte(bw.bitBuf)); err != nil {
			return err
		}
		bw.bitBuf >>= 8
		bw.bitCount -= 8
	}
	return nil
}

// Flush pads any remaining partial byte with zero bits and emits it.
func (bw *BitWriter) Flush() error {
	if bw.bitCount == 0 {
		return nil
	}
	if err := bw.out.WriteByte(byte(bw.bitBuf)); err != nil {
		return err
	}
	bw.bitBuf = 0
	bw.bitCount = 0
	return nil
}
