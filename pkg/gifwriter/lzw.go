package gifwriter

// Mode selects how an image's index stream is turned into LZW code data.
type Mode int

const (
	// Compressed runs the trie-based variable-width LZW encoder.
	Compressed Mode = iota
	// Degenerate emits one literal code per pixel at a fixed 9-bit width,
	// skipping compression entirely. Useful when a frame's content defeats
	// LZW (near-random sparse layers) and the dictionary overhead would
	// cost more than it saves.
	Degenerate
)

// trieNode is one state in the LZW dictionary: a sequence of pixel indices
// seen so far, identified by the code assigned when it was first added.
type trieNode struct {
	children map[byte]*trieNode
	code     int
}

// lzwEncoder implements the GIF LZW variant: a prefix trie over the index
// stream, codes widening from minCodeSize+1 up to 12 bits, and a Clear code
// emitted (with a fresh dictionary) whenever the code space is exhausted.
type lzwEncoder struct {
	bw          *BitWriter
	minCodeSize int
	clearCode   int
	eoiCode     int
	nextCode    int
	codeWidth   int
	root        *trieNode
}

func newLZWEncoder(bw *BitWriter, minCodeSize int) *lzwEncoder {
	e := &lzwEncoder{
		bw:          bw,
		minCodeSize: minCodeSize,
		clearCode:   1 << minCodeSize,
		eoiCode:     (1 << minCodeSize) + 1,
	}
	e.reset()
	return e
}

func (e *lzwEncoder) reset() {
	e.root = newTrieRoot(e.minCodeSize)
	e.nextCode = e.eoiCode + 1
	e.codeWidth = e.minCodeSize + 1
}

func newTrieRoot(minCodeSize int) *trieNode {
	root := &trieNode{children: make(map[byte]*trieNode)}
	for i := 0; i < (1 << uint(minCodeSize)); i++ {
		root.children[byte(i)] = &trieNode{code: i, children: make(map[byte]*trieNode)}
	}
	return root
}

// encode walks data through the trie, emitting one code per match failure
// and growing the dictionary by one entry each time.
func (e *lzwEncoder) encode(data []byte) error {
	if err := e.bw.WriteCode(uint16(e.clearCode), e.codeWidth); err != nil {
		return err
	}
	if len(data) == 0 {
		return e.finish()
	}

	cur := e.root.children[data[0]]
	for _, b := range data[1:] {
		if child, ok := cur.children[b]; ok {
			cur = child
			continue
		}

		if err := e.bw.WriteCode(uint16(cur.code), e.codeWidth); err != nil {
			return err
		}
		cur.children[b] = &trieNode{code: e.nextCode, children: make(map[byte]*trieNode)}
		e.nextCode++

		if e.codeWidth < 12 && e.nextCode > 1<<uint(e.codeWidth) {
			e.codeWidth++
		} else if e.nextCode > (1<<12)-1 {
			if err := e.bw.WriteCode(uint16(e.clearCode), e.codeWidth); err != nil {
				return err
			}
			e.reset()
		}

		cur = e.root.children[b]
	}

	if err := e.bw.WriteCode(uint16(cur.code), e.codeWidth); err != nil {
		return err
	}
	return e.finish()
}

func (e *lzwEncoder) finish() error {
	if err := e.bw.WriteCode(uint16(e.eoiCode), e.codeWidth); err != nil {
		return err
	}
	return e.bw.Flush()
}

// encodeDegenerate writes one literal index per input byte at a fixed
// 9-bit width (the widest a single byte plus Clear/EOI ever needs),
// resetting with a Clear code every 254 pixels so a decoder's dictionary
// growth never has to track state across long runs.
func encodeDegenerate(bw *BitWriter, data []byte) error {
	const (
		clearCode = 256
		eoiCode   = 257
		width     = 9
		resetRate = 254
	)

	if err := bw.WriteCode(clearCode, width); err != nil {
		return err
	}
	since := 0
	for _, b := range data {
		if err := bw.WriteCode(uint16(b), width); err != nil {
			return err
		}
		since++
		if since == resetRate {
			if err := bw.WriteCode(clearCode, width); err != nil {
				return err
			}
			since = 0
		}
	}
	if err := bw.WriteCode(eoiCode, width); err != nil {
		return err
	}
	return bw.Flush()
}

// encodeIndexStream compresses data (one palette index per pixel, row-major)
// into GIF LZW code blocks under mode, writing the result through pw.
func encodeIndexStream(pw *PacketWriter, minCodeSize int, data []byte, mode Mode) error {
	bw := NewBitWriter(pw)
	switch mode {
	case Degenerate:
		return encodeDegenerate(bw, data)
	default:
		return newLZWEncoder(bw, minCodeSize).encode(data)
	}
}
