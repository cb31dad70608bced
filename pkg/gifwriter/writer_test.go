package gifwriter

import (
	"bytes"
	"image"
	"image/gif"
	"testing"
	"time"

	"github.com/kieranjs/hicolorgif/pkg/colorspace"
	"github.com/kieranjs/hicolorgif/pkg/dither"
	"github.com/kieranjs/hicolorgif/pkg/layer"
	"github.com/kieranjs/hicolorgif/pkg/palette"
)

func TestWriterRoundTripsThroughStandardLibraryDecoder(t *testing.T) {
	const w, h = 6, 4

	red := colorspace.NewRGB(255, 0, 0)
	blue := colorspace.NewRGB(0, 0, 255)
	green := colorspace.NewRGB(0, 255, 0)

	frame1Pal := palette.Palette{colorspace.Transparent, red, blue}
	frame1Img := dither.NewIndexedImage(w, h, frame1Pal)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			frame1Img.Set(x, y, 1)
		}
	}
	frame1Img.Set(3, 2, 2)
	frame1 := layer.Frame{
		Image:              frame1Img,
		Duration:           100 * time.Millisecond,
		Disposal:           layer.DisposalDoNotDispose,
		UseLocalColorTable: true,
	}

	frame2Pal := palette.Palette{colorspace.Transparent, green}
	frame2Img := dither.NewIndexedImage(w, h, frame2Pal)
	frame2Img.Set(4, 1, 1)
	frame2Img.Set(5, 1, 1)
	zero := uint8(0)
	frame2 := layer.Frame{
		Image:                 frame2Img,
		Duration:              50 * time.Millisecond,
		Disposal:              layer.DisposalDoNotDispose,
		TransparentColorIndex: &zero,
		UseLocalColorTable:    true,
	}

	var buf bytes.Buffer
	gw, err := NewWriter(&buf, w, h, nil, nil, Compressed)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := gw.WriteHeader(); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	if err := gw.WriteFrame(frame1); err != nil {
		t.Fatalf("WriteFrame(frame1): %v", err)
	}
	if err := gw.WriteFrame(frame2); err != nil {
		t.Fatalf("WriteFrame(frame2): %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if got := buf.Bytes()[:6]; string(got) != "GIF89a" {
		t.Fatalf("header = %q, want GIF89a", got)
	}
	if last := buf.Bytes()[buf.Len()-1]; last != 0x3B {
		t.Fatalf("trailer byte = %#x, want 0x3B", last)
	}

	decoded, err := gif.DecodeAll(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("gif.DecodeAll: %v", err)
	}
	if len(decoded.Image) != 2 {
		t.Fatalf("frame count = %d, want 2", len(decoded.Image))
	}

	if decoded.Delay[0] != 10 {
		t.Fatalf("frame1 delay = %d centiseconds, want 10", decoded.Delay[0])
	}
	if decoded.Delay[1] != 5 {
		t.Fatalf("frame2 delay = %d centiseconds, want 5", decoded.Delay[1])
	}
	if decoded.Disposal[0] != gif.DisposalNone || decoded.Disposal[1] != gif.DisposalNone {
		t.Fatalf("disposal methods = %v, want DisposalNone for both", decoded.Disposal)
	}

	f1 := decoded.Image[0]
	if !f1.Bounds().Eq(image.Rect(0, 0, w, h)) {
		t.Fatalf("frame1 bounds = %v, want full canvas (no previous DoNotDispose frame to crop against)", f1.Bounds())
	}
	r, g, b, _ := f1.At(3, 2).RGBA()
	if uint8(r>>8) != blue.R || uint8(g>>8) != blue.G || uint8(b>>8) != blue.B {
		t.Fatalf("frame1 pixel (3,2) = (%d,%d,%d), want blue", r>>8, g>>8, b>>8)
	}
	r, g, b, _ = f1.At(0, 0).RGBA()
	if uint8(r>>8) != red.R || uint8(g>>8) != red.G || uint8(b>>8) != red.B {
		t.Fatalf("frame1 pixel (0,0) = (%d,%d,%d), want red", r>>8, g>>8, b>>8)
	}

	f2 := decoded.Image[1]
	wantBounds := image.Rect(4, 1, 6, 2)
	if !f2.Bounds().Eq(wantBounds) {
		t.Fatalf("frame2 bounds = %v, want %v (cropped to its dirty rect)", f2.Bounds(), wantBounds)
	}
	r, g, b, _ = f2.At(4, 1).RGBA()
	if uint8(r>>8) != green.R || uint8(g>>8) != green.G || uint8(b>>8) != green.B {
		t.Fatalf("frame2 pixel (4,1) = (%d,%d,%d), want green", r>>8, g>>8, b>>8)
	}
}

func TestWriterUsesGlobalColorTableAndLoopExtension(t *testing.T) {
	const w, h = 2, 2
	pal := palette.Palette{colorspace.NewRGB(10, 20, 30), colorspace.NewRGB(40, 50, 60)}
	loop := uint16(0)

	var buf bytes.Buffer
	gw, err := NewWriter(&buf, w, h, pal, &loop, Compressed)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := gw.WriteHeader(); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}

	out := buf.Bytes()
	packed := out[10]
	if packed&0x80 == 0 {
		t.Fatalf("GCT present flag not set in packed byte %#x", packed)
	}

	if !bytes.Contains(out, []byte("NETSCAPE2.0")) {
		t.Fatalf("missing NETSCAPE2.0 loop extension")
	}
}

func TestWriterRejectsOversizedDimensions(t *testing.T) {
	var buf bytes.Buffer
	if _, err := NewWriter(&buf, 0, 10, nil, nil, Compressed); err == nil {
		t.Fatalf("expected error for zero width")
	}
	if _, err := NewWriter(&buf, 70000, 10, nil, nil, Compressed); err == nil {
		t.Fatalf("expected error for width over u16 range")
	}
}

func TestWriterDegenerateModeRoundTrips(t *testing.T) {
	const w, h = 3, 3
	pal := palette.Palette{colorspace.Transparent, colorspace.NewRGB(200, 100, 50)}
	img := dither.NewIndexedImage(w, h, pal)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, 1)
		}
	}
	frame := layer.Frame{
		Image:              img,
		Duration:           30 * time.Millisecond,
		Disposal:           layer.DisposalDoNotDispose,
		UseLocalColorTable: true,
	}

	var buf bytes.Buffer
	gw, err := NewWriter(&buf, w, h, nil, nil, Degenerate)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := gw.WriteHeader(); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	if err := gw.WriteFrame(frame); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	decoded, err := gif.DecodeAll(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("gif.DecodeAll: %v", err)
	}
	r, g, b, _ := decoded.Image[0].At(1, 1).RGBA()
	want := pal[1]
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
		t.Fatalf("pixel = (%d,%d,%d), want (%d,%d,%d)", r>>8, g>>8, b>>8, want.R, want.G, want.B)
	}
}
