package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriterEmitsFixedHeaderAndFormatting(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	err := w.WriteRecord(Record{
		Quantizer:           "wu",
		Ditherer:            "floyd-steinberg",
		Metric:              "euclidean",
		PSNR:                32.5,
		SSIM:                0.91234,
		SNR:                 10.1,
		EdgePreservation:    0.8,
		Contrast:            1.2345,
		ColorCount:          255,
		UniqueColors:        4096,
		HistogramBins:       16,
		HistogramEntropy:    3.14159,
		ColorSpread:         50.0,
		ColorUniformity:     0.5,
		HistogramDifference: 0.01,
		ExecutionTimeMillis: 123.456,
		PixelsPerSecond:     99999.9,
		Status:              "ok",
	})
	if err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2 (header + one row)", len(lines))
	}

	wantHeader := "Quantizer,Ditherer,Metric,PSNR,SSIM,SNR,EdgePreservation,Contrast,ColorCount,UniqueColors,HistogramBins,HistogramEntropy,ColorSpread,ColorUniformity,HistogramDifference,ExecutionTime_ms,PixelsPerSecond,Status"
	if lines[0] != wantHeader {
		t.Fatalf("header = %q, want %q", lines[0], wantHeader)
	}

	fields := strings.Split(lines[1], ",")
	if fields[3] != "32.50" {
		t.Errorf("PSNR = %q, want 2 decimals (32.50)", fields[3])
	}
	if fields[4] != "0.9123" {
		t.Errorf("SSIM = %q, want 4 decimals (0.9123)", fields[4])
	}
	if fields[6] != "0.8000" {
		t.Errorf("EdgePreservation = %q, want 4 decimals (0.8000)", fields[6])
	}
	if fields[8] != "255" {
		t.Errorf("ColorCount = %q, want an integer with no decimals (255)", fields[8])
	}
	if fields[13] != "0.5000" {
		t.Errorf("ColorUniformity = %q, want 4 decimals (0.5000)", fields[13])
	}
}

func TestWriteAllWritesMultipleRows(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	records := []Record{
		{Quantizer: "octree", Status: "ok"},
		{Quantizer: "wu", Status: "failed"},
	}
	if err := w.WriteAll(records); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (header + two rows)", len(lines))
	}
}
