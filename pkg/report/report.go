// Package report writes algorithm-comparison results to CSV in the fixed
// column order and numeric precision a benchmarking harness expects. The
// metrics themselves (PSNR, SSIM, and friends) are computed by that external
// harness; this package only shapes and formats rows for it.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/kieranjs/hicolorgif/pkg/colorspace"
)

// columns is the fixed header row every exported CSV carries, in order.
var columns = []string{
	"Quantizer", "Ditherer", "Metric", "PSNR", "SSIM", "SNR",
	"EdgePreservation", "Contrast", "ColorCount", "UniqueColors",
	"HistogramBins", "HistogramEntropy", "ColorSpread", "ColorUniformity",
	"HistogramDifference", "ExecutionTime_ms", "PixelsPerSecond", "Status",
}

// Record is one row of a comparison run: which collaborators produced it,
// the quality metrics an external harness measured, and the outcome.
type Record struct {
	Quantizer string
	Ditherer  string
	Metric    string

	PSNR                 float64
	SSIM                 float64
	SNR                  float64
	EdgePreservation     float64
	Contrast             float64
	ColorCount           int
	UniqueColors         int
	HistogramBins        int
	HistogramEntropy     float64
	ColorSpread          float64
	ColorUniformity      float64
	HistogramDifference  float64
	ExecutionTimeMillis  float64
	PixelsPerSecond      float64
	Status               string
}

func (r Record) row() []string {
	return []string{
		r.Quantizer,
		r.Ditherer,
		r.Metric,
		fmt2(r.PSNR),
		fmt4(r.SSIM),
		fmt2(r.SNR),
		fmt4(r.EdgePreservation),
		fmt2(r.Contrast),
		strconv.Itoa(r.ColorCount),
		strconv.Itoa(r.UniqueColors),
		strconv.Itoa(r.HistogramBins),
		fmt2(r.HistogramEntropy),
		fmt2(r.ColorSpread),
		fmt4(r.ColorUniformity),
		fmt2(r.HistogramDifference),
		fmt2(r.ExecutionTimeMillis),
		fmt2(r.PixelsPerSecond),
		r.Status,
	}
}

func fmt2(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
func fmt4(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }

// Writer streams Records to w as CSV with the fixed header row.
type Writer struct {
	cw          *csv.Writer
	wroteHeader bool
}

// NewWriter wraps w. Callers must call Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{cw: csv.NewWriter(w)}
}

// WriteRecord writes the header row on first call, then r's row.
func (rw *Writer) WriteRecord(r Record) error {
	if !rw.wroteHeader {
		if err := rw.cw.Write(columns); err != nil {
			return joinIO(err)
		}
		rw.wroteHeader = true
	}
	if err := rw.cw.Write(r.row()); err != nil {
		return joinIO(err)
	}
	return nil
}

// WriteAll writes every record in order, flushing afterward.
func (rw *Writer) WriteAll(records []Record) error {
	for _, r := range records {
		if err := rw.WriteRecord(r); err != nil {
			return err
		}
	}
	return rw.Flush()
}

// Flush flushes any buffered output and reports the first write error, if
// any occurred.
func (rw *Writer) Flush() error {
	rw.cw.Flush()
	if err := rw.cw.Error(); err != nil {
		return joinIO(err)
	}
	return nil
}

func joinIO(err error) error {
	return fmt.Errorf("report: %v: %w", err, colorspace.ErrIOFailure)
}
