package driver

import (
	"fmt"

	"github.com/kieranjs/hicolorgif/pkg/colorspace"
	"github.com/kieranjs/hicolorgif/pkg/dither"
	"github.com/kieranjs/hicolorgif/pkg/layer"
	"github.com/kieranjs/hicolorgif/pkg/quantize"
)

// quantizerFor resolves a config quantizer name to a quantize.Quantizer.
func quantizerFor(name string) (quantize.Quantizer, error) {
	switch name {
	case "octree":
		return quantize.Octree{}, nil
	case "median-cut":
		return quantize.MedianCut{}, nil
	case "wu":
		return quantize.Wu{}, nil
	case "variance":
		return quantize.VarianceBased{}, nil
	case "variance-cut":
		return quantize.VarianceCut{}, nil
	case "binary-splitting":
		return quantize.BinarySplitting{}, nil
	case "adu":
		return quantize.Adu{}, nil
	case "wu-ant":
		return quantize.WuAntQuantizer(), nil
	case "binary-splitting-ant":
		return quantize.BinarySplittingAntQuantizer(), nil
	case "bsitatcq":
		return quantize.BSITATCQQuantizer(), nil
	default:
		return nil, fmt.Errorf("driver: unknown quantizer %q: %w", name, colorspace.ErrInvalidArgument)
	}
}

// dithererFor resolves a config ditherer name to a dither.Ditherer.
func dithererFor(name string) (dither.Ditherer, error) {
	switch name {
	case "none":
		return dither.NoDither{}, nil
	case "floyd-steinberg":
		return dither.MatrixBasedDitherer{Kernel: dither.FloydSteinberg}, nil
	case "simple":
		return dither.MatrixBasedDitherer{Kernel: dither.Simple}, nil
	case "jarvis-judice-ninke":
		return dither.MatrixBasedDitherer{Kernel: dither.JarvisJudiceNinke}, nil
	case "stucki":
		return dither.MatrixBasedDitherer{Kernel: dither.Stucki}, nil
	case "atkinson":
		return dither.MatrixBasedDitherer{Kernel: dither.Atkinson}, nil
	case "burkes":
		return dither.MatrixBasedDitherer{Kernel: dither.Burkes}, nil
	case "sierra":
		return dither.MatrixBasedDitherer{Kernel: dither.Sierra}, nil
	case "two-row-sierra":
		return dither.MatrixBasedDitherer{Kernel: dither.TwoRowSierra}, nil
	case "sierra-lite":
		return dither.MatrixBasedDitherer{Kernel: dither.SierraLite}, nil
	case "bayer-2x2":
		return dither.NewBayerDitherer(2), nil
	case "bayer-4x4":
		return dither.NewBayerDitherer(4), nil
	case "bayer-8x8":
		return dither.NewBayerDitherer(8), nil
	case "white-noise":
		return dither.NoiseDitherer{Spectrum: dither.WhiteNoise}, nil
	case "blue-noise":
		return dither.NoiseDitherer{Spectrum: dither.BlueNoise}, nil
	case "brown-noise":
		return dither.NoiseDitherer{Spectrum: dither.BrownNoise}, nil
	case "riemersma":
		return dither.RiemersmaDitherer{}, nil
	case "knoll":
		return dither.KnollDitherer{}, nil
	default:
		return nil, fmt.Errorf("driver: unknown ditherer %q: %w", name, colorspace.ErrInvalidArgument)
	}
}

// metricFor resolves a config metric name to a colorspace.Metric.
func metricFor(name string) (colorspace.Metric, error) {
	switch name {
	case "euclidean":
		return colorspace.Euclidean, nil
	case "manhattan":
		return colorspace.Manhattan, nil
	case "weighted-euclidean":
		return colorspace.WeightedEuclideanBT709, nil
	case "weighted-manhattan":
		return colorspace.WeightedManhattanLowRed, nil
	case "weighted-yuv":
		return colorspace.WeightedYUV, nil
	case "weighted-ycbcr":
		return colorspace.WeightedYCbCr, nil
	case "compuphase":
		return colorspace.CompuPhase, nil
	case "pngquant":
		return colorspace.PngQuant, nil
	case "cie94-textiles":
		return colorspace.CIE94Textiles, nil
	case "cie94-graphic-arts":
		return colorspace.CIE94GraphicArts, nil
	case "ciede2000":
		return colorspace.CIEDE2000, nil
	default:
		return nil, fmt.Errorf("driver: unknown color distance metric %q: %w", name, colorspace.ErrInvalidArgument)
	}
}

// orderingFor resolves a config color-ordering name to a layer.ColorOrdering.
func orderingFor(name string) (layer.ColorOrdering, error) {
	switch name {
	case "most-used-first":
		return layer.MostUsedFirst, nil
	case "least-used-first":
		return layer.LeastUsedFirst, nil
	case "high-luminance-first":
		return layer.HighLuminanceFirst, nil
	case "low-luminance-first":
		return layer.LowLuminanceFirst, nil
	case "from-center":
		return layer.FromCenter, nil
	case "random":
		return layer.Random, nil
	default:
		return 0, fmt.Errorf("driver: unknown color ordering %q: %w", name, colorspace.ErrInvalidArgument)
	}
}
