// Package biometric decides whether a submitted fingerprint image matches a
// stored reference. The policy is strict raster equality: a single differing
// pixel (including lossy re-encoding of an otherwise identical print) is a
// non-match. This is deliberately not a similarity matcher.
package biometric

import (
	"bytes"
	"image"
	"log/slog"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
)

// Matcher reports whether a candidate artifact matches a reference artifact.
type Matcher interface {
	Matches(reference, candidate []byte) bool
}

// ExactMatcher compares two images for bit-exact pixel equality after decoding
// to a canonical raster. Decode failures of either artifact are a non-match,
// never an error: the caller only ever learns match or no-match.
type ExactMatcher struct {
	logger *slog.Logger
}

func NewExactMatcher(logger *slog.Logger) *ExactMatcher {
	return &ExactMatcher{logger: logger}
}

func (m *ExactMatcher) Matches(reference, candidate []byte) bool {
	if len(reference) == 0 || len(candidate) == 0 {
		return false
	}

	// No byte-level shortcut: both artifacts must decode, so that identical
	// but corrupt uploads still report a non-match.
	ref, _, err := image.Decode(bytes.NewReader(reference))
	if err != nil {
		m.logger.Debug("reference artifact failed to decode", "error", err)
		return false
	}
	cand, _, err := image.Decode(bytes.NewReader(candidate))
	if err != nil {
		m.logger.Debug("candidate artifact failed to decode", "error", err)
		return false
	}

	return rastersEqual(ref, cand)
}

// rastersEqual compares dimensions and every pixel in the normalized RGBA
// color space. Differing dimensions are an immediate non-match.
func rastersEqual(a, b image.Image) bool {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return false
	}

	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			ar, ag, abl, aa := a.At(ab.Min.X+x, ab.Min.Y+y).RGBA()
			br, bg, bbl, ba := b.At(bb.Min.X+x, bb.Min.Y+y).RGBA()
			if ar != br || ag != bg || abl != bbl || aa != ba {
				return false
			}
		}
	}
	return true
}
