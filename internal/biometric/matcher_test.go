package biometric

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/image/bmp"
)

type ExactMatcherSuite struct {
	suite.Suite
	matcher *ExactMatcher
}

func (s *ExactMatcherSuite) SetupTest() {
	s.matcher = NewExactMatcher(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestExactMatcherSuite(t *testing.T) {
	suite.Run(t, new(ExactMatcherSuite))
}

// ridgeImage builds a small opaque test raster with a deterministic pattern.
func ridgeImage(w, h int, seed uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(x*3+y*7) + seed
			img.Set(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func encodeBMP(s *ExactMatcherSuite, img image.Image) []byte {
	var buf bytes.Buffer
	s.Require().NoError(bmp.Encode(&buf, img))
	return buf.Bytes()
}

func encodePNG(s *ExactMatcherSuite, img image.Image) []byte {
	var buf bytes.Buffer
	s.Require().NoError(png.Encode(&buf, img))
	return buf.Bytes()
}

func (s *ExactMatcherSuite) TestIdenticalBytesMatch() {
	art := encodeBMP(s, ridgeImage(16, 16, 0))
	s.True(s.matcher.Matches(art, append([]byte{}, art...)))
}

func (s *ExactMatcherSuite) TestSameRasterDifferentEncodingMatches() {
	img := ridgeImage(16, 16, 0)
	s.True(s.matcher.Matches(encodeBMP(s, img), encodePNG(s, img)))
}

func (s *ExactMatcherSuite) TestSinglePixelDifferenceRejected() {
	ref := ridgeImage(16, 16, 0)
	cand := ridgeImage(16, 16, 0)
	cand.Set(7, 9, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	s.False(s.matcher.Matches(encodeBMP(s, ref), encodeBMP(s, cand)))
}

func (s *ExactMatcherSuite) TestDimensionMismatchRejected() {
	s.False(s.matcher.Matches(encodeBMP(s, ridgeImage(16, 16, 0)), encodeBMP(s, ridgeImage(16, 17, 0))))
}

func (s *ExactMatcherSuite) TestCorruptArtifactsRejected() {
	valid := encodeBMP(s, ridgeImage(8, 8, 0))
	garbage := []byte("definitely not an image")

	s.False(s.matcher.Matches(garbage, valid))
	s.False(s.matcher.Matches(valid, garbage))
	s.False(s.matcher.Matches(garbage, append([]byte{}, garbage...)))
	s.False(s.matcher.Matches(nil, valid))
	s.False(s.matcher.Matches(valid, nil))
}
