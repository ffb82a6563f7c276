// Command fpgen writes synthetic fingerprint reference bitmaps for the seeded
// demo accounts. The matcher only ever compares rasters for exact equality, so
// any deterministic-per-file pattern works as a stand-in for a real scan.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
)

var accountIDs = []string{"1001", "1002", "1003", "1004", "1005"}

func main() {
	dir := flag.String("dir", "fingerprints", "output directory for reference bitmaps")
	size := flag.Int("size", 300, "square bitmap dimension in pixels")
	flag.Parse()

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "fpgen: %v\n", err)
		os.Exit(1)
	}

	for i, id := range accountIDs {
		path := filepath.Join(*dir, id+".BMP")
		if err := writeFingerprint(path, *size, int64(i)); err != nil {
			fmt.Fprintf(os.Stderr, "fpgen: %s: %v\n", id, err)
			os.Exit(1)
		}
		fmt.Printf("generated %s\n", path)
	}
}

// writeFingerprint draws wavy ridge-like lines on a white background, seeded
// per account so each file is distinct but reproducible.
func writeFingerprint(path string, size int, seed int64) error {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewGray(image.Rect(0, 0, size, size))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	for y := 0; y < size; y += 3 {
		amplitude := float64(5 + rng.Intn(16))
		frequency := 0.05 + rng.Float64()*0.15
		for x := 0; x < size; x++ {
			if rng.Float64() <= 0.7 {
				continue
			}
			offset := int(amplitude * math.Sin(frequency*float64(x)))
			for dy := 0; dy < 3; dy++ {
				yy := y + offset + dy
				if yy >= 0 && yy < size {
					img.SetGray(x, yy, color.Gray{Y: 50})
				}
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return bmp.Encode(f, img)
}
