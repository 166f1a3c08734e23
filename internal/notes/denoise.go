// Package notes turns photos of handwritten blackboard math into a compiled
// LaTeX document: denoise and enhance the images, transcribe them with the
// vision collaborator, repair the returned source, and run the TeX
// toolchain when it is installed.
package notes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// Artifacts are the files the enhancement stage writes for one input image.
type Artifacts struct {
	BaseName string
	Denoised string
	Enhanced string
}

// Denoise cleans up one chalkboard photo and writes `<base>_denoised.jpg`
// and `<base>_enhanced.jpg` into processedDir. The enhanced variant is the
// one fed to the vision model: grayscale, smoothed, contrast-stretched and
// resharpened so chalk strokes stand out.
func Denoise(inPath, processedDir string) (*Artifacts, error) {
	if err := os.MkdirAll(processedDir, 0o755); err != nil {
		return nil, fmt.Errorf("create processed dir: %w", err)
	}
	img, err := imaging.Open(inPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", inPath, err)
	}
	base := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))

	gray := imaging.Grayscale(img)
	denoised := imaging.Blur(gray, 0.8)
	enhanced := imaging.Sharpen(imaging.AdjustContrast(denoised, 40), 1.2)

	a := &Artifacts{
		BaseName: base,
		Denoised: filepath.Join(processedDir, base+"_denoised.jpg"),
		Enhanced: filepath.Join(processedDir, base+"_enhanced.jpg"),
	}
	if err := imaging.Save(denoised, a.Denoised, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("save denoised image: %w", err)
	}
	if err := imaging.Save(enhanced, a.Enhanced, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("save enhanced image: %w", err)
	}
	return a, nil
}
