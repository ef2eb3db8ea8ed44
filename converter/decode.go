package converter

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"

	"golang.org/x/image/draw"

	"img2pdf/resolution"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// decodeImage opens and decodes one source image. Format sniffing is
// left to image.Decode; the blank imports register every decoder the
// scanner admits.
func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

// resample scales img to its resized dimensions on a fresh opaque
// white canvas. Transparency flattens onto white, and nothing but
// pixels reaches the new image, so source metadata ends here.
func resample(img image.Image, model resolution.Model) (*image.RGBA, error) {
	bounds := img.Bounds()
	w := model.Resize(bounds.Dx())
	h := model.Resize(bounds.Dy())
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("image %dx%d vanishes at divisor %g", bounds.Dx(), bounds.Dy(), model.Divisor)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst, nil
}

// preparePage turns one source file into an encoded JPEG page plus the
// page box that exactly fits it.
func preparePage(path string, model resolution.Model, quality int) (resolution.PageSize, *bytes.Buffer, error) {
	img, err := decodeImage(path)
	if err != nil {
		return resolution.PageSize{}, nil, err
	}
	resized, err := resample(img, model)
	if err != nil {
		return resolution.PageSize{}, nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return resolution.PageSize{}, nil, fmt.Errorf("encoding page: %w", err)
	}
	b := resized.Bounds()
	return model.PageSizeFor(b.Dx(), b.Dy()), &buf, nil
}
