package utils

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"

	"github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
)

// ErrNoResolution reports that a file carries no usable resolution
// metadata. Callers treat it as "nothing to suggest", not a failure.
var ErrNoResolution = errors.New("no resolution metadata")

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// DetectDPI probes path for embedded resolution metadata: the pHYs
// chunk for PNG, EXIF XResolution for everything else.
func DetectDPI(path string) (float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	if bytes.HasPrefix(data, pngSignature) {
		return pngDPI(data)
	}
	return exifDPI(data)
}

func exifDPI(data []byte) (float64, error) {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		return 0, ErrNoResolution
	}

	im := exifcommon.NewIfdMapping()
	if err := exifcommon.LoadStandardIfds(im); err != nil {
		return 0, err
	}
	ti := exif.NewTagIndex()
	_, index, err := exif.Collect(im, ti, rawExif)
	if err != nil {
		return 0, err
	}

	tags, err := index.RootIfd.FindTagWithName("XResolution")
	if err != nil {
		return 0, ErrNoResolution
	}
	val, err := tags[0].Value()
	if err != nil {
		return 0, err
	}
	rats, ok := val.([]exifcommon.Rational)
	if !ok || len(rats) == 0 || rats[0].Denominator == 0 {
		return 0, ErrNoResolution
	}
	dpi := float64(rats[0].Numerator) / float64(rats[0].Denominator)

	// ResolutionUnit 3 stores pixels per centimeter.
	if tags, err := index.RootIfd.FindTagWithName("ResolutionUnit"); err == nil {
		if val, err := tags[0].Value(); err == nil {
			if units, ok := val.([]uint16); ok && len(units) > 0 && units[0] == 3 {
				dpi *= 2.54
			}
		}
	}

	if dpi <= 0 {
		return 0, ErrNoResolution
	}
	return dpi, nil
}

// pngDPI walks the chunk list for pHYs. Unit 1 is pixels per meter;
// unit 0 gives only an aspect ratio and is ignored. pHYs must precede
// the image data, so the walk stops at IDAT.
func pngDPI(data []byte) (float64, error) {
	buf := bytes.NewReader(data[len(pngSignature):])
	for {
		var length uint32
		if err := binary.Read(buf, binary.BigEndian, &length); err != nil {
			return 0, ErrNoResolution
		}
		chunkType := make([]byte, 4)
		if _, err := io.ReadFull(buf, chunkType); err != nil {
			return 0, ErrNoResolution
		}

		switch string(chunkType) {
		case "pHYs":
			var perUnitX, perUnitY uint32
			var unit byte
			if err := binary.Read(buf, binary.BigEndian, &perUnitX); err != nil {
				return 0, err
			}
			if err := binary.Read(buf, binary.BigEndian, &perUnitY); err != nil {
				return 0, err
			}
			if err := binary.Read(buf, binary.BigEndian, &unit); err != nil {
				return 0, err
			}
			if unit != 1 || perUnitX == 0 {
				return 0, ErrNoResolution
			}
			return float64(perUnitX) * 0.0254, nil
		case "IDAT", "IEND":
			return 0, ErrNoResolution
		}

		// chunk data + CRC
		if _, err := buf.Seek(int64(length)+4, io.SeekCurrent); err != nil {
			return 0, ErrNoResolution
		}
	}
}
