package utils

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func pngChunk(typ string, data []byte) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint32(len(data)))
	buf.WriteString(typ)
	buf.Write(data)
	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	binary.Write(&buf, binary.BigEndian, crc.Sum32())
	return buf.Bytes()
}

func pngFile(perMeter uint32, unit byte, withPhys bool) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'})
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], 1)
	binary.BigEndian.PutUint32(ihdr[4:], 1)
	ihdr[8] = 8
	buf.Write(pngChunk("IHDR", ihdr))
	if withPhys {
		phys := make([]byte, 9)
		binary.BigEndian.PutUint32(phys[0:], perMeter)
		binary.BigEndian.PutUint32(phys[4:], perMeter)
		phys[8] = unit
		buf.Write(pngChunk("pHYs", phys))
	}
	buf.Write(pngChunk("IEND", nil))
	return buf.Bytes()
}

// tiffFile builds a minimal little-endian TIFF whose IFD0 holds only
// XResolution and ResolutionUnit.
func tiffFile(num, den uint32, unit uint16) []byte {
	var buf bytes.Buffer
	le := binary.LittleEndian
	buf.WriteString("II")
	binary.Write(&buf, le, uint16(0x2A))
	binary.Write(&buf, le, uint32(8))

	binary.Write(&buf, le, uint16(2))
	// XResolution, RATIONAL, stored past the IFD at offset 38
	binary.Write(&buf, le, uint16(282))
	binary.Write(&buf, le, uint16(5))
	binary.Write(&buf, le, uint32(1))
	binary.Write(&buf, le, uint32(38))
	// ResolutionUnit, SHORT, value inline
	binary.Write(&buf, le, uint16(296))
	binary.Write(&buf, le, uint16(3))
	binary.Write(&buf, le, uint32(1))
	binary.Write(&buf, le, uint32(unit))
	binary.Write(&buf, le, uint32(0))

	binary.Write(&buf, le, num)
	binary.Write(&buf, le, den)
	return buf.Bytes()
}

func TestDetectDPI_PNGPhysChunk(t *testing.T) {
	// 11811 pixels per meter is the conventional encoding of 300 DPI.
	path := writeTemp(t, "300dpi.png", pngFile(11811, 1, true))
	dpi, err := DetectDPI(path)
	if err != nil {
		t.Fatalf("DetectDPI: %v", err)
	}
	if math.Abs(dpi-300) > 0.01 {
		t.Errorf("dpi = %v, want about 300", dpi)
	}
}

func TestDetectDPI_PNGWithoutPhys(t *testing.T) {
	path := writeTemp(t, "nophys.png", pngFile(0, 0, false))
	if _, err := DetectDPI(path); !errors.Is(err, ErrNoResolution) {
		t.Errorf("err = %v, want ErrNoResolution", err)
	}
}

func TestDetectDPI_PNGAspectRatioOnly(t *testing.T) {
	// Unit 0 carries no absolute scale.
	path := writeTemp(t, "aspect.png", pngFile(4, 0, true))
	if _, err := DetectDPI(path); !errors.Is(err, ErrNoResolution) {
		t.Errorf("err = %v, want ErrNoResolution", err)
	}
}

func TestDetectDPI_EncoderPNGHasNoResolution(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	path := writeTemp(t, "plain.png", buf.Bytes())
	if _, err := DetectDPI(path); !errors.Is(err, ErrNoResolution) {
		t.Errorf("err = %v, want ErrNoResolution", err)
	}
}

func TestDetectDPI_TIFFInches(t *testing.T) {
	path := writeTemp(t, "300.tif", tiffFile(300, 1, 2))
	dpi, err := DetectDPI(path)
	if err != nil {
		t.Fatalf("DetectDPI: %v", err)
	}
	if dpi != 300 {
		t.Errorf("dpi = %v, want 300", dpi)
	}
}

func TestDetectDPI_TIFFCentimeters(t *testing.T) {
	// 118.11 pixels per centimeter is 300 DPI.
	path := writeTemp(t, "cm.tif", tiffFile(11811, 100, 3))
	dpi, err := DetectDPI(path)
	if err != nil {
		t.Fatalf("DetectDPI: %v", err)
	}
	if math.Abs(dpi-300) > 0.01 {
		t.Errorf("dpi = %v, want about 300", dpi)
	}
}

func TestDetectDPI_PlainJPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2)), nil); err != nil {
		t.Fatal(err)
	}
	path := writeTemp(t, "plain.jpg", buf.Bytes())
	if _, err := DetectDPI(path); !errors.Is(err, ErrNoResolution) {
		t.Errorf("err = %v, want ErrNoResolution", err)
	}
}
