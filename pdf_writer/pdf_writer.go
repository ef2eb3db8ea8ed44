// Package pdf_writer assembles one PDF per image folder. Every page is
// created at the exact point size of its image, so the drawn image
// covers the whole page with no margins.
package pdf_writer

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/phpdave11/gofpdf"

	"img2pdf/resolution"
)

// Document accumulates image pages and writes the finished file.
type Document struct {
	pdf *gofpdf.Fpdf
}

// NewDocument returns an empty portrait document in point units, zero
// margins, automatic page breaking off. title lands in the PDF
// metadata.
func NewDocument(title string) *Document {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(true)
	pdf.SetTitle(title, true)
	pdf.SetCreator("img2pdf", true)
	return &Document{pdf: pdf}
}

// AddImagePage appends one page of exactly the given size and draws the
// JPEG from r over its full extent. The size is bound when the page is
// created, before any drawing, so the image can never spill onto a
// follow-up page.
func (d *Document) AddImagePage(size resolution.PageSize, r io.Reader) error {
	d.pdf.AddPageFormat("P", gofpdf.SizeType{Wd: size.Width, Ht: size.Height})

	name := fmt.Sprintf("img_%d", d.pdf.PageCount())
	opts := gofpdf.ImageOptions{ImageType: "JPEG", ReadDpi: false}
	d.pdf.RegisterImageOptionsReader(name, opts, r)
	if d.pdf.Err() {
		return fmt.Errorf("registering page image: %w", d.pdf.Error())
	}
	d.pdf.ImageOptions(name, 0, 0, size.Width, size.Height, false, opts, 0, "")
	if d.pdf.Err() {
		return fmt.Errorf("drawing page image: %w", d.pdf.Error())
	}
	return nil
}

// PageCount reports the number of pages added so far.
func (d *Document) PageCount() int {
	return d.pdf.PageCount()
}

// WriteFile writes the document to path, replacing any existing file,
// and closes it. The Document must not be reused afterwards.
func (d *Document) WriteFile(path string) error {
	return d.pdf.OutputFileAndClose(path)
}

// Optimize rewrites the finished PDF at path in place, deduplicating
// resources and dropping unreferenced objects.
func Optimize(path string) error {
	return api.OptimizeFile(path, path, model.NewDefaultConfiguration())
}
