// Package converter drives the batch: one PDF per image folder, every
// page resampled and sized by the shared resolution model. Folders are
// processed in order and in isolation, so a bad image costs only its
// own folder.
package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"img2pdf/contracts"
	"img2pdf/logging"
	"img2pdf/pdf_writer"
	"img2pdf/resolution"
)

type ImageFolder = contracts.ImageFolder
type FolderResult = contracts.FolderResult

// ComposeFolder builds the PDF for a single folder. Pages are appended
// in file order; any failure abandons the folder before its output
// file is created.
func ComposeFolder(folder ImageFolder, model resolution.Model, flags contracts.InputFlags, log *logging.Logger) (int, error) {
	quality := flags.JpegQuality
	if quality < 1 || quality > 100 {
		quality = contracts.DefaultJPEGQuality
	}

	doc := pdf_writer.NewDocument(folder.Name)
	for i, file := range folder.Files {
		size, page, err := preparePage(file.Path, model, quality)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", file.Path, err)
		}
		if err := doc.AddImagePage(size, page); err != nil {
			return 0, fmt.Errorf("%s: %w", file.Path, err)
		}
		log.Debug("[%d/%d] %s -> %.2f x %.2f pt",
			i+1, len(folder.Files), filepath.Base(file.Path), size.Width, size.Height)
	}
	pages := doc.PageCount()

	if err := doc.WriteFile(folder.OutputPath); err != nil {
		return 0, fmt.Errorf("writing %s: %w", folder.OutputPath, err)
	}

	if flags.Optimize {
		// The document is already on disk and valid; a failed rewrite
		// only costs the size reduction.
		if err := pdf_writer.Optimize(folder.OutputPath); err != nil {
			log.Warn("optimize %s: %v", folder.OutputPath, err)
		}
	}
	return pages, nil
}

// Run converts every folder sequentially and folds the outcomes into a
// batch report. A folder failure is recorded and skipped past, never
// fatal.
func Run(folders []ImageFolder, model resolution.Model, flags contracts.InputFlags, log *logging.Logger) contracts.BatchReport {
	var report contracts.BatchReport
	log.Info("output resolution %g dpi (source %g dpi / divisor %g)",
		model.OutputDPI, model.SourceDPI, model.Divisor)

	for _, folder := range folders {
		log.Info("converting %s (%d images)", folder.Path, len(folder.Files))
		start := time.Now()
		pages, err := ComposeFolder(folder, model, flags, log)
		result := FolderResult{
			Folder:     folder.Path,
			OutputPath: folder.OutputPath,
			Pages:      pages,
			InputBytes: folder.TotalSize,
			Elapsed:    time.Since(start),
			Err:        err,
		}
		if err != nil {
			log.Error("%s: %v", folder.Path, err)
		} else {
			if info, statErr := os.Stat(folder.OutputPath); statErr == nil {
				result.OutputBytes = info.Size()
			}
			log.Success("%s -> %s (%d pages, %s)",
				folder.Name, result.OutputPath, pages, result.Elapsed.Round(time.Millisecond))
		}
		report.Add(result)
	}
	return report
}
