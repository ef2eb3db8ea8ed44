package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"img2pdf/contracts"
	"img2pdf/converter"
	"img2pdf/files_manager"
	"img2pdf/logging"
	"img2pdf/resolution"
	"img2pdf/utils"
)

type InputFlags = contracts.InputFlags

func usage() {
	fmt.Println("img2pdf builds one PDF per directory of scanned images.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  img2pdf [flags] DIR [DIR ...]")
	fmt.Println()
	fmt.Println("Each DIR becomes DIR.pdf next to it, one page per image, every page")
	fmt.Println("sized to exactly fit its resampled image.")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}

func main() {
	quality := flag.Int("quality", contracts.DefaultJPEGQuality, "JPEG quality for resampled pages (1-100)")
	dpi := flag.Float64("dpi", 0, "source scan resolution; prompted for when omitted")
	divisor := flag.Float64("divisor", 0, "resolution divisor; prompted for when omitted")
	optimize := flag.Bool("optimize", true, "rewrite each finished PDF through the optimizer")
	logFile := flag.String("logfile", "", "append a plain-text copy of the log to this file")
	verbose := flag.Bool("verbose", false, "log per-page progress")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.CommandLine.SetOutput(os.Stdout)
		usage()
		os.Exit(0)
	}

	log, err := logging.New(os.Stdout, os.Stderr, *logFile, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening log file: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	if *quality < 1 || *quality > 100 {
		log.Error("quality %d out of range 1-100", *quality)
		os.Exit(1)
	}

	folders, err := files_manager.ResolveFolders(flag.Args())
	if err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Info("resolved %d folders, %d images total", len(folders), countImages(folders))

	stdin := bufio.NewReader(os.Stdin)
	sourceDPI := *dpi
	// Not v <= 0: a NaN flag value must fall through to the prompt too.
	if !(sourceDPI > 0) {
		sourceDPI, err = promptPositiveFloat(stdin, os.Stdout, "source DPI", detectDPIHint(folders, log))
		if err != nil {
			log.Error("%v", err)
			os.Exit(1)
		}
	}
	div := *divisor
	if !(div > 0) {
		div, err = promptPositiveFloat(stdin, os.Stdout, "resolution divisor", 1)
		if err != nil {
			log.Error("%v", err)
			os.Exit(1)
		}
	}

	flags := InputFlags{
		Dirs:        flag.Args(),
		JpegQuality: *quality,
		SourceDPI:   sourceDPI,
		Divisor:     div,
		Optimize:    *optimize,
		Verbose:     *verbose,
		LogFile:     *logFile,
	}
	model := resolution.Compute(sourceDPI, div)

	start := time.Now()
	report := converter.Run(folders, model, flags, log)

	log.Info("batch finished: %d converted, %d failed, %s",
		report.Converted, report.Failed, time.Since(start).Round(time.Millisecond))
	if report.Converted > 0 {
		log.Info("%s of images -> %s of PDF", formatBytes(report.InputBytes), formatBytes(report.OutputBytes))
	}
}

// promptPositiveFloat asks until it reads a strictly positive number.
// An empty line takes def when def is positive. EOF or a read error
// gives up, so a closed stdin cannot spin the loop.
func promptPositiveFloat(in *bufio.Reader, out io.Writer, label string, def float64) (float64, error) {
	for {
		if def > 0 {
			fmt.Fprintf(out, "%s [%g]: ", label, def)
		} else {
			fmt.Fprintf(out, "%s: ", label)
		}
		line, err := in.ReadString('\n')
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "" && def > 0 && err == nil:
			return def, nil
		case trimmed != "":
			if v, perr := strconv.ParseFloat(trimmed, 64); perr == nil && v > 0 {
				return v, nil
			}
			if err == nil {
				fmt.Fprintln(out, "enter a number greater than zero")
			}
		}
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", label, err)
		}
	}
}

// detectDPIHint probes the first image of the batch for embedded
// resolution metadata to seed the prompt default. Zero means no hint.
func detectDPIHint(folders []contracts.ImageFolder, log *logging.Logger) float64 {
	first := folders[0].Files[0].Path
	detected, err := utils.DetectDPI(first)
	if err != nil {
		log.Debug("no resolution metadata in %s", first)
		return 0
	}
	log.Info("detected %g dpi in %s", detected, first)
	return detected
}

func countImages(folders []contracts.ImageFolder) int {
	n := 0
	for _, f := range folders {
		n += len(f.Files)
	}
	return n
}

func formatBytes(n int64) string {
	const mb = 1024 * 1024
	if n >= mb {
		return fmt.Sprintf("%.1f MB", float64(n)/mb)
	}
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}
