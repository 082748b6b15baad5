// Package raster converts text PDFs into image-only PDFs: every page is
// rendered to an RGB bitmap, optionally degraded, JPEG-encoded and placed on
// a fresh output page of matching geometry.
package raster

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sirupsen/logrus"
	rpdf "rsc.io/pdf"
)

type Config struct {
	// OutPath is the destination PDF. Empty means <input-stem>-rasterized.pdf
	// next to the input.
	OutPath string
	Params  Params
}

type Result struct {
	Pages   int
	OutPath string
}

// Run rasterizes the PDF at inputPath into an image-only PDF. Pages are
// processed strictly in order and the output page count always equals the
// input page count. A failed run never leaves a partial file at the output
// path.
func Run(ctx context.Context, inputPath string, cfg Config) (Result, error) {
	params := cfg.Params.Normalize()

	if _, err := os.Stat(inputPath); err != nil {
		if os.IsNotExist(err) {
			return Result{}, fmt.Errorf("%w: %s", ErrInputNotFound, inputPath)
		}
		return Result{}, err
	}

	outPath := cfg.OutPath
	if outPath == "" {
		outPath = DefaultOutPath(inputPath)
	}
	if err := checkOutPath(inputPath, outPath); err != nil {
		return Result{}, err
	}

	expected := preflight(inputPath)

	doc, err := fitz.New(inputPath)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrOpenDocument, err)
	}
	defer doc.Close()

	pages := doc.NumPage()
	if expected > 0 && expected != pages {
		logrus.WithFields(logrus.Fields{"preflight": expected, "rendered": pages}).
			Warn("page count mismatch between readers")
	}
	logrus.WithFields(logrus.Fields{"pages": pages, "dpi": params.DPI}).Info("rasterizing")

	out := newDocument(params.JPEGQuality)
	for i := 0; i < pages; i++ {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		rendered, err := doc.ImageDPI(i, float64(params.DPI))
		if err != nil {
			return Result{}, fmt.Errorf("failed to render page %d: %w", i, err)
		}

		img := degrade(imaging.Clone(rendered), params, i)
		if err := out.addPage(img, params.DPI); err != nil {
			return Result{}, fmt.Errorf("page %d: %w", i, err)
		}
		logrus.WithFields(logrus.Fields{
			"page":   i,
			"width":  img.Bounds().Dx(),
			"height": img.Bounds().Dy(),
		}).Debug("page rasterized")
	}

	if err := save(out, outPath, pages); err != nil {
		return Result{}, err
	}
	return Result{Pages: pages, OutPath: outPath}, nil
}

// save writes the document to a uuid-named temp file beside the destination,
// runs pdfcpu's optimizer over it and renames it into place, so a failure in
// any step leaves nothing at outPath.
func save(out *document, outPath string, pages int) error {
	tmp := filepath.Join(filepath.Dir(outPath), "."+uuid.NewString()+".pdf")
	if err := out.writeFile(tmp); err != nil {
		os.Remove(tmp)
		return err
	}

	// pdfcpu rejects documents without pages, so a zero-page input ships
	// the builder output as-is.
	if pages > 0 {
		if err := api.OptimizeFile(tmp, "", model.NewDefaultConfiguration()); err != nil {
			os.Remove(tmp)
			return fmt.Errorf("failed to optimize output PDF: %w", err)
		}
	}

	if err := os.Rename(tmp, outPath); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// preflight counts pages with a cheap pure-Go reader, for cross-checking
// against the renderer. It is advisory only: MuPDF repairs plenty of files
// this reader chokes on, so the renderer stays the authority on whether a
// document opens and any failure here just means there is no count to check.
func preflight(path string) (n int) {
	// rsc.io/pdf panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("reason", r).Debug("preflight parse failed")
			n = 0
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return 0
	}

	r, err := rpdf.NewReader(f, st.Size())
	if err != nil {
		logrus.WithError(err).Debug("preflight parse failed")
		return 0
	}
	return r.NumPage()
}

func checkOutPath(inPath, outPath string) error {
	inAbs, err := filepath.Abs(inPath)
	if err != nil {
		return err
	}
	outAbs, err := filepath.Abs(outPath)
	if err != nil {
		return err
	}
	if inAbs == outAbs {
		return fmt.Errorf("output path matches input path: %s", outAbs)
	}
	if st, err := os.Stat(filepath.Dir(outAbs)); err != nil || !st.IsDir() {
		return fmt.Errorf("output directory does not exist: %s", filepath.Dir(outAbs))
	}
	return nil
}

// DefaultOutPath derives <stem>-rasterized.pdf in the input's directory.
func DefaultOutPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	stem := strings.TrimSuffix(filepath.Base(inputPath), ext)
	return filepath.Join(filepath.Dir(inputPath), stem+"-rasterized.pdf")
}
