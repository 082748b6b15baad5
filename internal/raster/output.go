package raster

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"
)

// document accumulates one JPEG-filled page per rendered source page and
// writes the result as a fresh, compressed PDF with no text layer.
type document struct {
	pdf     *gofpdf.Fpdf
	quality int
	pages   int
}

func newDocument(jpegQuality int) *document {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: 1, Ht: 1},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(true)
	return &document{pdf: pdf, quality: jpegQuality}
}

// addPage encodes img as JPEG and appends a page sized so the image sits at
// exactly dpi pixels per inch (1 point = 1/72 inch), filling the whole page
// from the top-left corner.
func (d *document) addPage(img *image.NRGBA, dpi int) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(d.quality)); err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeImage, err)
	}

	wPt := float64(img.Bounds().Dx()) / float64(dpi) * 72
	hPt := float64(img.Bounds().Dy()) / float64(dpi) * 72

	d.pages++
	name := fmt.Sprintf("page-%d", d.pages)
	opts := gofpdf.ImageOptions{ImageType: "JPEG"}
	d.pdf.AddPageFormat("P", gofpdf.SizeType{Wd: wPt, Ht: hPt})
	d.pdf.RegisterImageOptionsReader(name, opts, &buf)
	d.pdf.ImageOptions(name, 0, 0, wPt, hPt, false, opts, 0, "")
	return d.pdf.Error()
}

func (d *document) writeFile(path string) error {
	if err := d.pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write output PDF: %w", err)
	}
	return nil
}
