package raster

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func TestDocumentPageGeometry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.pdf")

	const dpi = 150
	d := newDocument(70)
	if err := d.addPage(testImage(300, 150), dpi); err != nil {
		t.Fatalf("addPage: %v", err)
	}
	if err := d.addPage(testImage(100, 400), dpi); err != nil {
		t.Fatalf("addPage: %v", err)
	}
	if err := d.writeFile(path); err != nil {
		t.Fatalf("writeFile: %v", err)
	}

	n, err := api.PageCountFile(path)
	if err != nil {
		t.Fatalf("PageCountFile: %v", err)
	}
	if n != 2 {
		t.Fatalf("page count = %d, want 2", n)
	}

	dims, err := api.PageDimsFile(path)
	if err != nil {
		t.Fatalf("PageDimsFile: %v", err)
	}
	want := []struct{ w, h float64 }{
		{300.0 / dpi * 72, 150.0 / dpi * 72},
		{100.0 / dpi * 72, 400.0 / dpi * 72},
	}
	for i, dim := range dims {
		if math.Abs(dim.Width-want[i].w) > 0.5 || math.Abs(dim.Height-want[i].h) > 0.5 {
			t.Errorf("page %d dims = %.2fx%.2f pt, want %.2fx%.2f pt",
				i+1, dim.Width, dim.Height, want[i].w, want[i].h)
		}
	}
}

func TestOptimizePreservesGeometry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.pdf")

	d := newDocument(70)
	if err := d.addPage(testImage(144, 288), 72); err != nil {
		t.Fatalf("addPage: %v", err)
	}
	if err := d.writeFile(path); err != nil {
		t.Fatalf("writeFile: %v", err)
	}

	if err := api.OptimizeFile(path, "", model.NewDefaultConfiguration()); err != nil {
		t.Fatalf("OptimizeFile: %v", err)
	}

	n, err := api.PageCountFile(path)
	if err != nil {
		t.Fatalf("PageCountFile after optimize: %v", err)
	}
	if n != 1 {
		t.Fatalf("page count after optimize = %d, want 1", n)
	}
	dims, err := api.PageDimsFile(path)
	if err != nil {
		t.Fatalf("PageDimsFile after optimize: %v", err)
	}
	if math.Abs(dims[0].Width-144) > 0.5 || math.Abs(dims[0].Height-288) > 0.5 {
		t.Errorf("dims after optimize = %.2fx%.2f pt, want 144x288 pt", dims[0].Width, dims[0].Height)
	}
}
