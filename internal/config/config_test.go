package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Detection.ScaleFactor != 1.1 {
		t.Errorf("scale factor = %g, want 1.1", cfg.Detection.ScaleFactor)
	}
	if cfg.Detection.MinNeighbors != 4 {
		t.Errorf("min neighbors = %d, want 4", cfg.Detection.MinNeighbors)
	}
	if cfg.Detection.MinArea != 500 {
		t.Errorf("min area = %d, want 500", cfg.Detection.MinArea)
	}
	if cfg.Detection.Selection != "first" {
		t.Errorf("selection = %q, want first", cfg.Detection.Selection)
	}
	if cfg.OCR.Language != "eng" {
		t.Errorf("language = %q, want eng", cfg.OCR.Language)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plategate.yaml")
	content := []byte(`
detection:
  min_area: 900
  selection: largest
ocr:
  tessdata_prefix: /opt/tessdata
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Detection.MinArea != 900 {
		t.Errorf("min area = %d, want 900", cfg.Detection.MinArea)
	}
	if cfg.Detection.Selection != "largest" {
		t.Errorf("selection = %q, want largest", cfg.Detection.Selection)
	}
	if cfg.OCR.TessdataPrefix != "/opt/tessdata" {
		t.Errorf("tessdata prefix = %q, want /opt/tessdata", cfg.OCR.TessdataPrefix)
	}
	// Untouched keys keep defaults.
	if cfg.Detection.ScaleFactor != 1.1 {
		t.Errorf("scale factor = %g, want default 1.1", cfg.Detection.ScaleFactor)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("PLATEGATE_DETECTION_MIN_AREA", "750")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Detection.MinArea != 750 {
		t.Errorf("min area = %d, want env override 750", cfg.Detection.MinArea)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("explicitly named missing config file must error")
	}
}
