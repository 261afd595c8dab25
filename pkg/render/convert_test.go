package render

import (
	"strings"
	"testing"
)

func TestConvertWithoutBinary(t *testing.T) {
	old := rsvgBinary
	rsvgBinary = "forcetower-no-such-converter"
	defer func() { rsvgBinary = old }()

	if ConverterAvailable() {
		t.Fatal("ConverterAvailable() = true for missing binary")
	}
	for name, fn := range map[string]func() error{
		"pdf": func() error { _, err := ToPDF([]byte("<svg/>")); return err },
		"png": func() error { _, err := ToPNG([]byte("<svg/>"), 0); return err },
	} {
		err := fn()
		if err == nil || !strings.Contains(err.Error(), "librsvg") {
			t.Errorf("%s: error = %v, want install hint", name, err)
		}
	}
}
