package modelcard

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	cdx "github.com/CycloneDX/cyclonedx-go"
)

// ResolveFormat maps "json", "xml" or "auto" to a file format. In auto mode a
// .xml extension selects XML and anything else JSON.
func ResolveFormat(path, format string) (cdx.BOMFileFormat, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "auto":
		if ext == ".xml" {
			return cdx.BOMFileFormatXML, nil
		}
		return cdx.BOMFileFormatJSON, nil
	case "json":
		return cdx.BOMFileFormatJSON, nil
	case "xml":
		return cdx.BOMFileFormatXML, nil
	default:
		return 0, fmt.Errorf("unsupported BOM format: %q", format)
	}
}

// ParseSpecVersion parses "1.0" through "1.6".
func ParseSpecVersion(s string) (cdx.SpecVersion, bool) {
	switch strings.TrimSpace(s) {
	case "1.0":
		return cdx.SpecVersion1_0, true
	case "1.1":
		return cdx.SpecVersion1_1, true
	case "1.2":
		return cdx.SpecVersion1_2, true
	case "1.3":
		return cdx.SpecVersion1_3, true
	case "1.4":
		return cdx.SpecVersion1_4, true
	case "1.5":
		return cdx.SpecVersion1_5, true
	case "1.6":
		return cdx.SpecVersion1_6, true
	default:
		return cdx.SpecVersion1_6, false
	}
}

// Encode writes bom to w. An empty spec keeps the library's default version.
func Encode(w io.Writer, bom *cdx.BOM, fileFmt cdx.BOMFileFormat, spec string) error {
	enc := cdx.NewBOMEncoder(w, fileFmt)
	enc.SetPretty(true)
	if spec == "" {
		return enc.Encode(bom)
	}
	sv, ok := ParseSpecVersion(spec)
	if !ok {
		return fmt.Errorf("unsupported CycloneDX spec version: %q", spec)
	}
	return enc.EncodeVersion(bom, sv)
}

// Write stores bom at path, creating parent directories. An explicit format
// must agree with the file extension when there is one.
func Write(bom *cdx.BOM, path, format, spec string) error {
	fileFmt, err := ResolveFormat(path, format)
	if err != nil {
		return err
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != "" {
		want := ".json"
		if fileFmt == cdx.BOMFileFormatXML {
			want = ".xml"
		}
		if ext != want {
			return fmt.Errorf("output path extension %q does not match format %q", ext, strings.TrimPrefix(want, "."))
		}
	}
	if spec != "" {
		if _, ok := ParseSpecVersion(spec); !ok {
			return fmt.Errorf("unsupported CycloneDX spec version: %q", spec)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, bom, fileFmt, spec); err != nil {
		f.Close()
		return err
	}
	logf("wrote %s", path)
	return f.Close()
}

// Read decodes a BOM file.
func Read(path, format string) (*cdx.BOM, error) {
	fileFmt, err := ResolveFormat(path, format)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bom := new(cdx.BOM)
	if err := cdx.NewBOMDecoder(f, fileFmt).Decode(bom); err != nil {
		return nil, err
	}
	return bom, nil
}
