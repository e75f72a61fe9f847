package testutil

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// TestdataFS holds the embedded literal files and their golden dumps.
//
//go:embed testdata
var TestdataFS embed.FS

// Dir is the testdata directory relative to the module root.
const Dir = "internal/testutil/testdata"

// ReadTestData reads and returns the content of an embedded test file.
func ReadTestData(name string) ([]byte, error) {
	data, err := fs.ReadFile(TestdataFS, path.Join("testdata", name))
	if err != nil {
		return nil, fmt.Errorf("failed to read test data file '%s': %w", name, err)
	}
	return data, nil
}

// Literals returns the names of the embedded .lit files.
func Literals() ([]string, error) {
	matches, err := fs.Glob(TestdataFS, "testdata/*.lit")
	if err != nil {
		return nil, err
	}
	for i, m := range matches {
		matches[i] = path.Base(m)
	}
	return matches, nil
}

// GoldenName returns the golden file name paired with a literal file.
func GoldenName(literal string) string {
	return strings.TrimSuffix(literal, ".lit") + ".golden"
}
