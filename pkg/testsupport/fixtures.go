package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// LoadFixture reads a file relative to the calling package.
func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// MustFixture reads testdata/<name> or fails the test.
func MustFixture(t testing.TB, name string) []byte {
	t.Helper()
	data, err := LoadFixture(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("load fixture %s: %v", name, err)
	}
	return data
}
