package slug

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	goslug "github.com/goliatone/go-slug"
)

var (
	separatorRun = regexp.MustCompile(`[^a-z0-9\x{0600}-\x{06FF}]+`)
	edgeDashes   = regexp.MustCompile(`(^-|-$)`)
)

const suffixBytes = 3

// Slugify turns a display name into a storage-safe identifier. Arabic script
// is kept as is; other characters outside [a-z0-9] collapse into dashes. When
// nothing survives, go-slug transliteration is attempted before giving up
// with an empty string.
//
// Slugify is idempotent: Slugify(Slugify(x)) == Slugify(x).
func Slugify(name string) string {
	lowered := strings.ToLower(name)
	out := separatorRun.ReplaceAllString(lowered, "-")
	out = edgeDashes.ReplaceAllString(out, "")
	if out != "" {
		return out
	}
	if strings.TrimSpace(name) == "" {
		return ""
	}
	normalized, err := goslug.Normalize(name)
	if err != nil {
		return ""
	}
	out = separatorRun.ReplaceAllString(strings.ToLower(normalized), "-")
	return edgeDashes.ReplaceAllString(out, "")
}

// WithSuffix slugifies name and appends a random hex suffix, falling back to
// "pack" when the name has no usable characters.
func WithSuffix(name string) string {
	base := Slugify(name)
	if base == "" {
		base = "pack"
	}
	return base + "-" + randomHex(suffixBytes)
}

// Padded renders n with at least width digits, zero padded.
func Padded(n, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("slug: read random bytes: %v", err))
	}
	return hex.EncodeToString(buf)
}
