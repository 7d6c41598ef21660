package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// invalid filename characters, replaced with '_'
const invalidChars = `<>:"/\|?*`

// maxNameLength caps sanitized names to stay well inside filesystem limits.
const maxNameLength = 100

// Sanitize turns a display name into a filesystem-safe identifier: invalid
// path characters become underscores, non-printable runes are dropped and the
// result is capped at 100 runes. The mapping is deterministic, lossy and
// idempotent; distinct names can collide, which is why directory identity
// goes through the class registry rather than through Sanitize directly.
func Sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case strings.ContainsRune(invalidChars, r):
			b.WriteRune('_')
		case !unicode.IsPrint(r):
			// dropped
		default:
			b.WriteRune(r)
		}
	}

	runes := []rune(b.String())
	if len(runes) > maxNameLength {
		runes = runes[:maxNameLength]
	}
	return string(runes)
}

// writeFileAtomic replaces path with data via a temp file and rename, so a
// crash mid-write never leaves a truncated store behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
