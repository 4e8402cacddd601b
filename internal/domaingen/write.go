package domaingen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alineos/kitcell/internal/domain"
)

// WriteFile encodes doc and writes it to path, creating parent directories
// as needed. The write goes through a temp file and rename so a failed
// invocation never leaves a partial domain file behind.
func WriteFile(doc domain.Document, path string) error {
	data, err := domain.Encode(doc)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write domain file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close domain file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace domain file: %w", err)
	}
	return nil
}
