package primaschema

import (
	"os"
	"path/filepath"
)

// atomicWriteFile writes to a temp file in the target directory and renames
// it into place, so a crash mid-write never leaves a half-written file.
func atomicWriteFile(path string, dat []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}

	if _, err = tmp.Write(dat); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// copyFile copies src to dst byte for byte.
func copyFile(src, dst string) error {
	dat, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	return os.WriteFile(dst, dat, 0644)
}
