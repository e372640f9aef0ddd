package primaschema

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Synchronise downloads a scheme-collection tar.gz archive and extracts it
// into outDir, replacing any previous contents. GitHub tarballs wrap the
// repository in one top-level directory, which is flattened away.
func Synchronise(archiveURL, outDir string) error {
	if !strings.HasSuffix(archiveURL, ".tar.gz") {
		return fmt.Errorf("archive URL must end with .tar.gz: %s", archiveURL)
	}

	resp, err := http.Get(archiveURL)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", archiveURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download %s: %s", archiveURL, resp.Status)
	}

	if err := os.RemoveAll(outDir); err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	if err := extractTarGz(resp.Body, outDir); err != nil {
		return err
	}

	return flattenSingleChildDir(outDir)
}

func extractTarGz(r io.Reader, outDir string) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		target := filepath.Join(outDir, filepath.Clean(hdr.Name))
		if !strings.HasPrefix(target, filepath.Clean(outDir)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry escapes output directory: %s", hdr.Name)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return err
			}
			f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
			if err != nil {
				return err
			}
			if _, err := io.Copy(f, tr); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
		}
	}
}

// flattenSingleChildDir moves the contents of the single non-hidden child
// directory of dir up into dir.
func flattenSingleChildDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var children []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			children = append(children, e.Name())
		}
	}
	if len(children) != 1 {
		return fmt.Errorf("expected one child directory in %s, found %d", dir, len(children))
	}

	child := filepath.Join(dir, children[0])
	childEntries, err := os.ReadDir(child)
	if err != nil {
		return err
	}
	for _, e := range childEntries {
		if err := os.Rename(filepath.Join(child, e.Name()), filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}

	return os.Remove(child)
}
