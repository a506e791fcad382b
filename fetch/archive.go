package fetch

import (
	"archive/tar"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// ExtractArchive unpacks a package tarball (gzip, zstd, or plain tar,
// detected by magic bytes) into destDir. It returns the directory holding
// the extracted tree: destDir joined with the archive's common top-level
// directory when it has one, destDir itself otherwise.
func ExtractArchive(archivePath, destDir string) (string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", archivePath, err)
	}
	defer f.Close()

	magic := make([]byte, 4)
	n, _ := io.ReadFull(f, magic)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("extract %s: %w", archivePath, err)
	}

	var r io.Reader = f
	switch {
	case n >= 2 && bytes.Equal(magic[:2], gzipMagic):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return "", fmt.Errorf("extract %s: %w", archivePath, err)
		}
		defer gz.Close()
		r = gz
	case n >= 4 && bytes.Equal(magic, zstdMagic):
		zr, err := zstd.NewReader(f)
		if err != nil {
			return "", fmt.Errorf("extract %s: %w", archivePath, err)
		}
		defer zr.Close()
		r = zr
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("extract %s: %w", archivePath, err)
	}

	prefix, err := untar(r, destDir)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", archivePath, err)
	}

	if prefix != "" {
		return filepath.Join(destDir, prefix), nil
	}
	return destDir, nil
}

// untar writes the stream's members under destDir and returns the common
// top-level path component, or "" when there is none.
func untar(r io.Reader, destDir string) (string, error) {
	tr := tar.NewReader(r)

	prefix := ""
	first := true

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		name := filepath.FromSlash(hdr.Name)
		if name == "" || hdr.Typeflag == tar.TypeXGlobalHeader {
			continue
		}
		if !filepath.IsLocal(name) {
			return "", fmt.Errorf("archive member escapes extraction dir: %q", hdr.Name)
		}

		top := strings.SplitN(filepath.ToSlash(name), "/", 2)[0]
		if first {
			prefix = top
			first = false
		} else if top != prefix {
			prefix = ""
		}

		target := filepath.Join(destDir, name)

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return "", err
			}

		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return "", err
			}
			out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(hdr.Mode)&0o777)
			if err != nil {
				return "", err
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return "", err
			}
			if err := out.Close(); err != nil {
				return "", err
			}

		case tar.TypeSymlink:
			if !filepath.IsLocal(hdr.Linkname) {
				return "", fmt.Errorf("symlink target escapes extraction dir: %q", hdr.Linkname)
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return "", err
			}
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return "", err
			}

		default:
			// Hard links, devices, fifos: not part of package archives.
			continue
		}
	}

	return prefix, nil
}
