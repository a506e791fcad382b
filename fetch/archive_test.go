package fetch

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

// writeTar writes entries in order to w. Keys are slash-separated member
// names; parent directories are implied.
func writeTar(t *testing.T, w io.Writer, files map[string]string, order []string) {
	t.Helper()
	tw := tar.NewWriter(w)
	for _, name := range order {
		content := files[name]
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Typeflag: tar.TypeReg,
			Mode:     0o644,
			Size:     int64(len(content)),
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
}

// makeTarGz builds a gzip tarball at path.
func makeTarGz(t *testing.T, path string, files map[string]string, order []string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	gz := gzip.NewWriter(f)
	writeTar(t, gz, files, order)
	require.NoError(t, gz.Close())
}

func TestExtractArchive_Gzip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "pkg.tar.gz")
	makeTarGz(t, archive, map[string]string{
		"pkg-1.0/build.zig.zon": ".{}",
		"pkg-1.0/src/main.zig":  "// main",
	}, []string{"pkg-1.0/build.zig.zon", "pkg-1.0/src/main.zig"})

	root, err := ExtractArchive(archive, filepath.Join(dir, "out"))
	require.NoError(t, err)

	// The common top-level directory is folded into the returned root.
	require.Equal(t, filepath.Join(dir, "out", "pkg-1.0"), root)

	content, err := os.ReadFile(filepath.Join(root, "src", "main.zig"))
	require.NoError(t, err)
	require.Equal(t, "// main", string(content))
}

func TestExtractArchive_Zstd(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "pkg.tar.zst")

	f, err := os.Create(archive)
	require.NoError(t, err)
	zw, err := zstd.NewWriter(f)
	require.NoError(t, err)
	writeTar(t, zw, map[string]string{"pkg/a.txt": "a"}, []string{"pkg/a.txt"})
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	root, err := ExtractArchive(archive, filepath.Join(dir, "out"))
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(root, "a.txt"))
}

func TestExtractArchive_PlainTar(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "pkg.tar")

	f, err := os.Create(archive)
	require.NoError(t, err)
	writeTar(t, f, map[string]string{"pkg/b.txt": "b"}, []string{"pkg/b.txt"})
	require.NoError(t, f.Close())

	root, err := ExtractArchive(archive, filepath.Join(dir, "out"))
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(root, "b.txt"))
}

func TestExtractArchive_NoCommonPrefix(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "flat.tar.gz")
	makeTarGz(t, archive, map[string]string{
		"a/x.txt": "x",
		"b/y.txt": "y",
	}, []string{"a/x.txt", "b/y.txt"})

	dest := filepath.Join(dir, "out")
	root, err := ExtractArchive(archive, dest)
	require.NoError(t, err)

	// Mixed top-level entries: the destination itself is the root.
	require.Equal(t, dest, root)
	require.FileExists(t, filepath.Join(dest, "a", "x.txt"))
	require.FileExists(t, filepath.Join(dest, "b", "y.txt"))
}

func TestExtractArchive_RejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.tar.gz")
	makeTarGz(t, archive, map[string]string{
		"../evil.txt": "nope",
	}, []string{"../evil.txt"})

	_, err := ExtractArchive(archive, filepath.Join(dir, "out"))
	require.ErrorContains(t, err, "escapes extraction dir")
	require.NoFileExists(t, filepath.Join(dir, "evil.txt"))
}

func TestExtractArchive_RejectsEscapingSymlink(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "link.tar.gz")

	f, err := os.Create(archive)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     "pkg/link",
		Typeflag: tar.TypeSymlink,
		Linkname: "../../outside",
		Mode:     0o777,
	}))
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	_, err = ExtractArchive(archive, filepath.Join(dir, "out"))
	require.ErrorContains(t, err, "symlink target escapes")
}
