package release

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum mismatch")
	ErrNoAsset       = errors.New("release has no build for this platform")
)

const (
	binaryName    = "psytests"
	checksumsName = "checksums.txt"
)

// Update downloads the latest release for this platform, verifies it
// against the release checksums and replaces the executable in place.
// progress receives one line per step and may be nil. It returns the
// installed tag.
func (c *Checker) Update(ctx context.Context, current string, progress func(string)) (string, error) {
	if progress == nil {
		progress = func(string) {}
	}
	if isDevel(current) {
		return "", ErrDevBuild
	}

	progress("Checking for the latest version...")
	rel, err := c.Latest(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch latest release: %w", err)
	}
	newer, err := Compare(current, rel.Tag)
	if err != nil {
		return "", err
	}
	if !newer {
		return "", ErrAlreadyLatest
	}

	name := archiveName(runtime.GOOS, runtime.GOARCH)
	archive, ok := rel.Asset(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoAsset, name)
	}
	sums, ok := rel.Asset(checksumsName)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoAsset, checksumsName)
	}

	progress(fmt.Sprintf("Downloading %s...", rel.Tag))
	data, err := c.download(ctx, archive.DownloadURL)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", name, err)
	}
	sumData, err := c.download(ctx, sums.DownloadURL)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", checksumsName, err)
	}

	progress("Verifying checksum...")
	want, ok := parseChecksums(sumData)[name]
	if !ok {
		return "", fmt.Errorf("%w: %s not listed in %s", ErrChecksum, name, checksumsName)
	}
	if err := verify(data, want); err != nil {
		return "", err
	}

	bin, err := extract(data, name)
	if err != nil {
		return "", fmt.Errorf("extract: %w", err)
	}

	target, err := c.executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}
	progress("Installing...")
	if err := replaceFile(target, bin); err != nil {
		return "", fmt.Errorf("install %s: %w", target, err)
	}

	progress(fmt.Sprintf("Updated to %s", rel.Tag))
	return rel.Tag, nil
}

// archiveName is the release asset built for goos/goarch.
func archiveName(goos, goarch string) string {
	ext := ".tar.gz"
	if goos == "windows" {
		ext = ".zip"
	}
	return fmt.Sprintf("%s_%s_%s%s", binaryName, goos, goarch, ext)
}

func runningExecutable() (string, error) {
	p, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(p)
}

func (c *Checker) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// parseChecksums reads "<sha256>  <file>" lines as written by sha256sum.
func parseChecksums(data []byte) map[string]string {
	out := make(map[string]string)
	for line := range strings.Lines(string(data)) {
		fields := strings.Fields(line)
		if len(fields) == 2 {
			out[strings.TrimPrefix(fields[1], "*")] = strings.ToLower(fields[0])
		}
	}
	return out
}

func verify(data []byte, wantHex string) error {
	sum := sha256.Sum256(data)
	if got := hex.EncodeToString(sum[:]); got != wantHex {
		return fmt.Errorf("%w: want %s, got %s", ErrChecksum, wantHex, got)
	}
	return nil
}

// extract pulls the executable out of a .tar.gz or .zip archive.
func extract(data []byte, archive string) ([]byte, error) {
	if strings.HasSuffix(archive, ".zip") {
		return extractZip(data, binaryName+".exe")
	}
	return extractTarGz(data, binaryName)
}

func extractTarGz(data []byte, name string) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%q not in archive", name)
		}
		if err != nil {
			return nil, err
		}
		if hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == name {
			return io.ReadAll(tr)
		}
	}
}

func extractZip(data []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	for _, f := range zr.File {
		if filepath.Base(f.Name) != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%q not in archive", name)
}

// replaceFile swaps target for data through a temp file in the same
// directory, so the rename is atomic. The original mode is kept.
func replaceFile(target string, data []byte) error {
	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+binaryName+"-update-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}
