package apkinfo

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// IconFileName is written next to the APK it was extracted from.
const IconFileName = "icon.png"

const iconFileMode os.FileMode = 0644

var ErrIconExtractionFailed = errors.New("icon extraction failed")

// ExtractIcon copies the archive entry iconArchivePath of apkPath to icon.png in
// the APK's directory, replacing any existing file, and returns its path.
// An empty iconArchivePath extracts nothing and returns "".
func ExtractIcon(fs afero.Fs, apkPath, iconArchivePath string) (string, error) {
	if iconArchivePath == "" {
		return "", nil
	}
	f, err := fs.Open(apkPath)
	if err != nil {
		return "", errors.Wrapf(ErrIconExtractionFailed, "open %s: %v", apkPath, err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return "", errors.Wrapf(ErrIconExtractionFailed, "stat %s: %v", apkPath, err)
	}
	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return "", errors.Wrapf(ErrIconExtractionFailed, "read zip %s: %v", apkPath, err)
	}
	var entry *zip.File
	for _, zf := range zr.File {
		if zf.Name == iconArchivePath {
			entry = zf
			break
		}
	}
	if entry == nil {
		return "", errors.Wrapf(ErrIconExtractionFailed, "%s not in %s", iconArchivePath, apkPath)
	}

	dst := filepath.Join(filepath.Dir(apkPath), IconFileName)
	if err := writeEntry(fs, entry, dst); err != nil {
		return "", errors.Wrapf(ErrIconExtractionFailed, "extract %s: %v", iconArchivePath, err)
	}
	return dst, nil
}

// writeEntry goes through a temp file so a broken entry never replaces a good icon.png.
func writeEntry(fs afero.Fs, entry *zip.File, dst string) (err error) {
	rc, err := entry.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	tmp, err := afero.TempFile(fs, filepath.Dir(dst), ".icon-*.png")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			fs.Remove(tmp.Name())
		}
	}()
	if _, err = io.Copy(tmp, rc); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	// afero.TempFile creates 0600
	if err = fs.Chmod(tmp.Name(), iconFileMode); err != nil {
		return err
	}
	return fs.Rename(tmp.Name(), dst)
}
