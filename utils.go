package main

import (
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// resolvePath expands a leading ~ and makes p absolute.
func resolvePath(p string) (string, error) {
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", errors.Wrapf(err, "expand %s", p)
	}
	abs, err := filepath.Abs(expanded)
	return abs, errors.Wrapf(err, "abs %s", expanded)
}

func isAPK(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".apk")
}

// collectAPKs returns root itself if it is an APK file, or every APK file below
// root in lexical order. Other files are skipped.
func collectAPKs(fs afero.Fs, root string) ([]string, error) {
	info, err := fs.Stat(root)
	if err != nil {
		return nil, errors.Wrap(err, "apk path")
	}
	if !info.IsDir() {
		if isAPK(root) {
			return []string{root}, nil
		}
		log.Warnf("%s is not an APK", root)
		return nil, nil
	}

	var apks []string
	err = afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && isAPK(path) {
			apks = append(apks, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "search %s", root)
	}
	return apks, nil
}
