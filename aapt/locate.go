package aapt

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v2"
	"github.com/hashicorp/go-version"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// ToolName is the file name of the inspection binary inside build-tools/<version>/.
const ToolName = "aapt"

var ErrToolNotFound = errors.New("aapt not found")

// Locate returns the aapt binary of the highest build-tools version under sdkRoot.
// Versions compare numerically, so 10.0.1 beats 9.0.0. On equal versions the
// first one walked wins.
func Locate(fs afero.Fs, sdkRoot string) (string, error) {
	if sdkRoot == "" {
		return "", errors.Wrap(ErrToolNotFound, "android sdk root (ANDROID_HOME) is not set")
	}
	buildTools := filepath.Join(sdkRoot, "build-tools")
	pattern := "**/" + ToolName

	var (
		latest     *version.Version
		latestPath string
		candidates int
	)
	err := afero.Walk(fs, buildTools, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(buildTools, path)
		if err != nil {
			return err
		}
		ok, err := doublestar.Match(pattern, filepath.ToSlash(rel))
		if err != nil || !ok {
			return err
		}
		candidates++
		dir := filepath.Base(filepath.Dir(path))
		v, err := version.NewVersion(dir)
		if err != nil {
			log.WithField("path", path).Debugf("skip %s, parent is not a version: %v", ToolName, err)
			return nil
		}
		if latest == nil || v.GreaterThan(latest) {
			latest = v
			latestPath = path
		}
		return nil
	})
	if err != nil {
		return "", errors.Wrapf(ErrToolNotFound, "search %s: %v", buildTools, err)
	}
	if candidates == 0 {
		return "", errors.Wrapf(ErrToolNotFound, "no %s under %s", ToolName, buildTools)
	}
	if latestPath == "" {
		return "", errors.Wrapf(ErrToolNotFound, "failed to find latest %s among %d candidates", ToolName, candidates)
	}
	log.WithField("build-tools", latest.Original()).Debugf("using %s", latestPath)
	return latestPath, nil
}
