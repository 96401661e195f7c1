// Package apkinfo assembles APK metadata from aapt output and the APK archive.
package apkinfo

import (
	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/openatx/apk-info/aapt"
	"github.com/openatx/apk-info/cmdexec"
	"github.com/openatx/apk-info/logger"
)

var log = logger.Default

// Metadata of one APK. Fields aapt does not report stay empty.
type Metadata struct {
	Path            string `yaml:"path"`
	FileSizeBytes   int64  `yaml:"file_size_bytes"`
	AppName         string `yaml:"app_name"`
	PackageName     string `yaml:"package_name"`
	VersionCode     string `yaml:"version_code"`
	VersionName     string `yaml:"version_name"`
	MinSDKVersion   string `yaml:"min_sdk_version"`
	IconArchivePath string `yaml:"icon_apk_path"`
	IconPath        string `yaml:"icon_path"`
}

type Config struct {
	Fs      afero.Fs
	Runner  cmdexec.Runner
	SDKRoot string
}

type Assembler struct {
	fs        afero.Fs
	inspector *aapt.Inspector
}

// NewAssembler locates aapt under cfg.SDKRoot once for all later inspections.
func NewAssembler(cfg Config) (*Assembler, error) {
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}
	if cfg.Runner == nil {
		cfg.Runner = cmdexec.Command{}
	}
	toolPath, err := aapt.Locate(cfg.Fs, cfg.SDKRoot)
	if err != nil {
		return nil, err
	}
	log.Infof("aapt: %s", toolPath)
	return &Assembler{
		fs:        cfg.Fs,
		inspector: aapt.NewInspector(toolPath, cfg.Runner),
	}, nil
}

func (a *Assembler) ToolPath() string {
	return a.inspector.Path
}

// Inspect reads the metadata of one APK. Only an unreadable APK or a failing
// aapt is an error; a failed icon extraction leaves IconPath empty.
func (a *Assembler) Inspect(apkPath string) (Metadata, error) {
	entry := log.WithField("apk", apkPath)
	info, err := a.fs.Stat(apkPath)
	if err != nil {
		return Metadata{}, errors.Wrap(err, "apk stat")
	}
	badging, err := a.inspector.DumpBadging(apkPath)
	if err != nil {
		return Metadata{}, err
	}

	md := Metadata{
		Path:          apkPath,
		FileSizeBytes: info.Size(),
		AppName:       aapt.ParseAppLabel(badging),
		MinSDKVersion: aapt.ParseMinSDKVersion(badging),
	}
	md.PackageName, md.VersionCode, md.VersionName = aapt.ParsePackage(badging)
	md.IconArchivePath = a.inspector.ResolveIcon(badging, apkPath)

	md.IconPath, err = ExtractIcon(a.fs, apkPath, md.IconArchivePath)
	if err != nil {
		entry.WithError(err).Warn("icon not extracted")
		md.IconPath = ""
	}

	entry.WithFields(logrus.Fields{
		"package": md.PackageName,
		"version": md.VersionName,
		"code":    md.VersionCode,
		"size":    humanize.Bytes(uint64(md.FileSizeBytes)),
	}).Info("apk inspected")
	return md, nil
}

// InspectAll inspects paths one after another and stops at the first error.
// APKs sharing a directory share icon.png, so this must stay sequential.
func (a *Assembler) InspectAll(paths []string) ([]Metadata, error) {
	results := make([]Metadata, 0, len(paths))
	for _, p := range paths {
		md, err := a.Inspect(p)
		if err != nil {
			return results, err
		}
		results = append(results, md)
	}
	return results, nil
}
