// Package aapt drives the Android Asset Packaging Tool and reads what it prints.
package aapt

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/openatx/apk-info/cmdexec"
	"github.com/openatx/apk-info/logger"
)

var log = logger.Default

var ErrInspectionFailed = errors.New("aapt inspection failed")

var packageLineRegexp = regexp.MustCompile(`(?m)^package: `)

type Inspector struct {
	Path   string
	Runner cmdexec.Runner
}

func NewInspector(path string, runner cmdexec.Runner) *Inspector {
	return &Inspector{Path: path, Runner: runner}
}

// DumpBadging returns the output of `aapt dump badging <apk>`. An empty output
// is returned as is. aapt exits 1 on attribute errors it hits after printing the
// package line; that output is still returned, only a run that never printed a
// package line fails.
func (i *Inspector) DumpBadging(apkPath string) (string, error) {
	out, err := i.Runner.Output(nil, i.Path, "dump", "badging", apkPath)
	if err == nil {
		return out, nil
	}
	cerr, ok := errors.Cause(err).(*cmdexec.Error)
	if (ok && cerr.ExitCode == -1) || !packageLineRegexp.MatchString(out) {
		return "", inspectionError("dump badging", apkPath, out, err)
	}
	log.WithField("apk", apkPath).Warnf("aapt dump badging: %v, %s", err, errorOutput(out, err))
	return out, nil
}

// List returns the output of `aapt list <apk>`, one archive entry per line.
func (i *Inspector) List(apkPath string) (string, error) {
	return i.run("list", apkPath, "list", apkPath)
}

// ResolveIcon finds the in-archive icon path for apkPath from its badging dump.
// The archive listing is only requested for adaptive icons.
func (i *Inspector) ResolveIcon(badging, apkPath string) string {
	return ResolveIcon(badging, func() (string, error) {
		return i.List(apkPath)
	})
}

func (i *Inspector) run(what, apkPath string, args ...string) (string, error) {
	out, err := i.Runner.Output(nil, append([]string{i.Path}, args...)...)
	if err != nil {
		return "", inspectionError(what, apkPath, out, err)
	}
	return out, nil
}

func inspectionError(what, apkPath, out string, err error) error {
	return errors.Wrapf(ErrInspectionFailed, "%s %s: %v, output: %s", what, apkPath, err, errorOutput(out, err))
}

// errorOutput prefers what the tool printed to stderr.
func errorOutput(out string, err error) string {
	if cerr, ok := errors.Cause(err).(*cmdexec.Error); ok && strings.TrimSpace(cerr.Output) != "" {
		return strings.TrimSpace(cerr.Output)
	}
	return strings.TrimSpace(out)
}
