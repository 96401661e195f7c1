package main

import (
	"io"
	"strconv"

	humanize "github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/openatx/apk-info/apkinfo"
	"github.com/openatx/apk-info/envman"
)

// Exported environment variables.
const (
	EnvFileSize      = "ANDROID_APK_FILE_SIZE"
	EnvAppName       = "ANDROID_APP_NAME"
	EnvPackageName   = "ANDROID_APP_PACKAGE_NAME"
	EnvVersionName   = "ANDROID_APP_VERSION_NAME"
	EnvVersionCode   = "ANDROID_APP_VERSION_CODE"
	EnvIconPath      = "ANDROID_ICON_PATH"
	EnvMinSDKVersion = "ANDROID_APP_MIN_SDK_VERSION"
)

// exportPairs maps md to environment variables. A zero Metadata (no APK found)
// exports an empty size rather than 0.
func exportPairs(md apkinfo.Metadata) []envman.Pair {
	size := ""
	if md.Path != "" {
		size = strconv.FormatInt(md.FileSizeBytes, 10)
	}
	return []envman.Pair{
		{Key: EnvFileSize, Value: size},
		{Key: EnvAppName, Value: md.AppName},
		{Key: EnvPackageName, Value: md.PackageName},
		{Key: EnvVersionName, Value: md.VersionName},
		{Key: EnvVersionCode, Value: md.VersionCode},
		{Key: EnvIconPath, Value: md.IconPath},
		{Key: EnvMinSDKVersion, Value: md.MinSDKVersion},
	}
}

func writeSummary(w io.Writer, format string, results []apkinfo.Metadata) error {
	switch format {
	case "none":
		return nil
	case "yaml":
		data, err := yaml.Marshal(results)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "table", "":
		return writeTable(w, results)
	}
	return errors.Errorf("unknown summary format %q", format)
}

func writeTable(w io.Writer, results []apkinfo.Metadata) error {
	if len(results) == 0 {
		_, err := io.WriteString(w, "No APK found\n")
		return err
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"APK", "Package", "Name", "Version", "Code", "Min SDK", "Size", "Icon"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	for _, md := range results {
		table.Append([]string{
			md.Path,
			md.PackageName,
			md.AppName,
			md.VersionName,
			md.VersionCode,
			md.MinSDKVersion,
			humanize.Bytes(uint64(md.FileSizeBytes)),
			md.IconArchivePath,
		})
	}
	table.Render()
	return nil
}
