package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kingpin"
	"github.com/gookit/color"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/openatx/apk-info/aapt"
	"github.com/openatx/apk-info/apkinfo"
	"github.com/openatx/apk-info/cmdexec"
	"github.com/openatx/apk-info/envman"
	"github.com/openatx/apk-info/logger"
)

var (
	version = "dev" // set by -ldflags "-X main.version=..."
	log     = logger.Default
)

const (
	exitFailure          = 1
	exitToolNotFound     = 2
	exitInspectionFailed = 3
	exitPublishFailed    = 4
)

type options struct {
	APKPath     string
	AndroidHome string
	Envman      string
	Timeout     time.Duration
	Summary     string
	LogFile     string
	Debug       bool
	NoColor     bool
}

func registerFlags(app *kingpin.Application) *options {
	o := &options{}
	app.Flag("apk-path", "APK file, or directory searched for APK files").Short('a').Envar("APK_PATH").Required().StringVar(&o.APKPath)
	app.Flag("android-home", "Android SDK root containing build-tools/").Envar("ANDROID_HOME").StringVar(&o.AndroidHome)
	app.Flag("envman", "envman binary used to export values").Envar("ENVMAN_PATH").Default("envman").StringVar(&o.Envman)
	app.Flag("timeout", "kill aapt or envman after this long, 0 waits forever").Envar("APK_INFO_TIMEOUT").Default("0s").DurationVar(&o.Timeout)
	app.Flag("summary", "summary printed to stdout").Default("table").EnumVar(&o.Summary, "table", "yaml", "none")
	app.Flag("log-file", "also write the log to this file").StringVar(&o.LogFile)
	app.Flag("debug", "debug logging").BoolVar(&o.Debug)
	app.Flag("no-color", "plain log and error output").BoolVar(&o.NoColor)
	return o
}

func main() {
	app := kingpin.New("apk-info", "Export Android APK metadata as pipeline environment variables.")
	app.Version(version)
	app.HelpFlag.Short('h')
	opts := registerFlags(app)
	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger.Setup(logger.Config{Debug: opts.Debug, NoColor: opts.NoColor, LogFile: opts.LogFile})
	if opts.NoColor {
		color.Disable()
	}
	os.Exit(run(*opts, afero.NewOsFs(), cmdexec.Command{Timeout: opts.Timeout}, os.Stdout, os.Stderr))
}

func run(o options, fs afero.Fs, runner cmdexec.Runner, stdout, stderr io.Writer) int {
	if err := execute(o, fs, runner, stdout); err != nil {
		fmt.Fprintln(stderr, color.Red.Sprint(err.Error()))
		return exitCode(err)
	}
	return 0
}

func exitCode(err error) int {
	switch errors.Cause(err) {
	case aapt.ErrToolNotFound:
		return exitToolNotFound
	case aapt.ErrInspectionFailed:
		return exitInspectionFailed
	case envman.ErrPublishFailed:
		return exitPublishFailed
	}
	return exitFailure
}

func execute(o options, fs afero.Fs, runner cmdexec.Runner, stdout io.Writer) error {
	if o.APKPath == "" {
		return errors.New("no apk path provided")
	}
	apkPath, err := resolvePath(o.APKPath)
	if err != nil {
		return err
	}
	if ok, _ := afero.Exists(fs, apkPath); !ok {
		return errors.Errorf("APK path does not exist: %s", apkPath)
	}
	log.Infof("APK path: %s", apkPath)

	apks, err := collectAPKs(fs, apkPath)
	if err != nil {
		return err
	}

	var results []apkinfo.Metadata
	if len(apks) == 0 {
		log.Warnf("no APK found in %s, exporting empty values", apkPath)
	} else {
		sdkRoot := ""
		if o.AndroidHome != "" {
			if sdkRoot, err = resolvePath(o.AndroidHome); err != nil {
				return err
			}
		}
		asm, err := apkinfo.NewAssembler(apkinfo.Config{Fs: fs, Runner: runner, SDKRoot: sdkRoot})
		if err != nil {
			return err
		}
		if results, err = asm.InspectAll(apks); err != nil {
			return err
		}
	}

	if err := writeSummary(stdout, o.Summary, results); err != nil {
		return errors.Wrap(err, "write summary")
	}

	exporter := envman.New(o.Envman, runner)
	if len(results) == 0 {
		return envman.Publish(exporter, exportPairs(apkinfo.Metadata{}))
	}
	for _, md := range results {
		if err := envman.Publish(exporter, exportPairs(md)); err != nil {
			return err
		}
	}
	return nil
}
