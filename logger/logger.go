package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Default *logrus.Logger

func init() {
	Default = logrus.New()
	Default.SetOutput(os.Stderr)
	Default.SetLevel(logrus.InfoLevel)
	Default.SetFormatter(newFormatter(false))
}

type Config struct {
	Debug   bool
	NoColor bool
	// LogFile keeps a rotated copy of the console log when not empty
	LogFile string
}

func newFormatter(noColor bool) logrus.Formatter {
	return &prefixed.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
		ForceFormatting: true,
		DisableColors:   noColor,
	}
}

// Setup applies cfg to Default. Safe to call more than once.
func Setup(cfg Config) {
	if cfg.Debug {
		Default.SetLevel(logrus.DebugLevel)
	} else {
		Default.SetLevel(logrus.InfoLevel)
	}
	Default.SetFormatter(newFormatter(cfg.NoColor))
	Default.SetOutput(output(os.Stderr, cfg.LogFile))
}

func output(console io.Writer, filename string) io.Writer {
	if filename == "" {
		return console
	}
	return io.MultiWriter(console, &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    20, // megabytes
		MaxBackups: 3,
		MaxAge:     7, //days
		Compress:   true,
	})
}
