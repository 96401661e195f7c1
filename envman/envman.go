// Package envman publishes values to the pipeline environment through the envman CLI.
package envman

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/openatx/apk-info/cmdexec"
	"github.com/openatx/apk-info/logger"
)

var log = logger.Default

var ErrPublishFailed = errors.New("envman publish failed")

// Exporter stores one key/value pair for later pipeline steps.
type Exporter interface {
	Add(key, value string) error
}

type Envman struct {
	Path   string // defaults to "envman" on $PATH
	Runner cmdexec.Runner
}

func New(path string, runner cmdexec.Runner) *Envman {
	if path == "" {
		path = "envman"
	}
	return &Envman{Path: path, Runner: runner}
}

func (e *Envman) Add(key, value string) error {
	out, err := e.Runner.CombinedOutput(nil, e.Path, "add", "--key", key, "--value", value)
	if err != nil {
		return errors.Wrapf(ErrPublishFailed, "export %s: %v, output: %s", key, err, strings.TrimSpace(out))
	}
	log.WithField("key", key).Debugf("exported %q", value)
	return nil
}

// Pair is an environment variable to publish.
type Pair struct {
	Key   string
	Value string
}

// Publish adds pairs in order and stops at the first failure. Pairs already
// added stay exported.
func Publish(exp Exporter, pairs []Pair) error {
	for _, p := range pairs {
		if err := exp.Add(p.Key, p.Value); err != nil {
			return err
		}
	}
	return nil
}
