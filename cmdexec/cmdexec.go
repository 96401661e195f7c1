// Package cmdexec runs external tools and captures what they print.
package cmdexec

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/codeskyblue/kexec"
	shellquote "github.com/kballard/go-shellquote"
	"github.com/pkg/errors"

	"github.com/openatx/apk-info/logger"
)

var log = logger.Default

// Runner is what the rest of the tool needs from a process.
// args[0] is the program, stdin may be nil.
type Runner interface {
	// Output returns stdout only. Stderr ends up in the *Error on failure.
	Output(stdin io.Reader, args ...string) (string, error)
	CombinedOutput(stdin io.Reader, args ...string) (string, error)
}

// Error is returned when a command could not be started or exited unsuccessfully.
type Error struct {
	Args     []string
	ExitCode int // -1 if the process never ran or was killed
	// Output is stderr for Output and both streams for CombinedOutput
	Output string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", shellquote.Join(e.Args...), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Command runs programs in their own process group so a timeout can kill
// the whole tree. Zero Timeout waits forever.
type Command struct {
	Timeout time.Duration
	Environ []string
}

func (c Command) Output(stdin io.Reader, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	err := c.run(stdin, &stdout, &stderr, args)
	if cerr, ok := err.(*Error); ok {
		cerr.Output = stderr.String()
	}
	return stdout.String(), err
}

func (c Command) CombinedOutput(stdin io.Reader, args ...string) (string, error) {
	var b bytes.Buffer
	err := c.run(stdin, &b, &b, args)
	if cerr, ok := err.(*Error); ok {
		cerr.Output = b.String()
	}
	return b.String(), err
}

func (c Command) run(stdin io.Reader, stdout, stderr io.Writer, args []string) error {
	if len(args) == 0 {
		return errors.New("cmdexec: empty command")
	}
	cmd := kexec.Command(args[0], args[1:]...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if len(c.Environ) > 0 {
		cmd.Env = append(os.Environ(), c.Environ...)
	}

	log.Debugf("$ %s", shellquote.Join(args...))
	if err := cmd.Start(); err != nil {
		return &Error{Args: args, ExitCode: -1, Err: err}
	}
	if c.Timeout > 0 {
		timer := time.AfterFunc(c.Timeout, func() {
			log.Warnf("%s timed out after %v, killing", args[0], c.Timeout)
			cmd.Terminate(os.Kill)
		})
		defer timer.Stop()
	}
	if err := cmd.Wait(); err != nil {
		code := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		}
		return &Error{Args: args, ExitCode: code, Err: err}
	}
	return nil
}
