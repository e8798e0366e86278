package testutils

import (
	"bytes"
	"context"
	"os"
	"os/exec"
)

// Tokactl runs a tokactl binary.
type Tokactl struct {
	Binary string
	// Env is appended to the test process environment, so it takes precedence.
	Env []string
	// NoLog sets TOKACTL_NO_LOG so stderr only has the command errors.
	NoLog bool
}

// Run executes tokactl with the arguments and returns its captured output.
func (t Tokactl) Run(ctx context.Context, args ...string) (stdout, stderr []byte, err error) {
	env := append(os.Environ(), t.Env...)
	if t.NoLog {
		env = append(env, "TOKACTL_NO_LOG=true")
	}

	var outBuf, errBuf bytes.Buffer
	cmd := exec.CommandContext(ctx, t.Binary, args...)
	cmd.Env = env
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err = cmd.Run()

	return outBuf.Bytes(), errBuf.Bytes(), err
}
