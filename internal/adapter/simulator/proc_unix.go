//go:build unix

package simulator

import (
	"os/exec"
	"syscall"
)

// isolate puts the simulator in its own process group so that cancelling a
// case also kills anything a wrapper script started
func isolate(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
