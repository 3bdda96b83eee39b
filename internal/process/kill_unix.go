//go:build !windows

package process

import "syscall"

// KillGroup sends SIGKILL to the whole process group led by pid, so Chromium
// renderer and GPU helpers die together with the browser.
func KillGroup(pid int) {
	if pid <= 0 {
		return
	}
	// The launcher's own Kill covers the leader if this fails.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
