//go:build linux
// +build linux

package subprocess

import "syscall"

// dieWithParentAttr asks the kernel to deliver SIGTERM to the child when
// this process dies, so an interrupted run does not leave the download tool
// running in the background.
func dieWithParentAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Pdeathsig: syscall.SIGTERM}
}
