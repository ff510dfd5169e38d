//go:build !linux
// +build !linux

package subprocess

import "syscall"

// Parent-death signaling is a Linux prctl feature. Elsewhere the child is
// simply started with default attributes.
func dieWithParentAttr() *syscall.SysProcAttr {
	return nil
}
