package cleaner

import (
	"errors"
	"os"
	"syscall"
)

// failReason categorizes why one item failed, mostly so the review
// screen can word the line sensibly.
type failReason int

const (
	reasonUnsafe failReason = iota
	reasonPermission
	reasonCommandFailed
	reasonIO
)

func (r failReason) String() string {
	switch r {
	case reasonUnsafe:
		return "not safe to delete"
	case reasonPermission:
		return "permission denied"
	case reasonCommandFailed:
		return "command failed"
	case reasonIO:
		return "filesystem error"
	default:
		return "unknown error"
	}
}

func isPermissionErr(err error) bool {
	if errors.Is(err, os.ErrPermission) {
		return true
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EACCES || errno == syscall.EPERM
	}
	return false
}
