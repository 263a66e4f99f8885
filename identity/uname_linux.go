//go:build linux

package identity

import (
	"golang.org/x/sys/unix"
)

// unameDomain returns the domain name reported by uname(2).
func unameDomain() string {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return ""
	}
	return unix.ByteSliceToString(u.Domainname[:])
}
