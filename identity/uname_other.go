//go:build !linux

package identity

// unameDomain has nothing to report where there is no uname(2).
func unameDomain() string {
	return ""
}
