// Package header describes the header fields an injector cares about. The
// catalog of recognized fields is static, but each message gets its own Table
// so that the fields seen in one message never leak into the next.
//
// The field subpackage deals with the lines themselves: joining folded lines
// and splitting a field into its name and body.
package header
