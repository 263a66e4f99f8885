// Package mailinject reformats a message submitted by a local program and
// injects it into the mail queue. The message is read from standard input,
// its header cleaned up and completed, and the result handed to the queue
// program along with the envelope: who the message is from and who it is to.
//
// The work is split up by stage of the message's trip through the injector.
// Package message reads the header and leaves the body untouched. The
// message/header package knows which fields matter, and address parses the
// addresses found in them. Package envelope gathers the sender and
// recipients, following the rules for resent blocks. Package identity works
// out who is sending the message from the configuration and the environment.
// Package inject ties these together for one message. Finally, queue writes
// the result to the queue program or to standard output.
//
// The mailinject command in cmd/mailinject is a drop-in replacement for
// nullmailer-inject, reading the same configuration files, environment
// variables, and options.
package mailinject
