package inject

import "github.com/zostay/mailinject/message/header"

// Flags are the switches that may be set through NULLMAILER_FLAGS, one
// letter each.
type Flags struct {
	CommentStyle      bool // c: generate From as "user@host (Name)"
	ReplaceFrom       bool // f: drop any From and generate a new one
	ReplaceMessageID  bool // i: drop any Message-Id and generate a new one
	ReplaceReturnPath bool // s: drop any Return-Path
	AddTo             bool // t: generate To from the recipients if missing
}

// ParseFlags reads flag letters from s. Letters it does not know are
// skipped.
func ParseFlags(s string) Flags {
	var f Flags
	for _, c := range s {
		switch c {
		case 'c':
			f.CommentStyle = true
		case 'f':
			f.ReplaceFrom = true
		case 'i':
			f.ReplaceMessageID = true
		case 's':
			f.ReplaceReturnPath = true
		case 't':
			f.AddTo = true
		}
	}
	return f
}

// String returns the flag letters that are set.
func (f Flags) String() string {
	var s []byte
	for _, fl := range []struct {
		set bool
		c   byte
	}{
		{f.CommentStyle, 'c'},
		{f.ReplaceFrom, 'f'},
		{f.ReplaceMessageID, 'i'},
		{f.ReplaceReturnPath, 's'},
		{f.AddTo, 't'},
	} {
		if fl.set {
			s = append(s, fl.c)
		}
	}
	return string(s)
}

// tableOptions returns the header table adjustments these flags call for.
func (f Flags) tableOptions() []header.TableOption {
	var opts []header.TableOption
	if f.ReplaceFrom {
		opts = append(opts, header.WithReplaced(header.KindFrom))
	}
	if f.ReplaceMessageID {
		opts = append(opts, header.WithReplaced(header.KindMessageID))
	}
	if f.ReplaceReturnPath {
		opts = append(opts, header.WithReplaced(header.KindReturnPath))
	}
	return opts
}
