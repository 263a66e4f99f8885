// Package message splits a submitted email message into its header and its
// body. The header is read line by line and joined into logical header lines
// ready for classification. The body is left as an unread io.Reader so that it
// can be passed along byte-for-byte without ever being held in memory or
// interpreted.
//
//	m, err := message.Parse(os.Stdin)
//	var badStart *field.BadStartError
//	if errors.As(err, &badStart) {
//	  // recoverable, the skipped lines are in badStart.BadStart
//	} else if err != nil {
//	  return err
//	}
//
//	for _, line := range m.Lines {
//	  ...
//	}
package message
