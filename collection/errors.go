package collection

import "errors"

// ErrMalformed marks file content that could not be decoded into the record
// sequence. There is no repair path: the file stays unreadable until it is
// externally fixed or purged.
var ErrMalformed = errors.New("malformed collection content")
