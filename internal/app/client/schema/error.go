package schema

import "errors"

var ErrUnknownZone = errors.New("unknown time zone")
