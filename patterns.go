package jsonshape

import "regexp"

// Timestamp matches ISO-8601-like timestamps such as
//
//	1997-07-16T19:20:30
//	1997-07-16T19:20:30.45
//	1997-07-16T19:20:30+01:00
//	1997-07-16T19:20:30.45+01:00
//
// It is an ordinary Pattern leaf, not special-cased by the validator; schemas
// needing a stricter calendar should bring their own pattern.
var Timestamp = Pattern(regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d*)?(\s?\+\d{2}:\d{2})?$`))
