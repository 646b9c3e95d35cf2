package xy

import "fmt"

// DecodeError reports undecodable bytes in a .xy file. The instrument
// software occasionally writes a micro sign or approximation sign using
// a legacy encoding; those bytes are not valid UTF-8 and the file must
// be fixed by hand before it can be loaded.
type DecodeError struct {
	Offset int // byte offset of the first invalid sequence
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf(
		"xy: undecodable byte at offset %d: the file contains characters that are not valid UTF-8, "+
			"most likely a micro sign (µ) or an approximation sign (≈) written by the instrument software; "+
			"edit or delete the offending characters in the file to resolve this", e.Offset)
}
