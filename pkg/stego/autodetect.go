package stego

import (
	"errors"
	"fmt"
)

// DecodeAny tries each registered carrier against stegoPath in the fixed
// order lsb, dct, dwt, and returns the first one whose header magic matches.
// If none matches, the returned error joins every carrier's failure so a
// caller can see why each one was rejected.
func DecodeAny(stegoPath string) (carrier string, message string, err error) {
	var errs []error
	for _, name := range carrierOrder {
		c, lookupErr := Lookup(name)
		if lookupErr != nil {
			errs = append(errs, lookupErr)
			continue
		}
		msg, decodeErr := c.Decode(stegoPath)
		if decodeErr == nil {
			return name, msg, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", name, decodeErr))
	}
	return "", "", newErr(KindBadHeader, "DecodeAny", "no registered carrier recognised this image").wrapJoin(errs)
}

// wrapJoin attaches a joined set of per-carrier errors as the Error's Err
// field, so the top-level Kind is still KindBadHeader while Unwrap exposes
// the full detail.
func (e *Error) wrapJoin(errs []error) *Error {
	if len(errs) > 0 {
		e.Err = errors.Join(errs...)
	}
	return e
}
