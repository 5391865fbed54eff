package dictionary

import "errors"

// Sentinel errors for the taxonomy in spec §7. Callers match with
// errors.Is; the wrapping fmt.Errorf calls throughout this package add
// the specific detail.
var (
	// ErrConfiguration covers bad dictionary locations and incompatible
	// format versions - conditions the caller could have avoided by
	// passing a different path or language.
	ErrConfiguration = errors.New("rusmorph: configuration error")

	// ErrCorruptDictionary covers malformed bundle contents: checksum or
	// length mismatches, paradigm arrays not divisible by three, tag
	// strings referencing unknown grammemes.
	ErrCorruptDictionary = errors.New("rusmorph: corrupt dictionary")
)
