package dawg

import "encoding/binary"

// Payload sizes, in bytes, for the three DAWG specializations used by
// the dictionary. Each is fixed at compile time per spec §4.1; a
// mis-sized stored record is a load error (checked in io.go).
const (
	WordPayloadSize    = 4 // paradigm_id u16, form_index u16
	PredictPayloadSize = 6 // count u16, paradigm_id u16, form_index u16
	ProbPayloadSize    = 4 // probability*1e6 as u32
)

// WordPayload is one (paradigm_id, form_index) pair stored under a
// dictionary word key.
type WordPayload struct {
	ParadigmID uint16
	FormIndex  uint16
}

// Encode serializes p as a big-endian fixed-width record.
func (p WordPayload) Encode() []byte {
	b := make([]byte, WordPayloadSize)
	binary.BigEndian.PutUint16(b[0:2], p.ParadigmID)
	binary.BigEndian.PutUint16(b[2:4], p.FormIndex)
	return b
}

// DecodeWordPayload reads a WordPayload from a record of exactly
// WordPayloadSize bytes.
func DecodeWordPayload(b []byte) WordPayload {
	return WordPayload{
		ParadigmID: binary.BigEndian.Uint16(b[0:2]),
		FormIndex:  binary.BigEndian.Uint16(b[2:4]),
	}
}

// PredictPayload is one prediction rule stored under a reversed
// suffix key: how often the (paradigm, form) pair was observed ending
// in that suffix.
type PredictPayload struct {
	Count      uint16
	ParadigmID uint16
	FormIndex  uint16
}

func (p PredictPayload) Encode() []byte {
	b := make([]byte, PredictPayloadSize)
	binary.BigEndian.PutUint16(b[0:2], p.Count)
	binary.BigEndian.PutUint16(b[2:4], p.ParadigmID)
	binary.BigEndian.PutUint16(b[4:6], p.FormIndex)
	return b
}

func DecodePredictPayload(b []byte) PredictPayload {
	return PredictPayload{
		Count:      binary.BigEndian.Uint16(b[0:2]),
		ParadigmID: binary.BigEndian.Uint16(b[2:4]),
		FormIndex:  binary.BigEndian.Uint16(b[4:6]),
	}
}

// EncodeProb serializes a probability in [0,1] as raw_int = p*1e6.
func EncodeProb(p float64) []byte {
	b := make([]byte, ProbPayloadSize)
	binary.BigEndian.PutUint32(b, uint32(p*1_000_000+0.5))
	return b
}

// DecodeProb reverses EncodeProb: raw_int / 1e6.
func DecodeProb(b []byte) float64 {
	return float64(binary.BigEndian.Uint32(b)) / 1_000_000
}
