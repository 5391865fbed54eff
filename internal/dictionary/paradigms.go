package dictionary

import (
	"encoding/binary"
	"fmt"
)

// Paradigm is one compiled paradigm's flat integer array, partitioned
// into three equal thirds (spec §3 invariant): suffix-ids, tag-ids,
// prefix-ids, one entry per form. Form i's surface string is
// prefix(i)+stem+suffix(i) and its tag is gramtab[TagID(i)].
type Paradigm []uint16

// NumForms is the number of forms this paradigm describes (len/3).
func (p Paradigm) NumForms() int { return len(p) / 3 }

func (p Paradigm) SuffixID(form int) uint16 { return p[form] }
func (p Paradigm) TagID(form int) uint16    { return p[p.NumForms()+form] }
func (p Paradigm) PrefixID(form int) uint16 { return p[2*p.NumForms()+form] }

// parseParadigms decodes paradigms.array: a little-endian u16 record
// count followed by that many variable-length records, each itself a
// u16 length prefix followed by that many u16 values.
func parseParadigms(data []byte) ([]Paradigm, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("%w: paradigms.array too small for header", ErrCorruptDictionary)
	}
	n := binary.LittleEndian.Uint16(data[0:2])
	offset := 2

	paradigms := make([]Paradigm, 0, n)
	for i := 0; i < int(n); i++ {
		if offset+2 > len(data) {
			return nil, fmt.Errorf("%w: paradigms.array truncated at record %d", ErrCorruptDictionary, i)
		}
		l := int(binary.LittleEndian.Uint16(data[offset : offset+2]))
		offset += 2
		if l%3 != 0 {
			return nil, fmt.Errorf("%w: paradigm %d length %d not divisible by 3", ErrCorruptDictionary, i, l)
		}
		if offset+l*2 > len(data) {
			return nil, fmt.Errorf("%w: paradigms.array truncated in record %d", ErrCorruptDictionary, i)
		}
		values := make(Paradigm, l)
		for j := 0; j < l; j++ {
			values[j] = binary.LittleEndian.Uint16(data[offset+j*2 : offset+j*2+2])
		}
		offset += l * 2
		paradigms = append(paradigms, values)
	}
	return paradigms, nil
}
