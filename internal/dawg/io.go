package dawg

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"reflect"
	"unsafe"

	"github.com/edsrzf/mmap-go"
)

// fileHeader is the fixed-size prologue of a .dawg blob. Everything
// after it is three flat arrays (Nodes, Edges, Payloads) with no
// padding, in that order, so the whole file can be reconstructed by
// memory-mapping it and slicing into it directly - no copy, no parse
// beyond this header.
type fileHeader struct {
	Magic        [4]byte
	PayloadSize  uint32
	NodesCount   uint32
	EdgesCount   uint32
	PayloadBytes uint32
}

var magic = [4]byte{'D', 'A', 'W', 'G'}

// bytesToSlice reinterprets a byte slice as a slice of T without
// copying. The caller is responsible for keeping the backing memory
// (the mmap) alive for as long as the returned slice is used.
func bytesToSlice[T any](b []byte) []T {
	if len(b) == 0 {
		return nil
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	hdr := reflect.SliceHeader{Data: uintptr(unsafe.Pointer(&b[0])), Len: len(b) / size, Cap: len(b) / size}
	return *(*[]T)(unsafe.Pointer(&hdr))
}

// Marshal serializes a into the on-disk blob format.
func (a *Automaton) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	h := fileHeader{
		Magic:        magic,
		PayloadSize:  uint32(a.PayloadSize),
		NodesCount:   uint32(len(a.Nodes)),
		EdgesCount:   uint32(len(a.Edges)),
		PayloadBytes: uint32(len(a.Payloads)),
	}
	if err := binary.Write(&buf, binary.LittleEndian, &h); err != nil {
		return nil, err
	}
	// Nodes are written in their in-memory layout, struct padding
	// included, so that Unmarshal can alias them with bytesToSlice.
	if len(a.Nodes) > 0 {
		nodeBytes := len(a.Nodes) * int(unsafe.Sizeof(a.Nodes[0]))
		buf.Write(unsafe.Slice((*byte)(unsafe.Pointer(&a.Nodes[0])), nodeBytes))
	}
	if err := binary.Write(&buf, binary.LittleEndian, a.Edges); err != nil {
		return nil, err
	}
	buf.Write(a.Payloads)
	return buf.Bytes(), nil
}

// Unmarshal reconstructs an Automaton from a blob produced by Marshal.
// The returned Automaton's slices alias data directly (no copy): callers
// that mmap data must keep the mapping alive for the Automaton's
// lifetime.
func Unmarshal(data []byte, expectedPayloadSize int) (*Automaton, error) {
	var h fileHeader
	hdrSize := int(unsafe.Sizeof(h))
	if len(data) < hdrSize {
		return nil, fmt.Errorf("dawg: file too small for header")
	}
	if err := binary.Read(bytes.NewReader(data[:hdrSize]), binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("dawg: reading header: %w", err)
	}
	if h.Magic != magic {
		return nil, fmt.Errorf("dawg: bad magic, corrupt file")
	}
	if expectedPayloadSize != 0 && int(h.PayloadSize) != expectedPayloadSize {
		return nil, fmt.Errorf("dawg: payload size mismatch: file has %d, expected %d", h.PayloadSize, expectedPayloadSize)
	}

	var node FlatNode
	var edge FlatEdge
	nodeSize := int(unsafe.Sizeof(node))
	edgeSize := int(unsafe.Sizeof(edge))

	nodesOff := hdrSize
	nodesLen := int(h.NodesCount) * nodeSize
	edgesOff := nodesOff + nodesLen
	edgesLen := int(h.EdgesCount) * edgeSize
	payloadsOff := edgesOff + edgesLen
	payloadsLen := int(h.PayloadBytes)

	if len(data) < payloadsOff+payloadsLen {
		return nil, fmt.Errorf("dawg: truncated file (length mismatch)")
	}

	return &Automaton{
		Nodes:       bytesToSlice[FlatNode](data[nodesOff : nodesOff+nodesLen]),
		Edges:       bytesToSlice[FlatEdge](data[edgesOff : edgesOff+edgesLen]),
		Payloads:    data[payloadsOff : payloadsOff+payloadsLen],
		PayloadSize: int(h.PayloadSize),
	}, nil
}

// MappedAutomaton pairs an Automaton with the memory mapping it aliases,
// so the mapping's lifetime can be tied to the automaton's owner (the
// Dictionary).
type MappedAutomaton struct {
	*Automaton
	mapping mmap.MMap
}

// Close unmaps the underlying file. After Close the Automaton must not
// be used.
func (m *MappedAutomaton) Close() error {
	if m.mapping == nil {
		return nil
	}
	return m.mapping.Unmap()
}

// LoadFile memory-maps path and parses it as an Automaton blob with the
// given expected payload size.
func LoadFile(path string, payloadSize int) (*MappedAutomaton, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dawg: opening %s: %w", path, err)
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("dawg: mmap %s: %w", path, err)
	}

	a, err := Unmarshal(m, payloadSize)
	if err != nil {
		_ = m.Unmap()
		return nil, fmt.Errorf("dawg: %s: %w", path, err)
	}
	return &MappedAutomaton{Automaton: a, mapping: m}, nil
}
