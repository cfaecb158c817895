package nvlist

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Decode errors. The decoder never returns a partial list: any of these is
// fatal to the whole decode.
var (
	ErrInvalidEncoding    = errors.New("nvlist: invalid encoding")
	ErrInvalidEndian      = errors.New("nvlist: invalid endian")
	ErrShortRead          = errors.New("nvlist: short read")
	ErrUnterminatedString = errors.New("nvlist: unterminated string")
	ErrBadVersion         = errors.New("nvlist: unsupported version")
	ErrBadFlags           = errors.New("nvlist: unsupported flags")
)

// UnknownTypeError reports a pair with a type tag outside the known table.
// The format is extended by adding tags, so an unknown tag means data we
// would misparse; it is never skipped.
type UnknownTypeError struct {
	Type Type
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("nvlist: unknown pair type %d", int32(e.Type))
}

const (
	encodingNative = 0
	endianLittle   = 1
	nvVersion      = 0
	nvUniqueName   = 1 // NV_UNIQUE_NAME
)

// Decode parses one complete serialized nvlist: a 4-byte header (encoding,
// endian, two reserved bytes), a version and flags word, then the pair
// sequence terminated by a zero length word.
func Decode(buf []byte) (*List, error) {
	if len(buf) < 4 {
		return nil, ErrShortRead
	}
	if buf[0] != encodingNative {
		return nil, ErrInvalidEncoding
	}
	if buf[1] != endianLittle {
		return nil, ErrInvalidEndian
	}

	rest := buf[4:]

	version, rest, err := readInt32(rest)
	if err != nil {
		return nil, err
	}
	if version != nvVersion {
		return nil, ErrBadVersion
	}

	flags, rest, err := readUint32(rest)
	if err != nil {
		return nil, err
	}
	if flags != nvUniqueName {
		return nil, ErrBadFlags
	}

	list, _, err := decodePairs(rest)
	return list, err
}

// decodePairs runs the pair loop until the zero-length terminator and
// returns the list plus the unconsumed remainder. Embedded lists re-enter
// here; the remainder is how the caller's cursor is threaded past them.
func decodePairs(buf []byte) (*List, []byte, error) {
	list := &List{}
	for {
		pair, rest, err := decodePair(buf)
		if err != nil {
			return nil, nil, err
		}
		if pair == nil {
			return list, rest, nil
		}
		list.pairs = append(list.pairs, *pair)
		buf = rest
	}
}

// decodePair parses one pair. A nil pair (and nil error) is the
// end-of-list terminator.
func decodePair(buf []byte) (*Pair, []byte, error) {
	size, buf, err := readInt32(buf)
	if err != nil {
		return nil, nil, err
	}
	if size == 0 {
		return nil, buf, nil
	}
	if size < 4 || int(size-4) > len(buf) {
		return nil, nil, ErrShortRead
	}

	// The pair's bounded region. For embedded lists the actual data sits
	// past it, where the next sibling would otherwise start.
	pbuf := buf[:size-4]
	rest := buf[size-4:]

	if len(pbuf) < 12 {
		return nil, nil, ErrShortRead
	}
	nameLen := int16(binary.LittleEndian.Uint16(pbuf[0:2]))
	// pbuf[2:4] is nvp_reserve
	nelems := int32(binary.LittleEndian.Uint32(pbuf[4:8]))
	typ := Type(binary.LittleEndian.Uint32(pbuf[8:12]))

	name, _, err := readString(pbuf[12:])
	if err != nil {
		return nil, nil, err
	}

	// Value starts after the name, padded to the next 8-byte boundary of
	// the sub-record.
	voff := 12 + align8(int(nameLen))
	if voff < 12 || voff > len(pbuf) {
		return nil, nil, ErrShortRead
	}
	vbuf := pbuf[voff:]

	var value any
	switch typ {
	case TypeBoolean:
		value = true

	case TypeByte:
		var v byte
		v, _, err = readByte(vbuf)
		value = v
	case TypeInt8:
		var v byte
		v, _, err = readByte(vbuf)
		value = int8(v)
	case TypeUint8:
		var v byte
		v, _, err = readByte(vbuf)
		value = uint8(v)

	case TypeInt16:
		var v uint16
		v, _, err = readUint16(vbuf)
		value = int16(v)
	case TypeUint16:
		var v uint16
		v, _, err = readUint16(vbuf)
		value = v

	case TypeInt32:
		var v int32
		v, _, err = readInt32(vbuf)
		value = v
	case TypeUint32:
		var v uint32
		v, _, err = readUint32(vbuf)
		value = v
	case TypeBooleanValue:
		var v uint32
		v, _, err = readUint32(vbuf)
		value = v != 0

	case TypeInt64, TypeHrtime:
		var v uint64
		v, _, err = readUint64(vbuf)
		value = int64(v)
	case TypeUint64:
		var v uint64
		v, _, err = readUint64(vbuf)
		value = v
	case TypeDouble:
		var v uint64
		v, _, err = readUint64(vbuf)
		value = math.Float64frombits(v)

	case TypeString:
		var v string
		v, _, err = readString(vbuf)
		value = v

	case TypeByteArray:
		value, err = readBytes(vbuf, nelems)
	case TypeUint8Array:
		var v []byte
		v, err = readBytes(vbuf, nelems)
		value = []uint8(v)
	case TypeInt8Array:
		var raw []byte
		raw, err = readBytes(vbuf, nelems)
		if err == nil {
			v := make([]int8, len(raw))
			for i, b := range raw {
				v[i] = int8(b)
			}
			value = v
		}

	case TypeInt16Array:
		value, err = readInt16Array(vbuf, nelems)
	case TypeUint16Array:
		value, err = readUint16Array(vbuf, nelems)
	case TypeInt32Array:
		value, err = readInt32Array(vbuf, nelems)
	case TypeUint32Array:
		value, err = readUint32Array(vbuf, nelems)
	case TypeBooleanArray:
		var raw []uint32
		raw, err = readUint32Array(vbuf, nelems)
		if err == nil {
			v := make([]bool, len(raw))
			for i, b := range raw {
				v[i] = b != 0
			}
			value = v
		}
	case TypeInt64Array:
		var raw []uint64
		raw, err = readUint64Array(vbuf, nelems)
		if err == nil {
			v := make([]int64, len(raw))
			for i, u := range raw {
				v[i] = int64(u)
			}
			value = v
		}
	case TypeUint64Array:
		value, err = readUint64Array(vbuf, nelems)

	case TypeStringArray:
		v := make([]string, 0, nelems)
		sbuf := vbuf
		for i := int32(0); i < nelems; i++ {
			var s string
			s, sbuf, err = readString(sbuf)
			if err != nil {
				break
			}
			v = append(v, s)
		}
		value = v

	// Embedded lists start at the next pair position, not at this pair's
	// value offset. The real next pair follows the embedded data.
	case TypeNvlist:
		var l *List
		l, rest, err = decodePairs(rest)
		value = l
	case TypeNvlistArray:
		v := make([]*List, 0, nelems)
		for i := int32(0); i < nelems; i++ {
			var l *List
			l, rest, err = decodePairs(rest)
			if err != nil {
				break
			}
			v = append(v, l)
		}
		value = v

	default:
		return nil, nil, &UnknownTypeError{Type: typ}
	}
	if err != nil {
		return nil, nil, err
	}

	return &Pair{Name: name, Type: typ, Value: value}, rest, nil
}

func align8(n int) int {
	return (n + 7) &^ 7
}

func readByte(buf []byte) (byte, []byte, error) {
	if len(buf) < 1 {
		return 0, nil, ErrShortRead
	}
	return buf[0], buf[1:], nil
}

func readUint16(buf []byte) (uint16, []byte, error) {
	if len(buf) < 2 {
		return 0, nil, ErrShortRead
	}
	return binary.LittleEndian.Uint16(buf), buf[2:], nil
}

func readInt32(buf []byte) (int32, []byte, error) {
	v, rest, err := readUint32(buf)
	return int32(v), rest, err
}

func readUint32(buf []byte) (uint32, []byte, error) {
	if len(buf) < 4 {
		return 0, nil, ErrShortRead
	}
	return binary.LittleEndian.Uint32(buf), buf[4:], nil
}

func readUint64(buf []byte) (uint64, []byte, error) {
	if len(buf) < 8 {
		return 0, nil, ErrShortRead
	}
	return binary.LittleEndian.Uint64(buf), buf[8:], nil
}

// readString reads a NUL-terminated string and advances past it to the
// next 8-byte boundary (or the end of the buffer).
func readString(buf []byte) (string, []byte, error) {
	n := bytes.IndexByte(buf, 0)
	if n < 0 {
		return "", nil, ErrUnterminatedString
	}
	s := string(buf[:n])
	skip := align8(n + 1)
	if skip > len(buf) {
		skip = len(buf)
	}
	return s, buf[skip:], nil
}

func readBytes(buf []byte, n int32) ([]byte, error) {
	if n < 0 || int(n) > len(buf) {
		return nil, ErrShortRead
	}
	out := make([]byte, n)
	copy(out, buf[:n])
	return out, nil
}

func readInt16Array(buf []byte, n int32) ([]int16, error) {
	if n < 0 || int(n)*2 > len(buf) {
		return nil, ErrShortRead
	}
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(buf[i*2:]))
	}
	return out, nil
}

func readUint16Array(buf []byte, n int32) ([]uint16, error) {
	if n < 0 || int(n)*2 > len(buf) {
		return nil, ErrShortRead
	}
	out := make([]uint16, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(buf[i*2:])
	}
	return out, nil
}

func readInt32Array(buf []byte, n int32) ([]int32, error) {
	if n < 0 || int(n)*4 > len(buf) {
		return nil, ErrShortRead
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return out, nil
}

func readUint32Array(buf []byte, n int32) ([]uint32, error) {
	if n < 0 || int(n)*4 > len(buf) {
		return nil, ErrShortRead
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(buf[i*4:])
	}
	return out, nil
}

func readUint64Array(buf []byte, n int32) ([]uint64, error) {
	if n < 0 || int(n)*8 > len(buf) {
		return nil, ErrShortRead
	}
	out := make([]uint64, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}
	return out, nil
}
