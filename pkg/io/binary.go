// Package io provides the wire-level binary codec used across the witness
// authorization core: a little-endian, length-prefixed reader/writer pair
// that never panics on adversarial input. Allocations driven by a length
// prefix are bounded by the caller's cap (MaxArraySize by default), but a
// length within that cap is allocated in full before its bytes are read,
// whether or not the wire actually holds that many.
package io

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"reflect"
)

// MaxArraySize is the default upper bound placed on var_int-prefixed array
// and byte-string lengths when the caller does not supply a tighter cap.
// It exists purely as a last-resort guard against a hostile length prefix
// driving an allocation far larger than the underlying buffer could ever
// contain; call sites that know a protocol-level cap (16 rule conditions,
// 1024-byte witness scripts, ...) should always pass it explicitly.
const MaxArraySize = 0x1000000

// BinaryReader is the read half of the Serializable contract. It is a type
// alias for *BinReader so mock implementations used only in tests can name
// the parameter type without importing the concrete struct.
type BinaryReader = *BinReader

// BinaryWriter is the write half of the Serializable contract, aliasing
// *BinWriter for the same reason as BinaryReader.
type BinaryWriter = *BinWriter

// Serializable defines a binary encoding contract. Implementations MUST be
// total: EncodeBinary/DecodeBinary never panic on their own account, they
// only ever record a sticky error on the reader/writer they were given.
type Serializable interface {
	EncodeBinary(*BinWriter)
	DecodeBinary(*BinReader)
}

// BinReader is a convenience wrapper around an io.Reader that reads
// primitives in little-endian (mostly) byte order and tracks a sticky
// error: once Err is non-nil every subsequent Read* call is a no-op that
// returns the zero value, so callers can chain many reads and check the
// error once at the end.
type BinReader struct {
	r   io.Reader
	Err error
}

// NewBinReaderFromIO makes a BinReader reading from the given io.Reader.
func NewBinReaderFromIO(ior io.Reader) *BinReader {
	return &BinReader{r: ior}
}

// NewBinReaderFromBuf makes a BinReader reading from the given byte slice.
func NewBinReaderFromBuf(b []byte) *BinReader {
	r := bytes.NewReader(b)
	return NewBinReaderFromIO(r)
}

// ReadU64LE reads a little-endian uint64 from the underlying stream.
func (r *BinReader) ReadU64LE() uint64 {
	var buf [8]byte
	r.ReadBytes(buf[:])
	return binary.LittleEndian.Uint64(buf[:])
}

// ReadU32LE reads a little-endian uint32 from the underlying stream.
func (r *BinReader) ReadU32LE() uint32 {
	var buf [4]byte
	r.ReadBytes(buf[:])
	return binary.LittleEndian.Uint32(buf[:])
}

// ReadU16LE reads a little-endian uint16 from the underlying stream.
func (r *BinReader) ReadU16LE() uint16 {
	var buf [2]byte
	r.ReadBytes(buf[:])
	return binary.LittleEndian.Uint16(buf[:])
}

// ReadU16BE reads a big-endian uint16 from the underlying stream.
func (r *BinReader) ReadU16BE() uint16 {
	var buf [2]byte
	r.ReadBytes(buf[:])
	return binary.BigEndian.Uint16(buf[:])
}

// ReadB reads a single byte from the underlying stream.
func (r *BinReader) ReadB() byte {
	var buf [1]byte
	r.ReadBytes(buf[:])
	return buf[0]
}

// ReadBool reads a one-byte boolean (0x00 false, anything else true).
func (r *BinReader) ReadBool() bool {
	return r.ReadB() != 0
}

// ReadBytes reads len(buf) bytes into buf, failing the reader with a
// sticky error if fewer bytes are available.
func (r *BinReader) ReadBytes(buf []byte) {
	if r.Err != nil {
		return
	}
	_, r.Err = io.ReadFull(r.r, buf)
}

// ReadVarUint reads a LEB128-like var_int: values below 0xfd encode as a
// single byte, 0xfd prefixes a uint16, 0xfe a uint32, 0xff a uint64.
func (r *BinReader) ReadVarUint() uint64 {
	if r.Err != nil {
		return 0
	}
	b := r.ReadB()
	switch b {
	case 0xfd:
		return uint64(r.ReadU16LE())
	case 0xfe:
		return uint64(r.ReadU32LE())
	case 0xff:
		return r.ReadU64LE()
	default:
		return uint64(b)
	}
}

// ReadVarBytes reads a var_int(length) prefix followed by that many raw
// bytes. maxSize, if given, bounds the accepted length *before* the buffer
// is allocated, so an adversarial length prefix can never cause an
// over-allocation.
func (r *BinReader) ReadVarBytes(maxSize ...int) []byte {
	max := MaxArraySize
	if len(maxSize) != 0 {
		max = maxSize[0]
	}
	n := r.ReadVarUint()
	if r.Err != nil {
		return []byte{}
	}
	if n > uint64(max) {
		r.Err = fmt.Errorf("byte-array is too big (%d > %d)", n, max)
		return nil
	}
	b := make([]byte, n)
	r.ReadBytes(b)
	return b
}

// ReadString reads a var_int-length-prefixed UTF-8 string.
func (r *BinReader) ReadString(maxSize ...int) string {
	b := r.ReadVarBytes(maxSize...)
	return string(b)
}

// ReadArray reads a var_int(length)-prefixed sequence of Serializable
// elements into *t, which must be a pointer to a slice of a type
// implementing Serializable (by value or by pointer). maxSize, if given,
// caps the accepted element count before any element is allocated.
func (r *BinReader) ReadArray(t interface{}, maxSize ...int) {
	max := MaxArraySize
	if len(maxSize) != 0 {
		max = maxSize[0]
	}

	arr := reflect.ValueOf(t).Elem()
	n := r.ReadVarUint()
	if r.Err != nil {
		return
	}
	if n > uint64(max) {
		r.Err = fmt.Errorf("array is too big (%d > %d)", n, max)
		return
	}

	arr.Set(reflect.MakeSlice(arr.Type(), 0, int(n)))
	elemType := arr.Type().Elem()
	for i := 0; i < int(n); i++ {
		var elem reflect.Value
		if elemType.Kind() == reflect.Ptr {
			elem = reflect.New(elemType.Elem())
		} else {
			elem = reflect.New(elemType)
		}
		ser, ok := elem.Interface().(Serializable)
		if !ok {
			panic(fmt.Sprintf("%s is not Serializable", elemType))
		}
		ser.DecodeBinary(r)
		if r.Err != nil {
			return
		}
		if elemType.Kind() == reflect.Ptr {
			arr.Set(reflect.Append(arr, elem))
		} else {
			arr.Set(reflect.Append(arr, elem.Elem()))
		}
	}
}

// BinWriter is a convenience wrapper around an io.Writer that writes
// primitives in little-endian (mostly) byte order and tracks a sticky
// error identically to BinReader.
type BinWriter struct {
	w   io.Writer
	Err error
}

// NewBinWriterFromIO makes a BinWriter writing to the given io.Writer.
func NewBinWriterFromIO(iow io.Writer) *BinWriter {
	return &BinWriter{w: iow}
}

// Error returns the writer's sticky error, nil if nothing has failed yet.
func (w *BinWriter) Error() error {
	return w.Err
}

// SetError sets the writer's sticky error if it is not already set.
func (w *BinWriter) SetError(err error) {
	if w.Err == nil {
		w.Err = err
	}
}

func (w *BinWriter) writeBytes(b []byte) {
	if w.Err != nil {
		return
	}
	_, w.Err = w.w.Write(b)
}

// WriteU64LE writes u64 as 8 little-endian bytes.
func (w *BinWriter) WriteU64LE(u64 uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], u64)
	w.writeBytes(buf[:])
}

// WriteU32LE writes u32 as 4 little-endian bytes.
func (w *BinWriter) WriteU32LE(u32 uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], u32)
	w.writeBytes(buf[:])
}

// WriteU16LE writes u16 as 2 little-endian bytes.
func (w *BinWriter) WriteU16LE(u16 uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], u16)
	w.writeBytes(buf[:])
}

// WriteU16BE writes u16 as 2 big-endian bytes.
func (w *BinWriter) WriteU16BE(u16 uint16) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], u16)
	w.writeBytes(buf[:])
}

// WriteB writes a single byte.
func (w *BinWriter) WriteB(u8 byte) {
	w.writeBytes([]byte{u8})
}

// WriteBool writes a one-byte boolean.
func (w *BinWriter) WriteBool(b bool) {
	if b {
		w.WriteB(1)
	} else {
		w.WriteB(0)
	}
}

// WriteBytes writes buf verbatim, with no length prefix.
func (w *BinWriter) WriteBytes(buf []byte) {
	w.writeBytes(buf)
}

// WriteVarUint writes n using the var_int prefix convention described on
// BinReader.ReadVarUint.
func (w *BinWriter) WriteVarUint(val uint64) {
	if w.Err != nil {
		return
	}
	switch {
	case val < 0xfd:
		w.WriteB(byte(val))
	case val <= 0xffff:
		w.WriteB(0xfd)
		w.WriteU16LE(uint16(val))
	case val <= 0xffffffff:
		w.WriteB(0xfe)
		w.WriteU32LE(uint32(val))
	default:
		w.WriteB(0xff)
		w.WriteU64LE(val)
	}
}

// WriteVarBytes writes var_int(len(buf)) followed by buf.
func (w *BinWriter) WriteVarBytes(buf []byte) {
	w.WriteVarUint(uint64(len(buf)))
	w.WriteBytes(buf)
}

// WriteString writes a var_int-length-prefixed UTF-8 string.
func (w *BinWriter) WriteString(s string) {
	w.WriteVarBytes([]byte(s))
}

// WriteArray writes a var_int(length) prefix followed by each element's
// EncodeBinary output. arr must be an array or slice whose elements have
// an EncodeBinary method (by value, or by pointer when the elements are
// addressable, as slice elements are); any other type panics,
// matching the contract violation it represents (a programmer error, not
// adversarial input - arrays are always constructed by this program).
func (w *BinWriter) WriteArray(arr interface{}) {
	value := reflect.ValueOf(arr)
	switch value.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		panic(fmt.Sprintf("%s is not a slice or array", value.Type()))
	}
	if w.Err != nil {
		return
	}

	type encoder interface{ EncodeBinary(*BinWriter) }
	w.WriteVarUint(uint64(value.Len()))
	for i := 0; i < value.Len(); i++ {
		elem := value.Index(i)
		ser, ok := elem.Interface().(encoder)
		if !ok {
			if elem.CanAddr() {
				ser, ok = elem.Addr().Interface().(encoder)
			}
			if !ok {
				panic(fmt.Sprintf("%s is not Serializable", elem.Type()))
			}
		}
		ser.EncodeBinary(w)
		if w.Err != nil {
			return
		}
	}
}

// BufBinWriter is a BinWriter that writes into an in-memory buffer,
// convenient for tests and for one-shot encode-then-send call sites.
type BufBinWriter struct {
	*BinWriter
	buf *bytes.Buffer
}

// NewBufBinWriter makes a BufBinWriter ready for use.
func NewBufBinWriter() *BufBinWriter {
	b := new(bytes.Buffer)
	return &BufBinWriter{
		BinWriter: NewBinWriterFromIO(b),
		buf:       b,
	}
}

// Len returns the number of bytes written so far.
func (w *BufBinWriter) Len() int {
	return w.buf.Len()
}

// Bytes returns the accumulated bytes, or nil if the writer's sticky error
// is set (a partially written buffer is never a useful result).
func (w *BufBinWriter) Bytes() []byte {
	if w.Err != nil {
		return nil
	}
	return w.buf.Bytes()
}

// Reset clears the buffer and the sticky error, readying the writer for
// another round of writes.
func (w *BufBinWriter) Reset() {
	w.Err = nil
	w.buf.Reset()
}
