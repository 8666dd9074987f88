package ar

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// maxLen bounds every length or count prefix read from an archive.
const maxLen = 1 << 24

func check(err error) {
	if err != nil {
		panic(err)
	}
}

var endian = binary.LittleEndian

func readU8(r io.Reader) (v uint8) {
	check(binary.Read(r, endian, &v))
	return
}

func readI32(r io.Reader) (v int32) {
	check(binary.Read(r, endian, &v))
	return
}

func readU32(r io.Reader) (v uint32) {
	check(binary.Read(r, endian, &v))
	return
}

// readLen reads a u32 length prefix no larger than max.
func readLen(r io.Reader, max int) int {
	n := readU32(r)
	if uint64(n) > uint64(max) {
		panic(fmt.Errorf("length %d exceeds limit %d", n, max))
	}
	return int(n)
}

// readBytes reads a u32 length prefixed byte slice. The buffer grows with
// the data actually read, so a corrupt prefix cannot force a large
// allocation.
func readBytes(r io.Reader) []byte {
	n := readLen(r, maxLen)

	var buf bytes.Buffer
	_, err := io.CopyN(&buf, r, int64(n))
	check(err)
	return buf.Bytes()
}

func readString(r io.Reader) string {
	return string(readBytes(r))
}

func writeU8(w io.Writer, v uint8) {
	check(binary.Write(w, endian, v))
}

func writeI32(w io.Writer, v int32) {
	check(binary.Write(w, endian, v))
}

func writeU32(w io.Writer, v uint32) {
	check(binary.Write(w, endian, v))
}

func writeBytes(w io.Writer, p []byte) {
	writeU32(w, uint32(len(p)))
	_, err := w.Write(p)
	check(err)
}

func writeString(w io.Writer, s string) {
	writeBytes(w, []byte(s))
}
