package bitpack

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/icza/bitio"
)

const packMagic uint32 = 0x50465843

const (
	headerSize = 8
	maxPreGrow = 1 << 16
)

var (
	ErrInvalidData = errors.New("invalid packed data")
	ErrInvalidBits = errors.New("bit string may only contain '0' and '1'")
)

func unexpectEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

func checkErr(err *error, err2 error) {
	if *err == nil {
		*err = err2
	}
}

func readLE(r io.Reader, data interface{}) error {
	return binary.Read(r, binary.LittleEndian, data)
}

func writeLE(w io.Writer, data interface{}) error {
	return binary.Write(w, binary.LittleEndian, data)
}

// Validate reports the position of the first character that is not a bit.
func Validate(bits string) error {
	if i := strings.IndexFunc(bits, func(r rune) bool { return r != '0' && r != '1' }); i >= 0 {
		r, _ := utf8.DecodeRuneInString(bits[i:])
		return fmt.Errorf("%w: unexpected %q at offset %d", ErrInvalidBits, r, i)
	}
	return nil
}

// WritePacked writes a header with the bit count followed by the bits,
// most significant first, zero padded to a whole byte.
func WritePacked(w io.Writer, bits string) error {
	if err := Validate(bits); err != nil {
		return err
	}
	if uint64(len(bits)) > math.MaxUint32 {
		return fmt.Errorf("%w: %d bits do not fit the header", ErrInvalidData, len(bits))
	}

	var err error
	checkErr(&err, writeLE(w, packMagic))
	checkErr(&err, writeLE(w, uint32(len(bits))))
	if err != nil {
		return err
	}

	bw := bitio.NewWriter(w)
	for i := 0; i < len(bits) && err == nil; i++ {
		err = bw.WriteBool(bits[i] == '1')
	}
	checkErr(&err, bw.Close())
	return err
}

func ReadPacked(r io.Reader) (string, error) {
	var err error
	var magic, bitsLen uint32
	checkErr(&err, readLE(r, &magic))
	checkErr(&err, unexpectEOF(readLE(r, &bitsLen)))
	if err != nil {
		return "", err
	}
	if magic != packMagic {
		return "", fmt.Errorf("%w: expected magic %08X got %08X", ErrInvalidData, packMagic, magic)
	}

	br := bitio.NewReader(r)
	var sb strings.Builder
	// bitsLen comes from the header and is not trusted until the bits are read
	if bitsLen < maxPreGrow {
		sb.Grow(int(bitsLen))
	} else {
		sb.Grow(maxPreGrow)
	}
	for i := uint32(0); i < bitsLen; i++ {
		bit, err := br.ReadBool()
		if err != nil {
			return "", unexpectEOF(err)
		}
		if bit {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String(), nil
}

func Pack(bits string) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePacked(&buf, bits); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unpack also rejects a header that claims more bits than data holds.
func Unpack(data []byte) (string, error) {
	if len(data) >= headerSize {
		bitsLen := binary.LittleEndian.Uint32(data[4:headerSize])
		if uint64(len(data)-headerSize) < (uint64(bitsLen)+7)/8 {
			return "", fmt.Errorf("%w: header claims %d bits, payload has %d bytes",
				io.ErrUnexpectedEOF, bitsLen, len(data)-headerSize)
		}
	}
	return ReadPacked(bytes.NewReader(data))
}
