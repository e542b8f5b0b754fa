// Package id encodes internal surrogate ids into short opaque strings for the
// API surface, so clients never see raw auto-increment values.
package id

import (
	"fmt"
	"hash/fnv"
	"strings"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// encodedLength is the fixed output length; short values are left-padded.
	encodedLength = 8

	feistelRounds = 4
)

// Codec maps uint32 ids to opaque base62 strings and back. The mapping is a
// keyed Feistel permutation, so consecutive ids do not produce consecutive
// strings, plus a check byte so a mangled string fails decode instead of
// resolving to a wrong record.
type Codec struct {
	roundKeys [feistelRounds]uint32
}

// NewCodec derives the permutation keys from the given secret. The same
// secret must be used by every process that exchanges ids.
func NewCodec(secret string) *Codec {
	c := &Codec{}
	for i := 0; i < feistelRounds; i++ {
		h := fnv.New32a()
		fmt.Fprintf(h, "%s:%d", secret, i)
		c.roundKeys[i] = h.Sum32()
	}
	return c
}

// Encode returns the opaque string for an internal id.
func (c *Codec) Encode(id uint) string {
	obf := c.permute(uint32(id))
	v := uint64(obf)<<8 | uint64(checkByte(obf))
	return encodeBase62(v)
}

// Decode reverses Encode. It returns an error for malformed input, a failed
// check byte, or characters outside the alphabet.
func (c *Codec) Decode(s string) (uint, error) {
	if len(s) != encodedLength {
		return 0, fmt.Errorf("invalid id %q: bad length", s)
	}
	v, err := decodeBase62(s)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	if v>>40 != 0 {
		return 0, fmt.Errorf("invalid id %q: out of range", s)
	}
	obf := uint32(v >> 8)
	if byte(v) != checkByte(obf) {
		return 0, fmt.Errorf("invalid id %q: checksum mismatch", s)
	}
	return uint(c.unpermute(obf)), nil
}

// permute runs a balanced 16/16-bit Feistel network over the id.
func (c *Codec) permute(v uint32) uint32 {
	l, r := uint16(v>>16), uint16(v)
	for i := 0; i < feistelRounds; i++ {
		l, r = r, l^roundF(r, c.roundKeys[i])
	}
	return uint32(l)<<16 | uint32(r)
}

func (c *Codec) unpermute(v uint32) uint32 {
	l, r := uint16(v>>16), uint16(v)
	for i := feistelRounds - 1; i >= 0; i-- {
		l, r = r^roundF(l, c.roundKeys[i]), l
	}
	return uint32(l)<<16 | uint32(r)
}

func roundF(half uint16, key uint32) uint16 {
	x := (uint32(half) + key) * 0x9E3779B1
	x ^= x >> 15
	return uint16(x)
}

func checkByte(v uint32) byte {
	return byte(v) + byte(v>>8) + byte(v>>16) + byte(v>>24) + 0x5a
}

func encodeBase62(v uint64) string {
	buf := make([]byte, 0, encodedLength)
	for v > 0 {
		buf = append(buf, alphabet[v%62])
		v /= 62
	}
	for len(buf) < encodedLength {
		buf = append(buf, alphabet[0])
	}
	// digits were produced least significant first
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

func decodeBase62(s string) (uint64, error) {
	var v uint64
	for _, ch := range s {
		idx := strings.IndexRune(alphabet, ch)
		if idx < 0 {
			return 0, fmt.Errorf("character %q outside alphabet", ch)
		}
		v = v*62 + uint64(idx)
	}
	return v, nil
}
