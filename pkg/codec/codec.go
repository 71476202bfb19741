// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package codec detects the byte encoding of a text file and converts between raw
// bytes and Go strings without losing a single byte on the way back out.
package codec

import (
	"bytes"
	"unicode/utf16"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
)

// Kind is the byte-level encoding of a text payload.
type Kind int

const (
	UTF8 Kind = iota
	UTF8BOM
	UTF16LE
	UTF16BE
)

var (
	bomUTF8    = []byte{0xef, 0xbb, 0xbf}
	bomUTF16LE = []byte{0xff, 0xfe}
	bomUTF16BE = []byte{0xfe, 0xff}
)

// Label returns the human readable name shown in reports.
func (k Kind) Label() string {
	switch k {
	case UTF8:
		return "UTF-8"
	case UTF8BOM:
		return "UTF-8 (BOM)"
	case UTF16LE:
		return "UTF-16 LE"
	case UTF16BE:
		return "UTF-16 BE"
	default:
		return "unknown"
	}
}

func (k Kind) String() string {
	return k.Label()
}

// Probe is the result of inspecting a raw byte prefix.
type Probe struct {
	Kind   Kind
	HasBOM bool
	Offset int // first payload byte after the BOM
}

// Detect inspects the first bytes of b. It never fails: anything without a known BOM
// is treated as UTF-8 without BOM.
func Detect(b []byte) Probe {
	switch {
	case bytes.HasPrefix(b, bomUTF16LE):
		return Probe{Kind: UTF16LE, HasBOM: true, Offset: 2}
	case bytes.HasPrefix(b, bomUTF16BE):
		return Probe{Kind: UTF16BE, HasBOM: true, Offset: 2}
	case bytes.HasPrefix(b, bomUTF8):
		return Probe{Kind: UTF8BOM, HasBOM: true, Offset: 3}
	default:
		return Probe{Kind: UTF8}
	}
}

// Decoded is the text of one file together with what is needed to write it back.
type Decoded struct {
	Text   string
	Kind   Kind
	HasBOM bool

	// dangling trailing byte of an odd-length UTF-16 payload
	tail []byte
}

// Read detects and decodes b in one step.
func Read(b []byte) Decoded {
	return Decode(b, Detect(b))
}

// Decode converts the payload of b, starting at p.Offset, into a string.
//
// UTF-8 payloads are kept byte for byte, invalid sequences included. UTF-16 payloads
// are decoded per code unit; an unpaired surrogate is kept as its three byte
// generalized UTF-8 form so that Encode can restore the exact code unit.
func Decode(b []byte, p Probe) Decoded {
	payload := b[min(p.Offset, len(b)):]
	d := Decoded{Kind: p.Kind, HasBOM: p.HasBOM}

	switch p.Kind {
	case UTF16LE, UTF16BE:
		d.Text, d.tail = decodeUTF16(payload, p.Kind == UTF16BE)
	default:
		d.Text = string(payload)
	}

	return d
}

// Label is the encoding label of the decoded file.
func (d Decoded) Label() string {
	return d.Kind.Label()
}

// Encode writes text back in the encoding and BOM state the file was read with.
func (d Decoded) Encode(text string) ([]byte, error) {
	out, err := Encode(text, d.Kind, d.HasBOM)
	if err != nil {
		return nil, err
	}
	return append(out, d.tail...), nil
}

// Encode converts text into kind, prefixed with the matching BOM when bom is set.
func Encode(text string, kind Kind, bom bool) ([]byte, error) {
	switch kind {
	case UTF8, UTF8BOM:
		if !bom {
			return []byte(text), nil
		}
		out := make([]byte, 0, len(bomUTF8)+len(text))
		out = append(out, bomUTF8...)
		return append(out, text...), nil
	case UTF16LE:
		return encodeUTF16(text, false, bom), nil
	case UTF16BE:
		return encodeUTF16(text, true, bom), nil
	default:
		return nil, errors.Errorf("unsupported encoding kind %d", int(kind))
	}
}

func decodeUTF16(payload []byte, bigEndian bool) (string, []byte) {
	n := len(payload) / 2
	units := make([]uint16, n)
	for i := 0; i < n; i++ {
		lo, hi := payload[2*i], payload[2*i+1]
		if bigEndian {
			lo, hi = hi, lo
		}
		units[i] = uint16(lo) | uint16(hi)<<8
	}

	var tail []byte
	if len(payload)%2 == 1 {
		tail = []byte{payload[len(payload)-1]}
	}

	buf := make([]byte, 0, len(payload))
	for i := 0; i < n; i++ {
		u := units[i]
		switch {
		case utf16.IsSurrogate(rune(u)) && u < 0xdc00 && i+1 < n && units[i+1] >= 0xdc00 && units[i+1] <= 0xdfff:
			buf = utf8.AppendRune(buf, utf16.DecodeRune(rune(u), rune(units[i+1])))
			i++
		case utf16.IsSurrogate(rune(u)):
			buf = appendSurrogate(buf, u)
		default:
			buf = utf8.AppendRune(buf, rune(u))
		}
	}

	return string(buf), tail
}

func encodeUTF16(text string, bigEndian, bom bool) []byte {
	out := make([]byte, 0, 2*len(text)+2)
	put := func(u uint16) {
		if bigEndian {
			out = append(out, byte(u>>8), byte(u))
		} else {
			out = append(out, byte(u), byte(u>>8))
		}
	}

	if bom {
		put(0xfeff)
	}

	for i := 0; i < len(text); {
		if u, ok := surrogateAt(text, i); ok {
			put(u)
			i += 3
			continue
		}

		r, size := utf8.DecodeRuneInString(text[i:])
		i += size
		if r >= 0x10000 {
			hi, lo := utf16.EncodeRune(r)
			put(uint16(hi))
			put(uint16(lo))
			continue
		}
		put(uint16(r))
	}

	return out
}

// appendSurrogate stores a lone surrogate code unit as ED A0..BF 80..BF. Well-formed
// UTF-8 never contains these sequences, so they cannot collide with real text.
func appendSurrogate(buf []byte, u uint16) []byte {
	return append(buf,
		0xe0|byte(u>>12),
		0x80|byte(u>>6)&0x3f,
		0x80|byte(u)&0x3f,
	)
}

func surrogateAt(s string, i int) (uint16, bool) {
	if i+2 >= len(s) || s[i] != 0xed {
		return 0, false
	}
	b1, b2 := s[i+1], s[i+2]
	if b1 < 0xa0 || b1 > 0xbf || b2 < 0x80 || b2 > 0xbf {
		return 0, false
	}
	return 0xd000 | uint16(b1&0x3f)<<6 | uint16(b2&0x3f), true
}
