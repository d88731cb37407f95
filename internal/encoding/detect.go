// Package encoding turns uploaded text of unknown charset into UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names the encoding a reader was decoded from.
type Charset string

const (
	UTF8        Charset = "UTF-8"
	UTF8BOM     Charset = "UTF-8 BOM"
	UTF16LE     Charset = "UTF-16LE"
	UTF16BE     Charset = "UTF-16BE"
	Windows1252 Charset = "windows-1252"
	ISO8859_9   Charset = "ISO-8859-9"
	ISO8859_15  Charset = "ISO-8859-15"
)

const sniffSize = 4096

var boms = []struct {
	prefix  []byte
	charset Charset
}{
	{[]byte{0xEF, 0xBB, 0xBF}, UTF8BOM},
	{[]byte{0xFF, 0xFE}, UTF16LE},
	{[]byte{0xFE, 0xFF}, UTF16BE},
}

// chardet results mapped to decoders; anything else falls back to windows-1252.
var detected = map[string]Charset{
	"UTF-8":        UTF8,
	"ISO-8859-1":   Windows1252,
	"windows-1252": Windows1252,
	"ISO-8859-9":   ISO8859_9,
	"ISO-8859-15":  ISO8859_15,
}

func decoder(c Charset) xenc.Encoding {
	switch c {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case ISO8859_9:
		return charmap.ISO8859_9
	case ISO8859_15:
		return charmap.ISO8859_15
	case Windows1252:
		return charmap.Windows1252
	}

	return nil
}

// Detect guesses the charset of sample: BOM first, then UTF-8 validity, then chardet.
func Detect(sample []byte) Charset {
	for _, b := range boms {
		if bytes.HasPrefix(sample, b.prefix) {
			return b.charset
		}
	}

	if utf8.Valid(sample) {
		return UTF8
	}

	res, err := chardet.NewTextDetector().DetectBest(sample)
	if err == nil {
		if c, ok := detected[res.Charset]; ok {
			return c
		}
	}

	return Windows1252
}

// NewUTF8Reader decodes r to UTF-8 and reports the charset it detected.
// A UTF-8 byte order mark is dropped.
func NewUTF8Reader(r io.Reader) (io.Reader, Charset, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	buf, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("peek: %w", err)
	}

	c := Detect(buf)

	switch c {
	case UTF8:
		return br, c, nil
	case UTF8BOM:
		_, _ = br.Discard(3)
		return br, c, nil
	}

	return transform.NewReader(br, decoder(c).NewDecoder()), c, nil
}
