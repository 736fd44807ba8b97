package archive

import (
	"bytes"
	"io"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DetectEncoding guesses the character encoding of raw member content
func DetectEncoding(content []byte) string {
	if utf8.Valid(content) {
		return "utf-8"
	}

	_, name, _ := charset.DetermineEncoding(content, "text/plain")
	if name != "" {
		return name
	}

	return "utf-8"
}

// DecodeText converts member content to a UTF-8 string. Content that is
// already valid UTF-8 is returned unchanged apart from a leading BOM; other
// content is transcoded from the sniffed charset, falling back to a lossy
// UTF-8 conversion.
func DecodeText(content []byte) string {
	content = bytes.TrimPrefix(content, utf8BOM)

	enc := DetectEncoding(content)
	if enc == "utf-8" || enc == "utf8" {
		return string(bytes.ToValidUTF8(content, []byte("�")))
	}

	e, err := GetEncoder(enc)
	if err != nil {
		return string(bytes.ToValidUTF8(content, []byte("�")))
	}

	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(content), e.NewDecoder()))
	if err != nil {
		return string(bytes.ToValidUTF8(content, []byte("�")))
	}
	return string(decoded)
}

// GetEncoder returns the encoding for a charset name
func GetEncoder(charsetName string) (encoding.Encoding, error) {
	return htmlindex.Get(charsetName)
}
