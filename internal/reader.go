package internal

import (
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

var ErrInvalidUTF8 = errors.New("invalid utf-8 byte sequence")

const DefaultEncoding = "utf-8"

// Content is the loaded text of one report file, or the reason it could not be loaded.
type Content struct {
	Path string // display path used in the placeholder
	Text string
	Err  error
}

func (c Content) OK() bool { return c.Err == nil }

// String returns the text, or an inline placeholder naming the path and error.
func (c Content) String() string {
	if c.Err != nil {
		return fmt.Sprintf("Error reading file %s: %v", c.Path, c.Err)
	}
	return c.Text
}

// Decoder turns raw file bytes into text.
type Decoder func([]byte) (string, error)

// NewDecoder resolves a WHATWG encoding name. UTF-8 is strict: invalid
// sequences are an error instead of being replaced.
func NewDecoder(name string) (Decoder, error) {
	if name == "" {
		name = DefaultEncoding
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("encoding %q: %w", name, err)
	}
	if canonical, _ := htmlindex.Name(enc); canonical == DefaultEncoding {
		return decodeUTF8, nil
	}
	return decodeWith(enc), nil
}

func decodeUTF8(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func decodeWith(enc encoding.Encoding) Decoder {
	return func(b []byte) (string, error) {
		out, err := enc.NewDecoder().Bytes(b)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}

// LoadContent reads rel from fsys. The handle is closed before returning on
// every path; failures are carried in Content.Err.
func LoadContent(fsys iofs.FS, rel, display string, decode Decoder) Content {
	c := Content{Path: display}
	f, err := fsys.Open(rel)
	if err != nil {
		c.Err = err
		return c
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		c.Err = err
		return c
	}
	text, err := decode(b)
	if err != nil {
		c.Err = err
		return c
	}
	c.Text = text
	return c
}

// expandText prepares a body for fixed-layout rendering.
func expandText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\t", "    ")
}
