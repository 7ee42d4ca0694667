package charset

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

const UTF8 = "utf-8"

var ErrUnknownCharset = errors.New("unknown charset")

var ErrInvalidUTF8 = errors.New("source is not valid utf-8")

var charmaps = map[string]*charmap.Charmap{
	"windows-1251": charmap.Windows1251,
	"koi8-r":       charmap.KOI8R,
	"ibm866":       charmap.CodePage866,
}

var aliases = map[string]string{
	"utf8":   UTF8,
	"cp1251": "windows-1251",
	"koi8r":  "koi8-r",
	"cp866":  "ibm866",
}

func normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return UTF8
	}
	if alias, ok := aliases[name]; ok {
		return alias
	}
	return name
}

// Names returns the canonical names of supported charsets.
func Names() []string {
	names := []string{UTF8}
	for name := range charmaps {
		names = append(names, name)
	}
	sort.Strings(names[1:])
	return names
}

func lookup(name string) (encoding.Encoding, error) {
	name = normalize(name)
	if name == UTF8 {
		return nil, nil
	}
	cm, ok := charmaps[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, name)
	}
	return cm, nil
}

// Decode converts data in the named charset to a string. An empty name
// means UTF-8.
func Decode(data []byte, name string) (string, error) {
	enc, err := lookup(name)
	if err != nil {
		return "", err
	}
	if enc == nil {
		if !utf8.Valid(data) {
			return "", ErrInvalidUTF8
		}
		return string(data), nil
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Encode converts s to the named charset. Characters which cannot be
// represented are an error.
func Encode(s string, name string) ([]byte, error) {
	enc, err := lookup(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return []byte(s), nil
	}
	out, err := enc.NewEncoder().String(s)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}
