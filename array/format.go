/*
Package array writes packed pixel data as source text for firmware builds.

Four formats are supported: a C array declaration, bare comma separated hex
bytes, an assembler label followed by .db directives and a MASM style .array
block. Each is preceded by a comment header describing how the data was
generated.
*/
package array

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultName is the array name used when none is given.
const DefaultName = "image_data"

// Format is one of CArray, Raw, Assembler or MASMArray.
type Format interface {
	format()
	// Extension returns the default file extension, including the dot.
	Extension() string
}

// CArray is a C declaration, optionally with the PROGMEM attribute.
type CArray struct {
	Name    string
	Progmem bool
}

// Raw is hex data without any declaration.
type Raw struct{}

// Assembler is a label followed by .db lines.
type Assembler struct {
	Name string
}

// MASMArray is a .array NAME[SIZE].byte ... .enda block.
type MASMArray struct {
	Name string
}

func (CArray) format()    {}
func (Raw) format()       {}
func (Assembler) format() {}
func (MASMArray) format() {}

// Extension returns ".h".
func (CArray) Extension() string { return ".h" }

// Extension returns ".hex".
func (Raw) Extension() string { return ".hex" }

// Extension returns ".inc".
func (Assembler) Extension() string { return ".inc" }

// Extension returns ".inc".
func (MASMArray) Extension() string { return ".inc" }

// FormatNames lists the names accepted by ParseFormat.
var FormatNames = []string{"c", "raw", "asm", "masm"}

// ParseFormat builds the format called s. name and progmem are used by the
// formats that declare a symbol.
func ParseFormat(s, name string, progmem bool) (Format, error) {
	if name == "" {
		name = DefaultName
	}
	switch strings.ToLower(s) {
	case "c", "c-array":
		return CArray{Name: name, Progmem: progmem}, nil
	case "raw", "hex":
		return Raw{}, nil
	case "asm", "assembler":
		return Assembler{Name: name}, nil
	case "masm", "assembler-array":
		return MASMArray{Name: name}, nil
	}
	return nil, fmt.Errorf("array: unknown format %q", s)
}

// Describe returns a human readable name of f.
func Describe(f Format) string {
	switch f := f.(type) {
	case CArray:
		if f.Progmem {
			return "C array (PROGMEM)"
		}
		return "C array"
	case Raw:
		return "raw data"
	case Assembler:
		return "assembler"
	case MASMArray:
		return "MASM array"
	}
	return "unknown"
}

// ReplaceExtension swaps the extension of path for ext, adding it if path
// has none.
func ReplaceExtension(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// Name returns the symbol declared by f, or "" for Raw.
func Name(f Format) string {
	switch f := f.(type) {
	case CArray:
		return f.Name
	case Assembler:
		return f.Name
	case MASMArray:
		return f.Name
	}
	return ""
}

// Rename returns f with its symbol name replaced. Raw has no name and is
// returned unchanged.
func Rename(f Format, name string) Format {
	switch f := f.(type) {
	case CArray:
		f.Name = name
		return f
	case Assembler:
		f.Name = name
		return f
	case MASMArray:
		f.Name = name
		return f
	}
	return f
}

// Identifier turns s into a valid C and assembler symbol name.
func Identifier(s string) string {
	if s == "" {
		return DefaultName
	}
	b := []byte(s)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		default:
			b[i] = '_'
		}
	}
	if b[0] >= '0' && b[0] <= '9' {
		return "_" + string(b)
	}
	return string(b)
}
