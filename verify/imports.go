package verify

import (
	"debug/elf"
	"debug/macho"
	"debug/pe"
	"encoding/binary"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/Eric-Lautanen/velocut-ffmpeg-the-third/errors"
)

// binFormat identifies an executable container format by magic bytes.
type binFormat int

const (
	formatUnknown binFormat = iota
	formatPE
	formatELF
	formatMachO
)

// formatOf sniffs the container format from the first bytes of a file.
func formatOf(magic []byte) binFormat {
	if len(magic) < 4 {
		return formatUnknown
	}
	switch {
	case magic[0] == 'M' && magic[1] == 'Z':
		return formatPE
	case magic[0] == 0x7f && magic[1] == 'E' && magic[2] == 'L' && magic[3] == 'F':
		return formatELF
	}
	switch binary.LittleEndian.Uint32(magic) {
	case macho.Magic32, macho.Magic64, macho.MagicFat:
		return formatMachO
	}
	switch binary.BigEndian.Uint32(magic) {
	case macho.Magic32, macho.Magic64, macho.MagicFat:
		return formatMachO
	}
	return formatUnknown
}

// ImportTable reads the dynamic-library names a built binary references at
// load time. The result is deduplicated and sorted.
func ImportTable(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.IO(errors.PhaseVerify, path, err)
	}
	magic := make([]byte, 4)
	_, err = io.ReadFull(f, magic)
	f.Close()
	if err != nil {
		return nil, errors.New(errors.PhaseVerify, errors.KindInvalidInput).
			File(path).
			Cause(err).
			Detail("file too short to be a binary").
			Build()
	}

	var imports []string
	switch formatOf(magic) {
	case formatPE:
		imports, err = peImports(path)
	case formatELF:
		imports, err = elfImports(path)
	case formatMachO:
		imports, err = machoImports(path)
	default:
		return nil, errors.New(errors.PhaseVerify, errors.KindInvalidInput).
			File(path).
			Detail("unrecognized binary format").
			Build()
	}
	if err != nil {
		return nil, errors.New(errors.PhaseVerify, errors.KindInvalidInput).
			File(path).
			Cause(err).
			Detail("cannot read import table").
			Build()
	}

	return dedupSorted(imports), nil
}

// peImports derives the referenced DLL set from the import symbol table.
// debug/pe reports entries as "Symbol:DLL.dll".
func peImports(path string) ([]string, error) {
	f, err := pe.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	syms, err := f.ImportedSymbols()
	if err != nil {
		return nil, err
	}

	var libs []string
	for _, s := range syms {
		if i := strings.LastIndexByte(s, ':'); i >= 0 {
			libs = append(libs, s[i+1:])
		}
	}
	return libs, nil
}

func elfImports(path string) ([]string, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// A fully static ELF binary has no dynamic section; that reads as an
	// empty import set, not an error.
	return f.ImportedLibraries()
}

func machoImports(path string) ([]string, error) {
	f, err := macho.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.ImportedLibraries()
}

func dedupSorted(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
