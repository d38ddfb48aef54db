// Package llvm extracts exported symbols from the textual summary printed by llvm-dis.
package llvm

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.trai.ch/plink/internal/core/domain"
	"go.trai.ch/plink/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ExportExtractor = (*Extractor)(nil)

const (
	recordStart = "^"
	nameTag     = "name"
	linkageTag  = "linkage"
	tagDelim    = ':'
)

// Extractor is a minimal parser for summary records such as
//
//	^10 = gv: (name: "_ZN6header3set17h7991ffbe918cc6e2E", summaries: (function: (module: ^0,
//	flags: (linkage: external, notEligibleToImport: 0, live: 0, dsoLocal: 0, canAutoHide: 0), insts: 4)))
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract implements ports.ExportExtractor.
func (e *Extractor) Extract(r io.Reader, prefix string) ([]domain.ExportSymbol, error) {
	var symbols []domain.ExportSymbol

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, recordStart) {
			continue
		}

		sym, ok, err := parseRecord(line)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, fmt.Sprintf("summary line %d", lineNo)), "line", lineNo)
		}
		if !ok || !sym.IsExternal() {
			continue
		}
		if prefix != "" && !strings.HasPrefix(sym.Name, prefix) {
			continue
		}
		symbols = append(symbols, sym)
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(domain.ErrToolFailure, "reading disassembler output failed: "+err.Error())
	}

	return symbols, nil
}

// WriteList implements ports.ExportExtractor.
func (e *Extractor) WriteList(w io.Writer, syms []domain.ExportSymbol) error {
	bw := bufio.NewWriter(w)
	for _, s := range syms {
		if _, err := fmt.Fprintf(bw, "/export:%s\r\n", s.Name); err != nil {
			return zerr.Wrap(err, "failed to write export list")
		}
	}
	if err := bw.Flush(); err != nil {
		return zerr.Wrap(err, "failed to write export list")
	}
	return nil
}

// parseRecord returns the named symbol of one record. ok is false when the record has no name.
func parseRecord(line string) (domain.ExportSymbol, bool, error) {
	tokens := tokenize(line)

	var sym domain.ExportSymbol
	named := false
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.delim != tagDelim {
			continue
		}
		switch tok.word {
		case nameTag:
			if named {
				return sym, false, zerr.Wrap(domain.ErrToolFailure, "simple llvm parser is confused by multiple name tags")
			}
			if i+1 >= len(tokens) {
				return sym, false, zerr.Wrap(domain.ErrToolFailure, "name tag without a value")
			}
			i++
			name, err := unquote(tokens[i].word)
			if err != nil {
				return sym, false, err
			}
			sym.Name = name
			named = true
		case linkageTag:
			if i+1 >= len(tokens) {
				return sym, false, zerr.Wrap(domain.ErrToolFailure, "linkage tag without a value")
			}
			i++
			sym.Linkage = tokens[i].word
		}
	}
	return sym, named, nil
}

func unquote(word string) (string, error) {
	if len(word) < 2 || !strings.HasPrefix(word, `"`) || !strings.HasSuffix(word, `"`) || strings.Contains(word, `\`) {
		return "", zerr.With(zerr.Wrap(domain.ErrToolFailure, fmt.Sprintf("unsupported symbol name %s", word)), "name", word)
	}
	return strings.Trim(word, `"`), nil
}

type token struct {
	delim rune
	word  string
}

func isDelim(r rune) bool {
	switch r {
	case ' ', '=', ':', '(', ')', ',':
		return true
	}
	return false
}

// tokenize splits line on delimiters, tagging each word with the delimiter that ends it.
// Empty words ended by a space are dropped. A trailing word keeps the last delimiter seen.
func tokenize(line string) []token {
	var tokens []token
	last := '^'
	start := 0
	emit := func(word string, delim rune) {
		if word == "" && delim == ' ' {
			return
		}
		tokens = append(tokens, token{delim: delim, word: word})
	}
	for i, r := range line {
		if !isDelim(r) {
			continue
		}
		emit(line[start:i], r)
		last = r
		start = i + 1
	}
	if start < len(line) {
		emit(line[start:], last)
	}
	return tokens
}
