// File: tokenize.go
// Title: Console Line Tokenizer
// Description: Splits a console input line into words. Double or single
//              quoted spans form a single word with the quotes removed.
// Author: msto63
// Version: v0.1.0
// Created: 2025-12-08
// Modified: 2025-12-08

package console

// scanner walks an input line byte by byte
type scanner struct {
	input    string
	position int  // Current position in input (points to current char)
	readPos  int  // Current reading position (after current char)
	ch       byte // Current char under examination, 0 at end of input
}

func newScanner(input string) *scanner {
	s := &scanner{input: input}
	s.readChar()
	return s
}

func (s *scanner) readChar() {
	if s.readPos >= len(s.input) {
		s.ch = 0
	} else {
		s.ch = s.input[s.readPos]
	}
	s.position = s.readPos
	s.readPos++
}

func (s *scanner) atEnd() bool {
	return s.position >= len(s.input)
}

func (s *scanner) skipWhitespace() {
	for !s.atEnd() && isSpace(s.ch) {
		s.readChar()
	}
}

// readWord reads a bare word. It stops at whitespace and at quote characters.
func (s *scanner) readWord() string {
	start := s.position
	for !s.atEnd() && !isSpace(s.ch) && !isQuote(s.ch) {
		s.readChar()
	}
	return s.input[start:s.position]
}

// readQuoted reads a quoted span. An unterminated span runs to the end of input.
func (s *scanner) readQuoted() string {
	quote := s.ch
	start := s.position + 1 // Skip opening quote

	for {
		s.readChar()
		if s.atEnd() || s.ch == quote {
			break
		}
	}

	value := s.input[start:s.position]
	if !s.atEnd() {
		s.readChar() // consume closing quote
	}
	return value
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\v' || ch == '\f'
}

func isQuote(ch byte) bool {
	return ch == '"' || ch == '\''
}

// Tokenize splits line into words. Whitespace outside quotes separates words;
// "..." and '...' spans become one word without the quotes. Empty words are
// never produced.
func Tokenize(line string) []string {
	tokens := []string{}
	s := newScanner(line)

	for {
		s.skipWhitespace()
		if s.atEnd() {
			return tokens
		}

		var word string
		if isQuote(s.ch) {
			word = s.readQuoted()
		} else {
			word = s.readWord()
		}

		if word != "" {
			tokens = append(tokens, word)
		}
	}
}
