/*
Copyright © 2023 Jeff Berkowitz (pdxjjb@gmail.com)

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU Affero General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

package vm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const commentMarker = "//"

// Mnemonics. Arithmetic mnemonics are the operator names.
var mnemonics = map[string]Kind{
	"add":      KindArithmetic,
	"sub":      KindArithmetic,
	"neg":      KindArithmetic,
	"eq":       KindArithmetic,
	"gt":       KindArithmetic,
	"lt":       KindArithmetic,
	"and":      KindArithmetic,
	"or":       KindArithmetic,
	"not":      KindArithmetic,
	"push":     KindPush,
	"pop":      KindPop,
	"label":    KindLabel,
	"goto":     KindGoto,
	"if-goto":  KindIfGoto,
	"function": KindFunction,
	"call":     KindCall,
	"return":   KindReturn,
}

var ops = map[string]Op{
	"add": OpAdd,
	"sub": OpSub,
	"neg": OpNeg,
	"eq":  OpEq,
	"gt":  OpGt,
	"lt":  OpLt,
	"and": OpAnd,
	"or":  OpOr,
	"not": OpNot,
}

var segments = map[string]Segment{
	"constant": SegConstant,
	"local":    SegLocal,
	"argument": SegArgument,
	"this":     SegThis,
	"that":     SegThat,
	"temp":     SegTemp,
	"static":   SegStatic,
	"pointer":  SegPointer,
}

// NormalizeLine removes a trailing comment and surrounding white
// space and collapses internal runs of white space to one space.
// Applying it to its own result changes nothing.
func NormalizeLine(line string) string {
	if i := strings.Index(line, commentMarker); i >= 0 {
		line = line[:i]
	}
	return strings.Join(strings.Fields(line), " ")
}

// ParseLine parses one line of VM code. It reports ok == false with
// a nil error for lines that hold no command (blank or comment only).
// The result depends on nothing but the text.
func ParseLine(line string) (cmd Command, ok bool, err error) {
	text := NormalizeLine(line)
	if text == "" {
		return Command{}, false, nil
	}
	cmd, err = parseTokens(strings.Split(text, " "))
	if err != nil {
		return Command{}, false, err
	}
	return cmd, true, nil
}

func parseTokens(tokens []string) (Command, error) {
	kind, ok := mnemonics[tokens[0]]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnrecognisedMnemonic, tokens[0])
	}

	switch kind {
	case KindArithmetic:
		if err := mustHaveTokens(tokens, 1); err != nil {
			return Command{}, err
		}
		return Arithmetic(ops[tokens[0]]), nil

	case KindPush, KindPop:
		if err := mustHaveTokens(tokens, 3); err != nil {
			return Command{}, err
		}
		seg, ok := segments[tokens[1]]
		if !ok {
			return Command{}, fmt.Errorf("%w: %s: unknown segment %q", ErrMalformedArity, tokens[0], tokens[1])
		}
		index, err := mustGetIndex(tokens[0], tokens[2])
		if err != nil {
			return Command{}, err
		}
		if kind == KindPush {
			return Push(seg, index), nil
		}
		return Pop(seg, index), nil

	case KindLabel, KindGoto, KindIfGoto:
		if err := mustHaveTokens(tokens, 2); err != nil {
			return Command{}, err
		}
		switch kind {
		case KindLabel:
			return Label(tokens[1]), nil
		case KindGoto:
			return Goto(tokens[1]), nil
		}
		return IfGoto(tokens[1]), nil

	case KindFunction, KindCall:
		if err := mustHaveTokens(tokens, 3); err != nil {
			return Command{}, err
		}
		n, err := mustGetIndex(tokens[0], tokens[2])
		if err != nil {
			return Command{}, err
		}
		if kind == KindFunction {
			return Function(tokens[1], n), nil
		}
		return Call(tokens[1], n), nil

	case KindReturn:
		if err := mustHaveTokens(tokens, 1); err != nil {
			return Command{}, err
		}
		return Return(), nil
	}

	// Only reachable if the mnemonic table names a kind handled above.
	return Command{}, fmt.Errorf("%w: %q", ErrUnrecognisedMnemonic, tokens[0])
}

func mustHaveTokens(tokens []string, n int) error {
	if len(tokens) != n {
		return fmt.Errorf("%w: %s takes %d argument(s), found %d",
			ErrMalformedArity, tokens[0], n-1, len(tokens)-1)
	}
	return nil
}

// An index is a plain decimal number: no sign, no base prefix.
func mustGetIndex(mnemonic string, text string) (int, error) {
	for _, r := range text {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %s: expected non-negative integer, found %q",
				ErrMalformedArity, mnemonic, text)
		}
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %s", ErrMalformedArity, mnemonic, err)
	}
	return n, nil
}

// Parser produces the commands of one source in order. It has the
// shape of a bufio.Scanner: call Scan until it returns false, then
// check Err. It cannot be rewound.
type Parser struct {
	name    string
	scanner *bufio.Scanner
	closer  io.Closer
	line    int
	text    string
	cmd     Command
	err     error
}

// NewParser returns a parser reading from r. The name is used in
// error messages only.
func NewParser(name string, r io.Reader) *Parser {
	return &Parser{name: name, scanner: bufio.NewScanner(r)}
}

// Open returns a parser for the named file. The file belongs to the
// parser and is released by Close.
func Open(path string) (*Parser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrResource, err)
	}
	p := NewParser(path, f)
	p.closer = f
	return p, nil
}

// Scan advances to the next command. It returns false at the end of
// the input or on the first error, after which Err reports the error.
func (p *Parser) Scan() bool {
	if p.err != nil {
		return false
	}
	for p.scanner.Scan() {
		p.line++
		raw := p.scanner.Text()
		cmd, ok, err := ParseLine(raw)
		if err != nil {
			p.err = &SyntaxError{Source: p.name, Line: p.line, Text: NormalizeLine(raw), Err: err}
			return false
		}
		if ok {
			p.cmd = cmd
			p.text = raw
			return true
		}
	}
	if err := p.scanner.Err(); err != nil {
		p.err = fmt.Errorf("%w: %s: %s", ErrResource, p.name, err)
	}
	return false
}

// Command returns the command most recently found by Scan.
func (p *Parser) Command() Command {
	return p.cmd
}

// Line returns the source line number of the current command.
func (p *Parser) Line() int {
	return p.line
}

// Text returns the raw source line of the current command.
func (p *Parser) Text() string {
	return p.text
}

// Name returns the source name given to NewParser or Open.
func (p *Parser) Name() string {
	return p.name
}

// Err returns the first error encountered, if any.
func (p *Parser) Err() error {
	return p.err
}

// Close releases the input if the parser owns it. It is safe to call
// more than once.
func (p *Parser) Close() error {
	if p.closer == nil {
		return nil
	}
	err := p.closer.Close()
	p.closer = nil
	return err
}

// ParseAll reads every command from r.
func ParseAll(name string, r io.Reader) ([]Command, error) {
	p := NewParser(name, r)
	var cmds []Command
	for p.Scan() {
		cmds = append(cmds, p.Command())
	}
	return cmds, p.Err()
}
