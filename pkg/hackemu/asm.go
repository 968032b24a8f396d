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

package hackemu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const firstVariable = 16

const (
	destA = 1 << iota
	destD
	destM
)

const (
	jumpGT = 1 << iota
	jumpEQ
	jumpLT
)

var jumps = map[string]uint8{
	"JGT": jumpGT,
	"JEQ": jumpEQ,
	"JGE": jumpGT | jumpEQ,
	"JLT": jumpLT,
	"JNE": jumpLT | jumpGT,
	"JLE": jumpLT | jumpEQ,
	"JMP": jumpLT | jumpEQ | jumpGT,
}

type compFunc func(a, d, m int16) int16

// Computations in their A forms. The M forms are found by spelling M
// as A and reading memory instead of the register.
var comps = map[string]compFunc{
	"0":   func(a, d, m int16) int16 { return 0 },
	"1":   func(a, d, m int16) int16 { return 1 },
	"-1":  func(a, d, m int16) int16 { return -1 },
	"D":   func(a, d, m int16) int16 { return d },
	"A":   func(a, d, m int16) int16 { return a },
	"!D":  func(a, d, m int16) int16 { return ^d },
	"!A":  func(a, d, m int16) int16 { return ^a },
	"-D":  func(a, d, m int16) int16 { return -d },
	"-A":  func(a, d, m int16) int16 { return -a },
	"D+1": func(a, d, m int16) int16 { return d + 1 },
	"A+1": func(a, d, m int16) int16 { return a + 1 },
	"D-1": func(a, d, m int16) int16 { return d - 1 },
	"A-1": func(a, d, m int16) int16 { return a - 1 },
	"D+A": func(a, d, m int16) int16 { return d + a },
	"A+D": func(a, d, m int16) int16 { return d + a },
	"D-A": func(a, d, m int16) int16 { return d - a },
	"A-D": func(a, d, m int16) int16 { return a - d },
	"D&A": func(a, d, m int16) int16 { return d & a },
	"A&D": func(a, d, m int16) int16 { return d & a },
	"D|A": func(a, d, m int16) int16 { return d | a },
	"A|D": func(a, d, m int16) int16 { return d | a },
}

var predefined = map[string]int{
	"SP":     0,
	"LCL":    1,
	"ARG":    2,
	"THIS":   3,
	"THAT":   4,
	"SCREEN": 0x4000,
	"KBD":    0x6000,
}

func init() {
	for i := 0; i < 16; i++ {
		predefined[fmt.Sprintf("R%d", i)] = i
	}
}

type instruction struct {
	isA    bool
	value  int16
	comp   compFunc
	readsM bool
	dest   uint8
	jump   uint8
	text   string
	line   int
}

// Program is assembled code plus its symbol table.
type Program struct {
	code    []instruction
	symbols map[string]int
}

// Len returns the number of instructions.
func (p *Program) Len() int {
	return len(p.code)
}

// AsmError locates an assembly failure.
type AsmError struct {
	Line int
	Text string
	Msg  string
}

func (ae *AsmError) Error() string {
	return fmt.Sprintf("line %d: %q: %s", ae.Line, ae.Text, ae.Msg)
}

type sourceLine struct {
	text string
	line int
}

// Assemble reads Hack assembly. Labels are resolved in a first pass;
// other symbols become variables from address 16 in order of first use.
func Assemble(r io.Reader) (*Program, error) {
	var lines []sourceLine
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		text := scanner.Text()
		if i := strings.Index(text, "//"); i >= 0 {
			text = text[:i]
		}
		text = strings.Join(strings.Fields(text), "")
		if text != "" {
			lines = append(lines, sourceLine{text, n})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	symbols := make(map[string]int, len(predefined))
	for k, v := range predefined {
		symbols[k] = v
	}

	// Pass 1: labels
	pc := 0
	for _, sl := range lines {
		if strings.HasPrefix(sl.text, "(") {
			if !strings.HasSuffix(sl.text, ")") || len(sl.text) < 3 {
				return nil, &AsmError{sl.line, sl.text, "malformed label"}
			}
			name := sl.text[1 : len(sl.text)-1]
			if _, dup := symbols[name]; dup {
				return nil, &AsmError{sl.line, sl.text, "duplicate symbol"}
			}
			symbols[name] = pc
			continue
		}
		pc++
	}

	// Pass 2: instructions
	prog := &Program{symbols: symbols}
	nextVariable := firstVariable
	for _, sl := range lines {
		if strings.HasPrefix(sl.text, "(") {
			continue
		}
		if strings.HasPrefix(sl.text, "@") {
			operand := sl.text[1:]
			if operand == "" {
				return nil, &AsmError{sl.line, sl.text, "missing operand"}
			}
			var value int
			if operand[0] >= '0' && operand[0] <= '9' {
				v, err := strconv.Atoi(operand)
				if err != nil || v > 0x7FFF {
					return nil, &AsmError{sl.line, sl.text, "bad constant"}
				}
				value = v
			} else {
				addr, ok := symbols[operand]
				if !ok {
					addr = nextVariable
					symbols[operand] = addr
					nextVariable++
				}
				value = addr
			}
			prog.code = append(prog.code, instruction{isA: true, value: int16(value), text: sl.text, line: sl.line})
			continue
		}
		in, err := parseC(sl)
		if err != nil {
			return nil, err
		}
		prog.code = append(prog.code, in)
	}
	return prog, nil
}

// dest=comp;jump with dest and jump optional.
func parseC(sl sourceLine) (instruction, error) {
	in := instruction{text: sl.text, line: sl.line}
	rest := sl.text
	if i := strings.Index(rest, "="); i >= 0 {
		for _, c := range rest[:i] {
			switch c {
			case 'A':
				in.dest |= destA
			case 'D':
				in.dest |= destD
			case 'M':
				in.dest |= destM
			default:
				return in, &AsmError{sl.line, sl.text, "bad destination"}
			}
		}
		rest = rest[i+1:]
	}
	if i := strings.Index(rest, ";"); i >= 0 {
		j, ok := jumps[rest[i+1:]]
		if !ok {
			return in, &AsmError{sl.line, sl.text, "bad jump"}
		}
		in.jump = j
		rest = rest[:i]
	}
	comp := rest
	if strings.Contains(comp, "M") {
		if strings.Contains(comp, "A") {
			return in, &AsmError{sl.line, sl.text, "computation uses both A and M"}
		}
		in.readsM = true
		comp = strings.ReplaceAll(comp, "M", "A")
	}
	f, ok := comps[comp]
	if !ok {
		return in, &AsmError{sl.line, sl.text, "bad computation"}
	}
	if in.readsM {
		in.comp = func(a, d, m int16) int16 { return f(m, d, m) }
	} else {
		in.comp = f
	}
	return in, nil
}
