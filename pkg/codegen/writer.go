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

// Package codegen translates VM commands into Hack assembly.
//
// The target is the 16-bit Hack machine. Its RAM is word addressed and
// the low addresses have fixed roles:
//
//	RAM[0]      SP    next free stack cell
//	RAM[1]      LCL   base of the local segment
//	RAM[2]      ARG   base of the argument segment
//	RAM[3]      THIS  base of the this segment (pointer 0)
//	RAM[4]      THAT  base of the that segment (pointer 1)
//	RAM[5-12]   temp segment
//	RAM[13-15]  scratch registers R13-R15
//	RAM[16-255] static variables, allocated by the assembler
//	RAM[256-]   the stack
//
// A Writer takes one command at a time and appends the instructions
// for it to its output. It never looks ahead and never revisits what
// it has written. The only state it carries from one command to the
// next is the Session: label counters and the current module name.
package codegen

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/gmofishsauce/hackvm/pkg/vm"
)

const (
	stackBase = 256
	tempBase  = 5
	tempSize  = 8

	// Largest value an A-instruction can load.
	maxConstant = 0x7FFF

	// Program entry point called by the bootstrap code.
	entryFunction = "Sys.init"

	// Module tag under which the bootstrap call allocates its return label.
	bootstrapModule = "Bootstrap"
)

// Session holds everything the generator must remember between
// commands. One session covers one translation run.
type Session struct {
	module   string
	compares map[vm.Op]int
	returns  map[string]int
}

func NewSession() *Session {
	return &Session{
		compares: make(map[vm.Op]int),
		returns:  make(map[string]int),
	}
}

// Module returns the name of the module being translated.
func (s *Session) Module() string {
	return s.module
}

// Compares returns how many comparisons using op have been generated.
func (s *Session) Compares(op vm.Op) int {
	return s.compares[op]
}

// Returns returns how many call sites have been generated in module.
func (s *Session) Returns(module string) int {
	return s.returns[module]
}

// Take the next label number for a comparison operator. Numbers start
// at 0 and are never reused within the session.
func (s *Session) nextCompare(op vm.Op) int {
	n := s.compares[op]
	s.compares[op] = n + 1
	return n
}

// Take the next return label for the current module. Numbers start
// at 1 in every module.
func (s *Session) nextReturnLabel() string {
	s.returns[s.module]++
	return fmt.Sprintf("%s$ret.%d", s.module, s.returns[s.module])
}

// Option configures a Writer.
type Option func(w *Writer)

// WithComments controls the "// command" line written before the
// instructions for each command. The default is on.
func WithComments(on bool) Option {
	return func(w *Writer) {
		w.comments = on
	}
}

// WithHeader sets text written as comment lines at the start of the
// output, before anything else.
func WithHeader(text string) Option {
	return func(w *Writer) {
		w.header = text
	}
}

// WithLogger sets the logger for progress messages. The default
// discards them.
func WithLogger(logger *log.Logger) Option {
	return func(w *Writer) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Writer generates assembly for a stream of commands.
type Writer struct {
	out           *bufio.Writer
	session       *Session
	comments      bool
	header        string
	headerWritten bool
	logger        *log.Logger
	err           error
}

// NewWriter returns a Writer appending to out with a fresh session.
// Output is buffered; call Flush when done.
func NewWriter(out io.Writer, opts ...Option) *Writer {
	w := &Writer{
		out:      bufio.NewWriter(out),
		session:  NewSession(),
		comments: true,
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Session returns the writer's session state.
func (w *Writer) Session() *Session {
	return w.session
}

// SetModule sets the module whose commands follow. It qualifies static
// symbols and return labels.
func (w *Writer) SetModule(name string) {
	w.logger.Printf("module %s\n", name)
	w.session.module = name
}

// WriteBootstrap writes the program entry sequence: initialize the
// stack pointer and call Sys.init. Write it once, before any module.
func (w *Writer) WriteBootstrap() error {
	w.logger.Printf("bootstrap: SP=%d, call %s\n", stackBase, entryFunction)
	w.writeBlock("bootstrap: SP = "+fmt.Sprint(stackBase), []string{
		fmt.Sprintf("@%d", stackBase),
		"D=A",
		"@SP",
		"M=D",
	})

	saved := w.session.module
	w.session.module = bootstrapModule
	call := vm.Call(entryFunction, 0)
	w.writeBlock(call.String(), genCall(w.session, call))
	w.session.module = saved
	return w.err
}

// WriteCommand appends the instructions for one command.
func (w *Writer) WriteCommand(cmd vm.Command) error {
	if w.err != nil {
		return w.err
	}
	lines, err := generate(w.session, cmd)
	if err != nil {
		return err
	}
	w.writeBlock(cmd.String(), lines)
	return w.err
}

// Flush writes any buffered output to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.out.Flush(); err != nil {
		w.err = fmt.Errorf("%w: %s", vm.ErrResource, err)
	}
	return w.err
}

func (w *Writer) writeBlock(comment string, lines []string) {
	if w.err != nil {
		return
	}
	if !w.headerWritten {
		w.headerWritten = true
		if w.header != "" {
			for _, h := range strings.Split(w.header, "\n") {
				w.writeLine("// " + h)
			}
		}
	}
	if w.comments {
		w.writeLine("// " + comment)
	}
	for _, line := range lines {
		w.writeLine(line)
	}
}

func (w *Writer) writeLine(line string) {
	if w.err != nil {
		return
	}
	if _, err := w.out.WriteString(line + "\n"); err != nil {
		w.err = fmt.Errorf("%w: %s", vm.ErrResource, err)
	}
}

// Generate the instructions for one command. All the generators are
// functions of the command and the session; they do no output.
func generate(s *Session, cmd vm.Command) ([]string, error) {
	switch cmd.Kind {
	case vm.KindArithmetic:
		return genArithmetic(s, cmd)
	case vm.KindPush:
		return genPush(s, cmd)
	case vm.KindPop:
		return genPop(s, cmd)
	case vm.KindLabel:
		return genLabel(cmd), nil
	case vm.KindGoto:
		return genGoto(cmd), nil
	case vm.KindIfGoto:
		return genIfGoto(cmd), nil
	case vm.KindFunction:
		return genFunction(cmd), nil
	case vm.KindCall:
		return genCall(s, cmd), nil
	case vm.KindReturn:
		return genReturn(), nil
	}
	return nil, unrecognised(cmd, "no generator for "+cmd.Kind.String())
}

func unrecognised(cmd vm.Command, why string) error {
	return fmt.Errorf("%w: %q: %s", vm.ErrUnrecognisedCommand, cmd.String(), why)
}
