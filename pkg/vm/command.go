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

// Package vm defines the commands of the stack machine language and
// the parser that turns source lines into a stream of commands.
package vm

import (
	"fmt"
	"strconv"
)

// Kind is the class of a command, determined by its mnemonic.
type Kind int

const (
	KindArithmetic Kind = iota
	KindPush
	KindPop
	KindLabel
	KindGoto
	KindIfGoto
	KindFunction
	KindCall
	KindReturn
)

var kindToString = []string{
	"arithmetic",
	"push",
	"pop",
	"label",
	"goto",
	"if-goto",
	"function",
	"call",
	"return",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindToString) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindToString[k]
}

// Op is an arithmetic or logical operator. The mnemonic of an
// arithmetic command is its operator.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpNeg
	OpEq
	OpGt
	OpLt
	OpAnd
	OpOr
	OpNot
)

var opToString = []string{
	"add",
	"sub",
	"neg",
	"eq",
	"gt",
	"lt",
	"and",
	"or",
	"not",
}

func (op Op) String() string {
	if op < 0 || int(op) >= len(opToString) {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return opToString[op]
}

// IsComparison reports whether op pushes a boolean.
func (op Op) IsComparison() bool {
	return op == OpEq || op == OpGt || op == OpLt
}

// Segment is a virtual memory segment addressed by push and pop.
type Segment int

const (
	SegConstant Segment = iota
	SegLocal
	SegArgument
	SegThis
	SegThat
	SegTemp
	SegStatic
	SegPointer
)

var segmentToString = []string{
	"constant",
	"local",
	"argument",
	"this",
	"that",
	"temp",
	"static",
	"pointer",
}

func (s Segment) String() string {
	if s < 0 || int(s) >= len(segmentToString) {
		return fmt.Sprintf("Segment(%d)", int(s))
	}
	return segmentToString[s]
}

// Command is one parsed line of VM code. Commands are values; the
// constructors below are the only intended way to build one.
//
// Which fields are meaningful depends on Kind:
//
//	Arithmetic          Op
//	Push, Pop           Segment, Index
//	Label, Goto, IfGoto Name
//	Function            Name, Index (number of locals)
//	Call                Name, Index (number of arguments)
//	Return              nothing
type Command struct {
	Kind    Kind
	Op      Op
	Segment Segment
	Name    string
	Index   int
}

func Arithmetic(op Op) Command {
	return Command{Kind: KindArithmetic, Op: op}
}

func Push(seg Segment, index int) Command {
	return Command{Kind: KindPush, Segment: seg, Index: index}
}

func Pop(seg Segment, index int) Command {
	return Command{Kind: KindPop, Segment: seg, Index: index}
}

func Label(name string) Command {
	return Command{Kind: KindLabel, Name: name}
}

func Goto(name string) Command {
	return Command{Kind: KindGoto, Name: name}
}

func IfGoto(name string) Command {
	return Command{Kind: KindIfGoto, Name: name}
}

func Function(name string, nLocals int) Command {
	return Command{Kind: KindFunction, Name: name, Index: nLocals}
}

func Call(name string, nArgs int) Command {
	return Command{Kind: KindCall, Name: name, Index: nArgs}
}

func Return() Command {
	return Command{Kind: KindReturn}
}

// Arg1 returns the primary argument as text: the operator for
// arithmetic commands, the segment for push and pop, the symbol
// for everything else. Return has none.
func (c Command) Arg1() string {
	switch c.Kind {
	case KindArithmetic:
		return c.Op.String()
	case KindPush, KindPop:
		return c.Segment.String()
	case KindLabel, KindGoto, KindIfGoto, KindFunction, KindCall:
		return c.Name
	}
	return ""
}

// Arg2 returns the numeric argument and whether the command has one.
func (c Command) Arg2() (int, bool) {
	switch c.Kind {
	case KindPush, KindPop, KindFunction, KindCall:
		return c.Index, true
	}
	return 0, false
}

// String renders the command as a normalized line of VM code.
func (c Command) String() string {
	switch c.Kind {
	case KindArithmetic:
		return c.Op.String()
	case KindReturn:
		return c.Kind.String()
	}
	s := c.Kind.String() + " " + c.Arg1()
	if n, ok := c.Arg2(); ok {
		s += " " + strconv.Itoa(n)
	}
	return s
}
