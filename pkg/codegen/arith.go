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

package codegen

import (
	"fmt"

	"github.com/gmofishsauce/hackvm/pkg/vm"
)

// Arithmetic and logical operators. Booleans are -1 (all bits set)
// for true and 0 for false.

func genArithmetic(s *Session, cmd vm.Command) ([]string, error) {
	switch cmd.Op {
	case vm.OpAdd:
		return genBinary("M=D+M"), nil
	case vm.OpSub:
		// x - y, where y is the top of the stack
		return genBinary("M=M-D"), nil
	case vm.OpAnd:
		return genBinary("M=D&M"), nil
	case vm.OpOr:
		return genBinary("M=D|M"), nil
	case vm.OpNeg:
		return genUnary("M=-M"), nil
	case vm.OpNot:
		return genUnary("M=!M"), nil
	case vm.OpEq:
		return genCompare(s, cmd.Op, "JEQ"), nil
	case vm.OpGt:
		return genCompare(s, cmd.Op, "JGT"), nil
	case vm.OpLt:
		return genCompare(s, cmd.Op, "JLT"), nil
	}
	return nil, unrecognised(cmd, "no generator for operator")
}

// Pop y into D, leave A pointing at x, and combine into x's cell.
func genBinary(combine string) []string {
	return []string{
		"@SP",
		"AM=M-1",
		"D=M",
		"A=A-1",
		combine,
	}
}

// Rewrite the top of the stack in place.
func genUnary(op string) []string {
	return []string{
		"@SP",
		"A=M-1",
		op,
	}
}

// Compute x - y in D and branch on it. The true path and the false
// path each overwrite x's cell, which is the new top of the stack.
// Labels are global to the program, so every comparison takes fresh
// ones from the session.
func genCompare(s *Session, op vm.Op, jump string) []string {
	n := s.nextCompare(op)
	isTrue := fmt.Sprintf("%s%d", op, n)
	end := fmt.Sprintf("%sEND%d", op, n)
	return []string{
		"@SP",
		"AM=M-1",
		"D=M",
		"A=A-1",
		"D=M-D",
		"@" + isTrue,
		"D;" + jump,
		"@SP",
		"A=M-1",
		"M=0",
		"@" + end,
		"0;JMP",
		"(" + isTrue + ")",
		"@SP",
		"A=M-1",
		"M=-1",
		"(" + end + ")",
	}
}
