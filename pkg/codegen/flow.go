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

// Branching, function definition, call and return.
//
// A call leaves this frame on the stack, above the arguments:
//
//	ARG ->  argument 0
//	        ...
//	        argument nArgs-1
//	        return address
//	        saved LCL
//	        saved ARG
//	        saved THIS
//	        saved THAT
//	LCL ->  local 0
//	        ...
//
// Frame size not counting arguments and locals.
const frameSize = 5

func genLabel(cmd vm.Command) []string {
	return []string{"(" + cmd.Name + ")"}
}

func genGoto(cmd vm.Command) []string {
	return []string{"@" + cmd.Name, "0;JMP"}
}

// Any nonzero value is true, not only -1.
func genIfGoto(cmd vm.Command) []string {
	lines := append([]string{}, popD...)
	return append(lines, "@"+cmd.Name, "D;JNE")
}

func genFunction(cmd vm.Command) []string {
	lines := []string{"(" + cmd.Name + ")"}
	for i := 0; i < cmd.Index; i++ {
		lines = append(lines, "@SP", "A=M", "M=0", "@SP", "M=M+1")
	}
	return lines
}

func genCall(s *Session, cmd vm.Command) []string {
	ret := s.nextReturnLabel()

	lines := []string{"@" + ret, "D=A"}
	lines = append(lines, pushD...)
	for _, reg := range []string{"LCL", "ARG", "THIS", "THAT"} {
		lines = append(lines, "@"+reg, "D=M")
		lines = append(lines, pushD...)
	}
	return append(lines,
		// ARG = SP - 5 - nArgs
		"@SP",
		"D=M",
		fmt.Sprintf("@%d", frameSize+cmd.Index),
		"D=D-A",
		"@ARG",
		"M=D",
		// LCL = SP
		"@SP",
		"D=M",
		"@LCL",
		"M=D",
		"@"+cmd.Name,
		"0;JMP",
		"("+ret+")",
	)
}

// R13 holds the end of the frame (the callee's LCL) and R14 the
// return address. The return address is fetched before the return
// value is stored, since with no arguments ARG points at it.
func genReturn() []string {
	lines := []string{
		// R13 = LCL
		"@LCL",
		"D=M",
		"@R13",
		"M=D",
		// R14 = *(R13 - 5)
		fmt.Sprintf("@%d", frameSize),
		"A=D-A",
		"D=M",
		"@R14",
		"M=D",
	}
	// *ARG = pop()
	lines = append(lines, popD...)
	lines = append(lines,
		"@ARG",
		"A=M",
		"M=D",
		// SP = ARG + 1
		"@ARG",
		"D=M+1",
		"@SP",
		"M=D",
	)
	// THAT, THIS, ARG, LCL = *(R13 - 1), ... *(R13 - 4). Only R13 is
	// read, so restoring ARG and LCL cannot disturb what follows.
	for _, reg := range []string{"THAT", "THIS", "ARG", "LCL"} {
		lines = append(lines,
			"@R13",
			"AM=M-1",
			"D=M",
			"@"+reg,
			"M=D",
		)
	}
	return append(lines,
		"@R14",
		"A=M",
		"0;JMP",
	)
}
