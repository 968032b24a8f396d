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

// Push and pop. Each segment has its own addressing rule.

// Registers holding the base address of the indirect segments.
func baseRegister(seg vm.Segment) (string, bool) {
	switch seg {
	case vm.SegLocal:
		return "LCL", true
	case vm.SegArgument:
		return "ARG", true
	case vm.SegThis:
		return "THIS", true
	case vm.SegThat:
		return "THAT", true
	}
	return "", false
}

// Push D onto the stack.
var pushD = []string{
	"@SP",
	"A=M",
	"M=D",
	"@SP",
	"M=M+1",
}

// Pop the stack into D.
var popD = []string{
	"@SP",
	"AM=M-1",
	"D=M",
}

func genPush(s *Session, cmd vm.Command) ([]string, error) {
	var load []string
	switch cmd.Segment {
	case vm.SegConstant:
		if cmd.Index > maxConstant {
			return nil, unrecognised(cmd, fmt.Sprintf("constant out of range 0..%d", maxConstant))
		}
		load = []string{fmt.Sprintf("@%d", cmd.Index), "D=A"}
	case vm.SegLocal, vm.SegArgument, vm.SegThis, vm.SegThat:
		base, _ := baseRegister(cmd.Segment)
		load = []string{
			fmt.Sprintf("@%d", cmd.Index),
			"D=A",
			"@" + base,
			"A=D+M",
			"D=M",
		}
	case vm.SegTemp, vm.SegPointer, vm.SegStatic:
		symbol, err := directAddress(s, cmd)
		if err != nil {
			return nil, err
		}
		load = []string{"@" + symbol, "D=M"}
	default:
		return nil, unrecognised(cmd, "no generator for segment")
	}
	return append(load, pushD...), nil
}

func genPop(s *Session, cmd vm.Command) ([]string, error) {
	switch cmd.Segment {
	case vm.SegConstant:
		return nil, unrecognised(cmd, "cannot pop to constant")
	case vm.SegLocal, vm.SegArgument, vm.SegThis, vm.SegThat:
		// The target address goes to R13 before the pop, because both
		// the address arithmetic and the pop need D.
		base, _ := baseRegister(cmd.Segment)
		lines := []string{
			fmt.Sprintf("@%d", cmd.Index),
			"D=A",
			"@" + base,
			"D=D+M",
			"@R13",
			"M=D",
		}
		lines = append(lines, popD...)
		return append(lines, "@R13", "A=M", "M=D"), nil
	case vm.SegTemp, vm.SegPointer, vm.SegStatic:
		symbol, err := directAddress(s, cmd)
		if err != nil {
			return nil, err
		}
		lines := append([]string{}, popD...)
		return append(lines, "@"+symbol, "M=D"), nil
	}
	return nil, unrecognised(cmd, "no generator for segment")
}

// The symbol or address of a cell in a directly addressed segment.
func directAddress(s *Session, cmd vm.Command) (string, error) {
	switch cmd.Segment {
	case vm.SegTemp:
		if cmd.Index >= tempSize {
			return "", unrecognised(cmd, fmt.Sprintf("temp index out of range 0..%d", tempSize-1))
		}
		return fmt.Sprint(tempBase + cmd.Index), nil
	case vm.SegPointer:
		switch cmd.Index {
		case 0:
			return "THIS", nil
		case 1:
			return "THAT", nil
		}
		return "", unrecognised(cmd, "pointer index must be 0 or 1")
	case vm.SegStatic:
		return staticSymbol(s.module, cmd.Index), nil
	}
	return "", unrecognised(cmd, "segment is not directly addressed")
}

// Static variables are qualified by module, so that static 0 in two
// modules names two cells.
func staticSymbol(module string, index int) string {
	return fmt.Sprintf("%s.%d", module, index)
}
