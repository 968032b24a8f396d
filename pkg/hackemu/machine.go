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

// Package hackemu is a Hack assembler and CPU emulator used to run
// the output of the translator in tests. It executes symbolic
// instructions directly; there is no binary encoding.
package hackemu

import (
	"fmt"
)

// RAMSize is the number of words of data memory (32k).
const RAMSize = 0x8000

type Mem [RAMSize]int16

// Machine is the CPU state plus data memory. The program is read only.
type Machine struct {
	RAM Mem
	A   int16
	D   int16
	PC  int

	prog  *Program
	steps int
}

// AddressError reports a memory reference outside RAM.
type AddressError struct {
	PC      int
	Address int16
}

func (ae *AddressError) Error() string {
	return fmt.Sprintf("pc %d: address %d out of range", ae.PC, ae.Address)
}

func NewMachine(prog *Program) *Machine {
	return &Machine{prog: prog}
}

// Steps returns the number of instructions executed so far.
func (m *Machine) Steps() int {
	return m.steps
}

// Halted reports whether the PC has left the program. Falling off the
// end of the program is how a test program stops.
func (m *Machine) Halted() bool {
	return m.PC < 0 || m.PC >= len(m.prog.code)
}

// Symbol returns the address of a label or variable.
func (m *Machine) Symbol(name string) (int, bool) {
	addr, ok := m.prog.symbols[name]
	return addr, ok
}

// Peek returns the value of the named variable or register symbol.
// It panics if the symbol is unknown; it is meant for tests.
func (m *Machine) Peek(name string) int16 {
	addr, ok := m.Symbol(name)
	if !ok {
		panic("hackemu: unknown symbol " + name)
	}
	return m.RAM[addr]
}

// Run executes until the program halts or maxSteps instructions have
// been executed. It reports whether the program halted.
func (m *Machine) Run(maxSteps int) (bool, error) {
	for i := 0; i < maxSteps; i++ {
		if m.Halted() {
			return true, nil
		}
		if err := m.Step(); err != nil {
			return false, err
		}
	}
	return m.Halted(), nil
}

// Step executes one instruction.
func (m *Machine) Step() error {
	if m.Halted() {
		return fmt.Errorf("pc %d: not in program", m.PC)
	}
	in := &m.prog.code[m.PC]
	m.steps++

	if in.isA {
		m.A = in.value
		m.PC++
		return nil
	}

	a := m.A
	var mem int16
	if in.readsM || in.dest&destM != 0 {
		if a < 0 {
			return &AddressError{m.PC, a}
		}
	}
	if in.readsM {
		mem = m.RAM[a]
	}
	result := in.comp(a, m.D, mem)

	if in.dest&destM != 0 {
		m.RAM[a] = result
	}
	if in.dest&destA != 0 {
		m.A = result
	}
	if in.dest&destD != 0 {
		m.D = result
	}

	if (in.jump&jumpLT != 0 && result < 0) ||
		(in.jump&jumpEQ != 0 && result == 0) ||
		(in.jump&jumpGT != 0 && result > 0) {
		// The jump target is A as it was before this instruction.
		m.PC = int(a)
		return nil
	}
	m.PC++
	return nil
}
