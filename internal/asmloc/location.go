// Package asmloc implements the storage-location algebra from spec.md
// §3 "Storage location": Memory, Register and Pointer locations, and the
// move operations defined between every pair of them.
//
// It is grounded directly on original_source/compiler.py's
// AssemblyLocation / MemoryLocation / RegisterLocation / PointerLocation
// class hierarchy: a memory-to-memory move must route through a scratch
// register bracketed by push/pop, a memory-to-register move widens or
// narrows the destination register by the source's size, and a pointer
// location reuses the memory location's move-to-memory logic.
package asmloc

import "fmt"

// Kind discriminates the three storage-location variants from spec.md §3.
type Kind int

const (
	// Mem is (base_register, signed_offset, size), e.g. `DWORD [rbp-12]`.
	Mem Kind = iota
	// Reg is a (narrow, full) register name pair, e.g. (eax, rax).
	Reg
	// Ptr is an indirection through a register plus offset, used for
	// attribute access (e.g. `QWORD [r13+16]`).
	Ptr
)

// Location is a single storage cell: a stack slot, a register, or an
// object-field indirection. It is a value-ish struct handled by pointer
// everywhere so annotated AST nodes can share one without copying.
type Location struct {
	Kind Kind

	// Mem / Ptr fields.
	Base   string // base register, e.g. "rbp" or "r13"
	Offset int    // signed byte offset
	Size   int    // 4 (DWORD) or 8 (QWORD)

	// Reg fields. Narrow is "" for registers with no 32-bit alias in use
	// here (r12/r13/r14), in which case Size is always 8.
	Narrow string
	Full   string
}

// NewMemory builds a Memory location relative to base, e.g. the frame
// pointer for locals/parameters.
func NewMemory(base string, offset, size int) *Location {
	return &Location{Kind: Mem, Base: base, Offset: offset, Size: size}
}

// NewPointer builds a Pointer location — same shape as Memory, used when
// the base register holds an object reference rather than the frame
// pointer (attribute access).
func NewPointer(base string, offset, size int) *Location {
	return &Location{Kind: Ptr, Base: base, Offset: offset, Size: size}
}

// NewRegister builds a general-purpose Register location with both a
// 32-bit and 64-bit name, e.g. NewRegister("eax", "rax").
func NewRegister(narrow, full string) *Location {
	return &Location{Kind: Reg, Narrow: narrow, Full: full, Size: 4}
}

// NewWideRegister builds a Register location with only a 64-bit name
// (r12/r13/r14 in this calling convention are never addressed as 32-bit).
func NewWideRegister(full string) *Location {
	return &Location{Kind: Reg, Full: full, Size: 8}
}

func sizeWord(size int) string {
	if size == 8 {
		return "QWORD"
	}
	return "DWORD"
}

func signed(offset int) (sign string, abs int) {
	if offset < 0 {
		return "-", -offset
	}
	return "+", offset
}

func (l *Location) addr() string {
	sign, abs := signed(l.Offset)
	return fmt.Sprintf("[%s%s%d]", l.Base, sign, abs)
}

// Text renders the location as a NASM operand: "DWORD [rbp-12]" for a
// 4-byte memory slot, "QWORD [r13+8]" for an 8-byte attribute slot, or
// the register name sized to fit (eax vs rax) for a register location.
func (l *Location) Text() string {
	switch l.Kind {
	case Mem, Ptr:
		return sizeWord(l.Size) + " " + l.addr()
	case Reg:
		if l.Size == 8 || l.Narrow == "" {
			return l.Full
		}
		return l.Narrow
	default:
		return "<invalid-location>"
	}
}

// FullName returns the 64-bit register alias for a Register location, or
// the bare base register for Memory/Pointer (used when computing an
// address with `lea`, which always targets a full-width register).
func (l *Location) FullName() string {
	if l.Kind == Reg {
		return l.Full
	}
	return l.Base
}

// IsAddressable reports whether GetReference (lea) is meaningful for this
// location — true for Memory and Pointer, false for a bare Register.
func (l *Location) IsAddressable() bool {
	return l.Kind == Mem || l.Kind == Ptr
}

// GetReference emits `lea dst, [base+off]`, loading this location's
// address into dst (which must be a Register location).
func (l *Location) GetReference(dst *Location) []string {
	sign, abs := signed(l.Offset)
	return []string{fmt.Sprintf("lea %s, [%s%s%d]", dst.FullName(), l.Base, sign, abs)}
}

// MovToRegister emits code moving this location's value into dst, a
// Register location. Memory/Pointer sources widen or narrow dst to match
// this location's Size, per spec.md §3's move matrix.
func (l *Location) MovToRegister(dst *Location) []string {
	switch l.Kind {
	case Mem, Ptr:
		reg := dst.Narrow
		if l.Size == 8 || dst.Narrow == "" {
			reg = dst.Full
		}
		return []string{fmt.Sprintf("mov %s, %s", reg, l.Text())}
	case Reg:
		return []string{fmt.Sprintf("mov %s, %s", dst.Text(), l.Text())}
	default:
		return nil
	}
}

// MovToMemory emits code moving this location's value into dst, a
// Memory or Pointer location. Memory-to-memory moves route through the
// rax/eax scratch register, saved and restored with push/pop so the
// caller's use of rax survives (spec.md §3).
func (l *Location) MovToMemory(dst *Location) []string {
	switch l.Kind {
	case Mem, Ptr:
		tmp := "eax"
		if l.Size == 8 {
			tmp = "rax"
		}
		return []string{
			"push rax",
			fmt.Sprintf("mov %s, %s", tmp, l.Text()),
			fmt.Sprintf("mov %s, %s", dst.Text(), tmp),
			"pop rax",
		}
	case Reg:
		reg := l.Narrow
		if dst.Size == 8 || l.Narrow == "" {
			reg = l.Full
		}
		return []string{fmt.Sprintf("mov %s, %s", dst.Text(), reg)}
	default:
		return nil
	}
}
