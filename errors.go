// SPDX-License-Identifier: MIT

package meshsubnet

import "fmt"

// ParseError reports why ParseSubnet rejected a textual subnet. Callers are
// expected to log it with the offending input; it is never treated as a
// fatal condition.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("meshsubnet: invalid subnet %q: %s", e.Input, e.Reason)
}

func parseErrorf(input, format string, args ...any) error {
	return &ParseError{Input: input, Reason: fmt.Sprintf(format, args...)}
}

// FatalInvariantError marks a Subnet of unknown type reaching the
// comparator or the formatter. The C original exits the process (with
// inconsistent status codes depending on call site, see SPEC_FULL.md); this
// implementation panics instead, which always yields a nonzero process exit
// and a stack trace when left unrecovered, and lets a host program that
// wants to fail closed in its own way recover and decide.
type FatalInvariantError struct {
	Op   string
	Type SubnetType
}

func (e *FatalInvariantError) Error() string {
	return fmt.Sprintf("meshsubnet: %s called with unknown subnet type %d", e.Op, e.Type)
}

func fatalInvariant(op string, t SubnetType) {
	panic(&FatalInvariantError{Op: op, Type: t})
}
