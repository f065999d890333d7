package flow

import (
	"fmt"
	"runtime/debug"
)

// PanicError captures a panic raised inside a coroutine body, preserving
// the stack from the point of the panic. If the panic value was an error it
// remains reachable through Unwrap
type PanicError struct {
	value any
	stack []byte
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("%v", p.value)
}

// ErrorWithStack formats the panic value together with the captured stack
func (p *PanicError) ErrorWithStack() string {
	return fmt.Sprintf("%v\n\n%s", p.value, p.stack)
}

func (p *PanicError) Unwrap() error {
	err, ok := p.value.(error)
	if !ok {
		return nil
	}
	return err
}

func newPanicError(v any) error {
	return &PanicError{
		value: v,
		stack: debug.Stack(),
	}
}
