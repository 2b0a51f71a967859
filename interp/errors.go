package interp

import "fmt"

// Code is the completion code ABI propagated by every command (spec §6).
type Code int

const (
	CodeOK Code = iota
	CodeError
	CodeReturn
	CodeBreak
	CodeContinue
	// CodeYield is engine-internal: it unwinds the step loop the same way
	// CodeError does, but carries a coroutine suspension instead of a
	// failure. Coroutine.run absorbs it when a coroutine body suspends.
	CodeYield
)

func (c Code) String() string {
	switch c {
	case CodeOK:
		return "OK"
	case CodeError:
		return "ERROR"
	case CodeReturn:
		return "RETURN"
	case CodeBreak:
		return "BREAK"
	case CodeContinue:
		return "CONTINUE"
	case CodeYield:
		return "YIELD"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}

// ErrorKind is the error taxonomy of spec §7.
type ErrorKind int

const (
	ErrWrongArgs ErrorKind = iota
	ErrBadOption
	ErrType
	ErrIndexRange
	ErrNameNotFound
	ErrNameCollision
	ErrSyntax
	ErrHostFailure
	ErrUser
)

func (k ErrorKind) String() string {
	switch k {
	case ErrWrongArgs:
		return "wrong-args"
	case ErrBadOption:
		return "bad-option"
	case ErrType:
		return "type-error"
	case ErrIndexRange:
		return "index-out-of-range"
	case ErrNameNotFound:
		return "name-not-found"
	case ErrNameCollision:
		return "name-collision"
	case ErrSyntax:
		return "syntax-error"
	case ErrHostFailure:
		return "host-failure"
	case ErrUser:
		return "user-error"
	default:
		return "unknown-error"
	}
}

// EngineError is the concrete error type surfaced at the Eval boundary and
// carried by CodeError as it unwinds the evaluator stack.
type EngineError struct {
	Kind      ErrorKind
	Message   string
	ErrorCode *Value // machine-readable error code, list by convention
	ErrorInfo string // accumulated "while executing ..." stack trace
	Line      int    // source line where the error originated
}

func (e *EngineError) Error() string {
	if e == nil {
		return "<nil error>"
	}
	return e.Message
}

// Is lets errors.Is match against an ErrorKind sentinel produced by KindError.
func (e *EngineError) Is(target error) bool {
	other, ok := target.(*EngineError)
	if !ok {
		return false
	}
	if other.Message == "" {
		return e.Kind == other.Kind
	}
	return e.Kind == other.Kind && e.Message == other.Message
}

// KindError builds a sentinel usable with errors.Is(err, KindError(ErrType)).
func KindError(k ErrorKind) *EngineError { return &EngineError{Kind: k} }

func newError(kind ErrorKind, format string, args ...interface{}) *EngineError {
	return &EngineError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// wrongArgs builds the canonical "wrong # args" message for a command usage.
func wrongArgs(usage string) *EngineError {
	return newError(ErrWrongArgs, "wrong # args: should be \"%s\"", usage)
}

// Panic is a Go panic recovered while a builtin command runs
// (invokeBuiltin) or inside EvalWithContext's evaluation goroutine.
// Modeled on the teacher's own Panic type (interp/interp.go). A panic raised
// by Host.InvokeExtension or another host callback during a plain Eval is
// not recovered.
type Panic struct {
	Value interface{}
	Stack []byte
}

func (p *Panic) Error() string {
	return fmt.Sprintf("panic: %v", p.Value)
}
