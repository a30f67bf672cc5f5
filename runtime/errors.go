package runtime

import "fmt"

// RuntimeError is the evaluation-time error kind: unknown variable, wrong
// argument count/type, detached-buffer access, non-callable invocation,
// rejected awaited promise. It propagates to the statement executor or task
// invoker and is never recovered inside the evaluator.
type RuntimeError struct {
	Msg string
}

func (e *RuntimeError) Error() string { return "ScriptRuntime: " + e.Msg }

// Errf builds a RuntimeError.
func Errf(format string, args ...interface{}) error {
	return &RuntimeError{Msg: fmt.Sprintf(format, args...)}
}
