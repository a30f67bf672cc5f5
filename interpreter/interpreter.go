package interpreter

import (
	"github.com/example/minjs/builtins"
	"github.com/example/minjs/parser"
	"github.com/example/minjs/runtime"
)

// Interp owns everything a running script touches: the global environment,
// the virtual-clock scheduler, the document tree, storage and the console
// sink. One Interp is one isolated execution world.
type Interp struct {
	Env     *runtime.Environment
	Sched   *runtime.Scheduler
	Doc     *builtins.Document
	Console builtins.ConsoleSink

	storagePath string
	storage     *builtins.Storage

	// MaxTicks bounds the drive loop so a runaway setInterval cannot spin
	// forever. Zero means the default.
	MaxTicks int
}

// Option configures an Interp.
type Option func(*Interp)

// WithConsole sets the console sink.
func WithConsole(sink builtins.ConsoleSink) Option {
	return func(ip *Interp) { ip.Console = sink }
}

// WithStoragePath points localStorage at a SQLite file instead of the
// in-memory default.
func WithStoragePath(path string) Option {
	return func(ip *Interp) { ip.storagePath = path }
}

// WithMaxTicks bounds the number of timer firings per drive.
func WithMaxTicks(n int) Option {
	return func(ip *Interp) { ip.MaxTicks = n }
}

// New builds a ready-to-run Interp.
func New(opts ...Option) *Interp {
	ip := &Interp{
		Env:         runtime.NewEnvironment(),
		Sched:       runtime.NewScheduler(),
		Doc:         builtins.NewDocument(),
		Console:     builtins.WriterSink(func(string, string) {}),
		storagePath: ":memory:",
	}
	for _, opt := range opts {
		opt(ip)
	}
	ip.Sched.Invoke = func(t *runtime.Task) error {
		_, err := ip.CallWithEnv(t.Callback, t.Args, t.Env)
		return err
	}
	return ip
}

// Close releases the storage handle if one was opened.
func (ip *Interp) Close() error {
	if ip.storage != nil {
		return ip.storage.Close()
	}
	return nil
}

func (ip *Interp) openStorage() (*builtins.Storage, error) {
	if ip.storage == nil {
		s, err := builtins.OpenStorage(ip.storagePath)
		if err != nil {
			return nil, err
		}
		ip.storage = s
	}
	return ip.storage, nil
}

// RunScript parses and executes top-level source, then drives the scheduler
// until the timer and microtask queues drain.
func (ip *Interp) RunScript(src string) error {
	stmts, err := parser.ParseScript(src)
	if err != nil {
		return err
	}
	if _, _, err := ip.execStmts(stmts, ip.Env); err != nil {
		return err
	}
	return ip.Drive()
}

// EvalString parses and evaluates a single expression against the global
// environment. The REPL uses it.
func (ip *Interp) EvalString(src string) (*runtime.Value, error) {
	expr, err := parser.ParseExpr(src)
	if err != nil {
		return nil, err
	}
	return ip.Eval(expr, ip.Env)
}

// Drive runs the scheduler until quiescence.
func (ip *Interp) Drive() error {
	return ip.Sched.Run(ip.MaxTicks)
}

// DispatchEvent fires the listeners registered for an event on a node, then
// drains microtasks. Timer work stays queued until the next Drive.
func (ip *Interp) DispatchEvent(nodeID, eventType string) error {
	target, err := ip.Doc.Method("getElementById", []*runtime.Value{runtime.NewString(nodeID)})
	if err != nil {
		return err
	}
	event := builtins.NewEventValue(eventType, target)
	for _, h := range ip.Doc.HandlersFor(nodeID, eventType) {
		if _, err := ip.Call(h, []*runtime.Value{event}); err != nil {
			return err
		}
	}
	return ip.Sched.DrainMicrotasks()
}

// consoleLine routes one rendered console line to the sink.
func (ip *Interp) consoleLine(level string, args []*runtime.Value) {
	ip.Console.ConsoleLine(level, builtins.FormatConsoleArgs(args))
}
