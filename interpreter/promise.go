package interpreter

import (
	"github.com/example/minjs/runtime"
)

// settle applies a resolution or rejection and queues the reactions that
// became runnable as microtasks. Settling twice is a no-op inside
// PromiseData, so re-entrant executors cannot flip a settled state.
func (ip *Interp) settle(p *runtime.Value, result *runtime.Value, reject bool) {
	pd := p.Obj.Promise
	// Resolving with a promise adopts its settlement.
	if !reject && result.Kind == runtime.KindObject && result.Obj.Kind == runtime.ObjPromise {
		inner := result.Obj.Promise
		switch inner.State {
		case runtime.Fulfilled:
			result = inner.Result
		case runtime.Rejected:
			result = inner.Result
			reject = true
		default:
			// Still pending: re-check when the inner promise settles. The
			// adoption forwards any rejection, so the inner promise counts
			// as handled.
			inner.Handled = true
			inner.Reactions = append(inner.Reactions, runtime.Reaction{
				OnFulfilled: ip.adoptHook(p, false),
				OnRejected:  ip.adoptHook(p, true),
			})
			return
		}
	}
	var ready []runtime.Reaction
	if reject {
		wasPending := pd.State == runtime.Pending
		ready = pd.Reject(result)
		if wasPending {
			ip.watchRejection(pd)
		}
	} else {
		ready = pd.Resolve(result)
	}
	for _, r := range ready {
		ip.queueReaction(pd, r)
	}
}

// watchRejection queues a microtask that reports the rejection if no handler
// has been attached by the time the queue reaches it. Handlers attached
// later in the same synchronous run land before the microtask drain, so
// they suppress the report.
func (ip *Interp) watchRejection(pd *runtime.PromiseData) {
	task := nativeFunc("", func([]*runtime.Value) (*runtime.Value, error) {
		if !pd.Handled {
			ip.Console.ConsoleLine("error", "Uncaught (in promise) "+runtime.ToString(pd.Result))
		}
		return runtime.Undefined, nil
	})
	ip.Sched.QueueMicrotask(task, nil, nil)
}

func (ip *Interp) adoptHook(outer *runtime.Value, reject bool) *runtime.Value {
	return nativeFunc("", func(args []*runtime.Value) (*runtime.Value, error) {
		v := runtime.Undefined
		if len(args) > 0 {
			v = args[0]
		}
		ip.settle(outer, v, reject)
		return runtime.Undefined, nil
	})
}

// queueReaction schedules one settled reaction as a microtask.
func (ip *Interp) queueReaction(pd *runtime.PromiseData, r runtime.Reaction) {
	state := pd.State
	result := pd.Result
	task := nativeFunc("", func([]*runtime.Value) (*runtime.Value, error) {
		ip.runReaction(state, result, r)
		return runtime.Undefined, nil
	})
	ip.Sched.QueueMicrotask(task, nil, nil)
}

// runReaction invokes the registered handler and settles the chained
// promise with its outcome. A missing handler passes the settlement through.
func (ip *Interp) runReaction(state runtime.PromiseState, result *runtime.Value, r runtime.Reaction) {
	handler := r.OnFulfilled
	if state == runtime.Rejected {
		handler = r.OnRejected
	}
	if handler == nil {
		if r.Next != nil {
			ip.settle(r.Next, result, state == runtime.Rejected)
		}
		return
	}
	out, err := ip.Call(handler, []*runtime.Value{result})
	if r.Next == nil {
		if err != nil {
			ip.Console.ConsoleLine("error", "Uncaught (in promise) "+err.Error())
		}
		return
	}
	if err != nil {
		ip.settle(r.Next, runtime.NewString(err.Error()), true)
		return
	}
	ip.settle(r.Next, out, false)
}

// addReaction registers a then/catch/finally reaction, queueing immediately
// when the promise has already settled.
func (ip *Interp) addReaction(p *runtime.Value, r runtime.Reaction) {
	pd := p.Obj.Promise
	if ready, now := pd.AddReaction(r); now {
		ip.queueReaction(pd, ready)
	}
}

// promiseMethod dispatches then, catch and finally.
func (ip *Interp) promiseMethod(recv *runtime.Value, method string, args []*runtime.Value) (*runtime.Value, error) {
	arg := func(i int) *runtime.Value {
		if i < len(args) && args[i].Kind == runtime.KindObject && args[i].Obj.Kind == runtime.ObjFunction {
			return args[i]
		}
		return nil
	}
	switch method {
	case "then":
		next := runtime.NewPromise()
		ip.addReaction(recv, runtime.Reaction{
			OnFulfilled: arg(0),
			OnRejected:  arg(1),
			Next:        next,
		})
		return next, nil
	case "catch":
		next := runtime.NewPromise()
		ip.addReaction(recv, runtime.Reaction{
			OnRejected: arg(0),
			Next:       next,
		})
		return next, nil
	case "finally":
		next := runtime.NewPromise()
		fin := arg(0)
		wrap := func(reject bool) *runtime.Value {
			return nativeFunc("", func(callArgs []*runtime.Value) (*runtime.Value, error) {
				if fin != nil {
					if _, err := ip.Call(fin, nil); err != nil {
						return nil, err
					}
				}
				v := runtime.Undefined
				if len(callArgs) > 0 {
					v = callArgs[0]
				}
				ip.settle(next, v, reject)
				return runtime.Undefined, nil
			})
		}
		ip.addReaction(recv, runtime.Reaction{
			OnFulfilled: wrap(false),
			OnRejected:  wrap(true),
		})
		return next, nil
	}
	return nil, runtime.Errf("%q is not a function on Promise", method)
}

// runExecutor builds a promise from new Promise(executor): the executor runs
// synchronously with resolve and reject hooks.
func (ip *Interp) runExecutor(executor *runtime.Value) (*runtime.Value, error) {
	p := runtime.NewPromise()
	resolve := nativeFunc("resolve", func(args []*runtime.Value) (*runtime.Value, error) {
		v := runtime.Undefined
		if len(args) > 0 {
			v = args[0]
		}
		ip.settle(p, v, false)
		return runtime.Undefined, nil
	})
	reject := nativeFunc("reject", func(args []*runtime.Value) (*runtime.Value, error) {
		v := runtime.Undefined
		if len(args) > 0 {
			v = args[0]
		}
		ip.settle(p, v, true)
		return runtime.Undefined, nil
	})
	if _, err := ip.Call(executor, []*runtime.Value{resolve, reject}); err != nil {
		ip.settle(p, runtime.NewString(err.Error()), true)
	}
	return p, nil
}

// evalAwait peeks the current settlement rather than suspending: a pending
// promise yields undefined, a rejection raises, and non-promise values pass
// through unchanged.
func (ip *Interp) evalAwait(v *runtime.Value) (*runtime.Value, error) {
	if v.Kind != runtime.KindObject || v.Obj.Kind != runtime.ObjPromise {
		return v, nil
	}
	pd := v.Obj.Promise
	switch pd.State {
	case runtime.Fulfilled:
		return pd.Result, nil
	case runtime.Rejected:
		return nil, runtime.Errf("Uncaught (in promise) %s", runtime.ToString(pd.Result))
	}
	return runtime.Undefined, nil
}

// promiseAll returns a promise that fulfills with the ordered results once
// every input has fulfilled. Settled inputs are folded in immediately;
// pending inputs get reactions that fill their slot when they settle. The
// first rejection wins.
func (ip *Interp) promiseAll(list *runtime.Value) (*runtime.Value, error) {
	elems, err := promiseInputs(list)
	if err != nil {
		return nil, err
	}
	out := runtime.NewPromise()
	results := make([]*runtime.Value, len(elems))
	waiting := 0
	for i, el := range elems {
		if el.Kind != runtime.KindObject || el.Obj.Kind != runtime.ObjPromise {
			results[i] = el
			continue
		}
		pd := el.Obj.Promise
		switch pd.State {
		case runtime.Fulfilled:
			results[i] = pd.Result
		case runtime.Rejected:
			ip.settle(out, pd.Result, true)
			return out, nil
		default:
			waiting++
			slot := i
			ip.addReaction(el, runtime.Reaction{
				OnFulfilled: nativeFunc("", func(args []*runtime.Value) (*runtime.Value, error) {
					v := runtime.Undefined
					if len(args) > 0 {
						v = args[0]
					}
					results[slot] = v
					waiting--
					if waiting == 0 {
						ip.settle(out, runtime.NewArrayValue(results), false)
					}
					return runtime.Undefined, nil
				}),
				OnRejected: nativeFunc("", func(args []*runtime.Value) (*runtime.Value, error) {
					v := runtime.Undefined
					if len(args) > 0 {
						v = args[0]
					}
					ip.settle(out, v, true)
					return runtime.Undefined, nil
				}),
			})
		}
	}
	if waiting == 0 {
		ip.settle(out, runtime.NewArrayValue(results), false)
	}
	return out, nil
}

// promiseRace settles with the first input to settle: an already-settled
// input wins at call time, otherwise every pending input races through a
// reaction and settle-once picks the winner.
func (ip *Interp) promiseRace(list *runtime.Value) (*runtime.Value, error) {
	elems, err := promiseInputs(list)
	if err != nil {
		return nil, err
	}
	out := runtime.NewPromise()
	for _, el := range elems {
		if el.Kind != runtime.KindObject || el.Obj.Kind != runtime.ObjPromise {
			ip.settle(out, el, false)
			return out, nil
		}
		pd := el.Obj.Promise
		switch pd.State {
		case runtime.Fulfilled:
			ip.settle(out, pd.Result, false)
			return out, nil
		case runtime.Rejected:
			ip.settle(out, pd.Result, true)
			return out, nil
		}
		ip.addReaction(el, runtime.Reaction{
			OnFulfilled: nativeFunc("", func(args []*runtime.Value) (*runtime.Value, error) {
				v := runtime.Undefined
				if len(args) > 0 {
					v = args[0]
				}
				ip.settle(out, v, false)
				return runtime.Undefined, nil
			}),
			OnRejected: nativeFunc("", func(args []*runtime.Value) (*runtime.Value, error) {
				v := runtime.Undefined
				if len(args) > 0 {
					v = args[0]
				}
				ip.settle(out, v, true)
				return runtime.Undefined, nil
			}),
		})
	}
	return out, nil
}

func promiseInputs(list *runtime.Value) ([]*runtime.Value, error) {
	if list.Kind != runtime.KindObject || list.Obj.Kind != runtime.ObjArray {
		return nil, runtime.Errf("Promise combinators expect an array")
	}
	return list.Obj.Elems, nil
}
