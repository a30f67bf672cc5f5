package runtime

// PromiseState tracks the settlement of a promise cell.
type PromiseState int

const (
	Pending PromiseState = iota
	Fulfilled
	Rejected
)

func (s PromiseState) String() string {
	switch s {
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	default:
		return "pending"
	}
}

// Reaction is a callback registered by then/catch/finally, delivered as a
// microtask once the promise settles.
type Reaction struct {
	OnFulfilled *Value // ObjFunction or nil
	OnRejected  *Value
	Next        *Value // the promise returned by the registering call
}

// PromiseData is the shared settlement record behind an ObjPromise cell.
// Settlement is idempotent: the first Resolve or Reject wins and later
// calls are ignored.
type PromiseData struct {
	State     PromiseState
	Result    *Value
	Reactions []Reaction

	// Handled is set once a rejection handler is attached, or once a chain
	// promise takes over the settlement. A rejection still unhandled when
	// the evaluator's report microtask runs is printed as an uncaught
	// rejection.
	Handled bool
}

// Resolve fulfills the promise with v. No-op if already settled.
// It returns the reactions that became runnable; the caller queues them.
func (p *PromiseData) Resolve(v *Value) []Reaction {
	if p.State != Pending {
		return nil
	}
	p.State = Fulfilled
	p.Result = v
	return p.takeReactions()
}

// Reject rejects the promise with reason. No-op if already settled.
func (p *PromiseData) Reject(reason *Value) []Reaction {
	if p.State != Pending {
		return nil
	}
	p.State = Rejected
	p.Result = reason
	return p.takeReactions()
}

func (p *PromiseData) takeReactions() []Reaction {
	rs := p.Reactions
	p.Reactions = nil
	return rs
}

// AddReaction registers a reaction. If the promise is already settled the
// reaction is returned so the caller can queue it immediately; otherwise it
// is held until settlement.
func (p *PromiseData) AddReaction(r Reaction) (Reaction, bool) {
	// A chained promise forwards the rejection, so Next counts as handling.
	if r.OnRejected != nil || r.Next != nil {
		p.Handled = true
	}
	if p.State == Pending {
		p.Reactions = append(p.Reactions, r)
		return Reaction{}, false
	}
	return r, true
}

// NewPromise builds a pending promise value.
func NewPromise() *Value {
	o := NewCell(ObjPromise)
	o.Obj.Promise = &PromiseData{}
	return o
}

// ResolvedPromise builds a promise already fulfilled with v. If v is itself
// a promise it is returned unchanged, matching Promise.resolve.
func ResolvedPromise(v *Value) *Value {
	if v.Kind == KindObject && v.Obj.Kind == ObjPromise {
		return v
	}
	p := NewPromise()
	p.Obj.Promise.State = Fulfilled
	p.Obj.Promise.Result = v
	return p
}

// RejectedPromise builds a promise already rejected with reason.
func RejectedPromise(reason *Value) *Value {
	p := NewPromise()
	p.Obj.Promise.State = Rejected
	p.Obj.Promise.Result = reason
	return p
}
