package runtime

import "testing"

func TestPromiseSettleOnce(t *testing.T) {
	p := NewPromise()
	d := p.Obj.Promise
	d.Resolve(NewNumber(1))
	d.Resolve(NewNumber(2))
	d.Reject(NewString("boom"))
	if d.State != Fulfilled {
		t.Fatalf("expected fulfilled, got %s", d.State)
	}
	if d.Result.Num != 1 {
		t.Errorf("first settlement should win, got %s", ToString(d.Result))
	}
}

func TestResolveReturnsHeldReactions(t *testing.T) {
	p := NewPromise()
	d := p.Obj.Promise
	next := NewPromise()
	if _, immediate := d.AddReaction(Reaction{Next: next}); immediate {
		t.Fatal("a pending promise should hold the reaction")
	}
	taken := d.Resolve(NewNumber(1))
	if len(taken) != 1 || taken[0].Next != next {
		t.Fatalf("expected the held reaction back, got %v", taken)
	}
	if len(d.Reactions) != 0 {
		t.Error("reactions should be cleared after settlement")
	}
}

func TestAddReactionAfterSettlementIsImmediate(t *testing.T) {
	p := ResolvedPromise(NewNumber(1))
	r, immediate := p.Obj.Promise.AddReaction(Reaction{Next: NewPromise()})
	if !immediate {
		t.Fatal("a settled promise should return the reaction for immediate queuing")
	}
	if r.Next == nil {
		t.Error("the returned reaction should carry its Next promise")
	}
}

func TestRejectionHandlerMarksHandled(t *testing.T) {
	p := NewPromise()
	d := p.Obj.Promise
	d.AddReaction(Reaction{OnRejected: NewString("handler")})
	if !d.Handled {
		t.Error("attaching a rejection handler should mark the promise handled")
	}
}

func TestChainedPromiseMarksHandled(t *testing.T) {
	p := NewPromise()
	d := p.Obj.Promise
	d.AddReaction(Reaction{Next: NewPromise()})
	if !d.Handled {
		t.Error("a chained promise forwards the rejection, so it counts as handled")
	}
	q := NewPromise()
	q.Obj.Promise.AddReaction(Reaction{OnFulfilled: NewString("handler")})
	if q.Obj.Promise.Handled {
		t.Error("a fulfillment handler alone should not mark the promise handled")
	}
}

func TestResolvedPromisePassesPromisesThrough(t *testing.T) {
	inner := NewPromise()
	if got := ResolvedPromise(inner); got != inner {
		t.Error("Promise.resolve of a promise should return it unchanged")
	}
}

func TestRejectedPromise(t *testing.T) {
	p := RejectedPromise(NewString("reason"))
	d := p.Obj.Promise
	if d.State != Rejected || ToString(d.Result) != "reason" {
		t.Errorf("got %s / %s", d.State, ToString(d.Result))
	}
}
