package interpreter

import (
	"strings"
	"testing"

	"github.com/example/minjs/builtins"
	"github.com/example/minjs/runtime"
)

func run(t *testing.T, src string) []string {
	t.Helper()
	var lines []string
	ip := New(WithConsole(builtins.WriterSink(func(level, line string) {
		lines = append(lines, line)
	})))
	defer ip.Close()
	if err := ip.RunScript(src); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	return lines
}

func eval(t *testing.T, src string) *runtime.Value {
	t.Helper()
	ip := New()
	defer ip.Close()
	v, err := ip.EvalString(src)
	if err != nil {
		t.Fatalf("EvalString(%q): %v", src, err)
	}
	return v
}

func expectLines(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

// ---------- Addition chain ----------

func TestAddChainWithStringConcatenatesWhole(t *testing.T) {
	v := eval(t, "1 + 2 + 'a'")
	if v.Kind != runtime.KindString || v.Str != "12a" {
		t.Errorf("got %s", runtime.ToString(v))
	}
	v = eval(t, "'a' + 1 + 2")
	if v.Str != "a12" {
		t.Errorf("got %s", runtime.ToString(v))
	}
}

func TestNumericAddChainStaysNumeric(t *testing.T) {
	v := eval(t, "1 + 2 + 3")
	if v.Kind != runtime.KindNumber || v.Num != 6 {
		t.Errorf("got %#v", v)
	}
}

func TestSubtractionCoercesStrings(t *testing.T) {
	v := eval(t, "'10' - 2")
	if v.Kind != runtime.KindNumber || v.Num != 8 {
		t.Errorf("got %#v", v)
	}
}

func TestDivisionKeepsIntegersWhenExact(t *testing.T) {
	if v := eval(t, "10 / 2"); v.Kind != runtime.KindNumber || v.Num != 5 {
		t.Errorf("10 / 2: got %#v", v)
	}
	if v := eval(t, "7 / 2"); v.Kind != runtime.KindFloat || v.Flt != 3.5 {
		t.Errorf("7 / 2: got %#v", v)
	}
}

// ---------- Equality and typeof ----------

func TestStrictVersusLooseEquality(t *testing.T) {
	if v := eval(t, "'1' == 1"); !v.Bool {
		t.Error("'1' == 1 should be true")
	}
	if v := eval(t, "'1' === 1"); v.Bool {
		t.Error("'1' === 1 should be false")
	}
}

func TestTypeofUnboundName(t *testing.T) {
	v := eval(t, "typeof nothing")
	if v.Str != "undefined" {
		t.Errorf("got %q", v.Str)
	}
}

func TestInstanceof(t *testing.T) {
	if v := eval(t, "[1] instanceof Array"); !v.Bool {
		t.Error("array literal should be an Array instance")
	}
}

func TestTemplateLiteral(t *testing.T) {
	v := eval(t, "`sum=${1 + 2}`")
	if v.Str != "sum=3" {
		t.Errorf("got %q", v.Str)
	}
}

func TestSpreadIntoArrayLiteral(t *testing.T) {
	v := eval(t, "[0, ...[1, 2], 3].length")
	if v.Num != 4 {
		t.Errorf("got %s", runtime.ToString(v))
	}
}

// ---------- Aliasing ----------

func TestObjectAliasing(t *testing.T) {
	lines := run(t, `
		const a = { n: 1 };
		const b = a;
		b.n = 2;
		console.log(a.n);
	`)
	expectLines(t, lines, "2")
}

func TestArrayMutationThroughParameter(t *testing.T) {
	lines := run(t, `
		const arr = [1];
		const grow = (xs) => { xs.push(2); };
		grow(arr);
		console.log(arr.length);
	`)
	expectLines(t, lines, "2")
}

func TestClosureSharesContainerCells(t *testing.T) {
	lines := run(t, `
		const makeCounter = () => {
			const state = { n: 0 };
			return () => { state.n += 1; return state.n; };
		};
		const c = makeCounter();
		console.log(c(), c(), c());
	`)
	expectLines(t, lines, "1 2 3")
}

func TestNamedFunctionRecursion(t *testing.T) {
	lines := run(t, `
		function fact(n) {
			if (n <= 1) { return 1; }
			return n * fact(n - 1);
		}
		console.log(fact(5));
	`)
	expectLines(t, lines, "120")
}

// ---------- Timers ----------

func TestTimerOrderingAndVirtualClock(t *testing.T) {
	lines := run(t, `
		setTimeout(() => { console.log("late"); }, 86400000);
		setTimeout(() => { console.log("early"); }, 1);
		console.log("sync");
	`)
	expectLines(t, lines, "sync", "early", "late")
}

// A timer callback declared as `const id = setTimeout(...)` can clear itself:
// the id is patched into the callback's captured environment after the
// declaration binds it.
func TestIntervalClearsItselfThroughDeclaredID(t *testing.T) {
	lines := run(t, `
		const state = { n: 0 };
		const id = setInterval(() => {
			state.n += 1;
			if (state.n === 3) { clearInterval(id); }
		}, 100);
		setTimeout(() => { console.log(state.n); }, 10000);
	`)
	expectLines(t, lines, "3")
}

func TestMicrotaskRunsBeforeTimer(t *testing.T) {
	lines := run(t, `
		setTimeout(() => { console.log("timer"); }, 1);
		queueMicrotask(() => { console.log("micro"); });
	`)
	expectLines(t, lines, "micro", "timer")
}

// ---------- Promises ----------

func TestThenChainRunsAfterSync(t *testing.T) {
	lines := run(t, `
		Promise.resolve(1).then((v) => v + 1).then((v) => { console.log(v); });
		console.log("sync");
	`)
	expectLines(t, lines, "sync", "2")
}

func TestAsyncFunctionResolvesWithReturn(t *testing.T) {
	lines := run(t, `
		const work = async () => 7;
		work().then((v) => { console.log(v); });
	`)
	expectLines(t, lines, "7")
}

func TestAwaitReadsSettledPromise(t *testing.T) {
	lines := run(t, `
		const p = Promise.resolve(7);
		const read = async () => { console.log(await p); };
		read();
	`)
	expectLines(t, lines, "7")
}

func TestAwaitOnPendingPromiseYieldsUndefined(t *testing.T) {
	lines := run(t, `
		const pend = new Promise(() => {});
		const read = async () => { console.log(await pend); };
		read();
	`)
	expectLines(t, lines, "undefined")
}

// ---------- Events ----------

func TestDispatchEvent(t *testing.T) {
	var lines []string
	ip := New(WithConsole(builtins.WriterSink(func(level, line string) {
		lines = append(lines, line)
	})))
	defer ip.Close()
	ip.Doc.AddNode("btn", "button", "")
	err := ip.RunScript(`
		document.getElementById("btn").addEventListener("click", (e) => {
			console.log("clicked", e.type);
		});
	`)
	if err != nil {
		t.Fatal(err)
	}
	if err := ip.DispatchEvent("btn", "click"); err != nil {
		t.Fatal(err)
	}
	expectLines(t, lines, "clicked click")
}

// ---------- Namespace call forms ----------

func TestMathNamespaceFromScript(t *testing.T) {
	v := eval(t, "Math.max(1, 5, 3)")
	if runtime.ToString(v) != "5" {
		t.Errorf("got %s", runtime.ToString(v))
	}
	v = eval(t, "Math.PI")
	if v.Kind != runtime.KindFloat || v.Flt < 3.14 || v.Flt > 3.15 {
		t.Errorf("got %s", runtime.ToString(v))
	}
}

func TestHyperbolicMathFromScript(t *testing.T) {
	v := eval(t, "Math.sinh(0)")
	if runtime.ToString(v) != "0" {
		t.Errorf("sinh: got %s", runtime.ToString(v))
	}
	v = eval(t, "Math.expm1(0)")
	if runtime.ToString(v) != "0" {
		t.Errorf("expm1: got %s", runtime.ToString(v))
	}
}

func TestIntlNumberFormatFromScript(t *testing.T) {
	v := eval(t, `new Intl.NumberFormat('en-US').format(1234.5)`)
	if v.Kind != runtime.KindString || v.Str != "1,234.5" {
		t.Errorf("got %s", runtime.ToString(v))
	}
}

// ---------- Promise combinators over pending inputs ----------

func TestPromiseAllWaitsForTimerResolution(t *testing.T) {
	lines := run(t, `
		const slow = new Promise((resolve) => { setTimeout(() => resolve(1), 10); });
		Promise.all([slow, Promise.resolve(2)]).then((vs) => {
			console.log("all", vs[0], vs[1]);
		});
	`)
	expectLines(t, lines, "all 1 2")
}

func TestPromiseRaceSettlesWithFirstTimer(t *testing.T) {
	lines := run(t, `
		const a = new Promise((resolve) => { setTimeout(() => resolve("slow"), 20); });
		const b = new Promise((resolve) => { setTimeout(() => resolve("fast"), 5); });
		Promise.race([a, b]).then((v) => { console.log(v); });
	`)
	expectLines(t, lines, "fast")
}

// ---------- Rejection reporting ----------

func TestUncaughtRejectionIsReported(t *testing.T) {
	var lines []string
	ip := New(WithConsole(builtins.WriterSink(func(level, line string) {
		lines = append(lines, level+": "+line)
	})))
	defer ip.Close()
	if err := ip.RunScript(`Promise.reject("boom");`); err != nil {
		t.Fatal(err)
	}
	expectLines(t, lines, "error: Uncaught (in promise) boom")
}

func TestHandledRejectionIsNotReported(t *testing.T) {
	lines := run(t, `
		Promise.reject("boom").catch((e) => { console.log("caught", e); });
	`)
	expectLines(t, lines, "caught boom")
}

// ---------- Call argument evaluation order ----------

func TestCallArgumentsEvaluateBeforeCallableCheck(t *testing.T) {
	var lines []string
	ip := New(WithConsole(builtins.WriterSink(func(level, line string) {
		lines = append(lines, line)
	})))
	defer ip.Close()
	err := ip.RunScript(`(5)(console.log("side"));`)
	if err == nil || !strings.Contains(err.Error(), "is not a function") {
		t.Fatalf("expected a not-a-function error, got %v", err)
	}
	expectLines(t, lines, "side")
}
