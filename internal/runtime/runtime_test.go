package runtime

import (
	"reflect"
	"testing"
)

// TestHandlerThatNeverResumesReturnsItsOwnValue exercises spec §8
// scenario 2 at the engine level: a handler whose operation never calls
// its resumer still yields a result — the handler's own return value —
// with the body's remaining computation simply discarded.
func TestHandlerThatNeverResumesReturnsItsOwnValue(t *testing.T) {
	ops := map[string]OpImpl{
		"raise": func(args []Value, resume Resume) Control {
			return Return(42)
		},
	}

	prog := Handle(ops, nil, nil, nil, nil, func(caps map[string]Capability) Control {
		return FlatMap(caps["raise"]("boom"), func(v Value) Control {
			t.Fatal("continuation after raise must not run when the handler never resumes")
			return Return(nil)
		})
	})

	if got := Run(prog, nil); got != 42 {
		t.Fatalf("expected 42, got %v", got)
	}
}

// TestMultiShotResumptionIsolatesStateWrites is the engine-level form of
// the §8 invariant "resuming the same captured continuation twice with
// independent state writes never makes one resumption observe the
// other's writes": a cell allocated inside the reset, mutated by the
// continuation captured at shift, must start from the same snapshot on
// every independent resumption.
func TestMultiShotResumptionIsolatesStateWrites(t *testing.T) {
	prog := WithState(1, func(ref CellRef) Control {
		return FlatMap(Shift(Toplevel, func(k Resume) Control {
			r1 := Run(k(100), nil)
			r2 := Run(k(200), nil)
			return Return([]Value{r1, r2})
		}), func(resumed Value) Control {
			return FlatMap(Get(ref), func(seen Value) Control {
				next := seen.(int) + 1
				return FlatMap(Put(ref, next), func(Value) Control {
					return Return([]int{seen.(int), resumed.(int)})
				})
			})
		})
	})
	prog = Reset(Toplevel, Clauses{}, prog)

	got := Run(prog, nil).([]Value)
	first := got[0].([]int)
	second := got[1].([]int)

	if first[0] != 1 || second[0] != 1 {
		t.Fatalf("expected both resumptions to observe the snapshot value 1, got %d and %d", first[0], second[0])
	}
	if first[1] != 100 || second[1] != 200 {
		t.Fatalf("expected resumption values 100 and 200 threaded through, got %d and %d", first[1], second[1])
	}
}

// TestOnUnwindAndOnRewindFireExactlyOnceInOrder checks spec §8's
// "Runtime order" invariant and scenario 2's "one onUnwind per segment
// between caller and handler": with one intermediate segment sitting
// between the shift call site and the matched prompt's own segment,
// onUnwind/onRewind fire for that intermediate segment only — the
// matched segment is the shift's destination, not something unwound
// through, so its own hooks stay silent.
func TestOnUnwindAndOnRewindFireExactlyOnceInOrder(t *testing.T) {
	var unwound, rewound []string

	innerClauses := Clauses{
		OnUnwind: func() Control { unwound = append(unwound, "inner"); return Return("inner-data") },
		OnRewind: func(d Value) Control { rewound = append(rewound, d.(string)); return Return(nil) },
	}
	outerClauses := Clauses{
		OnUnwind: func() Control { unwound = append(unwound, "outer"); return Return("outer-data") },
		OnRewind: func(d Value) Control { rewound = append(rewound, d.(string)); return Return(nil) },
	}

	p := NextPrompt()
	body := Shift(p, func(k Resume) Control {
		return k(nil)
	})
	// One intermediate segment (innerClauses) sits between the shift
	// call and the Reset(p, ...) segment (outerClauses) that owns the
	// matched prompt.
	wrapped := Reset(NextPrompt(), innerClauses, body)
	prog := Reset(p, outerClauses, wrapped)

	Run(prog, nil)

	if !reflect.DeepEqual(unwound, []string{"inner"}) {
		t.Fatalf("expected only the intermediate segment's onUnwind to fire, got %v", unwound)
	}
	if !reflect.DeepEqual(rewound, []string{"inner-data"}) {
		t.Fatalf("expected only the intermediate segment's onRewind to fire, got %v", rewound)
	}
}

// TestOnReturnFiresOnlyOnNaturalReturn confirms onReturn is invoked when
// a segment's frames run out by ordinary apply, and is never invoked
// when the segment is instead torn down by a shift past it.
func TestOnReturnFiresOnlyOnNaturalReturn(t *testing.T) {
	calls := 0
	clauses := Clauses{OnReturn: func(v Value) Control {
		calls++
		return Return(v)
	}}

	natural := Reset(NextPrompt(), clauses, Return(7))
	if got := Run(natural, nil); got != 7 {
		t.Fatalf("expected 7, got %v", got)
	}
	if calls != 1 {
		t.Fatalf("expected onReturn to fire exactly once on natural return, got %d", calls)
	}

	calls = 0
	p := NextPrompt()
	shiftedPast := Reset(p, clauses, Shift(p, func(k Resume) Control { return Return("handled") }))
	if got := Run(shiftedPast, nil); got != "handled" {
		t.Fatalf("expected 'handled', got %v", got)
	}
	if calls != 0 {
		t.Fatalf("expected onReturn not to fire when the segment is shifted past, got %d calls", calls)
	}
}

// TestShiftOnUnknownPromptPanics covers spec §4.6's "shift on an unknown
// prompt panics".
func TestShiftOnUnknownPromptPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected shift on an unresolvable prompt to panic")
		}
	}()
	Run(Shift(NextPrompt(), func(k Resume) Control { return Return(nil) }), nil)
}

// TestCaptureDefersThenDeliversIntoItsContinuation exercises capture(f)
// (spec §4.6): the initial call returns immediately without running
// anything downstream of the capture point, and resuming later delivers
// a value through whatever continuation frame followed it.
func TestCaptureDefersThenDeliversIntoItsContinuation(t *testing.T) {
	var pending Resume
	var seen []Value

	prog := Reset(Toplevel, Clauses{}, FlatMap(
		Capture(func(k Resume) Control {
			pending = k
			return Return("deferred")
		}),
		func(v Value) Control {
			seen = append(seen, v)
			return Return(v)
		},
	))

	if got := Run(prog, nil); got != "deferred" {
		t.Fatalf("expected the initial call to defer, got %v", got)
	}
	if len(seen) != 0 {
		t.Fatalf("continuation must not run before resume is invoked, got %v", seen)
	}

	if got := Run(pending("resumed-value"), nil); got != "resumed-value" {
		t.Fatalf("expected resume to deliver through the continuation, got %v", got)
	}
	if !reflect.DeepEqual(seen, []Value{"resumed-value"}) {
		t.Fatalf("expected the continuation to observe the resumed value, got %v", seen)
	}
}

// TestBidirectionalHandlerChainsCapabilities covers Handle's bidirectional
// path: an operation whose implementation returns a function-of-
// capabilities gets that function applied to the handler's own
// capability map (spec §4.6: "chain result.then(f -> f(caps))"), rather
// than the function value itself escaping as the operation's result.
func TestBidirectionalHandlerChainsCapabilities(t *testing.T) {
	ops := map[string]OpImpl{
		"ask": func(args []Value, resume Resume) Control {
			return Return(func(caps map[string]Capability) Control {
				if _, ok := caps["ask"]; !ok {
					t.Fatal("expected the handler's own capability map to be threaded in")
				}
				return Return("relayed")
			})
		},
	}
	bidi := map[string]bool{"ask": true}

	prog := Handle(ops, nil, nil, nil, bidi, func(caps map[string]Capability) Control {
		return caps["ask"]()
	})

	if got := Run(prog, nil); got != "relayed" {
		t.Fatalf("expected the bidirectional chain to surface the inner Return's value, got %v", got)
	}
}
