package runtime

// Return lifts a plain value into Control: apply it to whatever stack it
// eventually runs against.
func Return(a Value) Control {
	return func(s *Stack) Step { return apply(s, a) }
}

// apply (spec §4.6 "apply(stack, a)") delivers a to the current segment.
// An empty segment either hands a to its OnReturn clause (a natural
// return) or is dropped and a is re-delivered to the tail; a non-empty
// segment pops its first frame and applies it.
func apply(stack *Stack, a Value) Step {
	if stack == nil {
		return Step{Done: true, Value: a}
	}
	if len(stack.Frames) == 0 {
		if stack.Clauses.OnReturn != nil {
			return Step{Next: stack.Clauses.OnReturn(a), Stack: stack.Tail}
		}
		return apply(stack.Tail, a)
	}
	frame := stack.Frames[0]
	rest := &Stack{
		Frames:  stack.Frames[1:],
		Cells:   stack.Cells,
		Prompt:  stack.Prompt,
		Clauses: stack.Clauses,
		Tail:    stack.Tail,
	}
	return Step{Next: frame(a), Stack: rest}
}

// pushFrame prepends f to stack's top segment, creating a fresh segment
// for it if the stack is empty (spec §4.6 "flatMap(stack, f): push f
// onto the frames of the top segment, or create a segment with [f] when
// the stack is empty").
func pushFrame(stack *Stack, f Frame) *Stack {
	if stack == nil {
		return &Stack{Frames: []Frame{f}}
	}
	frames := make([]Frame, 0, len(stack.Frames)+1)
	frames = append(frames, f)
	frames = append(frames, stack.Frames...)
	return &Stack{
		Frames:  frames,
		Cells:   stack.Cells,
		Prompt:  stack.Prompt,
		Clauses: stack.Clauses,
		Tail:    stack.Tail,
	}
}

// FlatMap is the engine's monadic bind: run c, then pass its result
// through the continuation frame f.
func FlatMap(c Control, f Frame) Control {
	return func(s *Stack) Step {
		return c(pushFrame(s, f))
	}
}

// Reset (spec §4.6) installs a fresh segment for prompt, carrying
// clauses, and continues with body inside it.
func Reset(prompt Prompt, clauses Clauses, body Control) Control {
	return func(s *Stack) Step {
		seg := &Stack{Prompt: prompt, Clauses: clauses, Tail: s}
		return Step{Next: body, Stack: seg}
	}
}

func snapshotCells(cells []*Cell) []Value {
	snapshots := make([]Value, len(cells))
	for i, c := range cells {
		snapshots[i] = c.Get()
	}
	return snapshots
}

// unwind walks the stack from s toward its tail, snapshotting every
// segment's cells, until it reaches the segment owning prompt — that
// segment is captured too (its frames and cells are the continuation
// being resumed), but its own OnUnwind does not run: OnUnwind fires for
// segments genuinely unwound *through* by this shift (spec §8 scenario
// 2: "one onUnwind per segment between caller and handler"), and the
// matched segment is the destination, not something escaped through.
// Returns the captured chain (head = segment nearest s, i.e. nearest
// the shift call site) and the stack beyond the matched segment (what
// shift's body runs against). Panics if the stack is exhausted without
// finding prompt (spec: "shift on an unknown prompt panics").
func unwind(s *Stack, prompt Prompt) (*SubStack, *Stack) {
	if s == nil {
		panic("runtime: shift on unknown prompt")
	}

	if s.Prompt == prompt {
		sub := &SubStack{Frames: s.Frames, Snapshots: snapshotCells(s.Cells), Prompt: s.Prompt, Clauses: s.Clauses}
		return sub, s.Tail
	}

	var unwindData Value
	if s.Clauses.OnUnwind != nil {
		unwindData = Run(s.Clauses.OnUnwind(), nil)
	}

	sub := &SubStack{
		Frames:       s.Frames,
		Snapshots:    snapshotCells(s.Cells),
		Prompt:       s.Prompt,
		Clauses:      s.Clauses,
		OnUnwindData: unwindData,
	}

	rest, beyond := unwind(s.Tail, prompt)
	sub.Tail = rest
	return sub, beyond
}

// rewindOrder returns sub's chain from the segment nearest the matched
// prompt (bottom) to the segment nearest the original shift call (top)
// — the order spec §4.6 requires for running onRewind: "in order from
// bottom to top". Index 0 of the result is always the matched segment
// itself (see unwind), whose own OnRewind is skipped by the caller for
// the same reason its OnUnwind was skipped on capture.
func rewindOrder(sub *SubStack) []*SubStack {
	var segs []*SubStack
	for cur := sub; cur != nil; cur = cur.Tail {
		segs = append(segs, cur)
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return segs
}

// reconstruct rebuilds a Stack chain from a captured SubStack chain,
// minting a fresh Cell per snapshot so concurrent resumptions of the
// same capture never share mutable state, and grafting the chain onto
// tail (the stack current at the point resume was invoked).
func reconstruct(sub *SubStack, tail *Stack) *Stack {
	if sub == nil {
		return tail
	}
	below := reconstruct(sub.Tail, tail)
	cells := make([]*Cell, len(sub.Snapshots))
	for i, v := range sub.Snapshots {
		cells[i] = NewCell(v)
	}
	return &Stack{
		Frames:  sub.Frames,
		Cells:   cells,
		Prompt:  sub.Prompt,
		Clauses: sub.Clauses,
		Tail:    below,
	}
}

// Shift (spec §4.6) unwinds the stack up to prompt, then invokes f with
// a resumer that — on each independent invocation — reconstructs the
// captured segments with fresh state, runs every OnRewind clause bottom
// to top, and delivers the resumption value into the rebuilt stack.
func Shift(prompt Prompt, f func(Resume) Control) Control {
	return func(s *Stack) Step {
		captured, beyond := unwind(s, prompt)

		resume := func(a Value) Control {
			return func(callSite *Stack) Step {
				newStack := reconstruct(captured, callSite)
				for i, seg := range rewindOrder(captured) {
					if i == 0 {
						// the matched segment itself: no onRewind (symmetric
						// with unwind skipping its onUnwind).
						continue
					}
					if seg.Clauses.OnRewind != nil {
						Run(seg.Clauses.OnRewind(seg.OnUnwindData), nil)
					}
				}
				return apply(newStack, a)
			}
		}

		return Step{Next: f(resume), Stack: beyond}
	}
}

// WithState (spec §4.6) allocates a cell in the current top segment and
// continues with f(ref), ref being a logical handle that survives that
// segment being torn down and rebuilt by a later Shift/resume.
func WithState(init Value, f func(CellRef) Control) Control {
	return func(s *Stack) Step {
		if s == nil {
			s = &Stack{Prompt: Toplevel}
		}
		cell := NewCell(init)
		cells := make([]*Cell, 0, len(s.Cells)+1)
		cells = append(cells, s.Cells...)
		cells = append(cells, cell)
		ref := CellRef{Prompt: s.Prompt, Index: len(cells) - 1}
		top := &Stack{Frames: s.Frames, Cells: cells, Prompt: s.Prompt, Clauses: s.Clauses, Tail: s.Tail}
		return Step{Next: f(ref), Stack: top}
	}
}

// Get and Put are the two Cell operations a handler body issues as
// Control, resolving ref against whichever Stack they end up running
// on: get reads the current value, put overwrites it and yields unit.
func Get(ref CellRef) Control {
	return func(s *Stack) Step {
		seg := findSegment(s, ref.Prompt)
		return apply(s, seg.Cells[ref.Index].Get())
	}
}

func Put(ref CellRef, v Value) Control {
	return func(s *Stack) Step {
		seg := findSegment(s, ref.Prompt)
		seg.Cells[ref.Index].Put(v)
		return apply(s, struct{}{})
	}
}

// Capture implements spec §4.6's "capture(f)": abortive capture to the
// toplevel prompt, handing f the resumer for whatever continuation is
// currently pending there. f is free to build the reified
// "{shouldRun, cont}" thunk the spec describes on top of this — that
// shape is a convention callers build with Resume and a FlatMap-supplied
// continuation frame, not something Capture itself can encode, since
// the thunk's second invocation needs a real frame downstream of the
// shift to deliver into.
func Capture(f func(Resume) Control) Control {
	return Shift(Toplevel, f)
}

// OpImpl is a handler's implementation of one effect operation: given
// the call's arguments and a resumer for the captured continuation, it
// produces a Control.
type OpImpl func(args []Value, resume Resume) Control

// Capability is the function surface the body of a Handle block calls
// to invoke one of the handler's operations.
type Capability func(args ...Value) Control

var promptCounter int64 = int64(Toplevel)

// NextPrompt allocates a fresh, non-zero prompt distinct from every
// previously allocated one (spec §4.6: "unique non-zero integers
// monotonically allocated").
func NextPrompt() Prompt {
	promptCounter++
	return Prompt(promptCounter)
}

// Handle (spec §4.6's "handle(handlers, onUnwind?, onRewind?,
// onReturn?)(body)") allocates a fresh prompt, wraps each operation so
// that invoking it shifts to that prompt with the user's implementation,
// and resets the prompt around body(caps).
//
// A handler whose implementation returns a function-of-capabilities
// (a bidirectional handler) is chained with a second prompt-local step
// that applies the result to caps — spec's "chain result.then(f ->
// f(caps))".
func Handle(
	ops map[string]OpImpl,
	onUnwind func() Control,
	onRewind func(Value) Control,
	onReturn func(Value) Control,
	bidirectional map[string]bool,
	body func(caps map[string]Capability) Control,
) Control {
	prompt := NextPrompt()
	clauses := Clauses{OnUnwind: onUnwind, OnRewind: onRewind, OnReturn: onReturn}

	caps := make(map[string]Capability, len(ops))
	for name, impl := range ops {
		name, impl := name, impl
		bidi := bidirectional[name]
		caps[name] = func(args ...Value) Control {
			return Shift(prompt, func(k Resume) Control {
				if !bidi {
					return impl(args, k)
				}
				return FlatMap(impl(args, k), func(fn Value) Control {
					capFn, ok := fn.(func(map[string]Capability) Control)
					if !ok {
						return Return(fn)
					}
					return capFn(caps)
				})
			})
		}
	}

	return Reset(prompt, clauses, body(caps))
}
