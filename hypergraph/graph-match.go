package hypergraph

import (
	"sync"

	"github.com/mankinskin/seqraph/seqraph"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// Compare scans A and B in lock-step for a common structural prefix.
//
// Returns ok == false if A and B are provably unrelated.  Otherwise, the match is Matching if both
// were fully consumed, RemainderLeft if A has an unconsumed suffix, or RemainderRight if B has one.
//
// Where A and B diverge, the narrower element ("sub") is resolved against the wider one ("sup") by
// ascending sub's parent links while consuming the elements that follow sub.
func (g *Graph[T]) Compare(A, B Pattern) (seqraph.PatternMatch, bool) {
	m := g.newMatcher()
	defer m.Reclaim()

	klog.V(3).Infof("%s: compare %q with %q", g.opts.Name, g.patternStringer(A), g.patternStringer(B))
	return m.run(call{
		a: A,
		b: B,
	})
}

// Resolve determines whether ascending from sub through its parents, consuming context on the way, reaches target.
//
//	IndexMatching: target reached and context fully consumed
//	SubRemainder:  target reached, Remainder is the unconsumed part of context
//	SupRemainder:  sub + context is a proper prefix of target, Remainder is what target has beyond it
//
// If widthCeiling > 0, only parents narrower than widthCeiling are searched.
func (g *Graph[T]) Resolve(sub VertexIndex, context Pattern, target VertexIndex, widthCeiling TokenPosition) (seqraph.IndexMatch, bool) {
	m := g.newMatcher()
	defer m.Reclaim()

	klog.V(3).Infof("%s: resolve %q + %q in %q", g.opts.Name, g.indexStringer(sub), g.patternStringer(context), g.indexStringer(target))
	pm, ok := m.run(call{
		resolve: true,
		sub:     sub,
		context: context,
		target:  target,
		ceiling: widthCeiling,
	})
	if !ok {
		return seqraph.IndexMatch{}, false
	}
	return pm.IndexMatch(), true
}

// BestOccurrence picks the occurrence of a child inside parent at element position pos to continue matching context with.
//
// Among the occurrences at pos, in ascending decomposition order, the first one whose next element is context[0] is preferred.
// Otherwise the first occurrence at pos is returned.
func (g *Graph[T]) BestOccurrence(parent *seqraph.Parent, pos int, context Pattern) (seqraph.Occurrence, bool) {
	occs := parent.OccurrencesAt(pos)
	if len(occs) == 0 {
		return seqraph.Occurrence{}, false
	}
	if len(context) > 0 {
		pats := g.expect(parent.Index).data.Children
		for _, occ := range occs {
			pat := pats[occ.Pattern]
			if occ.Pos+1 < len(pat) && pat[occ.Pos+1].Index == context[0].Index {
				return occ, true
			}
		}
	}
	return occs[0], true
}

// parentTail returns the elements following the chosen occurrence at pos inside parent.
func (g *Graph[T]) parentTail(parent *seqraph.Parent, pos int, context Pattern) (Pattern, bool) {
	occ, ok := g.BestOccurrence(parent, pos, context)
	if !ok {
		return nil, false
	}
	pat := g.expect(parent.Index).data.Children[occ.Pattern]
	return pat[occ.Pos+1:], true
}

// call is a pending Compare or Resolve evaluation.
type call struct {
	resolve bool

	// compare
	a, b Pattern
	flip bool // orientation of the result relative to the caller's (a, b)

	// resolve
	sub     VertexIndex
	context Pattern
	target  VertexIndex
	ceiling TokenPosition
	carry   Pattern // content beyond context already found in narrower parents of target
}

type contKind byte

const (
	contDivergence contKind = iota // compare awaits the resolution of sub into sup
	contDirect                     // resolve awaits context compared against target's decomposition
	contSearch                     // resolve awaits context compared against a candidate parent's decomposition
)

// cont is a suspended evaluation waiting for the outcome of the call it issued.
type cont struct {
	kind contKind

	// divergence
	flip    bool
	postSup Pattern

	// direct & search
	carry Pattern

	// search
	sub     VertexIndex
	context Pattern
	target  VertexIndex
	ceiling TokenPosition
	next    int         // next candidate in sub's parents
	parent  VertexIndex // parent currently under test
}

type outcome struct {
	ok    bool
	match seqraph.PatternMatch
}

// workStack holds the suspended evaluations of one Compare or Resolve so deep structures never grow the goroutine stack.
type workStack struct {
	conts []cont
	steps int
}

var workStackPool = sync.Pool{
	New: func() interface{} {
		return &workStack{
			conts: make([]cont, 0, 16),
		}
	},
}

type matcher[T comparable] struct {
	*workStack
	g *Graph[T]
}

func (g *Graph[T]) newMatcher() *matcher[T] {
	ws := workStackPool.Get().(*workStack)
	ws.steps = 0
	return &matcher[T]{
		workStack: ws,
		g:         g,
	}
}

func (m *matcher[T]) Reclaim() {
	for i := range m.conts {
		m.conts[i] = cont{}
	}
	m.conts = m.conts[:0]
	workStackPool.Put(m.workStack)
	m.workStack = nil
}

func (m *matcher[T]) push(c cont) {
	m.conts = append(m.conts, c)
}

func (m *matcher[T]) pop() cont {
	N := len(m.conts) - 1
	c := m.conts[N]
	m.conts[N] = cont{}
	m.conts = m.conts[:N]
	return c
}

func found(match seqraph.PatternMatch, flip bool) outcome {
	if flip {
		match = match.Flip()
	}
	return outcome{
		ok:    true,
		match: match,
	}
}

// run evaluates c and everything it issues until the stack unwinds.
//
// Each step either evaluates the pending call (which may suspend into a cont and issue a new call),
// or resumes the top cont with the last outcome.
func (m *matcher[T]) run(c call) (seqraph.PatternMatch, bool) {
	var res outcome
	pending := true

	for {
		m.steps++
		if limit := m.g.opts.MaxSteps; limit > 0 && m.steps > limit {
			panic(errors.Wrapf(seqraph.ErrStepLimit, "graph %q: %d steps", m.g.opts.Name, limit))
		}

		if pending {
			if c.resolve {
				pending, res = m.evalResolve(&c)
			} else {
				pending, res = m.evalCompare(&c)
			}
		} else {
			if len(m.conts) == 0 {
				return res.match, res.ok
			}
			top := m.pop()
			switch top.kind {
			case contDivergence:
				pending, res = m.resumeDivergence(&top, res, &c)
			case contDirect:
				pending, res = m.resumeDirect(&top, res)
			case contSearch:
				pending, res = m.resumeSearch(&top, res, &c)
			}
		}
	}
}

func (m *matcher[T]) evalCompare(c *call) (bool, outcome) {
	A, B := c.a, c.b

	i := 0
	for i < len(A) && i < len(B) && A[i].Index == B[i].Index {
		i++
	}

	switch {
	case i == len(A) && i == len(B):
		return false, found(seqraph.MatchingMatch(), false)
	case i == len(B):
		return false, found(seqraph.LeftRemainder(A[i:].Clone()), c.flip)
	case i == len(A):
		return false, found(seqraph.RightRemainder(B[i:].Clone()), c.flip)
	}

	a, b := A[i], B[i]

	// distinct vertices of equal width are never relatives
	if a.Width == b.Width {
		klog.V(4).Infof("%s: %q and %q differ at equal width", m.g.opts.Name, m.g.indexStringer(a.Index), m.g.indexStringer(b.Index))
		return false, outcome{}
	}

	var (
		sub, sup         Child
		postSub, postSup Pattern
		rotate           bool
	)
	if a.Width < b.Width {
		sub, sup = a, b
		postSub, postSup = A[i+1:], B[i+1:]
	} else {
		sub, sup = b, a
		postSub, postSup = B[i+1:], A[i+1:]
		rotate = true
	}

	klog.V(4).Infof("%s: resolving %q in %q (rotate=%v)", m.g.opts.Name, m.g.indexStringer(sub.Index), m.g.indexStringer(sup.Index), rotate)

	m.push(cont{
		kind:    contDivergence,
		flip:    c.flip != rotate,
		postSup: postSup,
	})
	*c = call{
		resolve: true,
		sub:     sub.Index,
		context: postSub,
		target:  sup.Index,
		ceiling: sup.Width,
	}
	return true, outcome{}
}

func (m *matcher[T]) resumeDivergence(top *cont, res outcome, c *call) (bool, outcome) {
	if !res.ok {
		return false, res
	}

	rem := res.match.Remainder
	switch res.match.Kind {

	// sub's context outlasted sup: continue with what is left on both sides
	case seqraph.RemainderLeft:
		*c = call{
			a:    rem,
			b:    top.postSup,
			flip: top.flip,
		}
		return true, outcome{}

	// sup outlasted sub's context
	case seqraph.RemainderRight:
		return false, found(seqraph.RightRemainder(seqraph.Concat(rem, top.postSup)), top.flip)

	default:
		if len(top.postSup) == 0 {
			return false, found(seqraph.MatchingMatch(), false)
		}
		return false, found(seqraph.RightRemainder(top.postSup.Clone()), top.flip)
	}
}

func (m *matcher[T]) evalResolve(c *call) (bool, outcome) {
	if c.sub == c.target {
		switch {
		case len(c.context) > 0:
			return false, found(seqraph.LeftRemainder(c.context.Clone()), false)
		case len(c.carry) > 0:
			return false, found(seqraph.RightRemainder(c.carry), false)
		default:
			return false, found(seqraph.MatchingMatch(), false)
		}
	}

	v := m.g.VertexData(c.sub)
	if len(v.Parents) == 0 {
		return false, outcome{}
	}

	// target is a direct parent starting with sub
	if parent := v.FindParent(c.target); parent != nil && parent.HasOccurrenceAt(0) {
		tail, _ := m.g.parentTail(parent, 0, c.context)
		klog.V(4).Infof("%s: %q is a prefix of %q", m.g.opts.Name, m.g.indexStringer(c.sub), m.g.indexStringer(c.target))

		m.push(cont{
			kind:  contDirect,
			carry: c.carry,
		})
		*c = call{
			a: c.context,
			b: tail,
		}
		return true, outcome{}
	}

	state := cont{
		kind:    contSearch,
		carry:   c.carry,
		sub:     c.sub,
		context: c.context,
		target:  c.target,
		ceiling: c.ceiling,
	}
	return m.searchParents(&state, c)
}

// searchParents issues a comparison of the context against the next candidate parent of state.sub, if any remain.
func (m *matcher[T]) searchParents(state *cont, c *call) (bool, outcome) {
	parents := m.g.VertexData(state.sub).Parents

	for i := state.next; i < len(parents); i++ {
		parent := &parents[i]
		if state.ceiling > 0 && parent.Width >= state.ceiling {
			continue
		}
		tail, ok := m.g.parentTail(parent, 0, state.context)
		if !ok {
			continue
		}

		state.next = i + 1
		state.parent = parent.Index
		m.push(*state)
		*c = call{
			a: state.context,
			b: tail,
		}
		return true, outcome{}
	}

	klog.V(4).Infof("%s: no parent of %q leads to %q", m.g.opts.Name, m.g.indexStringer(state.sub), m.g.indexStringer(state.target))
	return false, outcome{}
}

func (m *matcher[T]) resumeDirect(top *cont, res outcome) (bool, outcome) {
	if !res.ok || len(top.carry) == 0 {
		return false, res
	}

	// context was exhausted below, so target has the carried content beyond it
	switch res.match.Kind {
	case seqraph.RemainderRight:
		return false, found(seqraph.RightRemainder(seqraph.Concat(top.carry, res.match.Remainder)), false)
	case seqraph.Matching:
		return false, found(seqraph.RightRemainder(top.carry), false)
	}
	return false, res
}

func (m *matcher[T]) resumeSearch(top *cont, res outcome, c *call) (bool, outcome) {
	if !res.ok {
		return m.searchParents(top, c)
	}

	next := call{
		resolve: true,
		sub:     top.parent,
		target:  top.target,
		ceiling: top.ceiling,
		carry:   top.carry,
	}
	switch res.match.Kind {
	case seqraph.RemainderLeft:
		next.context = res.match.Remainder
	case seqraph.RemainderRight:
		next.carry = seqraph.Concat(top.carry, res.match.Remainder)
	}

	klog.V(4).Infof("%s: ascending from %q to %q", m.g.opts.Name, m.g.indexStringer(top.sub), m.g.indexStringer(top.parent))
	*c = next
	return true, outcome{}
}
