package operation

import "futurecommander/pkg/overlay"

// Generator is spec §4.6's `next(fs_read_view) -> Option<AtomicOp> | Err`:
// a single method returning the next atomic to emit, nil/nil once
// exhausted (Terminated), or an error that aborts the whole request.
type Generator interface {
	Next(view *overlay.Engine) (*Atomic, error)
}

type phase int

const (
	phaseUninitialized phase = iota
	phaseSelfOperation
	phaseChildrenOperation
	phaseTerminated
)

// staged is the shared backbone of every request generator: spec §4.6's
// state machine, `Uninitialized -> SelfOperation -> ChildrenOperation ->
// Terminated`. Each concrete generator (Copy, Move, Remove, Create) only
// supplies an init callback that decides, from the composed read view,
// what the self-operation is, what children to recurse into, and what
// (if anything) to emit once those children have drained — the emission
// ordering rules in spec §4.6 ("self before children" for Copy and a fresh
// directory Move, "self after children" for Remove and directory
// Merge-for-Move) fall out of whether init populates selfBefore or finalOp.
// Create populates neither: its ancestor creations and then its own
// self-operation are all entries of the children list, in that order.
type staged struct {
	init func(view *overlay.Engine) (selfBefore *Atomic, children []Generator, finalOp *Atomic, err error)

	phase       phase
	selfBefore  *Atomic
	children    []Generator
	childIndex  int
	activeChild Generator
	finalOp     *Atomic
}

func (s *staged) Next(view *overlay.Engine) (*Atomic, error) {
	for {
		switch s.phase {
		case phaseUninitialized:
			selfBefore, children, finalOp, err := s.init(view)
			if err != nil {
				s.phase = phaseTerminated
				return nil, err
			}
			s.selfBefore, s.children, s.finalOp = selfBefore, children, finalOp
			if s.selfBefore != nil {
				s.phase = phaseSelfOperation
			} else {
				s.phase = phaseChildrenOperation
			}

		case phaseSelfOperation:
			op := s.selfBefore
			s.selfBefore = nil
			s.phase = phaseChildrenOperation
			return op, nil

		case phaseChildrenOperation:
			if s.activeChild == nil {
				if s.childIndex >= len(s.children) {
					if s.finalOp != nil {
						op := s.finalOp
						s.finalOp = nil
						s.phase = phaseTerminated
						return op, nil
					}
					s.phase = phaseTerminated
					continue
				}
				s.activeChild = s.children[s.childIndex]
				s.childIndex++
			}
			op, err := s.activeChild.Next(view)
			if err != nil {
				return nil, err
			}
			if op == nil {
				s.activeChild = nil
				continue
			}
			return op, nil

		default: // phaseTerminated
			return nil, nil
		}
	}
}
