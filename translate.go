package seqz

// Translate re-expresses a source notification in terms of a mapped
// sequence. Ranges, permutation tables, batch grouping and order carry over
// unchanged. The only values computed are the removal snapshots, which must
// be mapped now because the source no longer holds the removed elements.
//
// Sub-changes are checked against the source size they leave behind, walking
// back from c.List().Len(). A sub-change that cannot fit yields a
// *PropagationError and no Change.
func Translate[S, T any](c *Change[S], target Observable[T], fn func(S) T) (*Change[T], error) {
	if err := checkConsistency(c); err != nil {
		return nil, err
	}
	subs := make([]SubChange[T], len(c.subs))
	for i, s := range c.subs {
		subs[i] = translateSub(s, fn)
	}
	return NewChange(target, subs...), nil
}

func translateSub[S, T any](s SubChange[S], fn func(S) T) SubChange[T] {
	out := SubChange[T]{Kind: s.Kind, From: s.From, To: s.To, perm: s.perm}
	if s.Kind == Removed || s.Kind == Replaced {
		out.Removed = make([]T, len(s.Removed))
		for i, v := range s.Removed {
			out.Removed[i] = fn(v)
		}
	}
	return out
}

// checkConsistency validates every sub-change of c against the size of the
// source right after that sub-change was applied.
func checkConsistency[S any](c *Change[S]) error {
	after := 0
	if c.list != nil {
		after = c.list.Len()
	}
	for i := len(c.subs) - 1; i >= 0; i-- {
		s := c.subs[i]
		before := after - s.AddedSize() + s.RemovedSize()
		if !subFits(s, before, after) {
			return &PropagationError{Kind: s.Kind, From: s.From, To: s.To, Size: after}
		}
		after = before
	}
	return nil
}

func subFits[S any](s SubChange[S], before, after int) bool {
	if before < 0 || s.From < 0 || s.To < s.From {
		return false
	}
	switch s.Kind {
	case Added, Updated:
		return s.To <= after
	case Removed:
		return s.To-s.From == len(s.Removed) && s.To <= before
	case Replaced:
		return s.To <= after && s.From+len(s.Removed) <= before
	case Permutated:
		return s.To <= after && len(s.perm) == s.To-s.From && badPermutationEntry(s.From, s.perm) < 0
	default:
		return false
	}
}
