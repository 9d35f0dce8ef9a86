package hsm

// transitionPath finds the lowest common ancestor of src and dst and fills
// exit with src..LCA and entry with dst..LCA, both deepest first and both
// excluding the LCA. The buffers are reused from their zero length and never
// grown past their capacity.
//
// A self-transition (src == dst) yields src on both lists so the state is
// fully exited and re-entered.
func transitionPath(src, dst *State, exit, entry []*State) ([]*State, []*State, *State, error) {
	exit, entry = exit[:0], entry[:0]
	if src == dst {
		if cap(exit) < 1 || cap(entry) < 1 {
			return exit, entry, nil, ErrPathOverflow
		}
		return append(exit, src), append(entry, dst), src.parent, nil
	}

	var err error
	for src.depth != dst.depth {
		if src.depth > dst.depth {
			if exit, err = push(exit, src); err != nil {
				return exit, entry, nil, err
			}
			src = src.parent
		} else {
			if entry, err = push(entry, dst); err != nil {
				return exit, entry, nil, err
			}
			dst = dst.parent
		}
	}
	for src != dst {
		if exit, err = push(exit, src); err != nil {
			return exit, entry, nil, err
		}
		if entry, err = push(entry, dst); err != nil {
			return exit, entry, nil, err
		}
		src, dst = src.parent, dst.parent
	}
	return exit, entry, src, nil
}

func push(buf []*State, s *State) ([]*State, error) {
	if len(buf) == cap(buf) {
		return buf, ErrPathOverflow
	}
	return append(buf, s), nil
}
