package value

// ListBacking abstracts how a LIST value's elements are actually stored —
// a plain in-memory slice, or a streaming backend (internal/store's
// LargeValueStore) for a collection too large to hold in memory at once
// (spec.md §2: "L ... used transparently wherever the engine iterates a
// list"). value itself never imports internal/store — that package would
// have to import value for its own Value-typed Get/Iterator results,
// which would cycle — so internal/store instead supplies a thin adapter
// satisfying this interface and hands back a Value built with
// OfBackedList.
type ListBacking interface {
	// Size returns the number of elements.
	Size() int
	// Get returns the i-th element.
	Get(i int) (Value, error)
	// Iterator returns a fresh single-pass cursor over the elements.
	Iterator() ListIterator
}

// ListIterator is a single-pass cursor over a LIST value's elements,
// shaped to match internal/store.Iterator exactly so a store-backed
// ListBacking's Iterator() can be returned without an adapter struct.
type ListIterator interface {
	Next() bool
	Value() Value
	Err() error
}

// OfBackedList builds a LIST value whose elements stream from b instead of
// living in a materialized slice — the conversion seam spec.md §2's Large
// Value Store plugs into (see internal/store.SpillLists).
func OfBackedList(b ListBacking) Value {
	return Value{kind: List, raw: b}
}

// IsBackedList reports whether this LIST value streams from a
// ListBacking rather than holding a plain in-memory slice.
func (v Value) IsBackedList() bool {
	_, ok := v.raw.(ListBacking)
	return ok
}

// ListLen returns the number of elements in a LIST value, whether backed
// by a plain slice or a streaming ListBacking. 0 for non-LIST values.
func (v Value) ListLen() int {
	switch raw := v.raw.(type) {
	case []Value:
		return len(raw)
	case ListBacking:
		return raw.Size()
	default:
		return 0
	}
}

// ListAt returns the i-th element of a LIST value, fetching it from the
// backing store when the list streams rather than being materialized.
// Out-of-range or non-LIST values return an OTHER zero value, matching
// the existing ListElement/ListVal-indexing convention.
func (v Value) ListAt(i int) Value {
	switch raw := v.raw.(type) {
	case []Value:
		if i < 0 || i >= len(raw) {
			return Value{kind: Other}
		}
		return raw[i]
	case ListBacking:
		el, err := raw.Get(i)
		if err != nil {
			return Value{kind: Other}
		}
		return el
	default:
		return Value{kind: Other}
	}
}

// ListIter returns a fresh single-pass cursor over a LIST value's
// elements — the accessor every engine iteration path (listContains*,
// listWithin, EACH_*) should use instead of ListVal(), so a store-backed
// list streams through Get/Iterator rather than forcing a full in-memory
// slice.
func (v Value) ListIter() ListIterator {
	switch raw := v.raw.(type) {
	case []Value:
		return &sliceIterator{items: raw, idx: -1}
	case ListBacking:
		return raw.Iterator()
	default:
		return &sliceIterator{idx: -1}
	}
}

type sliceIterator struct {
	items []Value
	idx   int
}

func (it *sliceIterator) Next() bool {
	it.idx++
	return it.idx < len(it.items)
}

func (it *sliceIterator) Value() Value { return it.items[it.idx] }
func (it *sliceIterator) Err() error   { return nil }
