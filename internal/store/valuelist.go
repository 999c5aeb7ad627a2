package store

import (
	"github.com/oxhq/vmatch/internal/config"
	"github.com/oxhq/vmatch/internal/value"
)

// listBacking adapts a LargeValueStore to value.ListBacking, the seam
// spec.md §2 describes as "L used transparently wherever the engine
// iterates a list" — once a LIST value is wrapped this way, every engine
// iteration path (listContains*, listWithin, EACH_*) drives it through
// Get/Iterator exactly like any other store client, never knowing whether
// the backing is a slice, a JSONL file, or a SQLite table.
type listBacking struct {
	s LargeValueStore
}

func (b *listBacking) Size() int                      { return b.s.Size() }
func (b *listBacking) Get(i int) (value.Value, error) { return b.s.Get(i) }
func (b *listBacking) Iterator() value.ListIterator   { return b.s.Iterator() }

// SpillLists walks v bottom-up and replaces every LIST whose estimated
// size crosses cfg's spill policy with one backed by a LargeValueStore
// built via New — the Of/engine boundary conversion spec.md §1 calls for
// ("the engine [can] handle collections too large to materialize in
// memory while preserving all matching semantics"). Lists nested under
// MAP values are walked too, so a large array embedded deep in a JSON
// document still spills. Non-LIST, non-MAP values pass through unchanged.
//
// It returns every LargeValueStore it opened, in creation (bottom-up)
// order, so the caller — match.Evaluate — can Close them once the Value
// tree they back is no longer needed; SpillLists itself never closes a
// store it creates.
func SpillLists(v value.Value, cfg config.StoreConfig) (value.Value, []LargeValueStore, error) {
	switch v.Kind() {
	case value.List:
		items := v.ListVal()
		spilled := make([]value.Value, len(items))
		var opened []LargeValueStore
		for i, it := range items {
			sp, nested, err := SpillLists(it, cfg)
			if err != nil {
				return v, opened, err
			}
			spilled[i] = sp
			opened = append(opened, nested...)
		}

		estimate := EstimateTotal(spilled)
		threshold := cfg.SpillThresholdBytes
		if threshold <= 0 {
			threshold = config.DefaultSpillThresholdBytes
		}
		if cfg.Backend == config.BackendMemory || (cfg.Backend == "" && estimate < threshold) {
			return value.Of(spilled), opened, nil
		}

		s, err := New(spilled, estimate, cfg)
		if err != nil {
			return v, opened, err
		}
		opened = append(opened, s)
		return value.OfBackedList(&listBacking{s: s}), opened, nil

	case value.Map:
		m := v.MapVal()
		out := value.NewOrderedMap()
		var opened []LargeValueStore
		for _, k := range m.Keys() {
			child, _ := m.Get(k)
			sp, nested, err := SpillLists(child, cfg)
			if err != nil {
				return v, opened, err
			}
			out.Set(k, sp)
			opened = append(opened, nested...)
		}
		return value.Of(out), opened, nil

	default:
		return v, nil, nil
	}
}
