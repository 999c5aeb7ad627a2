package store

import (
	"bufio"
	"fmt"
	"os"

	"github.com/oxhq/vmatch/internal/value"
)

// diskStore spills a candidate collection to a temp file, one JSON value
// per line (spec.md §4.2), and records the byte offset of each line so
// Get(i) can seek straight to it. Grounded on the teacher's
// core.AtomicWriter temp-file-then-finalize pattern (core/atomicwriter.go)
// — simplified here to a private scratch file with no rename, since
// nothing else ever observes this file by path.
type diskStore struct {
	file    *os.File
	offsets []int64
	closed  bool
}

func newDiskStore(items []value.Value) (*diskStore, error) {
	f, err := os.CreateTemp("", "vmatch-store-*.jsonl")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	ds := &diskStore{file: f, offsets: make([]int64, 0, len(items))}
	w := bufio.NewWriter(f)
	var offset int64
	for _, v := range items {
		line := v.JSONString()
		if line == "" {
			line = "null"
		}
		ds.offsets = append(ds.offsets, offset)
		n, err := w.WriteString(line)
		if err != nil {
			f.Close()
			os.Remove(f.Name())
			return nil, fmt.Errorf("%w: %v", ErrIO, err)
		}
		offset += int64(n)
		if err := w.WriteByte('\n'); err != nil {
			f.Close()
			os.Remove(f.Name())
			return nil, fmt.Errorf("%w: %v", ErrIO, err)
		}
		offset++
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return ds, nil
}

func (s *diskStore) Size() int {
	return len(s.offsets)
}

func (s *diskStore) Get(i int) (value.Value, error) {
	if s.closed {
		return value.Value{}, ErrClosed
	}
	if i < 0 || i >= len(s.offsets) {
		return value.Value{}, ErrOutOfRange
	}
	if _, err := s.file.Seek(s.offsets[i], 0); err != nil {
		return value.Value{}, fmt.Errorf("%w: %v", ErrIO, err)
	}
	r := bufio.NewReader(s.file)
	line, err := r.ReadBytes('\n')
	if err != nil && len(line) == 0 {
		return value.Value{}, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return value.ParseJSON(string(trimNewline(line)))
}

func trimNewline(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\n' {
		return b[:n-1]
	}
	return b
}

func (s *diskStore) Iterator() Iterator {
	f, err := os.Open(s.file.Name())
	if err != nil {
		return &errIterator{err: fmt.Errorf("%w: %v", ErrIO, err)}
	}
	return &diskIterator{store: s, file: f, r: bufio.NewReader(f)}
}

func (s *diskStore) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	name := s.file.Name()
	s.file.Close()
	os.Remove(name)
	return nil
}

// diskIterator owns its own file handle, independent of the parent
// store's, so two concurrent iterators (or an iterator racing a Get)
// don't fight over one cursor position.
type diskIterator struct {
	store *diskStore
	file  *os.File
	r     *bufio.Reader
	cur   value.Value
	err   error
	done  bool
}

func (it *diskIterator) Next() bool {
	if it.done || it.err != nil || it.store.closed {
		return false
	}
	line, err := it.r.ReadBytes('\n')
	if len(line) == 0 {
		it.done = true
		it.file.Close()
		return false
	}
	v, perr := value.ParseJSON(string(trimNewline(line)))
	if perr != nil {
		it.err = perr
		it.done = true
		it.file.Close()
		return false
	}
	it.cur = v
	if err != nil {
		// last line, no trailing newline read error (EOF) — still valid
		it.done = true
	}
	return true
}

func (it *diskIterator) Value() value.Value { return it.cur }
func (it *diskIterator) Err() error         { return it.err }

type errIterator struct{ err error }

func (it *errIterator) Next() bool         { return false }
func (it *errIterator) Value() value.Value { return value.Value{} }
func (it *errIterator) Err() error         { return it.err }
