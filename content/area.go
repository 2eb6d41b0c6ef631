package content

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/nanovc/nanovc-go/repopath"
)

// Entry is one path/content pair as returned by Area.Entries.
type Entry[T Content] struct {
	Path  repopath.Path
	Value T
}

// AbsolutePath implements repopath.Matcher so entries can be filtered
// with a repopath.Pattern directly.
func (e Entry[T]) AbsolutePath() repopath.Path {
	return e.Path
}

// Area is an ordered mapping from absolute repopath.Path to Content of
// type T. Put/Get/Remove are keyed by path; Entries enumerates in the
// area's natural order (insertion order or sorted, depending on the
// concrete implementation); AsListString always sorts by absolute path
// regardless of enumeration order.
type Area[T Content] interface {
	// Put stores content at path, normalizing path to absolute first.
	// Putting the zero value of a nilable T (nil slice, nil interface)
	// removes the path instead of storing it.
	Put(path repopath.Path, c T)
	Get(path repopath.Path) (T, bool)
	Remove(path repopath.Path)
	Has(path repopath.Path) bool
	Entries() []Entry[T]
	ReplaceAll(entries []Entry[T])
	AsListString() string
}

func isNilContent(c any) bool {
	rv := reflect.ValueOf(c)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

func asListString[T Content](entries []Entry[T]) string {
	sorted := make([]Entry[T], len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Path.Absolute().String() < sorted[j].Path.Absolute().String()
	})

	lines := make([]string, len(sorted))
	for i, e := range sorted {
		lines[i] = fmt.Sprintf("%s : %s", e.Path.Absolute().String(), string(e.Value.AsBytes()))
	}
	return strings.Join(lines, "\n")
}

// InsertionOrdered is a content area whose Entries enumerate in the
// order paths were first put; putting an already-present path again
// replaces its value but keeps its position.
type InsertionOrdered[T Content] struct {
	order  []string
	values map[string]T
}

// NewInsertionOrdered returns an empty insertion-ordered content area.
func NewInsertionOrdered[T Content]() *InsertionOrdered[T] {
	return &InsertionOrdered[T]{values: make(map[string]T)}
}

func (a *InsertionOrdered[T]) Put(path repopath.Path, c T) {
	key := path.Absolute().String()
	if isNilContent(c) {
		a.remove(key)
		return
	}
	if _, exists := a.values[key]; !exists {
		a.order = append(a.order, key)
	}
	a.values[key] = c
}

func (a *InsertionOrdered[T]) Get(path repopath.Path) (T, bool) {
	v, ok := a.values[path.Absolute().String()]
	return v, ok
}

func (a *InsertionOrdered[T]) Remove(path repopath.Path) {
	a.remove(path.Absolute().String())
}

func (a *InsertionOrdered[T]) remove(key string) {
	if _, exists := a.values[key]; !exists {
		return
	}
	delete(a.values, key)
	for i, k := range a.order {
		if k == key {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

func (a *InsertionOrdered[T]) Has(path repopath.Path) bool {
	_, ok := a.values[path.Absolute().String()]
	return ok
}

func (a *InsertionOrdered[T]) Entries() []Entry[T] {
	entries := make([]Entry[T], len(a.order))
	for i, key := range a.order {
		entries[i] = Entry[T]{Path: repopath.At(key), Value: a.values[key]}
	}
	return entries
}

func (a *InsertionOrdered[T]) ReplaceAll(entries []Entry[T]) {
	a.order = nil
	a.values = make(map[string]T, len(entries))
	for _, e := range entries {
		a.Put(e.Path, e.Value)
	}
}

func (a *InsertionOrdered[T]) AsListString() string {
	return asListString(a.Entries())
}

// Sorted is a content area whose Entries always enumerate in
// lexicographic absolute-path order, regardless of put order.
type Sorted[T Content] struct {
	values map[string]T
}

// NewSorted returns an empty path-sorted content area.
func NewSorted[T Content]() *Sorted[T] {
	return &Sorted[T]{values: make(map[string]T)}
}

func (a *Sorted[T]) Put(path repopath.Path, c T) {
	key := path.Absolute().String()
	if isNilContent(c) {
		delete(a.values, key)
		return
	}
	a.values[key] = c
}

func (a *Sorted[T]) Get(path repopath.Path) (T, bool) {
	v, ok := a.values[path.Absolute().String()]
	return v, ok
}

func (a *Sorted[T]) Remove(path repopath.Path) {
	delete(a.values, path.Absolute().String())
}

func (a *Sorted[T]) Has(path repopath.Path) bool {
	_, ok := a.values[path.Absolute().String()]
	return ok
}

func (a *Sorted[T]) Entries() []Entry[T] {
	keys := make([]string, 0, len(a.values))
	for k := range a.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]Entry[T], len(keys))
	for i, k := range keys {
		entries[i] = Entry[T]{Path: repopath.At(k), Value: a.values[k]}
	}
	return entries
}

func (a *Sorted[T]) ReplaceAll(entries []Entry[T]) {
	a.values = make(map[string]T, len(entries))
	for _, e := range entries {
		a.Put(e.Path, e.Value)
	}
}

func (a *Sorted[T]) AsListString() string {
	return asListString(a.Entries())
}
