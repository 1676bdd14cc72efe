package form

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrInvalidIndex = errors.New("invalid collection index")
	// ErrStaleEdit means the row being edited moved or vanished since it was opened.
	ErrStaleEdit = errors.New("edited row is no longer at its index")
	ErrNotOpen   = errors.New("sub-form is not open")
)

// Subform is the secondary form a collection reuses for add and edit.
type Subform[T any] interface {
	Reset()
	Load(item T)
}

type entry[T any] struct {
	key  string
	item T
}

// Collection is an ordered list of child records edited through one
// secondary form. List order is display order and submission order.
type Collection[T any] struct {
	name    string
	sub     Subform[T]
	entries []entry[T]

	visible bool
	editKey string
	editIdx int
}

// NewCollection builds a collection seeded with items. sub may be nil.
func NewCollection[T any](name string, sub Subform[T], items ...T) *Collection[T] {
	c := &Collection[T]{name: name, sub: sub, editIdx: -1}
	for _, it := range items {
		c.entries = append(c.entries, entry[T]{key: uuid.NewString(), item: it})
	}
	return c
}

func (c *Collection[T]) Name() string  { return c.name }
func (c *Collection[T]) Len() int      { return len(c.entries) }
func (c *Collection[T]) Visible() bool { return c.visible }

// Editing returns the index being edited, if the sub-form is in edit mode.
func (c *Collection[T]) Editing() (int, bool) {
	if c.editKey == "" {
		return -1, false
	}
	return c.editIdx, true
}

// Items returns the records in order. The slice is never nil.
func (c *Collection[T]) Items() []T {
	out := make([]T, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.item
	}
	return out
}

// Keys returns the stable per-record keys in order.
func (c *Collection[T]) Keys() []string {
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.key
	}
	return out
}

// At returns the record at i.
func (c *Collection[T]) At(i int) (T, error) {
	if i < 0 || i >= len(c.entries) {
		var zero T
		return zero, fmt.Errorf("%s[%d]: %w", c.name, i, ErrInvalidIndex)
	}
	return c.entries[i].item, nil
}

// OpenForAdd resets the sub-form and shows it in add mode.
func (c *Collection[T]) OpenForAdd() {
	c.clearEdit()
	if c.sub != nil {
		c.sub.Reset()
	}
	c.visible = true
}

// OpenForEdit loads the record at i into the sub-form and shows it.
func (c *Collection[T]) OpenForEdit(i int) error {
	item, err := c.At(i)
	if err != nil {
		return err
	}
	c.editIdx = i
	c.editKey = c.entries[i].key
	if c.sub != nil {
		c.sub.Load(item)
	}
	c.visible = true
	return nil
}

// Save replaces the edited record in place, or appends in add mode, then
// resets and hides the sub-form.
func (c *Collection[T]) Save(item T) error {
	if !c.visible {
		return fmt.Errorf("%s: %w", c.name, ErrNotOpen)
	}
	if c.editKey != "" {
		i := c.editIdx
		if i < 0 || i >= len(c.entries) || c.entries[i].key != c.editKey {
			return fmt.Errorf("%s[%d]: %w", c.name, i, ErrStaleEdit)
		}
		c.entries[i].item = item
	} else {
		c.entries = append(c.entries, entry[T]{key: uuid.NewString(), item: item})
	}
	c.close()
	return nil
}

// Cancel discards the sub-form contents and hides it.
func (c *Collection[T]) Cancel() { c.close() }

// Delete removes the record at i once confirm approves it. It reports
// whether anything was removed.
func (c *Collection[T]) Delete(i int, confirm func(T) bool) (bool, error) {
	item, err := c.At(i)
	if err != nil {
		return false, err
	}
	if confirm == nil || !confirm(item) {
		return false, nil
	}
	key := c.entries[i].key
	c.entries = append(c.entries[:i:i], c.entries[i+1:]...)

	switch {
	case key == c.editKey:
		c.close()
	case c.editKey != "" && c.editIdx > i:
		c.editIdx--
	}
	return true, nil
}

func (c *Collection[T]) clearEdit() {
	c.editKey = ""
	c.editIdx = -1
}

func (c *Collection[T]) close() {
	c.clearEdit()
	c.visible = false
	if c.sub != nil {
		c.sub.Reset()
	}
}
