package importer

import (
	"errors"
	"fmt"
)

var ErrRowOutOfRange = errors.New("row index out of range")

// Batch is the in-progress set of resolved rows behind the preview grid.
// Edits mark per-field overrides and update the row in place; they never
// re-run resolution on sibling fields.
type Batch struct {
	mapping  Mapping
	resolver *Resolver
	rows     []ResolvedRow
}

// NewBatch resolves every document row once and returns the editable batch.
func NewBatch(doc *Document, m Mapping, rs *Resolver) *Batch {
	b := &Batch{mapping: m, resolver: rs}
	for _, row := range doc.Rows {
		b.rows = append(b.rows, rs.Resolve(row, m, nil))
	}
	return b
}

// Len returns the number of rows still in the batch.
func (b *Batch) Len() int {
	return len(b.rows)
}

// Rows returns the current resolved rows. The slice is live; callers must
// go through the setters to edit.
func (b *Batch) Rows() []ResolvedRow {
	return b.rows
}

// Row returns a pointer to row i.
func (b *Batch) Row(i int) (*ResolvedRow, error) {
	if i < 0 || i >= len(b.rows) {
		return nil, fmt.Errorf("%w: %d", ErrRowOutOfRange, i)
	}
	return &b.rows[i], nil
}

// Mapping returns the column mapping the batch was resolved with.
func (b *Batch) Mapping() Mapping {
	return b.mapping
}

func (b *Batch) SetAmount(i int, v float64) error {
	r, err := b.Row(i)
	if err != nil {
		return err
	}
	r.Amount = v
	r.setOverride(FieldAmount)
	return nil
}

func (b *Batch) SetDate(i int, date string) error {
	r, err := b.Row(i)
	if err != nil {
		return err
	}
	r.Date = date
	r.setOverride(FieldDate)
	return nil
}

func (b *Batch) SetDescription(i int, desc string) error {
	r, err := b.Row(i)
	if err != nil {
		return err
	}
	r.Description = desc
	r.setOverride(FieldDescription)
	return nil
}

func (b *Batch) SetType(i int, operationType string) error {
	r, err := b.Row(i)
	if err != nil {
		return err
	}
	r.Type = operationType
	r.setOverride(FieldType)
	return nil
}

func (b *Batch) SetAccount(i, accountID int) error {
	r, err := b.Row(i)
	if err != nil {
		return err
	}
	r.AccountID = accountID
	r.setOverride(FieldAccount)
	return nil
}

func (b *Batch) SetCategory(i, categoryID int) error {
	r, err := b.Row(i)
	if err != nil {
		return err
	}
	r.CategoryID = categoryID
	r.setOverride(FieldCategory)
	return nil
}

// Delete removes row i from the batch. There is no row-level undo.
func (b *Batch) Delete(i int) error {
	if i < 0 || i >= len(b.rows) {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, i)
	}
	b.rows = append(b.rows[:i], b.rows[i+1:]...)
	return nil
}

// ReResolve recomputes row i from its raw cells, preserving every field
// the user overrode.
func (b *Batch) ReResolve(i int) error {
	r, err := b.Row(i)
	if err != nil {
		return err
	}
	b.rows[i] = b.resolver.Resolve(r.Raw, b.mapping, r)
	return nil
}

// ReResolveAll recomputes every row, preserving overrides.
func (b *Batch) ReResolveAll() {
	for i := range b.rows {
		b.rows[i] = b.resolver.Resolve(b.rows[i].Raw, b.mapping, &b.rows[i])
	}
}
