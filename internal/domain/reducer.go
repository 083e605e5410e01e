package domain

import (
	"reflect"
	"strings"
	"sync"
)

// Op is a requested change to an invoice. Ops are values; Reduce applies them.
type Op interface {
	apply(inv Invoice) Invoice
}

// Reduce returns the invoice that results from applying op to inv. inv is
// never modified. A nil op returns an unchanged copy.
func Reduce(inv Invoice, op Op) Invoice {
	next := inv.Clone()
	if op == nil {
		return next
	}
	return op.apply(next)
}

// SetField assigns a scalar field by its JSON name. A value whose type does not
// match the field, an unknown name, or productLines is ignored.
type SetField struct {
	Name  string
	Value any
}

func (o SetField) apply(inv Invoice) Invoice {
	idx, ok := scalarFields()[o.Name]
	if !ok {
		return inv
	}
	f := reflect.ValueOf(&inv).Elem().Field(idx)
	switch f.Kind() {
	case reflect.String:
		if s, ok := o.Value.(string); ok {
			f.SetString(s)
		}
	case reflect.Float64:
		if n, ok := numeric(o.Value); ok {
			f.SetFloat(n)
		}
	}
	return inv
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// UpdateLineItem edits one column of the row at Index. Quantity and rate go
// through CommitAmount; description is stored verbatim.
type UpdateLineItem struct {
	Index int
	Field LineField
	Value string
}

func (o UpdateLineItem) apply(inv Invoice) Invoice {
	if o.Index < 0 || o.Index >= len(inv.ProductLines) {
		return inv
	}
	l := &inv.ProductLines[o.Index]
	switch o.Field {
	case LineDescription:
		l.Description = o.Value
	case LineQuantity:
		l.Quantity = CommitAmount(o.Value)
	case LineRate:
		l.Rate = CommitAmount(o.Value)
	}
	return inv
}

// RemoveLineItem drops the row at Index; later rows shift down.
type RemoveLineItem struct {
	Index int
}

func (o RemoveLineItem) apply(inv Invoice) Invoice {
	if o.Index < 0 || o.Index >= len(inv.ProductLines) {
		return inv
	}
	lines := make([]LineItem, 0, len(inv.ProductLines)-1)
	lines = append(lines, inv.ProductLines[:o.Index]...)
	inv.ProductLines = append(lines, inv.ProductLines[o.Index+1:]...)
	return inv
}

// AddLineItem appends a blank row.
type AddLineItem struct{}

func (AddLineItem) apply(inv Invoice) Invoice {
	inv.ProductLines = append(inv.ProductLines, NewLineItem())
	return inv
}

var (
	fieldsOnce  sync.Once
	fieldsIndex map[string]int
	fieldNames  []string
)

// scalarFields maps JSON names of settable fields to struct field indexes.
func scalarFields() map[string]int {
	fieldsOnce.Do(func() {
		fieldsIndex = make(map[string]int)
		t := reflect.TypeOf(Invoice{})
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			k := f.Type.Kind()
			if k != reflect.String && k != reflect.Float64 {
				continue
			}
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			fieldsIndex[name] = i
			fieldNames = append(fieldNames, name)
		}
	})
	return fieldsIndex
}

// FieldNames lists the scalar fields SetField accepts, in declaration order.
func FieldNames() []string {
	scalarFields()
	out := make([]string, len(fieldNames))
	copy(out, fieldNames)
	return out
}

// IsNumericField reports whether name is a numeric scalar field.
func IsNumericField(name string) bool {
	idx, ok := scalarFields()[name]
	return ok && reflect.TypeOf(Invoice{}).Field(idx).Type.Kind() == reflect.Float64
}
