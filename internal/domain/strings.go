package domain

import "reflect"

// MapStrings returns a copy of inv with fn applied to every string value,
// line item text included. Numeric fields are left alone.
func MapStrings(inv Invoice, fn func(string) string) Invoice {
	out := inv.Clone()
	v := reflect.ValueOf(&out).Elem()
	for i := 0; i < v.NumField(); i++ {
		if f := v.Field(i); f.Kind() == reflect.String {
			f.SetString(fn(f.String()))
		}
	}
	for i := range out.ProductLines {
		l := &out.ProductLines[i]
		l.Description = fn(l.Description)
		l.Quantity = fn(l.Quantity)
		l.Rate = fn(l.Rate)
	}
	return out
}
