package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestCommitAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"3.", "3."},
		{"2.50", "2.50"},
		{"2.0", "2.0"},
		{"0.0", "0.0"},
		{"20", "20"},
		{"2.5", "2.5"},
		{"007", "7"},
		{"12abc", "12"},
		{"abc", "0"},
		{"", "0"},
		{"0", "0"},
		{"-5", "0"},
		{"1e3", "1000"},
		{" 4", "4"},
	}

	for _, tt := range tests {
		if got := CommitAmount(tt.in); got != tt.want {
			t.Errorf("CommitAmount(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUpdateLineItemKeepsInProgressQuantity(t *testing.T) {
	inv := Invoice{ProductLines: []LineItem{{Quantity: "1", Rate: "1"}}}

	next := Reduce(inv, UpdateLineItem{Index: 0, Field: LineQuantity, Value: "3."})
	if got := next.ProductLines[0].Quantity; got != "3." {
		t.Fatalf("expected quantity %q, got %q", "3.", got)
	}

	next = Reduce(next, UpdateLineItem{Index: 0, Field: LineQuantity, Value: "3.5"})
	if got := next.ProductLines[0].Quantity; got != "3.5" {
		t.Fatalf("expected quantity %q, got %q", "3.5", got)
	}

	if inv.ProductLines[0].Quantity != "1" {
		t.Fatalf("original invoice was modified: %q", inv.ProductLines[0].Quantity)
	}
}

func TestUpdateLineItemDescriptionVerbatim(t *testing.T) {
	inv := Invoice{ProductLines: []LineItem{{}}}
	next := Reduce(inv, UpdateLineItem{Index: 0, Field: LineDescription, Value: "  gift box\nred  "})
	if got := next.ProductLines[0].Description; got != "  gift box\nred  " {
		t.Fatalf("expected verbatim description, got %q", got)
	}
}

func TestUpdateLineItemOutOfRange(t *testing.T) {
	inv := Invoice{ProductLines: []LineItem{{Quantity: "1"}}}
	next := Reduce(inv, UpdateLineItem{Index: 3, Field: LineQuantity, Value: "9"})
	if !reflect.DeepEqual(inv, next) {
		t.Fatalf("expected no change, got %+v", next)
	}
}

func TestRemoveLineItemPreservesOrder(t *testing.T) {
	inv := Invoice{ProductLines: []LineItem{
		{Description: "a"}, {Description: "b"}, {Description: "c"}, {Description: "d"},
	}}

	next := Reduce(inv, RemoveLineItem{Index: 1})

	if len(next.ProductLines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(next.ProductLines))
	}
	var got []string
	for _, l := range next.ProductLines {
		got = append(got, l.Description)
	}
	if want := []string{"a", "c", "d"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if len(inv.ProductLines) != 4 || inv.ProductLines[1].Description != "b" {
		t.Fatalf("original invoice was modified: %+v", inv.ProductLines)
	}
}

func TestAddLineItemAppendsBlank(t *testing.T) {
	inv := Invoice{ProductLines: []LineItem{{Description: "a"}}}
	next := Reduce(inv, AddLineItem{})
	if len(next.ProductLines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(next.ProductLines))
	}
	if next.ProductLines[1] != NewLineItem() {
		t.Fatalf("expected blank line, got %+v", next.ProductLines[1])
	}
	if len(inv.ProductLines) != 1 {
		t.Fatalf("original invoice was modified")
	}
}

func TestSetFieldTypeGuard(t *testing.T) {
	inv := DefaultInvoice()

	tests := []struct {
		name  string
		op    SetField
		check func(Invoice) bool
	}{
		{"string field", SetField{Name: "clientName", Value: "陳小姐"}, func(i Invoice) bool { return i.ClientName == "陳小姐" }},
		{"numeric field", SetField{Name: "logoWidth", Value: 140}, func(i Invoice) bool { return i.LogoWidth == 140 }},
		{"number into string field", SetField{Name: "clientName", Value: 5}, func(i Invoice) bool { return i.ClientName == inv.ClientName }},
		{"string into numeric field", SetField{Name: "logoWidth", Value: "140"}, func(i Invoice) bool { return i.LogoWidth == inv.LogoWidth }},
		{"unknown field", SetField{Name: "nope", Value: "x"}, func(i Invoice) bool { return reflect.DeepEqual(i, inv) }},
		{"line items not settable", SetField{Name: "productLines", Value: "x"}, func(i Invoice) bool { return reflect.DeepEqual(i, inv) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reduce(inv, tt.op); !tt.check(got) {
				t.Fatalf("unexpected result %+v", got)
			}
		})
	}
}

func TestFieldNames(t *testing.T) {
	names := FieldNames()
	if names[0] != "logo" || names[1] != "logoWidth" {
		t.Fatalf("unexpected leading names %v", names[:2])
	}
	for _, n := range names {
		if n == "productLines" {
			t.Fatal("productLines must not be a scalar field")
		}
	}
	if !IsNumericField("logoWidth") || IsNumericField("heading") {
		t.Fatal("numeric field detection is wrong")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	inv := DefaultInvoice()
	inv = Reduce(inv, SetField{Name: "heading", Value: "報價單"})
	inv = Reduce(inv, UpdateLineItem{Index: 1, Field: LineRate, Value: "2.50"})
	inv = Reduce(inv, AddLineItem{})
	inv = Reduce(inv, UpdateLineItem{Index: 2, Field: LineDescription, Value: "third"})

	data, err := json.Marshal(inv)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Invoice
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(inv, back) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", inv, back)
	}
}

func TestMapStringsSkipsNumbers(t *testing.T) {
	inv := Invoice{Heading: "a", LogoWidth: 50, ProductLines: []LineItem{{Description: "b", Quantity: "1", Rate: "2"}}}
	out := MapStrings(inv, func(s string) string { return "<" + s + ">" })

	if out.Heading != "<a>" || out.ClientName != "<>" {
		t.Fatalf("string fields not mapped: %+v", out)
	}
	if out.LogoWidth != 50 {
		t.Fatalf("numeric field changed: %v", out.LogoWidth)
	}
	if out.ProductLines[0].Description != "<b>" {
		t.Fatalf("line item not mapped: %+v", out.ProductLines[0])
	}
	if inv.ProductLines[0].Description != "b" {
		t.Fatal("original invoice was modified")
	}
}
