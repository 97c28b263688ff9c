package docgen

import (
	"context"
	"strings"
	"testing"
)

type stubLayout struct {
	name string
	data map[string]any
}

func (l *stubLayout) Execute(name string, data map[string]any) (string, error) {
	l.name = name
	l.data = data
	return "<html>" + stringify(data["table"]) + "</html>", nil
}

func exportDoc(export *ExportConfig) DocumentConfig {
	return DocumentConfig{Name: "export", Export: export}
}

func TestRenderExport_Table(t *testing.T) {
	source := NewMemorySource()
	source.Load("order_items", []Row{
		{"product": "<b>widget</b>", "qty": 2},
		{"product": "gadget", "qty": 1},
	})
	r := newTestRenderer(source)

	units, err := r.Render(context.Background(), exportDoc(&ExportConfig{
		Query: QuerySpec{Resource: "order_items"},
		Columns: []ExportColumn{
			{Name: "product", Label: "Product"},
			{Name: "qty"},
		},
		Header: "<h1>[#~config:app.company_name#]</h1>",
		Footer: "<footer>end</footer>",
	}), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	body := units[0].Body

	if !strings.Contains(body, "<tr><th>Product</th><th>qty</th></tr>") {
		t.Fatalf("missing header row in %q", body)
	}
	// Cell values are inserted raw, markup included.
	if !strings.Contains(body, "<td><b>widget</b></td><td>2</td>") {
		t.Fatalf("missing raw cell values in %q", body)
	}
	if !strings.HasPrefix(body, "<h1>ACME GmbH</h1>") {
		t.Fatalf("header not rendered in %q", body)
	}
	if !strings.HasSuffix(body, "<footer>end</footer>") {
		t.Fatalf("footer not rendered in %q", body)
	}
}

func TestRenderExport_FilterLegendOmittedWhenNoValues(t *testing.T) {
	source := NewMemorySource()
	source.Load("order_items", []Row{{"product": "widget"}})
	r := newTestRenderer(source)

	units, err := r.Render(context.Background(), exportDoc(&ExportConfig{
		Query: QuerySpec{
			Resource: "order_items",
			Filters: FilterGroup{Filters: []Filter{
				{Field: "status", Label: "Status", Value: ""},
				{Field: "orderno", Label: "Order", Value: "   "},
			}},
		},
		Columns: []ExportColumn{{Name: "product"}},
	}), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(units[0].Body, "filter-legend") {
		t.Fatalf("expected legend omitted, got %q", units[0].Body)
	}
}

func TestRenderExport_FilterLegendListsActiveCriteria(t *testing.T) {
	source := NewMemorySource()
	source.Load("order_items", []Row{{"product": "widget", "status": "open"}})
	r := newTestRenderer(source)

	units, err := r.Render(context.Background(), exportDoc(&ExportConfig{
		Query: QuerySpec{
			Resource: "order_items",
			Filters: FilterGroup{Filters: []Filter{
				{Field: "status", Label: "Status", Value: "open"},
				{Field: "orderno", Value: ""},
			}},
		},
		Columns: []ExportColumn{{Name: "product"}},
	}), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	body := units[0].Body
	if !strings.Contains(body, "<li>Status: open</li>") {
		t.Fatalf("missing legend entry in %q", body)
	}
	if strings.Contains(body, "orderno") {
		t.Fatalf("empty filter should not appear in legend: %q", body)
	}
}

func TestRenderExport_Layout(t *testing.T) {
	source := NewMemorySource()
	source.Load("order_items", []Row{{"product": "widget"}, {"product": "gadget"}})
	layout := &stubLayout{}
	r := newTestRenderer(source)
	r.Layout = layout

	units, err := r.Render(context.Background(), exportDoc(&ExportConfig{
		Query:   QuerySpec{Resource: "order_items"},
		Columns: []ExportColumn{{Name: "product"}},
		Title:   "Items",
		Layout:  "report",
	}), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if layout.name != "report" {
		t.Fatalf("layout name = %q", layout.name)
	}
	if layout.data["title"] != "Items" {
		t.Fatalf("layout title = %v", layout.data["title"])
	}
	if layout.data["row_count"] != 2 {
		t.Fatalf("layout row_count = %v", layout.data["row_count"])
	}
	if !strings.HasPrefix(units[0].Body, "<html><table>") {
		t.Fatalf("layout output = %q", units[0].Body)
	}
}

func TestRenderExport_QueryFailure(t *testing.T) {
	r := newTestRenderer(NewMemorySource())

	_, err := r.Render(context.Background(), exportDoc(&ExportConfig{
		Query:   QuerySpec{Resource: "missing"},
		Columns: []ExportColumn{{Name: "product"}},
	}), nil)
	if KindFromError(err) != KindQuery {
		t.Fatalf("expected query error, got %v", err)
	}
}
