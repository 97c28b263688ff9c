package docgen

import "testing"

func TestParseExpression(t *testing.T) {
	cases := []struct {
		name string
		body string
		want Expression
	}{
		{"input", "~input:ORDERNO", Expression{Kind: ExprInput, Column: "ORDERNO"}},
		{"config", "~config:app.company_name", Expression{Kind: ExprConfig, App: "app", Key: "company_name"}},
		{"translate", "~translate:orders.title", Expression{Kind: ExprTranslate, App: "orders", Key: "title"}},
		{"formula", "~formula:PRICE*QTY", Expression{Kind: ExprFormula, Formula: "PRICE*QTY"}},
		{"file", "~file:name", Expression{Kind: ExprFile, Key: "name"}},
		{"named", "positions", Expression{Kind: ExprNamed, Placeholder: "positions"}},
		{"data current row", "~data:product", Expression{Kind: ExprData, Column: "product"}},
		{"data named row", "~data:positions.product", Expression{Kind: ExprData, Placeholder: "positions", Column: "product"}},
		{"data aggregate", "~data:positions.qty.SUM", Expression{Kind: ExprData, Placeholder: "positions", Column: "qty", Aggregate: AggregateSum}},
		{"data aggregate lowercase", "~data:positions.qty.sum", Expression{Kind: ExprData, Placeholder: "positions", Column: "qty", Aggregate: AggregateSum}},
		{"data current aggregate", "~data:qty.COUNT", Expression{Kind: ExprData, Column: "qty", Aggregate: AggregateCount}},
		{"trailing kind binds as aggregate", "~data:amount.MAX", Expression{Kind: ExprData, Column: "amount", Aggregate: AggregateMax}},
		{"empty body", "", Expression{Kind: ExprInvalid}},
		{"missing namespace value", "~input:", Expression{Kind: ExprInvalid}},
		{"unknown namespace", "~image:logo", Expression{Kind: ExprInvalid}},
		{"config without key", "~config:app", Expression{Kind: ExprInvalid}},
		{"data with empty segment", "~data:positions..qty", Expression{Kind: ExprInvalid}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := parseExpression(tc.body)
			if got != tc.want {
				t.Fatalf("parseExpression(%q) = %+v, want %+v", tc.body, got, tc.want)
			}
		})
	}
}

func TestScanTemplate_Unterminated(t *testing.T) {
	segments := scanTemplate("before [#~input:ORDERNO")
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].literal != "before " {
		t.Fatalf("unexpected literal %q", segments[0].literal)
	}
	if !segments[1].token || segments[1].expr.Kind != ExprInvalid {
		t.Fatalf("expected invalid token segment, got %+v", segments[1])
	}
}

func TestScanTemplate_LiteralOnly(t *testing.T) {
	segments := scanTemplate("<p>no tokens here</p>")
	if len(segments) != 1 || segments[0].token {
		t.Fatalf("expected single literal segment, got %+v", segments)
	}
}

func TestReferencedPlaceholders(t *testing.T) {
	refs := referencedPlaceholders("[#positions#] sum [#~data:totals.amount.SUM#] [#~input:ORDERNO#] [#~data:qty#]")
	if !refs["positions"] || !refs["totals"] {
		t.Fatalf("expected positions and totals referenced, got %v", refs)
	}
	if len(refs) != 2 {
		t.Fatalf("expected exactly 2 references, got %v", refs)
	}
}

func TestHasRowScopedTokens(t *testing.T) {
	cases := []struct {
		tpl  string
		want bool
	}{
		{"order-[#~input:ORDERNO#]", true},
		{"sum-[#~formula:A+B#]", true},
		{"rows-[#~data:positions.product#]", true},
		{"static-name", false},
		{"[#~config:app.prefix#]-report", false},
		{"[#~translate:app.report#]", false},
	}
	for _, tc := range cases {
		if got := hasRowScopedTokens(tc.tpl); got != tc.want {
			t.Fatalf("hasRowScopedTokens(%q) = %v, want %v", tc.tpl, got, tc.want)
		}
	}
}
