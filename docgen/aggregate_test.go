package docgen

import "testing"

func TestAggregate_Numeric(t *testing.T) {
	values := []any{"1", 2, 3.5}

	if got := Aggregate(AggregateSum, values); got != "6.5" {
		t.Fatalf("SUM = %q", got)
	}
	if got := Aggregate(AggregateAvg, []any{"1", "2", "3"}); got != "2" {
		t.Fatalf("AVG = %q", got)
	}
	if got := Aggregate(AggregateMin, values); got != "1" {
		t.Fatalf("MIN = %q", got)
	}
	if got := Aggregate(AggregateMax, values); got != "3.5" {
		t.Fatalf("MAX = %q", got)
	}
	if got := Aggregate(AggregateCount, values); got != "3" {
		t.Fatalf("COUNT = %q", got)
	}
}

func TestAggregate_NonNumericCoercion(t *testing.T) {
	// Non-numeric cells coerce to 0 for sums and averages.
	if got := Aggregate(AggregateSum, []any{"5", "n/a", "2"}); got != "7" {
		t.Fatalf("SUM with non-numeric = %q", got)
	}
	if got := Aggregate(AggregateAvg, []any{"6", "oops"}); got != "3" {
		t.Fatalf("AVG with non-numeric = %q", got)
	}
}

func TestAggregate_MinMaxMixedColumn(t *testing.T) {
	// A mixed column coerces non-numeric cells to 0, so MIN can report 0
	// even though no cell holds it.
	if got := Aggregate(AggregateMin, []any{"5", "pending", "2"}); got != "0" {
		t.Fatalf("MIN mixed = %q", got)
	}
	if got := Aggregate(AggregateMax, []any{"5", "pending", "2"}); got != "5" {
		t.Fatalf("MAX mixed = %q", got)
	}
}

func TestAggregate_MinMaxLexicographicFallback(t *testing.T) {
	// A column with no numeric cell at all compares lexicographically.
	values := []any{"banana", "apple", "cherry"}
	if got := Aggregate(AggregateMin, values); got != "apple" {
		t.Fatalf("MIN lexicographic = %q", got)
	}
	if got := Aggregate(AggregateMax, values); got != "cherry" {
		t.Fatalf("MAX lexicographic = %q", got)
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	numeric := []AggregateKind{AggregateSum, AggregateAvg, AggregateMin, AggregateMax}
	for _, kind := range numeric {
		if got := Aggregate(kind, nil); got != "0" {
			t.Fatalf("%s on empty input = %q, want \"0\"", kind, got)
		}
	}
	if got := Aggregate(AggregateCount, nil); got != "0" {
		t.Fatalf("COUNT on empty input = %q", got)
	}
	if got := Aggregate(AggregateList, nil); got != "" {
		t.Fatalf("LIST on empty input = %q", got)
	}
	if got := Aggregate(AggregateListDistinct, nil); got != "" {
		t.Fatalf("LIST_DISTINCT on empty input = %q", got)
	}
}

func TestAggregate_ListNormalization(t *testing.T) {
	got := Aggregate(AggregateList, []any{"Spare Part", " Motor ", ""})
	if got != "sparepart_motor" {
		t.Fatalf("LIST = %q", got)
	}
}

func TestAggregate_ListDistinct(t *testing.T) {
	// Values that normalize to the same token collapse to one entry.
	got := Aggregate(AggregateListDistinct, []any{"A", "a", " A "})
	if got != "a" {
		t.Fatalf("LIST_DISTINCT = %q", got)
	}
}

func TestAggregate_CountDistinct(t *testing.T) {
	got := Aggregate(AggregateCountDistinct, []any{"x", "x", "y", "", nil})
	if got != "2" {
		t.Fatalf("COUNT_DISTINCT = %q", got)
	}
}

func TestParseAggregateKind(t *testing.T) {
	if kind, ok := ParseAggregateKind("count_distinct"); !ok || kind != AggregateCountDistinct {
		t.Fatalf("expected COUNT_DISTINCT, got %v %v", kind, ok)
	}
	if _, ok := ParseAggregateKind("median"); ok {
		t.Fatalf("expected unknown kind to fail")
	}
}
