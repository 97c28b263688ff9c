package docgeni18n

import "testing"

func TestTranslator_Lookup(t *testing.T) {
	translator, err := NewStatic(map[string]map[string]string{
		"en": {"orders.title": "Order Overview"},
	}, "en")
	if err != nil {
		t.Fatalf("new static: %v", err)
	}

	got, ok := translator.Lookup("orders", "title")
	if !ok {
		t.Fatalf("expected translation")
	}
	if got != "Order Overview" {
		t.Fatalf("unexpected translation %q", got)
	}
}

func TestTranslator_MissingKey(t *testing.T) {
	translator, err := NewStatic(map[string]map[string]string{"en": {}}, "en")
	if err != nil {
		t.Fatalf("new static: %v", err)
	}

	if _, ok := translator.Lookup("orders", "missing"); ok {
		t.Fatalf("expected missing key to report no value")
	}
}
