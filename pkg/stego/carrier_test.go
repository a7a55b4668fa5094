package stego

import "testing"

func TestLookupUnknownCarrier(t *testing.T) {
	if _, err := Lookup("rot13"); err == nil {
		t.Fatal("expected an error for an unregistered carrier name")
	}
}

func TestLookupKnownCarriers(t *testing.T) {
	for _, name := range carrierOrder {
		c, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q) failed: %v", name, err)
		}
		if c.Name() != name {
			t.Errorf("carrier Name() mismatch: got %q want %q", c.Name(), name)
		}
	}
}
