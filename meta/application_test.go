package meta

import "testing"

func TestDecodeApplication_IDOnly(t *testing.T) {
	body := []byte("ATCH")
	app, err := DecodeApplication(NewCursor(newReaderOf(body)), len(body), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.ID != "ATCH" {
		t.Errorf("ID = %q", app.ID)
	}
	if len(app.Data) != 0 {
		t.Errorf("expected empty data, got %d bytes", len(app.Data))
	}
	if name, ok := app.KnownName(); !ok || name != "FlacFile" {
		t.Errorf("KnownName = %q, %v", name, ok)
	}
}

func TestDecodeApplication_InvalidPadding(t *testing.T) {
	body := append([]byte("ATCH"), make([]byte, 3)...) // (7-4) mod 8 != 0
	_, err := DecodeApplication(NewCursor(newReaderOf(body)), len(body), true)
	if err == nil {
		t.Fatal("expected error for invalid application block size")
	}
}

func TestDecodeApplication_TooShort(t *testing.T) {
	_, err := DecodeApplication(NewCursor(newReaderOf([]byte("AB"))), 2, true)
	if err == nil {
		t.Fatal("expected error for body shorter than the 4-byte id")
	}
}
