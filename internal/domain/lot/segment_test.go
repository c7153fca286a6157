package lot

import "testing"

func TestExtractor_ExtractToken(t *testing.T) {
	e := NewExtractor(NewParser(DefaultConfig()))

	tests := []struct {
		name      string
		text      string
		wantToken string
		wantOK    bool
	}{
		{
			name:      "label with colon",
			text:      "Sample : Basil  Lot Number : 139928 Total Weight : 250 KG",
			wantToken: "139928",
			wantOK:    true,
		},
		{
			name:      "short label",
			text:      "Herbs Lot: 139912 Package Size: 25",
			wantToken: "139912",
			wantOK:    true,
		},
		{
			name:      "lot no variant",
			text:      "lot no: 139865/2 weight 500",
			wantToken: "139865/2",
			wantOK:    true,
		},
		{
			name:      "hash variant without spaces",
			text:      "LOT#139912 Customer: Somewhere",
			wantToken: "139912",
			wantOK:    true,
		},
		{
			name:      "alphanumeric lot value",
			text:      "Lot Number: AB-12345 Date: 2026-01-01",
			wantToken: "AB-12345",
			wantOK:    true,
		},
		{
			name:      "stop word bounds the segment",
			text:      "Lot Number : 139859-139860 Number of packages: 8 phone 0123456",
			wantToken: "139859-139860",
			wantOK:    true,
		},
		{
			name:      "ocr misread anchor recovered by fuzzy match",
			text:      "1ot Nvmber : 139912 Total : 25",
			wantToken: "139912",
			wantOK:    true,
		},
		{
			name:   "no anchor at all",
			text:   "Certificate of analysis for 139912 units",
			wantOK: false,
		},
		{
			name:   "anchor but only short reference numbers",
			text:   "Lot Number : 42 Total Weight : 10",
			wantOK: false,
		},
		{
			name:   "anchor immediately followed by next label",
			text:   "Lot Number : Weight : 250 KG",
			wantOK: false,
		},
		{
			name:   "empty page",
			text:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, ok := e.ExtractToken(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ExtractToken(%q) ok = %v, want %v (token %q)", tt.text, ok, tt.wantOK, token)
			}
			if ok && token != tt.wantToken {
				t.Errorf("token = %q, want %q", token, tt.wantToken)
			}
		})
	}
}

func TestExtractor_TokenFeedsParser(t *testing.T) {
	p := NewParser(DefaultConfig())
	e := NewExtractor(p)

	token, ok := e.ExtractToken("Lot Number : 139865/2 Total Weight : 500 KG")
	if !ok {
		t.Fatal("expected a token")
	}
	d, err := p.Parse(token)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", token, err)
	}
	if d.Kind != KindImplicitMulti || d.Base != "139865" || d.Count != 2 {
		t.Errorf("descriptor = %+v", d)
	}
}
