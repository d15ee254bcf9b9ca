package normalize

import "testing"

func TestResolveEntry(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantNil bool
		q, a    string
		img     string
	}{
		{name: "pipe string", raw: `"سؤال|جواب"`, q: "سؤال", a: "جواب"},
		{name: "pipe inside answer", raw: `"Q| a|b |c"`, q: "Q", a: " a|b |c"},
		{name: "plain string", raw: `"only question"`, q: "only question"},
		{name: "pair", raw: `["Q","A"]`, q: "Q", a: "A"},
		{name: "triple with image", raw: `["Q","A","data:image/png;base64,xx"]`, q: "Q", a: "A", img: "data:image/png;base64,xx"},
		{name: "short array", raw: `["Q"]`, q: "Q"},
		{name: "numeric pair", raw: `[12, 3.5]`, q: "12", a: "3.5"},
		{name: "object canonical", raw: `{"q":"Q","a":"A","img":"x.png"}`, q: "Q", a: "A", img: "x.png"},
		{name: "object aliases", raw: `{"questionText":"Q","solution":"A","photo":"p.jpg"}`, q: "Q", a: "A", img: "p.jpg"},
		{name: "alias priority", raw: `{"name":"late","question":"early","answer":"A"}`, q: "early", a: "A"},
		{name: "null alias skipped", raw: `{"q":null,"text":"T","a":null,"ans":"B"}`, q: "T", a: "B"},
		{name: "empty image is null", raw: `{"q":"Q","img":""}`, q: "Q"},
		{name: "empty object", raw: `{}`},
		{name: "null", raw: `null`, wantNil: true},
		{name: "number", raw: `42`, wantNil: true},
		{name: "bool", raw: `true`, wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := ResolveEntry(mustDecode(t, tt.raw))
			if tt.wantNil {
				if entry != nil {
					t.Fatalf("expected nil entry, got %+v", entry)
				}
				return
			}
			if entry == nil {
				t.Fatal("expected entry, got nil")
			}
			if entry.Q != tt.q || entry.A != tt.a {
				t.Fatalf("expected q=%q a=%q, got q=%q a=%q", tt.q, tt.a, entry.Q, entry.A)
			}
			gotImg := ""
			if entry.Img != nil {
				gotImg = *entry.Img
			}
			if gotImg != tt.img {
				t.Fatalf("expected img %q, got %q", tt.img, gotImg)
			}
			if tt.img == "" && entry.Img != nil {
				t.Fatalf("expected nil img, got %q", *entry.Img)
			}
		})
	}
}
