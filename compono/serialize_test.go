package compono

import "testing"

func TestSerializeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "element with attribute",
			in:   `<div class="a">hi</div>`,
			want: `<div class="a">hi</div>`,
		},
		{
			name: "void element has no close tag",
			in:   `<br>`,
			want: `<br>`,
		},
		{
			name: "attribute value escapes quotes and angle brackets",
			in:   `<div data-x='He said "hi" <ok>'>y</div>`,
			want: `<div data-x="He said &quot;hi&quot; &lt;ok&gt;">y</div>`,
		},
		{
			name: "comment and declaration pass through verbatim",
			in:   `<!DOCTYPE html><!-- note -->`,
			want: `<!DOCTYPE html><!-- note -->`,
		},
		{
			name: "nested elements",
			in:   `<ul><li>a</li><li>b</li></ul>`,
			want: `<ul><li>a</li><li>b</li></ul>`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBuild("test.html")
			doc := Parse("test.html", tc.in, b)
			got := Serialize(doc)
			if got != tc.want {
				t.Errorf("Serialize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestEscapePropDoesNotEscapeQuotes(t *testing.T) {
	got := escapeProp(`& < > "`)
	want := `&amp; &lt; &gt; "`
	if got != want {
		t.Errorf("escapeProp() = %q, want %q", got, want)
	}
}

func TestEscapeAttrEscapesQuotes(t *testing.T) {
	got := escapeAttr(`& < > "`)
	want := `&amp; &lt; &gt; &quot;`
	if got != want {
		t.Errorf("escapeAttr() = %q, want %q", got, want)
	}
}
