package rdf

import "testing"

func TestParseFormat(t *testing.T) {
	cases := []struct {
		input  string
		want   Format
		expect bool
	}{
		{"ntriples", FormatNTriples, true},
		{"nt", FormatNTriples, true},
		{"nquads", FormatNQuads, true},
		{"nq", FormatNQuads, true},
		{"rdfxml", FormatRDFXML, true},
		{"rdf", FormatRDFXML, true},
		{"xml", FormatRDFXML, true},
		{"  NQuads  ", FormatNQuads, true},
		{"turtle", "", false},
		{"unknown", "", false},
	}
	for _, c := range cases {
		got, ok := ParseFormat(c.input)
		if ok != c.expect {
			t.Fatalf("input %q ok=%v want %v", c.input, ok, c.expect)
		}
		if got != c.want {
			t.Fatalf("input %q got %v want %v", c.input, got, c.want)
		}
	}
}
