// internal/browser/html/fuzz_test.go
package html

import "testing"

// FuzzTokenize checks that every input terminates with either EndOfInput or
// a *SyntaxError, and that start tags never carry duplicate attribute names.
func FuzzTokenize(f *testing.F) {
	f.Add(`<html maaa=a><head><style>body div #myid{width:100px}</style></head><body><img id="myid"/></body></html>`)
	f.Add(`<a href="x" href='y' z=1>`)
	f.Add("</")
	f.Add("<a x='1'b\">")

	f.Fuzz(func(t *testing.T, input string) {
		tokens, err := Tokenize(input)
		if err != nil {
			if _, ok := err.(*SyntaxError); !ok {
				t.Fatalf("unexpected error type %T", err)
			}
			return
		}
		if len(tokens) == 0 || tokens[len(tokens)-1].Type != EndOfInputToken {
			t.Fatalf("token stream does not end with EndOfInput")
		}
		for _, tok := range tokens {
			seen := make(map[string]bool)
			for _, a := range tok.Attributes {
				if seen[a.Name] {
					t.Fatalf("duplicate attribute %q in %v", a.Name, tok)
				}
				seen[a.Name] = true
			}
		}
	})
}
