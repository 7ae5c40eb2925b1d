package lexer

import (
	"iter"

	"bracefmt/internal/token"
)

// Tokenize returns the lazy token sequence of src. The sequence stops after
// the first error, which is yielded with a zero token.
func Tokenize(src string) iter.Seq2[token.Token, error] {
	return func(yield func(token.Token, error) bool) {
		lx := New(src)
		for {
			tok, ok, err := lx.Next()
			if err != nil {
				yield(token.Token{}, err)
				return
			}
			if !ok {
				return
			}
			if !yield(tok, nil) {
				return
			}
		}
	}
}

// All scans the whole string. On error no tokens are returned.
func All(src string) ([]token.Token, error) {
	var out []token.Token
	for tok, err := range Tokenize(src) {
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
	}
	return out, nil
}
