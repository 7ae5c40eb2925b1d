package cache

import (
	"bracefmt/internal/source"
	"bracefmt/internal/token"
)

func toPayload(key Key, tokens []token.Token) *payload {
	p := &payload{Schema: schemaVersion, Key: key, Tokens: make([]cachedToken, len(tokens))}
	for i, tok := range tokens {
		ct := cachedToken{
			Literal:  tok.Literal,
			LitStart: tok.LiteralSpan.Start,
			LitEnd:   tok.LiteralSpan.End,
		}
		if f := tok.Field; f != nil {
			ct.Field = &cachedField{
				Name:       f.Name,
				Conversion: byte(f.Conversion),
				Spec:       f.Spec,
				Spans: [6]uint32{
					f.Span.Start, f.Span.End,
					f.NameSpan.Start, f.NameSpan.End,
					f.SpecSpan.Start, f.SpecSpan.End,
				},
			}
		}
		p.Tokens[i] = ct
	}
	return p
}

func fromPayload(p *payload) []token.Token {
	tokens := make([]token.Token, len(p.Tokens))
	for i, ct := range p.Tokens {
		tok := token.Token{
			Literal:     ct.Literal,
			LiteralSpan: source.Span{Start: ct.LitStart, End: ct.LitEnd},
		}
		if cf := ct.Field; cf != nil {
			tok.Field = &token.FieldSpec{
				Name:       cf.Name,
				Conversion: token.Conversion(cf.Conversion),
				Spec:       cf.Spec,
				Span:       source.Span{Start: cf.Spans[0], End: cf.Spans[1]},
				NameSpan:   source.Span{Start: cf.Spans[2], End: cf.Spans[3]},
				SpecSpan:   source.Span{Start: cf.Spans[4], End: cf.Spans[5]},
			}
		}
		tokens[i] = tok
	}
	return tokens
}
