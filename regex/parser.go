package regex

import (
	"fmt"

	"github.com/nihei9/alab/automaton"
	verr "github.com/nihei9/alab/error"
)

type parser struct {
	lex       *lexer
	tree      *Tree
	peekedTok *token
	lastTok   *token

	errCause  error
	errDetail string
	errPos    int
}

// Parse reads a regular expression made of symbols, concatenation, alternation (|), Kleene
// star (*), grouping and ε. Whitespace is ignored.
func Parse(src string) (*Tree, error) {
	p := &parser{
		lex:  newLexer(src),
		tree: &Tree{},
	}
	tree, err := p.parse()
	if err != nil {
		if err != ParseErr {
			return nil, err
		}
		return nil, &verr.SpecError{
			Cause:  p.errCause,
			Detail: p.errDetail,
			Col:    p.errPos,
		}
	}
	tracer().Debugf("regex %q parsed: %v", src, tree)
	return tree, nil
}

func (p *parser) parse() (tree *Tree, retErr error) {
	defer func() {
		err := recover()
		if err != nil {
			var ok bool
			retErr, ok = err.(error)
			if !ok {
				panic(err)
			}
			return
		}
	}()

	p.tree.root = p.parseRegexp()
	return p.tree, nil
}

func (p *parser) parseRegexp() int {
	alt := p.parseAlt()
	if alt == nilNode {
		if p.consume(tokenKindGroupClose) {
			p.raiseParseError(synErrGroupNoInitiator, "")
		}
		p.raiseParseError(synErrNullPattern, "")
	}
	if p.consume(tokenKindGroupClose) {
		p.raiseParseError(synErrGroupNoInitiator, "")
	}
	p.expect(tokenKindEOF)
	return alt
}

func (p *parser) parseAlt() int {
	left := p.parseConcat()
	if left == nilNode {
		if p.consume(tokenKindAlt) {
			p.raiseParseError(synErrAltLackOfOperand, "| needs a left operand")
		}
		return nilNode
	}
	for {
		if !p.consume(tokenKindAlt) {
			break
		}
		right := p.parseConcat()
		if right == nilNode {
			p.raiseParseError(synErrAltLackOfOperand, "| needs a right operand")
		}
		left = p.tree.newUnion(left, right)
	}
	return left
}

func (p *parser) parseConcat() int {
	left := p.parseRepeat()
	for {
		right := p.parseRepeat()
		if right == nilNode {
			break
		}
		left = p.tree.newConcat(left, right)
	}
	return left
}

func (p *parser) parseRepeat() int {
	group := p.parseGroup()
	if group == nilNode {
		if p.consume(tokenKindRepeat) {
			p.raiseParseError(synErrRepNoTarget, "* needs an operand")
		}
		return nilNode
	}
	for p.consume(tokenKindRepeat) {
		group = p.tree.newStar(group)
	}
	return group
}

func (p *parser) parseGroup() int {
	if p.consume(tokenKindGroupOpen) {
		alt := p.parseAlt()
		if alt == nilNode {
			if p.consume(tokenKindEOF) {
				p.raiseParseError(synErrGroupUnclosed, "")
			}
			p.raiseParseError(synErrGroupNoElem, "")
		}
		if p.consume(tokenKindEOF) {
			p.raiseParseError(synErrGroupUnclosed, "")
		}
		p.expect(tokenKindGroupClose)
		return alt
	}
	if p.consume(tokenKindEpsilon) {
		return p.tree.newEpsilon(p.lastTok.pos)
	}
	if p.consume(tokenKindChar) {
		return p.tree.newLiteral(automaton.Symbol(string(p.lastTok.char)), p.lastTok.pos)
	}
	return nilNode
}

func (p *parser) expect(expected tokenKind) {
	if !p.consume(expected) {
		tok := p.peekedTok
		p.raiseParseError(synErrUnexpectedToken, fmt.Sprintf("expected: %v, actual: %v", expected, tok.kind))
	}
}

func (p *parser) consume(expected tokenKind) bool {
	var tok *token
	var err error
	if p.peekedTok != nil {
		tok = p.peekedTok
		p.peekedTok = nil
	} else {
		tok, err = p.lex.next()
		if err != nil {
			if err == ParseErr {
				detail, cause, pos := p.lex.error()
				p.errPos = pos
				p.errCause = cause
				p.errDetail = detail
			}
			panic(err)
		}
	}
	p.lastTok = tok
	if tok.kind == expected {
		return true
	}
	p.peekedTok = tok
	p.lastTok = nil

	return false
}

// raiseParseError reports an error at the last consumed token, or at the upcoming one when
// nothing was consumed.
func (p *parser) raiseParseError(err error, detail string) {
	p.errCause = err
	p.errDetail = detail
	switch {
	case p.lastTok != nil:
		p.errPos = p.lastTok.pos
	case p.peekedTok != nil:
		p.errPos = p.peekedTok.pos
	}
	panic(ParseErr)
}
