package ast

import (
	"github.com/filterspirit/filterspirit/diagnostics"
	"github.com/filterspirit/filterspirit/sourcemap"
)

// ParseResult is what Parse returns: the parsed structure (possibly
// partial, when parsing failed past the point of recovery), plus
// diagnostics.
type ParseResult struct {
	Filter   FilterStructure
	Diags    *diagnostics.Store
	Complete bool // false when parsing stopped before EOF
}

// Parser is a hand-written recursive-descent parser over a pre-lexed
// token stream.
type Parser struct {
	tokens []Token
	pos    int
	diags  *diagnostics.Store
}

// Parse lexes and parses a full spirit-filter source file.
func Parse(src string) ParseResult {
	tokens := NewLexer(src).Lex()
	p := &Parser{tokens: tokens, diags: diagnostics.NewStore()}
	filter, complete := p.parseFilter()
	return ParseResult{Filter: filter, Diags: p.diags, Complete: complete}
}

func (p *Parser) cur() Token  { return p.tokens[p.pos] }
func (p *Parser) atEOF() bool { return p.cur().Kind == TokEOF }

func (p *Parser) advance() Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) check(kind TokenKind) bool { return p.cur().Kind == kind }

func (p *Parser) checkIdentText(text string) bool {
	return p.cur().Kind == TokIdent && p.cur().Text == text
}

func (p *Parser) expect(kind TokenKind, what string) (Token, bool) {
	if p.cur().Kind == kind {
		return p.advance(), true
	}
	origin := p.cur().Origin
	p.diags.Error(diagnostics.ParseError, &origin, "expected %s, got %q", what, p.cur().Text)
	return Token{}, false
}

// recoverToStatementBoundary skips tokens until a position likely to
// resume parsing cleanly: the start of the next `$`, a recognized
// keyword, or `}`.
func (p *Parser) recoverToStatementBoundary() {
	for !p.atEOF() {
		t := p.cur()
		if t.Kind == TokDollar || t.Kind == TokRBrace {
			return
		}
		if t.Kind == TokIdent && (ConditionKeywords[t.Text] || ActionKeywords[t.Text] ||
			VisibilityKeywords[t.Text] || DSLKeywords[t.Text]) {
			return
		}
		p.advance()
	}
}

func (p *Parser) parseFilter() (FilterStructure, bool) {
	var fs FilterStructure
	p.skipPreamble()

	for !p.atEOF() && p.check(TokDollar) {
		def, ok := p.parseDefinition()
		if ok {
			fs.Definitions = append(fs.Definitions, def)
		} else {
			p.recoverToStatementBoundary()
		}
	}

	for !p.atEOF() {
		stmt, ok := p.parseStatement()
		if ok {
			fs.Statements = append(fs.Statements, stmt)
		} else {
			p.recoverToStatementBoundary()
			if !p.atEOF() && !p.check(TokDollar) && !p.isStatementStart() {
				// nothing recognizable left; stop to avoid looping forever
				return fs, false
			}
		}
	}
	return fs, true
}

// skipPreamble consumes an optional `Version: N` / `Config { ... }`
// header. Neither carries semantic
// weight for the core compiler; they are accepted and discarded.
func (p *Parser) skipPreamble() {
	for p.check(TokIdent) && (p.cur().Text == "Version" || p.cur().Text == "Config" || p.cur().Text == "MinimumFilterVersion") {
		p.advance()
		if p.check(TokColon) {
			p.advance()
			for !p.atEOF() && !p.check(TokDollar) && !p.isStatementStart() && !p.check(TokLBrace) {
				p.advance()
			}
		} else if p.check(TokLBrace) {
			depth := 0
			for !p.atEOF() {
				if p.check(TokLBrace) {
					depth++
				} else if p.check(TokRBrace) {
					depth--
					p.advance()
					if depth == 0 {
						break
					}
					continue
				}
				p.advance()
			}
		}
	}
}

func (p *Parser) isStatementStart() bool {
	t := p.cur()
	if t.Kind != TokIdent {
		return false
	}
	return ConditionKeywords[t.Text] || ActionKeywords[t.Text] || VisibilityKeywords[t.Text] || DSLKeywords[t.Text]
}

func (p *Parser) parseDefinition() (Definition, bool) {
	startTok, _ := p.expect(TokDollar, "'$'")
	start := startTok.Origin
	nameTok, ok := p.expect(TokIdent, "definition name")
	if !ok {
		return Definition{}, false
	}
	if _, ok := p.expect(TokAssign, "'='"); !ok {
		return Definition{}, false
	}
	value, ok := p.parseValueExpression()
	if !ok {
		return Definition{}, false
	}
	end := value.Origin
	return Definition{
		Origin:     start.Join(end),
		Name:       nameTok.Text,
		NameOrigin: nameTok.Origin,
		Value:      value,
	}, true
}

func (p *Parser) parseValueExpression() (ValueExpression, bool) {
	if p.check(TokLBrace) {
		compound, ok := p.parseCompoundAction()
		if !ok {
			return ValueExpression{}, false
		}
		return ValueExpression{Origin: compound.Origin, Compound: &compound}, true
	}
	seq, ok := p.parseSequence()
	if !ok {
		return ValueExpression{}, false
	}
	return ValueExpression{Origin: seq.Origin, Sequence: &seq}, true
}

func (p *Parser) parseCompoundAction() (CompoundActionExpr, bool) {
	open, _ := p.expect(TokLBrace, "'{'")
	var stmts []Statement
	for !p.atEOF() && !p.check(TokRBrace) {
		stmt, ok := p.parseStatement()
		if ok {
			stmts = append(stmts, stmt)
		} else {
			p.recoverToStatementBoundary()
			if p.atEOF() {
				break
			}
		}
	}
	close, ok := p.expect(TokRBrace, "'}'")
	if !ok {
		return CompoundActionExpr{}, false
	}
	return CompoundActionExpr{Origin: open.Origin.Join(close.Origin), Statements: stmts}, true
}

// parseSequence parses one or more primitives. An empty sequence can
// never be produced: failing to find even one primitive is a parse
// error.
func (p *Parser) parseSequence() (Sequence, bool) {
	first, ok := p.parsePrimitive()
	if !ok {
		origin := p.cur().Origin
		p.diags.Error(diagnostics.ParseError, &origin, "expected a value, got %q", p.cur().Text)
		return Sequence{}, false
	}
	values := []PrimitiveValue{first}
	origin := first.Origin
	for p.canStartPrimitive() {
		next, ok := p.parsePrimitive()
		if !ok {
			break
		}
		values = append(values, next)
		origin = origin.Join(next.Origin)
	}
	return Sequence{Origin: origin, Values: values}, true
}

func (p *Parser) canStartPrimitive() bool {
	switch p.cur().Kind {
	case TokDollar:
		// `$name =` starts the next definition, not a name reference.
		if i := p.pos + 2; i < len(p.tokens) && p.tokens[i-1].Kind == TokIdent && p.tokens[i].Kind == TokAssign {
			return false
		}
		return true
	case TokInt, TokFrac, TokString, TokSocketLiteral:
		return true
	case TokIdent:
		// A bare identifier starts a primitive unless it is itself the
		// start of the next statement/condition (ambiguity resolved by
		// the caller stopping sequence parsing at recognized keywords
		// when appropriate — callers that need exactly N args pass that
		// down via arity checks in the evaluator instead of here).
		return !p.isStatementStart()
	}
	return false
}

func (p *Parser) parsePrimitive() (PrimitiveValue, bool) {
	tok := p.cur()
	switch tok.Kind {
	case TokDollar:
		p.advance()
		nameTok, ok := p.expect(TokIdent, "name after '$'")
		if !ok {
			return PrimitiveValue{}, false
		}
		return PrimitiveValue{Origin: tok.Origin.Join(nameTok.Origin), IsNameRef: true, Name: nameTok.Text}, true
	case TokInt:
		p.advance()
		return PrimitiveValue{Origin: tok.Origin, IsLiteral: true, Literal: Literal{Kind: LitInt, Origin: tok.Origin, Int: parseInt32(tok.Text)}}, true
	case TokFrac:
		p.advance()
		return PrimitiveValue{Origin: tok.Origin, IsLiteral: true, Literal: Literal{Kind: LitFrac, Origin: tok.Origin, Frac: parseFloat(tok.Text)}}, true
	case TokString:
		p.advance()
		return PrimitiveValue{Origin: tok.Origin, IsLiteral: true, Literal: Literal{Kind: LitString, Origin: tok.Origin, Str: tok.Text}}, true
	case TokSocketLiteral:
		p.advance()
		return PrimitiveValue{Origin: tok.Origin, IsLiteral: true, Literal: Literal{Kind: LitSocketSpec, Origin: tok.Origin, Socket: parseSocketLiteral(tok.Text)}}, true
	case TokIdent:
		p.advance()
		return PrimitiveValue{Origin: tok.Origin, IsLiteral: true, Literal: Literal{Kind: LitEnumKeyword, Origin: tok.Origin, Str: tok.Text}}, true
	case TokEOF, TokRBrace:
		// Neither can ever start a primitive; reported by the caller
		// (parseSequence never constructs an empty sequence).
		return PrimitiveValue{}, false
	default:
		// Unknown token in primitive-value position: defer to semantic
		// diagnostics rather than aborting the parse.
		p.advance()
		return PrimitiveValue{Origin: tok.Origin, IsUnknown: true, Raw: tok.Text}, true
	}
}

func (p *Parser) parseStatement() (Statement, bool) {
	tok := p.cur()
	if tok.Kind != TokIdent {
		origin := tok.Origin
		p.diags.Error(diagnostics.ParseError, &origin, "expected a statement, got %q", tok.Text)
		return Statement{}, false
	}

	switch {
	case VisibilityKeywords[tok.Text]:
		p.advance()
		return Statement{Kind: StmtVisibility, Origin: tok.Origin, Visibility: tok.Text}, true
	case tok.Text == "Set":
		p.advance()
		if _, ok := p.expect(TokDollar, "'$'"); !ok {
			return Statement{}, false
		}
		nameTok, ok := p.expect(TokIdent, "compound action name")
		if !ok {
			return Statement{}, false
		}
		return Statement{Kind: StmtSetAction, Origin: tok.Origin.Join(nameTok.Origin), SetName: nameTok.Text, SetNameOrigin: nameTok.Origin}, true
	case ActionKeywords[tok.Text]:
		p.advance()
		args, ok := p.parseSequence()
		if !ok {
			return Statement{}, false
		}
		return Statement{Kind: StmtAction, Origin: tok.Origin.Join(args.Origin), ActionKeyword: tok.Text, ActionArgs: args}, true
	case tok.Text == "Autogen":
		p.advance()
		catTok, ok := p.expect(TokIdent, "autogen category")
		if !ok {
			return Statement{}, false
		}
		return p.parseAutogenBlock(tok.Origin.Join(catTok.Origin), catTok.Text)
	case tok.Text == "Price":
		p.advance()
		return p.parsePriceThenRest(tok.Origin)
	case ConditionKeywords[tok.Text]:
		return p.parseRuleBlock()
	default:
		origin := tok.Origin
		p.diags.Error(diagnostics.ParseError, &origin, "unrecognized keyword %q", tok.Text)
		return Statement{}, false
	}
}

// parseAutogenBlock handles `Autogen CATEGORY { statement* }`. Its
// natural shape, like a condition, is to introduce a nested block
// carrying the category; we model it as a 1-condition rule block whose
// sole condition keyword is
// "Autogen" so the block compiler can fold it into scope.Autogen the
// same way it folds any other condition into scope.Conditions.
func (p *Parser) parseAutogenBlock(origin sourcemap.Range, category string) (Statement, bool) {
	cond := Condition{Origin: origin, Keyword: "Autogen", Args: Sequence{Origin: origin, Values: []PrimitiveValue{{Origin: origin, IsLiteral: true, Literal: Literal{Kind: LitEnumKeyword, Origin: origin, Str: category}}}}}
	conds := []Condition{cond}
	for p.canStartCondition() {
		extra, ok := p.parseCondition()
		if !ok {
			break
		}
		conds = append(conds, extra)
	}
	open, ok := p.expect(TokLBrace, "'{'")
	if !ok {
		return Statement{}, false
	}
	body, ok := p.parseStatementsUntilRBrace()
	if !ok {
		return Statement{}, false
	}
	closeTok, ok := p.expect(TokRBrace, "'}'")
	if !ok {
		return Statement{}, false
	}
	return Statement{Kind: StmtRuleBlock, Origin: origin.Join(open.Origin).Join(closeTok.Origin), Conditions: conds, Body: body}, true
}

// parsePriceThenRest handles a bare `Price OP sequence` clause used
// inside an Autogen block; it is only legal there, a check performed by the compiler since the
// parser has no scope information. To keep grammar uniform, a `Price`
// clause is itself modeled as a 1-condition rule block exactly like
// Autogen, and may be followed immediately by a nested block or act as
// a plain condition when part of a larger `cond && cond { }` chain —
// the parser always treats it as starting a new rule block, matching
// the `Price >= 100 { Show }` form.
func (p *Parser) parsePriceThenRest(origin sourcemap.Range) (Statement, bool) {
	opTok, ok := p.expectComparisonOp()
	if !ok {
		return Statement{}, false
	}
	args, ok := p.parseSequence()
	if !ok {
		return Statement{}, false
	}
	cond := Condition{Origin: origin.Join(args.Origin), Keyword: "Price", HasOp: true, Op: opTok.Text, OpOrigin: opTok.Origin, Args: args}
	conds := []Condition{cond}
	for p.canStartCondition() {
		extra, ok := p.parseCondition()
		if !ok {
			break
		}
		conds = append(conds, extra)
	}
	open, ok := p.expect(TokLBrace, "'{'")
	if !ok {
		return Statement{}, false
	}
	body, ok := p.parseStatementsUntilRBrace()
	if !ok {
		return Statement{}, false
	}
	closeTok, ok := p.expect(TokRBrace, "'}'")
	if !ok {
		return Statement{}, false
	}
	return Statement{Kind: StmtRuleBlock, Origin: origin.Join(open.Origin).Join(closeTok.Origin), Conditions: conds, Body: body}, true
}

func (p *Parser) canStartCondition() bool {
	return p.check(TokIdent) && (ConditionKeywords[p.cur().Text] || p.cur().Text == "Autogen" || p.cur().Text == "Price")
}

func (p *Parser) parseRuleBlock() (Statement, bool) {
	first, ok := p.parseCondition()
	if !ok {
		return Statement{}, false
	}
	conds := []Condition{first}
	origin := first.Origin
	for p.check(TokAmpAmp) {
		p.advance()
		next, ok := p.parseCondition()
		if !ok {
			return Statement{}, false
		}
		conds = append(conds, next)
		origin = origin.Join(next.Origin)
	}
	for p.canStartCondition() {
		next, ok := p.parseCondition()
		if !ok {
			break
		}
		conds = append(conds, next)
		origin = origin.Join(next.Origin)
	}
	open, ok := p.expect(TokLBrace, "'{'")
	if !ok {
		return Statement{}, false
	}
	body, ok := p.parseStatementsUntilRBrace()
	if !ok {
		return Statement{}, false
	}
	closeTok, ok := p.expect(TokRBrace, "'}'")
	if !ok {
		return Statement{}, false
	}
	return Statement{Kind: StmtRuleBlock, Origin: origin.Join(open.Origin).Join(closeTok.Origin), Conditions: conds, Body: body}, true
}

func (p *Parser) parseStatementsUntilRBrace() ([]Statement, bool) {
	var stmts []Statement
	for !p.atEOF() && !p.check(TokRBrace) {
		stmt, ok := p.parseStatement()
		if ok {
			stmts = append(stmts, stmt)
		} else {
			p.recoverToStatementBoundary()
			if p.atEOF() {
				return stmts, false
			}
		}
	}
	return stmts, true
}

func (p *Parser) parseCondition() (Condition, bool) {
	kwTok, ok := p.expect(TokIdent, "condition name")
	if !ok {
		return Condition{}, false
	}
	var opTok Token
	hasOp := false
	if p.isComparisonOpToken() {
		opTok, _ = p.expectComparisonOp()
		hasOp = true
	}
	args, ok := p.parseSequence()
	if !ok {
		return Condition{}, false
	}
	origin := kwTok.Origin.Join(args.Origin)
	return Condition{Origin: origin, Keyword: kwTok.Text, HasOp: hasOp, Op: opTok.Text, OpOrigin: opTok.Origin, Args: args}, true
}

func (p *Parser) isComparisonOpToken() bool {
	switch p.cur().Kind {
	case TokLess, TokLessEq, TokAssign, TokEq, TokNotEq, TokGreater, TokGreaterEq:
		return true
	}
	return false
}

func (p *Parser) expectComparisonOp() (Token, bool) {
	if p.isComparisonOpToken() {
		return p.advance(), true
	}
	origin := p.cur().Origin
	p.diags.Error(diagnostics.ParseError, &origin, "expected a comparison operator, got %q", p.cur().Text)
	return Token{}, false
}
