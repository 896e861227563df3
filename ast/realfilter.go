package ast

import (
	"github.com/filterspirit/filterspirit/diagnostics"
)

// RealBlock is one block of the native item-filter grammar: a visibility keyword followed by condition and action
// lines, with no nesting, no `$name` definitions, and no compound
// actions.
type RealBlock struct {
	Visibility string
	Conditions []Condition
	Actions    []Statement // each StmtAction
}

// RealFilterStructure is a flat sequence of RealBlocks.
type RealFilterStructure struct {
	Blocks []RealBlock
}

// RealParseResult is ParseReal's return value.
type RealParseResult struct {
	Filter   RealFilterStructure
	Diags    *diagnostics.Store
	Complete bool
}

// ParseReal parses native item-filter text, used to round-trip and diff real filters against ones this
// compiler emits.
func ParseReal(src string) RealParseResult {
	tokens := NewLexer(src).Lex()
	p := &Parser{tokens: tokens, diags: diagnostics.NewStore()}
	fs, complete := p.parseRealFilter()
	return RealParseResult{Filter: fs, Diags: p.diags, Complete: complete}
}

func (p *Parser) parseRealFilter() (RealFilterStructure, bool) {
	var fs RealFilterStructure
	for !p.atEOF() {
		if !p.check(TokIdent) || !VisibilityKeywords[p.cur().Text] {
			p.recoverToStatementBoundary()
			if !p.check(TokIdent) || !VisibilityKeywords[p.cur().Text] {
				return fs, false
			}
			continue
		}
		block, ok := p.parseRealBlock()
		if !ok {
			return fs, false
		}
		fs.Blocks = append(fs.Blocks, block)
	}
	return fs, true
}

func (p *Parser) parseRealBlock() (RealBlock, bool) {
	visTok := p.advance()
	block := RealBlock{Visibility: visTok.Text}
	for !p.atEOF() && p.check(TokIdent) && !VisibilityKeywords[p.cur().Text] {
		tok := p.cur()
		switch {
		case ConditionKeywords[tok.Text]:
			cond, ok := p.parseCondition()
			if !ok {
				return block, false
			}
			block.Conditions = append(block.Conditions, cond)
		case ActionKeywords[tok.Text]:
			p.advance()
			args, ok := p.parseSequence()
			if !ok {
				return block, false
			}
			block.Actions = append(block.Actions, Statement{
				Kind: StmtAction, Origin: tok.Origin.Join(args.Origin),
				ActionKeyword: tok.Text, ActionArgs: args,
			})
		default:
			origin := tok.Origin
			p.diags.Error(diagnostics.ParseError, &origin, "unrecognized keyword %q in real filter", tok.Text)
			return block, false
		}
	}
	return block, true
}
