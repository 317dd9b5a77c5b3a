package ast

import (
	"fmt"
	"strconv"
	"strings"

	cerr "github.com/nvitucci/parcygo/error"
	"github.com/nvitucci/parcygo/driver/parser"
)

// Transform walks a concrete parse tree bottom-up and builds the typed
// Query it represents. root must be the result of parsing the
// "single_query" rule.
func Transform(root *parser.Node) (*Query, error) {
	v, err := build(root)
	if err != nil {
		return nil, err
	}
	q, ok := v.(Query)
	if !ok {
		return nil, &cerr.SpecError{Cause: fmt.Errorf("parse tree root was not a single_query")}
	}
	return &q, nil
}

// build dispatches on n.Rule, recursively transforming children first, so
// that every handler below receives already-transformed Go values rather
// than raw parser.Node children.
func build(n *parser.Node) (interface{}, error) {
	if n.IsLeaf() {
		return n.Text, nil
	}

	c := make([]interface{}, len(n.Children))
	for i, ch := range n.Children {
		v, err := build(ch)
		if err != nil {
			return nil, err
		}
		c[i] = v
	}

	switch n.Rule {
	case "single_query":
		return singleQuery(c)
	case "match_list":
		return matchList(c)
	case "match":
		return match(c)
	case "where":
		return c[1], nil
	case "pattern":
		return pattern(c)
	case "pattern_chain":
		return patternChain(c)
	case "node_pattern":
		return nodePattern(c)
	case "variable_opt":
		return variableOpt(c)
	case "node_labels_opt":
		return nodeLabelsOpt(c)
	case "node_labels":
		return nodeLabels(c)
	case "map_literal_opt":
		return mapLiteralOpt(c)
	case "map_literal":
		return mapLiteral(c)
	case "map_pairs_opt":
		return mapPairsOpt(c)
	case "map_pairs":
		return mapPairs(c)
	case "map_pair":
		return mapPair(c)
	case "relationship_pattern":
		return relationshipPattern(c)
	case "rel_left_opt", "rel_right_opt":
		return len(c) > 0, nil
	case "rel_detail_opt":
		return relDetailOpt(c)
	case "rel_detail":
		return relDetailBody(c)
	case "relationship_types_opt":
		return relationshipTypesOpt(c)
	case "relationship_types":
		return relationshipTypes(c)
	case "relationship_types_tail":
		return relationshipTypesTail(c)
	case "range_literal_opt":
		return rangeLiteralOpt(c)
	case "range_literal":
		return rangeLiteral(c)
	case "range_lo_opt", "range_hi_opt":
		return rangeBoundOpt(c)
	case "range_dots_opt":
		return len(c) > 0, nil
	case "expression":
		return c[0], nil
	case "or_expression":
		return orExpression(c)
	case "xor_expression":
		return xorExpression(c)
	case "and_expression":
		return andExpression(c)
	case "not_expression":
		return notExpression(c)
	case "comparison_expression":
		return comparisonExpression(c)
	case "partial_comparison_expression":
		return partialComparisonExpression(c)
	case "property_or_labels_expression":
		return propertyOrLabelsExpression(c)
	case "property_access_list":
		return propertyAccessList(c)
	case "atom":
		if len(c) == 3 {
			return c[1], nil
		}
		return c[0], nil
	case "variable":
		return Variable{Name: c[0].(string)}, nil
	case "literal":
		return literal(n.Children[0], c[0])
	case "list_literal":
		return listLiteral(c)
	case "list_items_opt":
		return listItemsOpt(c)
	case "list_items":
		return listItems(c)
	case "return_clause":
		return c[1], nil
	case "projection_body":
		return projectionBody(c)
	case "distinct_opt":
		return len(c) > 0, nil
	case "projection_items":
		return projectionItems(c)
	case "projection_item_list":
		return projectionItemList(c)
	case "projection_item":
		return projectionItem(c)
	case "order_by_opt":
		return orderByOpt(c)
	case "order_by":
		return orderBy(c)
	case "sort_item_list":
		return sortItemList(c)
	case "sort_item":
		return sortItem(c)
	case "direction_opt":
		return directionOpt(c)
	case "skip_opt":
		return skipOpt(c)
	case "limit_opt":
		return limitOpt(c)
	default:
		return nil, &cerr.SpecError{Cause: fmt.Errorf("no transform handler for rule %q", n.Rule)}
	}
}

func singleQuery(c []interface{}) (Query, error) {
	return Query{Matches: c[0].([]Match), Return: c[1].(Projection)}, nil
}

func matchList(c []interface{}) ([]Match, error) {
	if len(c) == 1 {
		return []Match{c[0].(Match)}, nil
	}
	return append(c[0].([]Match), c[1].(Match)), nil
}

func match(c []interface{}) (Match, error) {
	m := Match{Pattern: c[1].(Pattern)}
	if len(c) > 2 {
		m.Where = c[2].(Expression)
	}
	return m, nil
}

func pattern(c []interface{}) (Pattern, error) {
	if len(c) == 1 {
		return Pattern{Start: c[0].(NodePattern)}, nil
	}
	p := c[0].(Pattern)
	p.Elements = append(p.Elements, c[1].(PatternElement))
	return p, nil
}

func patternChain(c []interface{}) (PatternElement, error) {
	return PatternElement{Relationship: c[0].(RelationshipPattern), Node: c[1].(NodePattern)}, nil
}

func nodePattern(c []interface{}) (NodePattern, error) {
	np := NodePattern{Labels: []string{}, Properties: map[string]Expression{}}
	if len(c) > 1 {
		if v, ok := c[1].(string); ok && v != "" {
			np.Variable = v
		}
	}
	if len(c) > 2 {
		if labels, ok := c[2].([]string); ok {
			np.Labels = labels
		}
	}
	if len(c) > 3 {
		if props, ok := c[3].(map[string]Expression); ok {
			np.Properties = props
		}
	}
	return np, nil
}

func variableOpt(c []interface{}) (string, error) {
	if len(c) == 0 {
		return "", nil
	}
	return c[0].(string), nil
}

func nodeLabelsOpt(c []interface{}) ([]string, error) {
	if len(c) == 0 {
		return []string{}, nil
	}
	return c[0].([]string), nil
}

func nodeLabels(c []interface{}) ([]string, error) {
	if len(c) == 2 {
		return []string{c[1].(string)}, nil
	}
	return append(c[0].([]string), c[2].(string)), nil
}

func mapLiteralOpt(c []interface{}) (map[string]Expression, error) {
	if len(c) == 0 {
		return map[string]Expression{}, nil
	}
	return c[0].(Literal).Value.(map[string]Expression), nil
}

type mapPairValue struct {
	key string
	val Expression
}

func mapLiteral(c []interface{}) (Literal, error) {
	return Literal{Value: c[1].(map[string]Expression)}, nil
}

func mapPairsOpt(c []interface{}) (map[string]Expression, error) {
	if len(c) == 0 {
		return map[string]Expression{}, nil
	}
	return c[0].(map[string]Expression), nil
}

func mapPairs(c []interface{}) (map[string]Expression, error) {
	if len(c) == 1 {
		p := c[0].(mapPairValue)
		return map[string]Expression{p.key: p.val}, nil
	}
	m := c[0].(map[string]Expression)
	p := c[2].(mapPairValue)
	m[p.key] = p.val
	return m, nil
}

func mapPair(c []interface{}) (mapPairValue, error) {
	return mapPairValue{key: c[0].(string), val: c[2].(Expression)}, nil
}

// defaultRange is the range a relationship gets when no "*lo..hi" range
// literal is present, whether or not a detail block is present at all.
func defaultRange() *Range {
	one := 1
	return &Range{Min: 1, Max: &one}
}

func relationshipPattern(c []interface{}) (RelationshipPattern, error) {
	left := c[0].(bool)
	right := c[4].(bool) // c = [left, "-", detail, "-", right]
	rel := RelationshipPattern{Types: []string{}, Properties: map[string]Expression{}, Range: defaultRange()}
	switch {
	case left && right:
		rel.Direction = DirBoth
	case left:
		rel.Direction = DirLeft
	case right:
		rel.Direction = DirRight
	default:
		rel.Direction = DirNone
	}
	if d, ok := c[2].(*relDetail); ok && d != nil {
		rel.Variable = d.Variable
		rel.Types = d.Types
		rel.Properties = d.Properties
		if d.Range != nil {
			rel.Range = d.Range
		}
	}
	return rel, nil
}

// relDetail is the raw content of a relationship's "[...]" block; it is
// never itself an Expression, only ever unpacked by relationshipPattern.
type relDetail struct {
	Variable   string
	Types      []string
	Range      *Range
	Properties map[string]Expression
}

func relDetailOpt(c []interface{}) (*relDetail, error) {
	if len(c) == 0 {
		return nil, nil
	}
	d := c[1].(relDetail)
	return &d, nil
}

func relDetailBody(c []interface{}) (relDetail, error) {
	d := relDetail{Variable: c[0].(string), Types: []string{}, Properties: map[string]Expression{}}
	if types, ok := c[1].([]string); ok {
		d.Types = types
	}
	if rng, ok := c[2].(*Range); ok && rng != nil {
		d.Range = rng
	}
	if props, ok := c[3].(map[string]Expression); ok {
		d.Properties = props
	}
	return d, nil
}

func relationshipTypesOpt(c []interface{}) ([]string, error) {
	if len(c) == 0 {
		return []string{}, nil
	}
	return c[0].([]string), nil
}

func relationshipTypes(c []interface{}) ([]string, error) {
	types := append([]string{c[1].(string)}, c[2].([]string)...)
	return types, nil
}

func relationshipTypesTail(c []interface{}) ([]string, error) {
	switch len(c) {
	case 0:
		return nil, nil
	case 3:
		return append(c[0].([]string), c[2].(string)), nil
	default: // len == 4: tail "|" ":" IDENT
		return append(c[0].([]string), c[3].(string)), nil
	}
}

func rangeLiteralOpt(c []interface{}) (*Range, error) {
	if len(c) == 0 {
		return nil, nil
	}
	r := c[0].(Range)
	return &r, nil
}

func rangeLiteral(c []interface{}) (Range, error) {
	lo := c[1].(*int)
	dots := c[2].(bool)
	hi := c[3].(*int)

	switch {
	case lo == nil && !dots && hi == nil:
		// "*" alone: unbounded, minimum 1.
		return Range{Min: 1, Max: nil}, nil
	case !dots:
		// "*n": exact length n.
		return Range{Min: *lo, Max: lo}, nil
	default:
		// "*lo..hi" with either bound optional.
		min := 1
		if lo != nil {
			min = *lo
		}
		return Range{Min: min, Max: hi}, nil
	}
}

func rangeBoundOpt(c []interface{}) (*int, error) {
	if len(c) == 0 {
		return nil, nil
	}
	n, err := strconv.Atoi(c[0].(string))
	if err != nil {
		return nil, &cerr.SpecError{Cause: err}
	}
	return &n, nil
}

func orExpression(c []interface{}) (Expression, error) {
	if len(c) == 1 {
		return c[0].(Expression), nil
	}
	prev := c[0].(Expression)
	next := c[2].(Expression)
	if or, ok := prev.(OrExpression); ok {
		or.Exprs = append(or.Exprs, next)
		return or, nil
	}
	return OrExpression{Exprs: []Expression{prev, next}}, nil
}

func xorExpression(c []interface{}) (Expression, error) {
	if len(c) == 1 {
		return c[0].(Expression), nil
	}
	prev := c[0].(Expression)
	next := c[2].(Expression)
	if x, ok := prev.(XorExpression); ok {
		x.Exprs = append(x.Exprs, next)
		return x, nil
	}
	return XorExpression{Exprs: []Expression{prev, next}}, nil
}

func andExpression(c []interface{}) (Expression, error) {
	if len(c) == 1 {
		return c[0].(Expression), nil
	}
	prev := c[0].(Expression)
	next := c[2].(Expression)
	if and, ok := prev.(AndExpression); ok {
		and.Exprs = append(and.Exprs, next)
		return and, nil
	}
	return AndExpression{Exprs: []Expression{prev, next}}, nil
}

func notExpression(c []interface{}) (Expression, error) {
	if len(c) == 1 {
		return c[0].(Expression), nil
	}
	inner := c[1].(Expression)
	if n, ok := inner.(NotExpression); ok {
		return NotExpression{Expr: n.Expr, Neg: !n.Neg}, nil
	}
	return NotExpression{Expr: inner, Neg: true}, nil
}

func comparisonExpression(c []interface{}) (Expression, error) {
	if len(c) == 1 {
		return BaseExpression{Expr: c[0].(Expression)}, nil
	}
	return Comparison{Expr1: c[0].(Expression), Expr2: c[1].(PartialComparison)}, nil
}

func partialComparisonExpression(c []interface{}) (PartialComparison, error) {
	op, ok := operatorText[c[0].(string)]
	if !ok {
		return PartialComparison{}, &cerr.SpecError{Cause: fmt.Errorf("unknown comparison operator %q", c[0])}
	}
	return PartialComparison{Op: op, Expr: c[1].(Expression)}, nil
}

func propertyOrLabelsExpression(c []interface{}) (Expression, error) {
	ple := PropertyLabelExpression{Atom: c[0].(Expression), Properties: []string{}, NodeLabels: []string{}}
	if props, ok := c[1].([]string); ok {
		ple.Properties = props
	}
	if labels, ok := c[2].([]string); ok {
		ple.NodeLabels = labels
	}
	return ple, nil
}

func propertyAccessList(c []interface{}) ([]string, error) {
	if len(c) == 0 {
		return []string{}, nil
	}
	return append(c[0].([]string), c[2].(string)), nil
}

// literal dispatches on its child's terminal Kind rather than sniffing its
// lexed text, since list_literal and map_literal already built a Literal
// by the time build() reaches here, while STRING/INT/TRUE/FALSE/NULL
// arrive as the raw leaf node that produced them. A string literal's
// surrounding quotes are kept verbatim; an integer literal is parsed; the
// keyword literals are kept as their lower-cased canonical spelling.
func literal(child *parser.Node, built interface{}) (Literal, error) {
	if v, ok := built.(Literal); ok {
		return v, nil
	}
	switch child.Kind {
	case "STRING":
		return Literal{Value: child.Text}, nil
	case "INT":
		n, err := strconv.Atoi(child.Text)
		if err != nil {
			return Literal{}, &cerr.SpecError{Cause: err}
		}
		return Literal{Value: n}, nil
	case "TRUE", "FALSE", "NULL":
		return Literal{Value: strings.ToLower(child.Kind)}, nil
	default:
		return Literal{}, &cerr.SpecError{Cause: fmt.Errorf("unexpected literal kind %q", child.Kind)}
	}
}

func listLiteral(c []interface{}) (Literal, error) {
	return Literal{Value: c[1].([]Expression)}, nil
}

func listItemsOpt(c []interface{}) ([]Expression, error) {
	if len(c) == 0 {
		return []Expression{}, nil
	}
	return c[0].([]Expression), nil
}

func listItems(c []interface{}) ([]Expression, error) {
	if len(c) == 1 {
		return []Expression{c[0].(Expression)}, nil
	}
	return append(c[0].([]Expression), c[2].(Expression)), nil
}

func projectionBody(c []interface{}) (Projection, error) {
	p := Projection{Distinct: c[0].(bool)}
	switch items := c[1].(type) {
	case bool:
		p.Star = items
	case []ProjectionItem:
		p.Items = items
	}
	if order, ok := c[2].(*Order); ok {
		p.Order = order
	}
	if skip, ok := c[3].(Expression); ok {
		p.Skip = skip
	}
	if limit, ok := c[4].(Expression); ok {
		p.Limit = limit
	}
	return p, nil
}

func projectionItems(c []interface{}) (interface{}, error) {
	if s, ok := c[0].(string); ok && s == "*" {
		return true, nil
	}
	return c[0].([]ProjectionItem), nil
}

func projectionItemList(c []interface{}) ([]ProjectionItem, error) {
	if len(c) == 1 {
		return []ProjectionItem{c[0].(ProjectionItem)}, nil
	}
	return append(c[0].([]ProjectionItem), c[2].(ProjectionItem)), nil
}

func projectionItem(c []interface{}) (ProjectionItem, error) {
	item := ProjectionItem{Expr: c[0].(Expression)}
	if len(c) > 2 {
		item.Alias = c[2].(string)
	}
	return item, nil
}

func orderByOpt(c []interface{}) (*Order, error) {
	if len(c) == 0 {
		return nil, nil
	}
	o := c[0].(Order)
	return &o, nil
}

func orderBy(c []interface{}) (Order, error) {
	return Order{Items: c[2].([]SortItem)}, nil
}

func sortItemList(c []interface{}) ([]SortItem, error) {
	if len(c) == 1 {
		return []SortItem{c[0].(SortItem)}, nil
	}
	return append(c[0].([]SortItem), c[2].(SortItem)), nil
}

func sortItem(c []interface{}) (SortItem, error) {
	return SortItem{Variable: c[0].(Variable), Direction: c[1].(string)}, nil
}

func directionOpt(c []interface{}) (string, error) {
	if len(c) == 0 {
		return "", nil
	}
	return c[0].(string), nil
}

func skipOpt(c []interface{}) (Expression, error) {
	if len(c) == 0 {
		return nil, nil
	}
	return c[1].(Expression), nil
}

func limitOpt(c []interface{}) (Expression, error) {
	if len(c) == 0 {
		return nil, nil
	}
	return c[1].(Expression), nil
}
