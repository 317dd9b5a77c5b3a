package cypher

import (
	"reflect"
	"testing"

	"github.com/nvitucci/parcygo/ast"
)

func TestParseMatchReturn(t *testing.T) {
	q, err := Parse("MATCH (n) RETURN n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &ast.Query{
		Matches: []ast.Match{
			{Pattern: ast.Pattern{Start: ast.NodePattern{Variable: "n", Labels: []string{}, Properties: map[string]ast.Expression{}}}},
		},
		Return: ast.Projection{
			Items: []ast.ProjectionItem{
				{Expr: ast.BaseExpression{Expr: ast.PropertyLabelExpression{
					Atom:       ast.Variable{Name: "n"},
					Properties: []string{},
					NodeLabels: []string{},
				}}},
			},
		},
	}
	if !reflect.DeepEqual(q, want) {
		t.Fatalf("unexpected AST;\nwant: %#v\ngot:  %#v", want, q)
	}
}

func TestParseMatchLabelProps(t *testing.T) {
	q, err := Parse("MATCH (n:Person {name: 'Alice'}) RETURN n.name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := q.Matches[0]
	np := m.Pattern.Start
	if np.Variable != "n" {
		t.Fatalf("unexpected variable: %v", np.Variable)
	}
	if !reflect.DeepEqual(np.Labels, []string{"Person"}) {
		t.Fatalf("unexpected labels: %v", np.Labels)
	}
	base, ok := np.Properties["name"].(ast.BaseExpression)
	if !ok {
		t.Fatalf("unexpected name property: %#v", np.Properties["name"])
	}
	ple, ok := base.Expr.(ast.PropertyLabelExpression)
	if !ok {
		t.Fatalf("unexpected name property: %#v", np.Properties["name"])
	}
	lit, ok := ple.Atom.(ast.Literal)
	if !ok || lit.Value != "'Alice'" {
		t.Fatalf("unexpected name property: %#v", np.Properties["name"])
	}
}

func TestParseWhereAndNot(t *testing.T) {
	q, err := Parse("MATCH (n) WHERE n.age >= 30 AND NOT n.retired RETURN n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	and, ok := q.Matches[0].Where.(ast.AndExpression)
	if !ok || len(and.Exprs) != 2 {
		t.Fatalf("expected a 2-operand AndExpression, got %#v", q.Matches[0].Where)
	}
	if _, ok := and.Exprs[1].(ast.NotExpression); !ok {
		t.Fatalf("expected the second AND operand to be a NotExpression, got %#v", and.Exprs[1])
	}
}

func TestParseMissingReturnIsError(t *testing.T) {
	if _, err := Parse("MATCH (n)"); err == nil {
		t.Fatal("expected a parse error for a query with no RETURN clause")
	} else if _, ok := err.(*ParseError); !ok {
		t.Fatalf("expected a *ParseError, got %T", err)
	}
}

func TestParseRelationshipDirections(t *testing.T) {
	cases := []struct {
		query string
		want  ast.Direction
	}{
		{"MATCH (n)-[r]-(m) RETURN n", ast.DirNone},
		{"MATCH (n)-[r]->(m) RETURN n", ast.DirRight},
		{"MATCH (n)<-[r]-(m) RETURN n", ast.DirLeft},
		{"MATCH (n)<-[r]->(m) RETURN n", ast.DirBoth},
	}
	for _, c := range cases {
		q, err := Parse(c.query)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.query, err)
		}
		got := q.Matches[0].Pattern.Elements[0].Relationship.Direction
		if got != c.want {
			t.Fatalf("%s: want direction %v, got %v", c.query, c.want, got)
		}
	}
}

func TestParseRelationshipRange(t *testing.T) {
	one := 1
	three := 3
	five := 5
	cases := []struct {
		query string
		want  ast.Range
	}{
		{"MATCH (n)-[r*0..]-(m) RETURN n", ast.Range{Min: 0, Max: nil}},
		{"MATCH (n)-[r*3]-(m) RETURN n", ast.Range{Min: 3, Max: &three}},
		{"MATCH (n)-[r*..3]-(m) RETURN n", ast.Range{Min: 1, Max: &three}},
		{"MATCH (n)-[r*1..5]-(m) RETURN n", ast.Range{Min: 1, Max: &five}},
		{"MATCH (n)-[r*]-(m) RETURN n", ast.Range{Min: 1, Max: nil}},
		{"MATCH (n)-[r:KNOWS]->(m) RETURN n", ast.Range{Min: 1, Max: &one}},
		{"MATCH (n)-[r]-(m) RETURN n", ast.Range{Min: 1, Max: &one}},
		{"MATCH (n)-[]-(m) RETURN n", ast.Range{Min: 1, Max: &one}},
		{"MATCH (n)-->(m) RETURN n", ast.Range{Min: 1, Max: &one}},
	}
	for _, c := range cases {
		q, err := Parse(c.query)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.query, err)
		}
		got := q.Matches[0].Pattern.Elements[0].Relationship.Range
		if got == nil {
			t.Fatalf("%s: expected a range, got nil", c.query)
		}
		if got.Min != c.want.Min {
			t.Fatalf("%s: want min %v, got %v", c.query, c.want.Min, got.Min)
		}
		if (got.Max == nil) != (c.want.Max == nil) {
			t.Fatalf("%s: max nilness mismatch: want %v, got %v", c.query, c.want.Max, got.Max)
		}
		if got.Max != nil && *got.Max != *c.want.Max {
			t.Fatalf("%s: want max %v, got %v", c.query, *c.want.Max, *got.Max)
		}
	}
}

func TestParseOrderBySkipLimit(t *testing.T) {
	q, err := Parse("MATCH (n) RETURN n ORDER BY n DESC SKIP 5 LIMIT 10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ret := q.Return
	if ret.Order == nil || len(ret.Order.Items) != 1 {
		t.Fatalf("expected one ORDER BY item, got %#v", ret.Order)
	}
	if ret.Order.Items[0].Direction != "DESC" {
		t.Fatalf("expected raw direction text DESC, got %v", ret.Order.Items[0].Direction)
	}
	skip, ok := ret.Skip.(ast.BaseExpression)
	if !ok {
		t.Fatalf("expected SKIP to hold an expression, got %#v", ret.Skip)
	}
	lit := skip.Expr.(ast.PropertyLabelExpression).Atom.(ast.Literal)
	if lit.Value != 5 {
		t.Fatalf("expected SKIP value 5, got %v", lit.Value)
	}
}

func TestParseReturnStar(t *testing.T) {
	q, err := Parse("MATCH (n) RETURN *")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !q.Return.Star {
		t.Fatal("expected Star to be true for RETURN *")
	}
}

func TestParseReturnDistinct(t *testing.T) {
	q, err := Parse("MATCH (n) RETURN DISTINCT n.name AS name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !q.Return.Distinct {
		t.Fatal("expected Distinct to be true")
	}
	if q.Return.Items[0].Alias != "name" {
		t.Fatalf("expected alias 'name', got %v", q.Return.Items[0].Alias)
	}
}
