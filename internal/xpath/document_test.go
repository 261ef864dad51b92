package xpath

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/antchfx/htmlquery"
	antchfx "github.com/antchfx/xpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func loadGrades(t *testing.T) *html.Node {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", "grades.html"))
	require.NoError(t, err)
	defer f.Close()

	doc, err := htmlquery.Parse(f)
	require.NoError(t, err)
	return doc
}

// TestRenderedSyntaxCompiles checks that emitted expressions are accepted by
// an independent XPath 1.0 parser.
func TestRenderedSyntaxCompiles(t *testing.T) {
	union, err := From("th").Union(From("td").WhereTextLength(0))
	require.NoError(t, err)

	exprs := []string{
		From("div").WhereAttribute("id", "x").And().WhereAttribute("class", "y").Render(),
		From("div").WhereAttribute("id", "x").Or().WhereAttributeMissing("hidden").Render(),
		From("div").WhereAttribute("class", "Active", IgnoreCase()).Render(),
		FromAny().WhereNotAnyAttribute("submit").Render(),
		FromAny().WhereAnyAttribute("submit", IgnoreCase()).Render(),
		FromAny().WhereNotAnyAttribute("submit", IgnoreCase()).Render(),
		From("a").WhereAttributeEndsWith("href", ".pdf", IgnoreCase()).Render(),
		From("a").WhereAttributeNotStartsWith("href", "http").Render(),
		From("li").WhereAttributeGreaterOrEqual("price", Float(2.5)).Render(),
		From("li").WhereAttributeLessThan("code", String("b")).Render(),
		From("td").WhereText("O'Brien").Render(),
		From("td").WhereAllTextNotContains("x").Render(),
		From("td").WhereTextNotEndsWith("h").Render(),
		From("td").WhereTextGreaterThan(Float(1000)).Render(),
		From("td").WhereTextLessThan(Float(math.Inf(1))).Render(),
		From("td").WhereTextLengthGreaterThan(3).Render(),
		From("option").WhereTextIsNotDefault().Render(),
		From("tr").WhereNotPosition(1).And().WhereLastPositionOffset(2).Render(),
		From("td").WhereParent(From("tr").WhereAttributeContains("class", "row")).Render(),
		From("td").WhereNotFollowingSibling(AnyTag()).Render(),
		Must(Must(From("table").Descendant(Tag("tr"))).WherePosition(2).Child(Tag("td"))).Render(),
		Must(From("td").WhereAttribute("id", "x").Text()).Render(),
		FromDescendant("td").Render(),
		FromChild("td").WhereAttributeExists("colspan").Render(),
		From("td").WhereAttribute("id", "x").RenderIndexed(3),
		union,
	}

	for _, expr := range exprs {
		t.Run(expr, func(t *testing.T) {
			_, err := antchfx.Compile(expr)
			assert.NoError(t, err)
		})
	}
}

func TestEvaluateAgainstHTML(t *testing.T) {
	doc := loadGrades(t)

	testCases := []struct {
		name  string
		expr  string
		count int
		first string
	}{
		{
			name:  "data rows",
			expr:  Must(From("table").WhereAttribute("id", "grades").Descendant(Tag("tr"))).WherePositionGreaterThan(1).Render(),
			count: 3,
			first: "O'BrienMath91",
		},
		{name: "quoted literal", expr: From("td").WhereText("O'Brien").Render(), count: 1, first: "O'Brien"},
		{name: "ignore case", expr: From("td").WhereText("MATH", IgnoreCase()).Render(), count: 2, first: "Math"},
		{name: "suffix", expr: From("a").WhereAttributeEndsWith("href", ".pdf", IgnoreCase()).Render(), count: 2, first: "Fall report"},
		{name: "not suffix", expr: From("a").WhereAttributeNotEndsWith("href", ".pdf").Render(), count: 2, first: "Fall report"},
		{name: "default placeholder", expr: From("option").WhereTextIsDefault().Render(), count: 1, first: "(default)"},
		{name: "not default placeholder", expr: From("option").WhereTextIsNotDefault().Render(), count: 2, first: "Fall"},
		{
			name:  "cell of matching row",
			expr:  Must(From("tr").WhereChild(From("td").WhereText("Nguyen")).Child(Tag("td"))).WherePosition(3).Render(),
			count: 1,
			first: "78",
		},
		{name: "numeric text", expr: From("td").WhereTextGreaterThan(Int(70)).Render(), count: 2, first: "91"},
		{name: "class token", expr: From("tr").WhereAttributeContains("class", "odd").Render(), count: 1, first: "Smithmath64"},
		{
			name:  "preceding sibling expression",
			expr:  From("td").WherePrecedingSibling(From("td").WhereText("Smith")).Render(),
			count: 2,
			first: "math",
		},
		{name: "or", expr: From("td").WhereText("Nguyen").Or().WhereText("Smith").Render(), count: 2, first: "Nguyen"},
		{name: "text node", expr: Must(From("th").WherePosition(2).Text()).Render(), count: 1, first: "Course"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			nodes, err := htmlquery.QueryAll(doc, tc.expr)
			require.NoError(t, err, tc.expr)
			require.Len(t, nodes, tc.count, tc.expr)
			assert.Equal(t, tc.first, htmlquery.InnerText(nodes[0]))
		})
	}
}

func TestEvaluateUnion(t *testing.T) {
	doc := loadGrades(t)

	got, err := From("th").Union(From("option"))
	require.NoError(t, err)

	nodes, err := htmlquery.QueryAll(doc, got)
	require.NoError(t, err)
	assert.Len(t, nodes, 6)
}

// TestAnyAttributeIgnoreCase checks that every attribute is compared, not
// only the first one of each element.
func TestAnyAttributeIgnoreCase(t *testing.T) {
	doc, err := htmlquery.Parse(strings.NewReader(
		`<div id="a" title="SUBMIT">div</div><span title="x" data-k="Submit">span</span><p id="b">p</p>`))
	require.NoError(t, err)

	children := func() *Expression { return Must(From("body").Child(AnyTag())) }

	testCases := []struct {
		name  string
		expr  string
		texts []string
	}{
		{"exact", children().WhereAnyAttribute("SUBMIT").Render(), []string{"div"}},
		{"ignore case", children().WhereAnyAttribute("submit", IgnoreCase()).Render(), []string{"div", "span"}},
		{"not ignore case", children().WhereNotAnyAttribute("submit", IgnoreCase()).Render(), []string{"p"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			nodes, err := htmlquery.QueryAll(doc, tc.expr)
			require.NoError(t, err, tc.expr)

			var texts []string
			for _, n := range nodes {
				texts = append(texts, htmlquery.InnerText(n))
			}
			assert.Equal(t, tc.texts, texts, tc.expr)
		})
	}
}
