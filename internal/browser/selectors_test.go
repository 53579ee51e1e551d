package browser

import (
	"reflect"
	"strings"
	"testing"

	"github.com/chromedp/chromedp"
	"github.com/stretchr/testify/assert"

	"github.com/xkilldash9x/wdu-e2e/api/schemas"
)

func TestXPathLiteral(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Contact Us", `"Contact Us"`},
		{"double quotes", `say "hi"`, `'say "hi"'`},
		{"single quote", "it's", `"it's"`},
		{"both quotes", `it's "x"`, `concat("it's ", '"', "x", '"')`},
		{"empty", "", `""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, xpathLiteral(tt.in))
		})
	}
}

func TestRoleSelector(t *testing.T) {
	t.Run("Link", func(t *testing.T) {
		sel := roleSelector(schemas.RoleLink, "Contact Us")
		assert.True(t, strings.HasPrefix(sel, "//a[@href]"))
		assert.Contains(t, sel, `"contact us"`, "name is matched lower-cased")
		assert.Contains(t, sel, `//*[@role="link"]`)
	})

	t.Run("Button", func(t *testing.T) {
		sel := roleSelector(schemas.RoleButton, " Login ")
		assert.Contains(t, sel, "//button[")
		assert.Contains(t, sel, `//input[@type="submit" or @type="button" or @type="reset"]`)
		assert.Contains(t, sel, `"login"`, "name is trimmed")
	})

	t.Run("Heading", func(t *testing.T) {
		sel := roleSelector(schemas.RoleHeading, "Welcome")
		assert.Contains(t, sel, "self::h1")
		assert.Contains(t, sel, "self::h6")
	})

	t.Run("ExplicitRoleOnly", func(t *testing.T) {
		sel := roleSelector(schemas.Role("tab"), "Settings")
		assert.True(t, strings.HasPrefix(sel, `//*[@role="tab"]`))
		assert.NotContains(t, sel, "|")
	})

	t.Run("IsXPath", func(t *testing.T) {
		for _, role := range []schemas.Role{schemas.RoleLink, schemas.RoleButton, schemas.RoleHeading} {
			assert.True(t, isXPath(roleSelector(role, "x")), "role %s", role)
		}
	})
}

func TestPlaceholderSelector(t *testing.T) {
	assert.Equal(t, `//*[@placeholder="First Name"]`, placeholderSelector("First Name"))
	assert.Equal(t, `//*[@placeholder='Your "nick"']`, placeholderSelector(`Your "nick"`))
}

func TestIsXPath(t *testing.T) {
	assert.True(t, isXPath("//h1"))
	assert.True(t, isXPath(" //body"))
	assert.True(t, isXPath("./div"))
	assert.True(t, isXPath("(//a)[1]"))
	assert.False(t, isXPath("#contact_reply h1"))
	assert.False(t, isXPath(`input[value="SUBMIT"]`))
	assert.False(t, isXPath("body"))
}

func TestQueryBy(t *testing.T) {
	same := func(want, got chromedp.QueryOption) bool {
		return reflect.ValueOf(want).Pointer() == reflect.ValueOf(got).Pointer()
	}
	assert.True(t, same(chromedp.BySearch, queryBy("//h1 | //body")))
	assert.True(t, same(chromedp.BySearch, queryBy(placeholderSelector("Username"))))
	assert.True(t, same(chromedp.ByQuery, queryBy("body")), "a bare tag name must not text-match <tbody>")
	assert.True(t, same(chromedp.ByQuery, queryBy(`input[value="SUBMIT"]`)))
	assert.True(t, same(chromedp.ByQuery, queryBy("#contact_reply h1")))
}

func TestQueryScripts(t *testing.T) {
	t.Run("CSS", func(t *testing.T) {
		js := queryAllJS(`input[value="SUBMIT"]`)
		assert.Equal(t, `Array.from(document.querySelectorAll("input[value=\"SUBMIT\"]"))`, js)
	})

	t.Run("XPath", func(t *testing.T) {
		js := queryAllJS("//h1")
		assert.Contains(t, js, `document.evaluate("//h1"`)
		assert.Contains(t, js, "ORDERED_NODE_SNAPSHOT_TYPE")
	})

	t.Run("TextScripts", func(t *testing.T) {
		assert.Contains(t, innerTextsJS("body"), ".map(e =>")
		assert.Contains(t, textContentJS("body"), "return e ? e.textContent : null")
	})
}
