package browser

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chromedp/chromedp"

	"github.com/xkilldash9x/wdu-e2e/api/schemas"
)

const (
	upperASCII = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerASCII = "abcdefghijklmnopqrstuvwxyz"
)

// xpathLiteral quotes s for use inside an XPath 1.0 expression, which has no
// escape sequences. Strings holding both quote kinds are built with concat().
func xpathLiteral(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}

	parts := strings.Split(s, `"`)
	quoted := make([]string, 0, len(parts)*2)
	for i, part := range parts {
		if i > 0 {
			quoted = append(quoted, `'"'`)
		}
		if part != "" {
			quoted = append(quoted, `"`+part+`"`)
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}

// lowered folds an XPath expression to lower case, ASCII only.
func lowered(expr string) string {
	return fmt.Sprintf(`translate(%s, "%s", "%s")`, expr, upperASCII, lowerASCII)
}

// nameMatch is a case-insensitive substring match on an element's accessible
// name: its normalized text or its aria-label.
func nameMatch(name string) string {
	lit := xpathLiteral(strings.ToLower(strings.TrimSpace(name)))
	return fmt.Sprintf("contains(%s, %s) or contains(%s, %s)",
		lowered("normalize-space(string(.))"), lit,
		lowered("@aria-label"), lit)
}

// roleSelector builds an XPath union selecting elements with the given role
// and accessible name, covering both implicit (native element) and explicit
// (role attribute) roles.
func roleSelector(role schemas.Role, name string) string {
	match := nameMatch(name)
	explicit := fmt.Sprintf(`//*[@role=%s][%s]`, xpathLiteral(string(role)), match)

	switch role {
	case schemas.RoleLink:
		return fmt.Sprintf(`//a[@href][%s] | %s`, match, explicit)
	case schemas.RoleButton:
		value := fmt.Sprintf(`contains(%s, %s)`, lowered("@value"), xpathLiteral(strings.ToLower(strings.TrimSpace(name))))
		return fmt.Sprintf(`//button[%s] | //input[@type="submit" or @type="button" or @type="reset"][%s] | %s`, match, value, explicit)
	case schemas.RoleHeading:
		return fmt.Sprintf(`//*[self::h1 or self::h2 or self::h3 or self::h4 or self::h5 or self::h6][%s] | %s`, match, explicit)
	default:
		return explicit
	}
}

// placeholderSelector selects inputs and textareas by their exact placeholder.
func placeholderSelector(placeholder string) string {
	return fmt.Sprintf(`//*[@placeholder=%s]`, xpathLiteral(placeholder))
}

// isXPath reports whether sel is an XPath expression rather than a CSS selector.
func isXPath(sel string) bool {
	s := strings.TrimSpace(sel)
	return strings.HasPrefix(s, "/") || strings.HasPrefix(s, "./") || strings.HasPrefix(s, "(")
}

// queryBy picks how chromedp resolves sel. DOM.performSearch also matches
// plain text and node names, so CSS goes through querySelector instead.
func queryBy(sel string) chromedp.QueryOption {
	if isXPath(sel) {
		return chromedp.BySearch
	}
	return chromedp.ByQuery
}

// queryAllJS returns a script evaluating to the elements matching sel, as an array.
func queryAllJS(sel string) string {
	quoted, _ := json.Marshal(sel)
	if isXPath(sel) {
		return fmt.Sprintf(`(function() {
	const r = document.evaluate(%s, document, null, XPathResult.ORDERED_NODE_SNAPSHOT_TYPE, null);
	const out = [];
	for (let i = 0; i < r.snapshotLength; i++) { out.push(r.snapshotItem(i)); }
	return out;
})()`, quoted)
	}
	return fmt.Sprintf(`Array.from(document.querySelectorAll(%s))`, quoted)
}

// innerTextsJS evaluates to the innerText of every element matching sel.
func innerTextsJS(sel string) string {
	return fmt.Sprintf(`%s.map(e => e.innerText === undefined ? (e.textContent || "") : e.innerText)`, queryAllJS(sel))
}

// textContentJS evaluates to the textContent of the first match, or null.
func textContentJS(sel string) string {
	return fmt.Sprintf(`(function() { const e = %s[0]; return e ? e.textContent : null; })()`, queryAllJS(sel))
}
