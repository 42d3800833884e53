package compono

import "strings"

// voidTags never have children or a close tag; the parser stops looking for
// one and the serializer never emits one.
var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// rawTextTags have their content tokenized as a single opaque text run up to
// the matching close tag, instead of being parsed as markup.
var rawTextTags = map[string]bool{
	"script": true, "style": true,
}

// reservedTags are handled specially inside a definition body and are never
// treated as a component invocation.
var reservedTags = map[string]bool{
	"prop": true, "slot": true,
}

// nativeTags is the fixed, closed set of HTML and common SVG element names
// used to decide that an unknown tag is a candidate component invocation
// rather than a typo'd native element. This set must stay closed and
// element-only: anything wider (e.g. consulting a table that also indexes
// attribute names) would misclassify a colliding invocation tag as native
// and silently drop it from expansion.
var nativeTags = map[string]bool{
	"a": true, "abbr": true, "address": true, "area": true, "article": true,
	"aside": true, "audio": true, "b": true, "base": true, "bdi": true,
	"bdo": true, "blockquote": true, "body": true, "br": true, "button": true,
	"canvas": true, "caption": true, "cite": true, "code": true, "col": true,
	"colgroup": true, "data": true, "datalist": true, "dd": true, "del": true,
	"details": true, "dfn": true, "dialog": true, "div": true, "dl": true,
	"dt": true, "em": true, "embed": true, "fieldset": true, "figcaption": true,
	"figure": true, "footer": true, "form": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "head": true,
	"header": true, "hgroup": true, "hr": true, "html": true, "i": true,
	"iframe": true, "img": true, "input": true, "ins": true, "kbd": true,
	"label": true, "legend": true, "li": true, "link": true, "main": true,
	"map": true, "mark": true, "menu": true, "meta": true, "meter": true,
	"nav": true, "noscript": true, "object": true, "ol": true,
	"optgroup": true, "option": true, "output": true, "p": true,
	"param": true, "picture": true, "pre": true, "progress": true, "q": true,
	"rp": true, "rt": true, "ruby": true, "s": true, "samp": true,
	"script": true, "search": true, "section": true, "select": true,
	"slot": true, "small": true, "source": true, "span": true,
	"strong": true, "style": true, "sub": true, "summary": true, "sup": true,
	"table": true, "tbody": true, "td": true, "template": true,
	"textarea": true, "tfoot": true, "th": true, "thead": true, "time": true,
	"title": true, "tr": true, "track": true, "u": true, "ul": true,
	"var": true, "video": true, "wbr": true,

	// common SVG element names
	"svg": true, "path": true, "g": true, "defs": true, "use": true,
	"circle": true, "ellipse": true, "line": true, "polygon": true,
	"polyline": true, "rect": true, "text": true, "lineargradient": true,
	"radialgradient": true, "stop": true, "symbol": true, "view": true,
	"clippath": true, "filter": true, "mask": true, "foreignobject": true,
}

// isNative reports whether tag (already lowercased) is in the fixed native
// registry.
func isNative(tag string) bool {
	return nativeTags[tag]
}

// isVoid reports whether tag is a void element.
func isVoid(tag string) bool {
	return voidTags[tag]
}

// isRawText reports whether tag's content is tokenized as opaque text.
func isRawText(tag string) bool {
	return rawTextTags[tag]
}

// isReserved reports whether tag is handled specially inside a definition
// body (prop/slot), rather than as native markup or a component invocation.
func isReserved(tag string) bool {
	return reservedTags[tag]
}

// defSymbol returns the symbol named by a "def-SYM" tag and whether tag was
// a well-formed definition tag at all (i.e. started with "def-"). The symbol
// itself may still fail validSymbol — callers must check that separately.
func defSymbol(tag string) (string, bool) {
	const prefix = "def-"
	if !strings.HasPrefix(tag, prefix) || len(tag) == len(prefix) {
		return "", false
	}
	return tag[len(prefix):], true
}

// validSymbol reports whether sym begins with an ASCII letter and consists
// thereafter of ASCII letters, digits, or hyphens.
func validSymbol(sym string) bool {
	if sym == "" {
		return false
	}
	for i := 0; i < len(sym); i++ {
		c := sym[i]
		switch {
		case i == 0:
			if !isASCIILetter(c) {
				return false
			}
		default:
			if !isASCIILetter(c) && !isASCIIDigit(c) && c != '-' {
				return false
			}
		}
	}
	return true
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
