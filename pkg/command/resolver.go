package command

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/apiforge/commandgen/pkg/shape"
)

// MaxDocumentationLength is the hard cap on cleaned member documentation.
// Truncation is a plain cut, no ellipsis.
const MaxDocumentationLength = 200

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// kindTypes maps vendor shape kinds onto resolved parameter types.
// The mapping is intentionally shallow: list element and structure member
// types are never descended into, only the immediate kind is recorded.
// Timestamps resolve to string (ISO-8601 on the wire), blobs to string
// (base64 on the wire).
var kindTypes = map[string]ParamType{
	shape.KindString:    TypeString,
	shape.KindInteger:   TypeNumber,
	shape.KindLong:      TypeNumber,
	shape.KindFloat:     TypeNumber,
	shape.KindDouble:    TypeNumber,
	shape.KindBoolean:   TypeBoolean,
	shape.KindTimestamp: TypeString,
	shape.KindBlob:      TypeString,
	shape.KindList:      TypeArray,
	shape.KindMap:       TypeObject,
	shape.KindStructure: TypeObject,
}

// Resolve maps one shape reference to its resolved parameter type and
// cleaned documentation. It fails with ErrShapeNotFound when the
// referenced name has no entry in the store; the caller decides whether
// that is recoverable.
func Resolve(ref *shape.Ref, store *shape.Store) (ParamType, string, error) {
	target, ok := store.Get(ref.Shape)
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrShapeNotFound, ref.Shape)
	}

	typ, known := kindTypes[target.Type]
	if !known {
		// Forward-compatible kinds pass through with their raw name.
		typ = ParamType(target.Type)
		if target.Type == "" {
			typ = TypeUnknown
		}
	}

	// Member-level documentation wins over the shape's own.
	doc := ref.Documentation
	if doc == "" {
		doc = target.Documentation
	}

	return typ, CleanDocumentation(doc), nil
}

// CleanDocumentation strips tag-like <...> substrings, collapses runs of
// whitespace to a single space, trims, and hard-truncates at
// MaxDocumentationLength characters. The operation is idempotent.
func CleanDocumentation(doc string) string {
	doc = tagPattern.ReplaceAllString(doc, "")
	doc = whitespacePattern.ReplaceAllString(doc, " ")
	doc = strings.TrimSpace(doc)

	runes := []rune(doc)
	if len(runes) > MaxDocumentationLength {
		// The cut can land just after a space; drop it so cleaning
		// the result again changes nothing.
		doc = strings.TrimRight(string(runes[:MaxDocumentationLength]), " ")
	}
	return doc
}
