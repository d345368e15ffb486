package jsonschema

import "strings"

// Draft identifies one of the published JSON Schema specification versions.
type Draft string

const (
	Draft3     Draft = "draft3"
	Draft4     Draft = "draft4"
	Draft6     Draft = "draft6"
	Draft7     Draft = "draft7"
	Draft2019  Draft = "draft2019-09"
	Draft2020  Draft = "draft2020-12"
	DraftNext  Draft = "draft-next"
	draftLatest      = Draft2020
)

// draftOrder gives each draft a rank so "at least X" comparisons are cheap.
var draftOrder = map[Draft]int{
	Draft3:    0,
	Draft4:    1,
	Draft6:    2,
	Draft7:    3,
	Draft2019: 4,
	Draft2020: 5,
	DraftNext: 6,
}

// atLeast reports whether d is the same draft as or newer than other.
func (d Draft) atLeast(other Draft) bool {
	dr, ok := draftOrder[d]
	or, ok2 := draftOrder[other]
	if !ok || !ok2 {
		return false
	}
	return dr >= or
}

// before reports whether d predates other.
func (d Draft) before(other Draft) bool {
	return !d.atLeast(other) && d != other
}

// metaSchemaURIs maps the canonical $schema URI (and a few historical
// aliases) to the draft it selects. Populated from the URIs every draft's
// own meta-schema declares for itself.
var metaSchemaURIs = map[string]Draft{
	"http://json-schema.org/draft-03/schema#":      Draft3,
	"http://json-schema.org/draft-03/schema":       Draft3,
	"http://json-schema.org/draft-04/schema#":      Draft4,
	"http://json-schema.org/draft-04/schema":       Draft4,
	"http://json-schema.org/draft-06/schema#":      Draft6,
	"http://json-schema.org/draft-06/schema":       Draft6,
	"http://json-schema.org/draft-07/schema#":      Draft7,
	"http://json-schema.org/draft-07/schema":       Draft7,
	"https://json-schema.org/draft/2019-09/schema": Draft2019,
	"https://json-schema.org/draft/2020-12/schema": Draft2020,
	"https://json-schema.org/draft/next/schema":    DraftNext,
}

// draftFromSchemaURI resolves a $schema value to a Draft, returning false
// when the URI is unrecognized.
func draftFromSchemaURI(uri string) (Draft, bool) {
	if uri == "" {
		return "", false
	}
	if d, ok := metaSchemaURIs[uri]; ok {
		return d, true
	}
	// Accept the URI with or without its trailing fragment marker.
	trimmed := strings.TrimSuffix(uri, "#")
	if d, ok := metaSchemaURIs[trimmed]; ok {
		return d, true
	}
	return "", false
}

// ParseDraft accepts the option-level draft tags from §6 of the spec
// ("draft3", "draft4", ..., "latest") and returns the normalized Draft.
func ParseDraft(tag string) (Draft, bool) {
	if tag == "latest" {
		return draftLatest, true
	}
	d := Draft(tag)
	if _, ok := draftOrder[d]; ok {
		return d, true
	}
	return "", false
}

// normalizeVocabURI folds draft-next vocabulary URIs onto their 2020-12
// equivalents, per §4.5: both forms must be accepted.
func normalizeVocabURI(uri string) string {
	return strings.Replace(uri, "/draft/next/vocab/", "/draft/2020-12/vocab/", 1)
}

// effectiveDraft returns the draft this schema node was compiled under,
// resolved from the nearest $schema in its ancestry, falling back to the
// compiler's configured default and finally to draft2020-12.
func (s *Schema) effectiveDraft() Draft {
	for n := s; n != nil; n = n.parent {
		if n.Schema != "" {
			if d, ok := draftFromSchemaURI(n.Schema); ok {
				return d
			}
		}
	}
	if c := s.GetCompiler(); c != nil && c.Draft != "" {
		return c.Draft
	}
	return draftLatest
}
