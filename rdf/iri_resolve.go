package rdf

import (
	"net/url"
	"strings"
)

// resolveIRI resolves a relative IRI against a base IRI according to RFC 3986.
func resolveIRI(baseStr, relative string) string {
	// Use Go's net/url for proper RFC 3986 resolution.
	baseURL, err := url.Parse(baseStr)
	if err != nil {
		return concatFallback(baseStr, relative)
	}

	relURL, err := url.Parse(relative)
	if err != nil {
		return concatFallback(baseStr, relative)
	}

	// If relative URL has a scheme, it's absolute - return as-is.
	if relURL.Scheme != "" {
		return relative
	}

	resolved := baseURL.ResolveReference(relURL)
	return resolved.String()
}

func concatFallback(baseStr, relative string) string {
	if strings.HasSuffix(baseStr, "/") {
		return baseStr + relative
	}
	lastSlash := strings.LastIndex(baseStr, "/")
	if lastSlash >= 0 {
		return baseStr[:lastSlash+1] + relative
	}
	return baseStr + "/" + relative
}

// isAbsoluteIRI reports whether iri carries a scheme, per RFC 3986's
// definition of an absolute-URI (scheme ":" hier-part).
func isAbsoluteIRI(iri string) bool {
	parsed, err := url.Parse(iri)
	if err != nil {
		return false
	}
	return parsed.Scheme != ""
}

// resolveNoResolve expands a namespace IRI and a local name by
// concatenation, not RFC 3986 resolution — QName expansion (xmlns-declared
// namespace + local name) is string concatenation, and must not be routed
// through resolveIRI. If local is already an absolute IRI it is returned
// unchanged; otherwise local must be an NCName and the concatenated result
// must itself be absolute, since every element/attribute name in RDF/XML
// denotes an absolute predicate or type IRI.
func resolveNoResolve(ns, local string) (string, error) {
	if isAbsoluteIRI(local) {
		return local, nil
	}
	if local != "" && !isValidNCName(local) {
		return "", ErrInvalidNCName
	}
	result := ns + local
	if !isAbsoluteIRI(result) {
		return "", ErrRelativeIRI
	}
	return result, nil
}

func isValidNCName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !isNCNameStartChar(r) {
				return false
			}
			continue
		}
		if !isNCNameChar(r) {
			return false
		}
	}
	return true
}

func isNCNameStartChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r > 0x7F
}

func isNCNameChar(r rune) bool {
	return isNCNameStartChar(r) || (r >= '0' && r <= '9') || r == '-' || r == '.'
}
