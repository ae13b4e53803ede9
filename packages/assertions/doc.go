// Package assertions provides the JSON assertion verbs for jsonspec.
//
// Supported checks:
//   - Containment (see/dontSee response contains a JSON fragment)
//   - Typed-pattern matching (see/dontSee response matches a type spec)
//   - JSONPath matching and extraction (RFC 9535)
//   - XPath matching and evaluation over the projected tree
//   - JSON Schema validation (schema text supplied by the caller)
//   - gjson dot-path grabs on the raw body
//
// An Asserter decodes the body once; the projected tree is built lazily on
// first use and shared by every later XPath call. Expected mismatches come
// back as a Result, malformed inputs (bad JSON, bad expressions, bad
// patterns) as errors.
package assertions
