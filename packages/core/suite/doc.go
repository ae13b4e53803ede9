// Package suite defines the YAML check-suite format and runs suites
// against a decoded JSON document.
//
// A suite is a list of named checks, each holding exactly one assertion:
//   - containsJson: a fragment the document must contain
//   - jsonType: a typed-pattern description, optionally targeted with jsonPath
//   - jsonPath: an expression that must select at least one element
//   - xpath: an expression whose result must be truthy
//   - schema: a JSON Schema reference validated against the raw body
//
// Each assertion also has a negated dont* form. Checks run in file order
// and every check runs even when an earlier one fails; bailing early is
// the caller's decision.
package suite
