// Package jsontree projects decoded JSON values into an XML-like element
// tree for XPath querying.
//
// Object members become named child elements in document order. List entries
// become repeated sibling elements reusing the tag that owns the list, which
// is how a JSON array turns into "multiple <item> siblings". Scalar leaves
// carry a type attribute (boolean, number, null or string) and canonical
// text, so queries can predicate on both structure and type.
//
// Projection is pure and total; a Tree is immutable once built and safe for
// concurrent queries.
package jsontree
