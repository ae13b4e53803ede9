// Package jsonvalue models decoded JSON documents for jsonspec.
//
// A Value is an immutable tagged union over the six JSON kinds. Unlike a
// plain map-based decode, object member order is preserved and numbers keep
// their literal text, so downstream consumers (tree projection, containment,
// type matching) can distinguish 25 from 25.0 and report members in document
// order.
//
// Decode and DecodeString are the response-body boundary: a bare top-level
// scalar is wrapped in a single-element list there so path queries can
// address it. FromInterface is the author-literal boundary and never wraps.
package jsonvalue
