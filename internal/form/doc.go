// Package form projects a Kubernetes OpenAPI schema onto the handful of
// fields a form should edit.
//
// Project walks the source schema once per requested dot-path and builds
// three outputs: a reduced schema containing only the reachable nodes, a
// parallel tree of rendering hints, and a Mapping for map-typed fields.
//
// Map fields (labels, annotations, resource lists) are hoisted to the root
// of the form as arrays of {key, value} records, because nested objects with
// dynamic keys are awkward for form state libraries to patch. The Mapping
// records where each hoisted field came from so the transcode package can
// move data between the two shapes.
//
// Projection is best effort: a path that does not resolve against the schema
// is reported as a Diagnostic and skipped, and every other path still
// renders.
package form
