/*
Package tracing is the scaffolding for structured instrumentation: the
field/value recording core used to attach named, typed data to spans
and events without heap allocation on the recording path.

The interesting packages are:

  - field: callsite-scoped field sets, opaque field keys, the closed
    value catalogue, and the transient value sets that replay values
    through visitors.
  - callsite: the opaque identity handle for callsites.
  - metadata: the immutable per-callsite description that owns each
    FieldSet.
  - fieldtest: an introspective visitor that captures recorded values
    for examination in tests.
  - otelvisit, zapvisit: gateway visitors that convert recorded values
    into OpenTelemetry attributes and zap fields.

Span lifecycle, callsite registration, and collector dispatch live
elsewhere; this module only defines how values are keyed, erased, and
delivered.
*/
package tracing
