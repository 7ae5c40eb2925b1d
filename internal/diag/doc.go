// Package diag defines the error model shared by every stage of format
// string processing.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with a stable ID such as
//     "BRC1001". The numeric range of a code decides its Kind.
//   - Message – the exact, compatibility-stable message text.
//   - Primary – byte span inside the format string that caused the problem.
//   - Notes – optional secondary spans/messages.
//
// # Errors
//
// Scanning, field path parsing, numbering and rendering fail fast and return
// *Error, which wraps a Diagnostic. Callers select on the kind with errors.Is:
//
//	if errors.Is(err, diag.ErrNumberingConflict) { ... }
//
// and reach code and span with errors.As. Errors raised by host primitives are
// kept as the wrapped cause (Unwrap).
//
// # Collecting
//
// Bag aggregates diagnostics from many templates (batch rendering) and supports
// sorting and deduplication. Package diag performs no formatting or IO;
// rendering lives in internal/diagfmt.
package diag
