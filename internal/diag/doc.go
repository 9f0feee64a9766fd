// Package diag defines the diagnostic model shared by the type table and the
// checker.
//
// Diagnostic reporting is an accumulator, not an exception: every failing
// checker path substitutes a fallback type (typically void) and writes into
// a Bag; there is no "throw across a frame" semantic. Severity is tri-level
// (error, warning, notice) per the language's diagnostic taxonomy. A Bag
// caps how many diagnostics it accepts (message_limit) and can sort and
// dedup its contents once a pass completes.
package diag
