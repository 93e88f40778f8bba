// Package loader decodes declarative object files from the watched directory.
//
// A path is eligible when it carries the ".yaml" extension and does not name
// a directory; ineligible paths are skipped without error. Eligibility does
// not require the file to exist, so removal notifications for files that are
// already gone still resolve to their key.
//
// Read failures and decode failures are both reported as a *LoadError.
// Callers must not depend on which of the two occurred.
package loader
