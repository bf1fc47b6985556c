// Package errors provides the classified error primitives used across the
// help center tooling.
//
// A ClassifiedError carries a category (outline, config, docs, ...), a
// severity and structured context. The CLI adapter maps categories to process
// exit codes so that fatal preconditions stay distinguishable from validation
// outcomes.
//
// Example usage:
//
//	err := errors.OutlineError("outline is missing the modules list").
//		WithContext("path", tocPath).
//		Build()
package errors
