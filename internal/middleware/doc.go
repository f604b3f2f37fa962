// Package middleware implements the request-processing stages composed
// around the user handlers:
//
//	ErrorContainment → Logging → Auth → handler
//
// Logging buffers everything written downstream and forwards it to the
// real response only when the inner chain completes normally. A fault
// therefore reaches ErrorContainment with nothing committed, and the
// containment stage can still replace the response with a JSON 500.
package middleware
