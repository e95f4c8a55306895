// Package errors provides coded, structured errors for the reconciler.
//
// Every failure the engine can report carries a stable code that maps to a
// registered template:
//   - E1xx: description errors (unsupported descriptor kinds, slots)
//   - E199: internal invariant violations (raised as panics)
//   - E2xx: component expansion failures
//   - E3xx: journal application failures
//   - E4xx: configuration and CLI failures
//
// # Usage
//
//	err := errors.New("E101").
//	    WithDetail(fmt.Sprintf("descriptor kind %d", kind))
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E101: Unsupported descriptor kind
//	//
//	//   descriptor kind 42
//
// Errors wrap their cause so errors.Is and errors.As keep working across the
// package boundary.
package errors
