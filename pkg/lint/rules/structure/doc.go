// Package structure provides lint rules for ESQL module structure.
//
// Rules in this package:
//   - ST01: Function or procedure declared in a module but never called
package structure
