// Package convention provides lint rules for ESQL coding conventions.
//
// Rules in this package:
//   - CV01: Variable names must match a configurable pattern
package convention
