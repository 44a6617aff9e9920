// Package utils holds small conversion helpers for loosely typed input such as
// schema dumps, where numeric fields are sometimes encoded as strings.
package utils
