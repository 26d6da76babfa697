// Package code turns block source files into copyable code.
//
// Reading never fails a page: a missing, unreadable or binary file yields
// an empty string and a logged warning. Imports that point into a block's
// private namespace are rewritten to the paths a consumer project uses.
package code
