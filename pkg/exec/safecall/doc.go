// Package safecall converts arbitrary caller-supplied functions into total
// functions over Result: returned errors and recovered panics both surface
// as Error outcomes and never escape the wrapper.
package safecall
