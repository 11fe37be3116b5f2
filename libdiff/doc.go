// Package libdiff compares value trees.
//
// # Usage
//
//	// structural changes, one per differing path
//	for _, c := range libdiff.Diff(oldNode, newNode) {
//	    fmt.Println(c.Path, value.Repr(c.From), "->", value.Repr(c.To))
//	}
//
//	// line diff of the pretty SurrealQL renderings
//	libdiff.Write(os.Stdout, libdiff.Lines(oldNode, newNode), true)
//
// # Related Packages
//
//   - github.com/signadot/go-surreal/value - value trees
//   - github.com/signadot/go-surreal/surql - SurrealQL rendering
package libdiff
