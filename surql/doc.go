// Package surql renders value trees as SurrealQL literals, for building
// queries from encoded records:
//
//	node, _ := reg.Encode(post)
//	q := "CREATE " + surql.ID(id) + " " + must(surql.Content(node))
//	// CREATE blogPost:⟨How to use surrealdb⟩ CONTENT { title: 'How to use surrealdb', ... }
//
// Output is compact by default; Pretty indents nested arrays and objects
// and WithColors highlights it for terminals.
package surql
