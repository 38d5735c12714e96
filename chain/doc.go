// Package chain queues transformation steps onto the groups of a grouped
// table and recombines the transformed groups into a single table or a JSON
// document.
//
// A Chain is built from a table, grouped once, and then extended fluently:
//
//	out, err := chain.FromTable(t).
//		GroupBy(table.ByColumn("sensor")).
//		ResetStartingValues().
//		Divide(chain.ByPosition(0), chain.OnlyGroups("A")).
//		Concat(ctx, chain.WithNaming(chain.NamingJoin))
//
// Steps run lazily: every Concat, WriteJSON, ToJSON or TransformedGroups
// call re-applies the current step list to fresh copies of the groups, so
// the stored groups never change. The first error recorded by a builder is
// kept and returned by the next terminal operation.
//
// A Chain is not safe for concurrent use.
package chain
