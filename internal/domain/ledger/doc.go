// Package ledger contains the core bookkeeping entities of the print shop:
// companies, customer orders, and the derived financial fields recomputed on
// every save. Aggregate balances on a company are always re-derived from the
// full set of its orders rather than updated incrementally.
package ledger
