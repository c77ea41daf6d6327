// Package billing covers invoicing: partitioning orders into per-billee
// groups, the factor records persisted for each printed invoice, and the
// totals carried on them. A factor is a financial snapshot taken at print
// time; later edits to the underlying orders do not rewrite it.
package billing
