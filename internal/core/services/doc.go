// Package services implements the driving ports with the core business
// logic: the retrieval coordinator (chunk, embed, dual-index, fuse) and
// the answer layer that turns retrieved segments into responses.
//
// Services depend only on domain types and driven ports; all
// infrastructure is injected at construction.
package services
