// Package stockledger provides the types and computations for keeping a
// personal ledger of stock trades. It is designed to be local-first and
// auditable: the transaction history is the single source of truth, and
// every derived figure is recomputed from it on demand.
//
// The core functionalities include:
//   - Transaction Records: Buy and sell trades for 6-digit exchange codes,
//     with validation at the input boundary and a chronological Ledger
//     container persisted as human-readable JSONL.
//   - Fee Schedule: The regulatory fee rules applied to each trade
//     (commission with a floor, sell-side stamp duty, transfer fee).
//   - Position Engine: A stateless fold over the transaction history that
//     produces weighted-average-cost positions with fee-inclusive cost basis.
//   - Profit Engine: Lifetime cash-flow aggregation per user and per stock,
//     gross and net of fees, plus monthly activity buckets and overall stats.
//
// Persistence, CSV import, quotes, export and the CLI live in subpackages;
// this package performs no I/O.
package stockledger
