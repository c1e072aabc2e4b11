// Package history implements the adaptive multi-tier history buffer that
// feeds trend widgets from live sensor telemetry under a fixed memory budget.
//
// Architecture:
//
//	┌───────────┐  Add()   ┌─────────────┐  aged out  ┌──────────────────┐
//	│ Ingestion │─────────▶│ recent tier │───────────▶│ downsampled tier │
//	│ pipeline  │          │ (full res)  │    LTTB    │ (reduced, capped)│
//	└───────────┘          └─────────────┘            └──────────────────┘
//	                              │                            │
//	                              └──── All / Recent / Range ──┘
//	                                           │
//	                                           ▼
//	                                    trend renderer
//
// Each Buffer tracks one metric series. Recent points are kept at full
// resolution for a configurable window; on every insert, points that have
// aged out of the window are moved to the downsampled tier after an LTTB
// pass (or last-value-wins for text series). Both tiers enforce hard
// capacities by dropping their oldest points, so total memory is bounded
// no matter how long the session runs.
//
// A Buffer is mutated from a single ingestion path and performs no internal
// locking; cross-goroutine use requires external synchronization.
package history
