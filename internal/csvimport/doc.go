// Package csvimport implements the CSV ingestion pipeline for flashcard
// collections: delimiter detection, header normalization, schema validation,
// streaming row processing with deduplication, and batched whole-collection
// persistence.
//
// The pipeline has two entry points. Validator performs a read-only pass
// suitable for previewing an upload; it never touches storage and is safe to
// call repeatedly. Processor consumes the file for real: it streams data rows,
// validates and sanitizes each one, skips duplicates against both the stored
// collection and the in-flight batch, and flushes bounded batches through the
// store. Row-level defects never abort a run; they are accumulated in the
// returned Report together with an ordered, timestamped log.
package csvimport
