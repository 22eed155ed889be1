// Package services implements the core application logic: the ingestion
// pipeline (load, split, assign ids, dedup, store) and the query
// pipeline (retrieve, prompt, generate).
package services
