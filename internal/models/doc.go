// Package models defines domain entities for the StreamHub watchlist service.
//
// The package contains two categories of types:
//
// 1. Catalog projections: lightweight structs holding movie metadata fetched
// from the external catalog at read time
//   - [Movie] : Display data for one movie (title, poster, rating)
//   - [Video] : A movie video resource, used for trailer lookup
//
// 2. Account records: durable state owned by the storage layer
//   - [Identity] : Public name/email pair for a signed-in user
//   - [Credential] : Identity plus password hash, used only for login matching
//
// Movie records are never persisted; they are recomputed from the catalog on
// every watchlist read.
package models
