// Package simpleblog provides a small blog catalog library: blogs tagged with
// categories, tags and an author, persisted as whole-document JSON
// collections on a pluggable blob storage backend.
//
// Every collection is a single JSON array stored under one key. Mutations
// read the full list, compute the new list and write it back; there is no
// append or partial-write API. Backends for memory, the local filesystem,
// S3 and Postgres live under the storage subpackages.
//
// Concurrency
//
// Writes to the same collection are not serialized. Two concurrent creates
// each read the list before either writes, so the later write wins and the
// earlier addition is lost. Deployments with more than one writer must
// serialize writes outside this package.
//
// Filtering, sorting and pagination of the blog list are handled by the
// catalog subpackage; filtersync keeps a catalog filter in step with a URL
// query string.
package simpleblog
