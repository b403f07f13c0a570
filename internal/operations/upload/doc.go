// Package upload handles batched file uploads through presigned URLs.
//
// A batch runs in three steps: one presigned URL is requested per file, every
// file is sent to its URL concurrently, and the files that arrived are handed
// to the service for processing in a single request. A failed file never
// aborts its siblings; the batch only fails when no file arrives at all.
package upload
