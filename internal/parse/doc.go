// Package parse turns raw problem emails into the pieces the ingestion
// pipeline stores: the problem number from the subject and the problem
// statement from the body. Everything here is pure and safe to call
// without a mail session.
package parse
