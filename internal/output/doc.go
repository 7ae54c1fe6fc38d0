// Package output writes a completion Result to a stream.
//
// The JSON format is the programmatic contract: a single pretty-printed
// object with non-ASCII text and HTML-significant characters left as is.
// The text format prints only the response (or the error) for humans.
package output
