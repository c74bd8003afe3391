// Package csvproc reads the simple comma separated exports of brokers and
// quote sites, one row at a time, through a column mapping.
//
// The format is deliberately minimal: the first line is a header, every
// other non blank line is split on commas. Quoting, escaping and multi-line
// fields are not supported; a value enclosed in double quotes only loses its
// quotes.
package csvproc
