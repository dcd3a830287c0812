// Package utils provides small helpers for reading loosely typed values out of
// decoded Pulp payloads: hrefs, counters, flags and lists.
package utils
