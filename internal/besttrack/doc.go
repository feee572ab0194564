// Package besttrack models HURDAT2-style best-track data.
//
// # File layout
//
// A combined best-track file concatenates the records of many storms. Each
// storm block opens with a header line:
//
//	AL312020,            IOTA,     26,
//
// where the first field is the storm identifier (two-letter basin code plus
// six digits encoding cyclone number and season year), the second is the
// storm name, and the third is the number of fix records that follow.
//
// Every subsequent line up to the next header is a fix record for that storm:
//
//	20201116, 0000,  , HU, 13.4N, 82.7W, 135,  920, ...
//
// Fix records always begin with an eight-digit YYYYMMDD date, which is how
// tools distinguish data lines from headers and comments. The fourth column
// is the cyclone status code (HU, TS, TD, EX, ...). Latitude and longitude
// carry hemisphere suffixes (13.4N, 82.7W).
//
// # Output naming
//
// Split per-storm files are named <id>_<name>_<n>.txt. The name field has
// all whitespace removed (headers pad names with spaces); the track-number
// field is trimmed at the edges only. Neither field is otherwise rewritten,
// so [Header.Filename] rejects values that could escape the output
// directory.
package besttrack
