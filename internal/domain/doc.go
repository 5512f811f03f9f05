// Package domain models a station's daily wind and precipitation log and the
// rules that decide whether a day had a good wind window.
//
// # Data Source
//
// The log is a delimited text file exported from a forecast archive, one row per
// calendar day. The first line is a header and never reaches this package; the
// file adapter skips it.
//
// # Row Layout
//
// Fields are separated by a single delimiter (tab in exported files):
//
//	[0]       date, "dd.mm.yyyy", e.g. "10.01.2014"
//	[1..24]   wind speed in knots for hours 00..23, integers
//	[25]      section separator, ignored
//	[26..49]  precipitation for hours 00..23, decimals with a '.' point
//
// Index alignment to hour of day is load-bearing: every aggregation selects
// readings by hour index. Older exports without the separator column are not
// supported and fail with a [FormatError] because the precipitation block comes
// up one value short.
//
// A trailing delimiter at the end of the line is tolerated. Anything else that
// does not parse aborts the row; no reading is defaulted.
//
// # Good Wind Windows
//
// A day qualifies when, over an [HourRange] such as 09:00–18:00, its mean
// precipitation is strictly below a ceiling and its mean wind speed is strictly
// above a floor. A month qualifies when any of its days does. Months are keyed by
// their first day at UTC midnight, see [MonthOf].
//
// # Errors
//
// [ErrFormat] (via [FormatError]) for unparseable rows, [ErrInvalidArgument] for
// hour ranges outside 00..23 or inverted, and [ErrEmptyRange] when a mean is
// requested over a zero-length window.
package domain
