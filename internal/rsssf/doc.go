// Package rsssf extracts league tables from the plain text of RSSSF season
// pages.
//
// RSSSF publishes each English league season as preformatted text. Tables are
// recognised by their row marker: a line that, ignoring leading spaces, starts
// with a position such as "1.", "12.=" or "7 " followed by a space. Lines
// around a table are kept as information about the division, and any line
// mentioning "Pts" before the table contributes column names to its header.
//
//	divisions, next := rsssf.ParseTables(text, 1)
//	if divisions == nil {
//	    // no tables in this season
//	}
//
// Team names are tidied with NormalizeTeamName, while each row keeps a flag
// recording whether the name was printed in capitals; RSSSF uses capitals to
// mark champions and promoted or relegated clubs.
package rsssf
