package gsheets

// AppendRequest is the input for appending one row to a sheet.
type AppendRequest struct {
	SpreadsheetID string
	SheetName     string
	Values        []any
}

// ReadRequest is the input for reading rows from a sheet.
type ReadRequest struct {
	SpreadsheetID string
	SheetName     string
	// Range within the sheet in A1 notation, e.g. "A2:Q". Empty reads the
	// whole sheet.
	Range string
}
