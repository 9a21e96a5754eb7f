package model

// FromMetron maps a Metron issue onto the app's comic record.
// Pure function: input is never mutated, output UPC is always the
// exact string passed in.
func FromMetron(issue MetronIssue, upc string) Comic {
	return Comic{
		UPC:          upc,
		Name:         issue.Issue,
		IssueNumber:  issue.Number,
		SeriesName:   issue.Series.Name,
		SeriesVolume: issue.Series.Volume,
		SeriesYear:   issue.Series.YearBegan,
		CoverImage:   issue.Image,
		// Variant number in the extended format is the 16th digit
		VariantNumber: string(upc[15]),
		// Printing is the 17th digit
		Printing: string(upc[16]),
	}
}
