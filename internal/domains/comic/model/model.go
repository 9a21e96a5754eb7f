package model

// Comic là record nội bộ của app, map từ Metron issue + UPC
type Comic struct {
	UPC           string `json:"upc"`
	Name          string `json:"name"`
	IssueNumber   string `json:"issueNumber"`
	SeriesName    string `json:"seriesName"`
	SeriesVolume  string `json:"seriesVolume"`
	SeriesYear    string `json:"seriesYear"`
	CoverImage    string `json:"coverImage"`
	VariantNumber string `json:"variantNumber"`
	Printing      string `json:"printing"`
}

// MetronSeries - nested series object trong Metron issue response
type MetronSeries struct {
	Name      string `json:"name"`
	Volume    string `json:"volume"`
	YearBegan string `json:"year_began"`
}

// MetronIssue - một issue record từ Metron API
type MetronIssue struct {
	Series MetronSeries `json:"series"`
	Number string       `json:"number"`
	Issue  string       `json:"issue"`
	Image  string       `json:"image"`
}

// MetronResponse - paginated response của Metron issue endpoint
type MetronResponse struct {
	Count   int           `json:"count"`
	Results []MetronIssue `json:"results"`
}

// ScanResult - kết quả từ barcode-detection service
// UPC là product code (thường 12 digits), Extension là 5-digit
// supplemental code nếu scanner đọc được
type ScanResult struct {
	UPC       string `json:"upc"`
	Extension string `json:"extension"`
}
