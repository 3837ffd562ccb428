package model

// SampleCountries returns the sample records used by the demo and the TUI.
func SampleCountries() []Record {
	return []Record{
		NewRecord("Mexico", "North America", 130_000_000),
		NewRecord("Canada", "North America", 40_000_000),
		NewRecord("Austria", "Europe", 8_000_000),
		NewRecord("China", "Asia", 1_400_000_000),
		NewRecord("Argentina", "South America", 89_000_000),
	}
}
