/**
 * @description
 * Built-in country catalog and the fixed sample market set.
 * The directory degrades to these samples whenever the market API cannot be
 * reached or reports a failure. Placeholder content instead of an error
 * state is the defined product behavior for the listing, not a bug.
 */

package services

import "github.com/weather-project/webapp/internal/models"

// Country is a catalog entry for the listing filters.
type Country struct {
	Code   string
	Name   string
	Flag   string
	Cities []string
}

var countryCatalog = []Country{
	{Code: "US", Name: "United States", Flag: "🇺🇸", Cities: []string{"New York", "Los Angeles", "Chicago", "Houston"}},
	{Code: "CN", Name: "China", Flag: "🇨🇳", Cities: []string{"Beijing", "Shanghai", "Guangzhou", "Shenzhen"}},
	{Code: "JP", Name: "Japan", Flag: "🇯🇵", Cities: []string{"Tokyo", "Osaka", "Yokohama", "Kyoto"}},
	{Code: "GB", Name: "United Kingdom", Flag: "🇬🇧", Cities: []string{"London", "Manchester", "Birmingham", "Edinburgh"}},
	{Code: "KR", Name: "South Korea", Flag: "🇰🇷", Cities: []string{"Seoul", "Busan", "Incheon", "Daegu"}},
}

// Countries returns the filter catalog.
func Countries() []Country {
	return countryCatalog
}

// CountryByCode looks up a catalog entry.
func CountryByCode(code string) (Country, bool) {
	for _, c := range countryCatalog {
		if c.Code == code {
			return c, true
		}
	}
	return Country{}, false
}

// CountryFlag returns the flag emoji for a country code, 🌍 when unknown.
func CountryFlag(code string) string {
	if c, ok := CountryByCode(code); ok {
		return c.Flag
	}
	return "🌍"
}

// FlagByName returns the flag emoji for a country display name, 🌍 when unknown.
func FlagByName(name string) string {
	for _, c := range countryCatalog {
		if c.Name == name {
			return c.Flag
		}
	}
	return "🌍"
}

// SampleMarkets returns a fresh copy of the fallback listing.
func SampleMarkets() []models.Market {
	samples := []models.Market{
		{ID: "1", Country: "US", CountryName: "United States", City: "New York", Question: "Will it rain tomorrow?", Pool: 1234, Participants: 45, EndDate: "2024-12-15", Status: models.StatusActive},
		{ID: "2", Country: "US", CountryName: "United States", City: "Los Angeles", Question: "Will temperature exceed 25°C?", Pool: 856, Participants: 32, EndDate: "2024-12-16", Status: models.StatusActive},
		{ID: "3", Country: "CN", CountryName: "China", City: "Beijing", Question: "Will it snow this week?", Pool: 2145, Participants: 67, EndDate: "2024-12-17", Status: models.StatusActive},
		{ID: "4", Country: "JP", CountryName: "Japan", City: "Tokyo", Question: "Will humidity be above 70%?", Pool: 1567, Participants: 54, EndDate: "2024-12-18", Status: models.StatusActive},
		{ID: "5", Country: "GB", CountryName: "United Kingdom", City: "London", Question: "Will temperature drop below 5°C?", Pool: 987, Participants: 38, EndDate: "2024-12-19", Status: models.StatusActive},
		{ID: "6", Country: "KR", CountryName: "South Korea", City: "Seoul", Question: "Will it be sunny for 3+ days?", Pool: 1756, Participants: 61, EndDate: "2024-12-20", Status: models.StatusActive},
	}
	return samples
}
