package catalog

// countryInfo is static reference data (flag + dialing code) keyed by ISO code.
// Catalog systems only carry the code; listings are enriched from here.
var countryInfo = map[string]Country{
	"CD":   {Code: "CD", Name: "Democratic Republic of the Congo", Flag: "🇨🇩", PhoneCode: "+243"},
	"CM":   {Code: "CM", Name: "Cameroon", Flag: "🇨🇲", PhoneCode: "+237"},
	"GH":   {Code: "GH", Name: "Ghana", Flag: "🇬🇭", PhoneCode: "+233"},
	"KE":   {Code: "KE", Name: "Kenya", Flag: "🇰🇪", PhoneCode: "+254"},
	"NG":   {Code: "NG", Name: "Nigeria", Flag: "🇳🇬", PhoneCode: "+234"},
	"RW":   {Code: "RW", Name: "Rwanda", Flag: "🇷🇼", PhoneCode: "+250"},
	"TZ":   {Code: "TZ", Name: "Tanzania", Flag: "🇹🇿", PhoneCode: "+255"},
	"UG":   {Code: "UG", Name: "Uganda", Flag: "🇺🇬", PhoneCode: "+256"},
	"ZA":   {Code: "ZA", Name: "South Africa", Flag: "🇿🇦", PhoneCode: "+27"},
	"GB":   {Code: "GB", Name: "United Kingdom", Flag: "🇬🇧", PhoneCode: "+44"},
	"US":   {Code: "US", Name: "United States", Flag: "🇺🇸", PhoneCode: "+1"},
	"INTL": {Code: "INTL", Name: "International", Flag: "🌍", PhoneCode: ""},
}

// countryRef resolves a code to its reference entry, falling back to the
// name recorded on the catalog system for codes we have no data for.
func countryRef(code, fallbackName string) Country {
	if c, ok := countryInfo[code]; ok {
		return c
	}
	return Country{Code: code, Name: fallbackName}
}
