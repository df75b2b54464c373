// =============================================================================
// International Shipment Splitter - Country Code Standardization
// =============================================================================
//
// This package maps free-form country names and abbreviations to 2-letter
// codes as expected by the carrier's import format. The mapping is static
// data covering the names that actually show up in customer manifests:
// full names, common abbreviations, and regional aliases ("England",
// "Holland", "Dubai").
//
// Standardize never fails. Inputs it cannot resolve produce a best-effort
// guess (or "XX"), and the returned Match tells the caller how the code was
// obtained so degraded cases can be surfaced in the validation report.
//
// =============================================================================

package countries

import "strings"

// Unknown is the placeholder code returned for empty country fields.
const Unknown = "XX"

// Match describes how Standardize arrived at a code.
type Match int

const (
	// MatchCode means the input was already a 2-letter alphabetic code and
	// was passed through uppercased. No existence check is performed
	// against a full ISO list.
	MatchCode Match = iota

	// MatchAlias means the input resolved through the alias table.
	MatchAlias

	// MatchGuess means the input was not recognized and the first two
	// characters of the uppercased input were used. The guess can collide
	// with a legitimate code; it is a known approximation, surfaced as a
	// warning rather than silently fixed.
	MatchGuess

	// MatchEmpty means the input was empty and Unknown was returned.
	MatchEmpty
)

// aliases is the static name-to-code table. Keys are uppercase and
// whitespace-trimmed. Extensions loaded from configuration may add entries
// but must not shadow these.
var aliases = map[string]string{
	// North America
	"UNITED STATES": "US", "USA": "US", "U.S.A": "US", "U.S.": "US",
	"CANADA": "CA", "MEXICO": "MX",

	// Europe
	"UNITED KINGDOM": "GB", "UK": "GB", "GREAT BRITAIN": "GB", "ENGLAND": "GB",
	"SCOTLAND": "GB", "WALES": "GB", "NORTHERN IRELAND": "GB",
	"FRANCE": "FR", "GERMANY": "DE", "SPAIN": "ES", "ITALY": "IT",
	"NETHERLANDS": "NL", "HOLLAND": "NL", "BELGIUM": "BE", "SWITZERLAND": "CH",
	"AUSTRIA": "AT", "SWEDEN": "SE", "NORWAY": "NO", "DENMARK": "DK",
	"FINLAND": "FI", "IRELAND": "IE", "PORTUGAL": "PT", "GREECE": "GR",
	"POLAND": "PL", "CZECH REPUBLIC": "CZ", "HUNGARY": "HU", "ROMANIA": "RO",

	// Asia-Pacific
	"AUSTRALIA": "AU", "NEW ZEALAND": "NZ", "JAPAN": "JP", "CHINA": "CN",
	"SOUTH KOREA": "KR", "KOREA": "KR", "SINGAPORE": "SG", "HONG KONG": "HK",
	"TAIWAN": "TW", "THAILAND": "TH", "MALAYSIA": "MY", "INDONESIA": "ID",
	"PHILIPPINES": "PH", "VIETNAM": "VN", "INDIA": "IN",

	// Middle East
	"ISRAEL": "IL", "SAUDI ARABIA": "SA", "UAE": "AE",
	"UNITED ARAB EMIRATES": "AE", "DUBAI": "AE",

	// South America
	"BRAZIL": "BR", "ARGENTINA": "AR", "CHILE": "CL", "COLOMBIA": "CO",
	"PERU": "PE", "VENEZUELA": "VE",

	// Africa
	"SOUTH AFRICA": "ZA", "EGYPT": "EG", "MOROCCO": "MA", "KENYA": "KE",
}

// Standardize converts a free-form country value to a 2-letter code using
// the built-in alias table.
func Standardize(raw string) (string, Match) {
	return StandardizeWith(raw, nil)
}

// StandardizeWith is Standardize with additional alias entries, typically
// loaded from configuration. Extra entries are consulted after the built-in
// table, so documented aliases always win.
func StandardizeWith(raw string, extra map[string]string) (string, Match) {
	clean := strings.ToUpper(strings.TrimSpace(raw))
	if clean == "" {
		return Unknown, MatchEmpty
	}

	// Alias lookup comes before the 2-letter passthrough so that "UK"
	// resolves to "GB" instead of leaking through as a code the carrier
	// rejects. Codes not in the table pass through unchanged.
	if code, ok := aliases[clean]; ok {
		return code, MatchAlias
	}
	if code, ok := extra[clean]; ok {
		return code, MatchAlias
	}

	if len(clean) == 2 && isAlpha(clean) {
		return clean, MatchCode
	}

	// Guess by characters, not bytes, so multibyte names still produce a
	// 2-character code.
	runes := []rune(clean)
	if len(runes) < 2 {
		return Unknown, MatchGuess
	}
	return string(runes[:2]), MatchGuess
}

// IsDocumentedAlias reports whether name (case-insensitive, trimmed) is in
// the built-in alias table. Used to reject configuration extensions that
// would shadow documented behavior.
func IsDocumentedAlias(name string) bool {
	_, ok := aliases[strings.ToUpper(strings.TrimSpace(name))]
	return ok
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
