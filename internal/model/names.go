package model

import "regexp"

// prettyNames maps language codes to human-readable names for the model
// selection dropdown. Codes without an entry are shown verbatim.
var prettyNames = map[string]string{
	// Standard languages
	"deu": "German", "eng": "English", "fra": "French", "spa": "Spanish",
	"ita": "Italian", "dan": "Danish", "swe": "Swedish", "nor": "Norwegian",
	"nld": "Dutch", "lat": "Latin",
	"jpn": "Japanese", "jpn_vert": "Japanese (Vertical)",
	"heb": "Hebrew", "ara": "Arabic",
	"chi_sim": "Chinese Simplified", "chi_sim_vert": "Chinese Simplified (Vertical)",
	"chi_tra": "Chinese Traditional", "chi_tra_vert": "Chinese Traditional (Vertical)",

	// Fraktur and historic variants
	"deu_frak": "German Fraktur", "dan_frak": "Danish Fraktur",
	"swe_frak": "Swedish Fraktur", "deu_latf": "German (Latin Fraktur)",
	"spa_old": "Spanish (Old)", "ita_old": "Italian (Old)",
}

var codeSuffixPattern = regexp.MustCompile(`\(([^)]+)\)$`)

// DisplayName returns the dropdown label for a language code: the pretty name
// followed by the code in parentheses, or the bare code when no pretty name
// is known.
func DisplayName(code string) string {
	if pretty, ok := prettyNames[code]; ok && pretty != code {
		return pretty + " (" + code + ")"
	}
	return code
}

// CodeFromDisplayName extracts the language code from a dropdown label
// produced by DisplayName.
func CodeFromDisplayName(display string) string {
	if m := codeSuffixPattern.FindStringSubmatch(display); m != nil {
		return m[1]
	}
	return display
}
