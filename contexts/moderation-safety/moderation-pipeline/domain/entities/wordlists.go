package entities

// DefaultWordLists seeds the local filter. English carries the working list;
// the remaining locales are intentionally minimal until community moderators
// contribute translations.
func DefaultWordLists() map[string][]string {
	return map[string][]string{
		"en": {
			"scam",
			"phishing",
			"giveaway",
			"free gil",
			"rmt",
			"gold seller",
			"nsfw",
			"onlyfans",
		},
		"de": {},
		"fr": {},
		"ja": {},
	}
}
