package ai

import (
	"regexp"
	"strings"
	"time"

	"tidyhive/models"
)

// preferenceRule maps note keywords to a stored preference.
type preferenceRule struct {
	key      string
	value    string
	keywords []string
}

var preferenceRules = []preferenceRule{
	{key: "has_pets", value: "yes", keywords: []string{"dog", "cat", "pet", "puppy", "kitten"}},
	{key: "eco_products", value: "yes", keywords: []string{"eco", "green products", "non-toxic", "natural products", "no chemicals"}},
	{key: "fragrance_free", value: "yes", keywords: []string{"fragrance", "scent-free", "unscented", "allergic to perfume"}},
	{key: "focus_kitchen", value: "yes", keywords: []string{"focus on the kitchen", "kitchen is a mess", "extra kitchen"}},
	{key: "focus_bathrooms", value: "yes", keywords: []string{"focus on the bathroom", "bathrooms need", "extra bathroom"}},
	{key: "no_shoes", value: "yes", keywords: []string{"no shoes", "shoes off", "remove shoes"}},
}

// Access instructions like "key under the mat" are captured verbatim.
var accessPattern = regexp.MustCompile(`(?i)(key[^.!\n]*|door code[^.!\n]*|gate code[^.!\n]*|lockbox[^.!\n]*)`)

// ExtractPreferences mines free-text booking notes for customer preferences.
// Pure keyword matching, no external calls; the result is stored with the
// "extracted" source so staff can review it.
func ExtractPreferences(notes string) []models.Preference {
	if strings.TrimSpace(notes) == "" {
		return nil
	}
	lower := strings.ToLower(notes)
	now := time.Now()

	var prefs []models.Preference
	for _, rule := range preferenceRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				prefs = append(prefs, models.Preference{
					Key:       rule.key,
					Value:     rule.value,
					Source:    models.PreferenceSourceExtracted,
					UpdatedAt: now,
				})
				break
			}
		}
	}

	if m := accessPattern.FindString(notes); m != "" {
		prefs = append(prefs, models.Preference{
			Key:       "access",
			Value:     strings.TrimSpace(m),
			Source:    models.PreferenceSourceExtracted,
			UpdatedAt: now,
		})
	}
	return prefs
}
