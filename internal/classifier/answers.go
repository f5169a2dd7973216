// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package classifier

import (
	"strings"
	"unicode"

	"contact-splitter/internal/contact"
)

var genderAnswers = map[string]contact.Gender{
	"m":        contact.GenderMale,
	"male":     contact.GenderMale,
	"man":      contact.GenderMale,
	"männlich": contact.GenderMale,
	"w":        contact.GenderFemale,
	"f":        contact.GenderFemale,
	"female":   contact.GenderFemale,
	"woman":    contact.GenderFemale,
	"weiblich": contact.GenderFemale,
}

// languageKeywords maps answer words to ISO-639-1 codes. Words mapping to ""
// are explicit "unknown" answers.
var languageKeywords = map[string]string{
	"de": "de", "deutsch": "de", "german": "de",
	"en": "en", "englisch": "en", "english": "en",
	"fr": "fr", "französisch": "fr", "franz": "fr", "french": "fr",
	"it": "it", "italienisch": "it", "italien": "it", "italian": "it",
	"es": "es", "spanisch": "es", "spanish": "es",
	"-": "", "unknown": "", "unbekannt": "",
}

// parseGender maps a model answer onto a gender.
func parseGender(answer string) contact.Gender {
	key := strings.ToLower(strings.Trim(answer, " \t\r\n.'\"`"))
	if g, ok := genderAnswers[key]; ok {
		return g
	}
	return contact.GenderUnknown
}

// parseLanguage maps a bare code answer, or failing that the first
// recognized language word of a longer answer.
func parseLanguage(answer string) string {
	key := strings.ToLower(strings.Trim(answer, " \t\r\n.'\"`"))
	if code, ok := languageKeywords[key]; ok {
		return code
	}

	words := strings.FieldsFunc(strings.ToLower(answer), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '-'
	})
	for _, word := range words {
		// Short words like "it" or "es" are ordinary words in prose.
		if len(word) <= 2 {
			continue
		}
		if code, ok := languageKeywords[word]; ok {
			return code
		}
	}
	return ""
}
