// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package lexicon

import "contact-splitter/internal/contact"

var defaultSalutations = []SalutationEntry{
	// German
	{Token: "herr", Gender: contact.GenderMale, Language: "de"},
	{Token: "frau", Gender: contact.GenderFemale, Language: "de"},
	// English
	{Token: "mr", Gender: contact.GenderMale, Language: "en"},
	{Token: "mrs", Gender: contact.GenderFemale, Language: "en"},
	{Token: "ms", Gender: contact.GenderFemale, Language: "en"},
	{Token: "miss", Gender: contact.GenderFemale, Language: "en"},
	// French
	{Token: "m", Gender: contact.GenderMale, Language: "fr"},
	{Token: "monsieur", Gender: contact.GenderMale, Language: "fr"},
	{Token: "mme", Gender: contact.GenderFemale, Language: "fr"},
	{Token: "madame", Gender: contact.GenderFemale, Language: "fr"},
	// Italian
	{Token: "signor", Gender: contact.GenderMale, Language: "it"},
	{Token: "signora", Gender: contact.GenderFemale, Language: "it"},
	{Token: "sig", Gender: contact.GenderMale, Language: "it"},
	{Token: "sig.ra", Gender: contact.GenderFemale, Language: "it"},
	// Spanish
	{Token: "señor", Gender: contact.GenderMale, Language: "es"},
	{Token: "senor", Gender: contact.GenderMale, Language: "es"},
	{Token: "señora", Gender: contact.GenderFemale, Language: "es"},
	{Token: "senora", Gender: contact.GenderFemale, Language: "es"},
	{Token: "sr", Gender: contact.GenderMale, Language: "es"},
	{Token: "sra", Gender: contact.GenderFemale, Language: "es"},
}

// Nobiliary and locative particles that start a compound surname.
var defaultConnectors = []string{
	"von", "zu", "zur", "zum", "vom",
	"von der", "von dem", "von und zu",
	"van", "van de", "van der", "van den", "vande", "vanden", "vander",
	"de", "de la", "de los", "de las", "du", "des", "del",
	"da", "do", "dos", "das", "di",
	"della", "dello", "degli",
}

var defaultTitles = map[string]string{
	// German academic
	"doktor":           "Dr.",
	"dr":               "Dr.",
	"dr rer nat":       "Dr. rer. nat.",
	"dr med":           "Dr. med.",
	"dr phil":          "Dr. phil.",
	"dr jur":           "Dr. jur.",
	"dr ing":           "Dr.-Ing.",
	"professor":        "Prof.",
	"prof":             "Prof.",
	"honorarprofessor": "Hon.-Prof.",
	"privatdozent":     "Priv.-Doz.",
	"juniorprofessor":  "Jun.-Prof.",
	"diplomingenieur":  "Dipl.-Ing.",
	"dipl.-ing":        "Dipl.-Ing.",

	// German nobility
	"freiherr":       "Frhr.",
	"reichsfreiherr": "RFrhr.",
	"baron":          "Baron",
	"graf":           "Gräf.",
	"reichsgraf":     "RGräf.",
	"fürst":          "Fürst.",
	"herzog":         "Herz.",
	"prinz":          "Prinz",
	"landgraf":       "Lgr.",
	"markgraf":       "Mgr.",
	"pfalzgraf":      "Pfg.",

	// Dutch
	"doctor":    "Dr.",
	"ingenieur": "Ir.",
	"ir":        "Ir.",
	"jonkheer":  "Jhr.",
	"ridder":    "Rdr.",

	// French
	"docteur":    "Dr.",
	"professeur": "Prof.",
	"comte":      "Cte.",
	"duc":        "Duc",
	"prince":     "Pr.",
	"chevalier":  "Ch.",

	// Spanish and Portuguese
	"profesor": "Prof.",
	"conde":    "Cde.",
	"duque":    "Duce.",
	"princesa": "Pr.",
	"marques":  "Marq.",
	"marquesa": "Marq.",
	"vizconde": "Vizc.",

	// Italian
	"dottore":    "Dott.",
	"professore": "Prof.",
	"barone":     "Bar.",
	"conte":      "Conte",
	"duca":       "Duca",
	"principe":   "Prin.",
}
