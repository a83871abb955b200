package services

import (
	"strings"

	"campus-compliance-api/models"
)

// categoryRule binds a grievance category to its trigger keywords.
type categoryRule struct {
	category string
	keywords []string
}

// classificationRules is evaluated top to bottom; the first category with a
// keyword hit wins. Order matters because keyword sets can co-occur in one
// text (an exam-fee complaint is Academic, not Financial).
var classificationRules = []categoryRule{
	{models.CategoryAcademic, []string{"academic", "course", "exam"}},
	{models.CategoryInfrastructure, []string{"hostel", "mess", "facility"}},
	{models.CategoryFinancial, []string{"fee", "payment", "scholarship"}},
	{models.CategoryConduct, []string{"harassment", "discrimination", "behavior"}},
	{models.CategoryAdministrative, []string{"administration", "process", "procedure"}},
}

// ClassifyGrievance maps a grievance's free text to a category from the fixed
// taxonomy. Matching is case-insensitive over title and description together
// and falls back to General when nothing hits. The result seeds
// ai_classification at submission time; it is advisory only and the
// human-editable category field may later diverge from it.
func ClassifyGrievance(title, description string) string {
	text := strings.ToLower(title + " " + description)
	for _, rule := range classificationRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.category
			}
		}
	}
	return models.CategoryGeneral
}
