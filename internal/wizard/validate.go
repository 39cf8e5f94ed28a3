package wizard

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/unclebandit/brandplay-backend/internal/model"
)

// Field identifiers shared by step validation and rejection parsing.
const (
	FieldTitle         = "campaignTitle"
	FieldAuthor        = "author"
	FieldDescription   = "description"
	FieldStartDate     = "startDate"
	FieldEndDate       = "endDate"
	FieldMiniGame      = "miniGame"
	FieldAddOns        = "addOns"
	FieldFAQs          = "faqs"
	FieldTerms         = "terms"
	FieldBonusLevel    = "bonusLevel"
	FieldSpecialReward = "specialReward"
	FieldTopRanking    = "topRanking"
	FieldVideoEmbed    = "videoEmbed"
)

const dateLayout = "2006-01-02"

var validate = validator.New()

// StepIssues lists the problems a step component reports for d. Navigation
// never consults it; it only drives inline hints and automated pre-review.
func StepIssues(d model.CampaignDraft, step int) []model.FieldError {
	var issues []model.FieldError
	add := func(field, msg string) {
		issues = append(issues, model.FieldError{Field: field, Message: msg, Step: step})
	}

	switch step {
	case StepGeneral:
		if blank(d.Title) {
			add(FieldTitle, "El título es obligatorio")
		}
		if blank(d.Author) {
			add(FieldAuthor, "El autor es obligatorio")
		}
		if blank(d.Description) {
			add(FieldDescription, "La descripción es obligatoria")
		}
		start, startErr := time.Parse(dateLayout, d.StartDate)
		end, endErr := time.Parse(dateLayout, d.EndDate)
		if startErr != nil {
			add(FieldStartDate, "La fecha de inicio no es válida")
		}
		if endErr != nil {
			add(FieldEndDate, "La fecha de fin no es válida")
		}
		if startErr == nil && endErr == nil && end.Before(start) {
			add(FieldEndDate, "La fecha de fin debe ser posterior a la de inicio")
		}
	case StepMiniGame:
		if blank(d.MiniGameID) {
			add(FieldMiniGame, "Elige un minijuego")
		}
	case StepAddOns:
		if _, err := AddOnsTotal(d.AddOns); err != nil {
			add(FieldAddOns, "El nivel de participantes extra no existe")
		}
	case StepFAQs:
		for _, faq := range d.FAQs {
			if blank(faq.Question) || blank(faq.Answer) {
				add(FieldFAQs, "Cada pregunta frecuente necesita pregunta y respuesta")
				break
			}
		}
		if blank(d.Terms) {
			add(FieldTerms, "Los términos y condiciones son obligatorios")
		}
	case StepBonusLevel:
		if b := d.BonusLevel; b != nil {
			if b.RequiredPlays < 1 || validate.Struct(b.Prize) != nil {
				add(FieldBonusLevel, "El nivel bonus necesita partidas requeridas y un premio")
			}
		}
	case StepSpecialReward:
		if s := d.SpecialReward; s != nil {
			if s.RequiredPlays < 1 || validate.Struct(s.Prize) != nil {
				add(FieldSpecialReward, "El premio especial necesita partidas requeridas y un premio")
			}
		}
	case StepTopRanking:
		if r := d.TopRanking; r != nil {
			ok := r.RequiredPlays >= 1 && len(r.Prizes) == r.TopPositions
			for _, p := range r.Prizes {
				if validate.Struct(p.Prize) != nil {
					ok = false
				}
			}
			if !ok {
				add(FieldTopRanking, "Cada posición del ranking necesita un premio")
			}
		}
	case StepVideo:
		if msg := EmbedMessage(d.VideoEmbed); msg != "" {
			add(FieldVideoEmbed, msg)
		}
	}
	return issues
}

// MissingRequired runs StepIssues over every step.
func MissingRequired(d model.CampaignDraft) []model.FieldError {
	var all []model.FieldError
	for step := StepGeneral; step <= TotalSteps; step++ {
		all = append(all, StepIssues(d, step)...)
	}
	return all
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
