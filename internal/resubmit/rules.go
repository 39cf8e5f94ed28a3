package resubmit

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/unclebandit/brandplay-backend/internal/model"
	"github.com/unclebandit/brandplay-backend/internal/wizard"
)

type target struct {
	field   string
	step    int
	message string
}

// rule fires once when any keyword occurs in the normalised detail text.
// Keywords are written lower-case without accents.
type rule struct {
	keywords []string
	targets  []target
}

var rejectionRules = []rule{
	{
		keywords: []string{"titulo", "title"},
		targets:  []target{{wizard.FieldTitle, wizard.StepGeneral, "Revisa el título de la campaña"}},
	},
	{
		keywords: []string{"autor", "author"},
		targets:  []target{{wizard.FieldAuthor, wizard.StepGeneral, "Revisa el autor de la campaña"}},
	},
	{
		keywords: []string{"descripcion", "description"},
		targets:  []target{{wizard.FieldDescription, wizard.StepGeneral, "Revisa la descripción de la campaña"}},
	},
	{
		keywords: []string{"fecha", "date"},
		targets: []target{
			{wizard.FieldStartDate, wizard.StepGeneral, "Revisa la fecha de inicio"},
			{wizard.FieldEndDate, wizard.StepGeneral, "Revisa la fecha de fin"},
		},
	},
	{
		keywords: []string{"fecha de inicio", "start date"},
		targets:  []target{{wizard.FieldStartDate, wizard.StepGeneral, "La fecha de inicio no es válida"}},
	},
	{
		keywords: []string{"fecha de fin", "fecha final", "end date"},
		targets:  []target{{wizard.FieldEndDate, wizard.StepGeneral, "La fecha de fin no es válida"}},
	},
	{
		keywords: []string{"juego", "game"},
		targets:  []target{{wizard.FieldMiniGame, wizard.StepMiniGame, "Elige otro minijuego"}},
	},
	{
		keywords: []string{"complemento", "add-on", "addon"},
		targets:  []target{{wizard.FieldAddOns, wizard.StepAddOns, "Revisa los complementos seleccionados"}},
	},
	{
		keywords: []string{"faq", "pregunta", "question"},
		targets:  []target{{wizard.FieldFAQs, wizard.StepFAQs, "Revisa las preguntas frecuentes"}},
	},
	{
		keywords: []string{"termino", "condicion", "terms"},
		targets:  []target{{wizard.FieldTerms, wizard.StepFAQs, "Revisa los términos y condiciones"}},
	},
	{
		keywords: []string{"bonus"},
		targets:  []target{{wizard.FieldBonusLevel, wizard.StepBonusLevel, "Revisa el nivel bonus"}},
	},
	{
		keywords: []string{"premio especial", "recompensa especial", "special reward"},
		targets:  []target{{wizard.FieldSpecialReward, wizard.StepSpecialReward, "Revisa el premio especial"}},
	},
	{
		keywords: []string{"ranking", "clasificacion"},
		targets:  []target{{wizard.FieldTopRanking, wizard.StepTopRanking, "Revisa los premios del ranking"}},
	},
	{
		keywords: []string{"video", "youtube"},
		targets:  []target{{wizard.FieldVideoEmbed, wizard.StepVideo, "Revisa el vídeo de la campaña"}},
	},
}

var folder = cases.Fold()

// normalize folds case and strips diacritics so "Título" matches "titulo".
func normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return folder.String(out)
}

// ParseRejection maps a rejection detail onto the draft fields it mentions.
// Every matching rule contributes its targets in table order; a field can
// appear more than once.
func ParseRejection(detail string) []model.FieldError {
	text := normalize(detail)
	errs := []model.FieldError{}
	if strings.TrimSpace(text) == "" {
		return errs
	}
	for _, r := range rejectionRules {
		if !matchesAny(text, r.keywords) {
			continue
		}
		for _, t := range r.targets {
			errs = append(errs, model.FieldError{Field: t.field, Message: t.message, Step: t.step})
		}
	}
	return errs
}

func matchesAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
