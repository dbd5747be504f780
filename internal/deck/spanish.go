package deck

import (
	"strconv"
	"strings"

	"github.com/arcanaland/arcanum/internal/card"
	"github.com/arcanaland/arcanum/internal/lang"
)

var majorNamesEs = map[int]string{
	0:  "El Loco",
	1:  "El Mago",
	2:  "La Sacerdotisa",
	3:  "La Emperatriz",
	4:  "El Emperador",
	5:  "El Hierofante",
	6:  "Los Enamorados",
	7:  "El Carro",
	8:  "La Fuerza",
	9:  "El Ermitaño",
	10: "La Rueda de la Fortuna",
	11: "La Justicia",
	12: "El Colgado",
	13: "La Muerte",
	14: "La Templanza",
	15: "El Diablo",
	16: "La Torre",
	17: "La Estrella",
	18: "La Luna",
	19: "El Sol",
	20: "El Juicio Final",
	21: "El Mundo",
}

// ranksEs follows Ranks.
var ranksEs = []string{
	"as", "dos", "tres", "cuatro", "cinco", "seis", "siete", "ocho", "nueve", "diez",
	"paje", "caballero", "reina", "rey",
}

var numbersEs = []string{
	"cero", "uno", "dos", "tres", "cuatro", "cinco", "seis", "siete", "ocho", "nueve", "diez",
	"once", "doce", "trece", "catorce", "quince", "dieciséis", "diecisiete", "dieciocho",
	"diecinueve", "veinte", "veintiuno",
}

var numbersEn = []string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten",
	"eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen", "seventeen", "eighteen",
	"nineteen", "twenty", "twenty-one",
}

// SpanishName returns the Spanish name of a slot, e.g. "El Loco" or
// "Reina de Copas".
func SpanishName(s Slot) string {
	if s.Type == card.Major {
		return majorNamesEs[s.ValueInt]
	}
	rank := RankName(s.ValueInt)
	if rank == "" || s.Suit == "" {
		return ""
	}
	return capitalize(ranksEs[s.ValueInt-1]) + " de " + capitalize(SuitLabels[s.Suit][lang.Spanish])
}

// SpanishValue translates a card value word ("zero", "ace", "queen") and
// keeps its case, so "ZERO" becomes "CERO". Numerals are returned as is.
// Unknown words return "".
func SpanishValue(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	if _, err := strconv.Atoi(v); err == nil {
		return v
	}

	word := strings.ToLower(v)
	es := ""
	for i, rank := range Ranks {
		if rank == word {
			es = ranksEs[i]
		}
	}
	for i, n := range numbersEn {
		if n == word {
			es = numbersEs[i]
		}
	}
	if es != "" && v == strings.ToUpper(v) {
		return strings.ToUpper(es)
	}
	return es
}
