// Package export writes the card collection to flat files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/arcanaland/arcanum/internal/card"
	"github.com/arcanaland/arcanum/internal/lang"
)

// Columns is the CSV header. Multilingual columns hold JSON objects keyed by
// language code.
var Columns = []string{
	"name_short", "name", "type", "value", "value_int", "suit",
	"meaning_up", "meaning_rev", "description", "image_path",
}

// WriteCSV writes cards as CSV, one row per card, in the given order.
func WriteCSV(w io.Writer, cards []card.Card) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}

	for _, c := range cards {
		row, err := record(c)
		if err != nil {
			return fmt.Errorf("error exporting %s: %v", c.NameShort, err)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func record(c card.Card) ([]string, error) {
	texts := []lang.Text{c.Name, c.Value, c.Suit, c.MeaningUp, c.MeaningRev, c.Description}
	encoded := make([]string, len(texts))
	for i, t := range texts {
		s, err := encode(t)
		if err != nil {
			return nil, err
		}
		encoded[i] = s
	}

	return []string{
		c.NameShort,
		encoded[0],
		string(c.Type),
		encoded[1],
		strconv.Itoa(c.ValueInt),
		encoded[2],
		encoded[3],
		encoded[4],
		encoded[5],
		c.ImagePath,
	}, nil
}

// encode renders an empty text as an empty cell.
func encode(t lang.Text) (string, error) {
	if len(t) == 0 {
		return "", nil
	}
	b, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
