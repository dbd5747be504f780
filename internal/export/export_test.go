package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/arcanum/internal/lang"
	"github.com/arcanaland/arcanum/internal/store/storetest"
)

func TestWriteCSV(t *testing.T) {
	cards := storetest.Cards()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, cards))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(cards)+1)
	assert.Equal(t, Columns, rows[0])

	fool := rows[1]
	assert.Equal(t, "ar00", fool[0])
	assert.Equal(t, "major", fool[2])
	assert.Equal(t, "0", fool[4])
	assert.Empty(t, fool[5], "majors have no suit")

	var name lang.Text
	require.NoError(t, json.Unmarshal([]byte(fool[1]), &name))
	assert.Equal(t, lang.NewText("The Fool", "El Loco"), name)

	var suit lang.Text
	require.NoError(t, json.Unmarshal([]byte(rows[3][5]), &suit))
	assert.Equal(t, "wands", suit[lang.English])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "name_short,name,type,value,value_int,suit,meaning_up,meaning_rev,description,image_path\n", buf.String())
}
