package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/arcanum/internal/lang"
)

func fool() Card {
	return NewMajor("ar00", 0, Content{
		Name:        lang.NewText("The Fool", "El Loco"),
		Value:       lang.NewText("zero", "cero"),
		MeaningUp:   lang.Text{lang.English: "Folly, mania, extravagance"},
		MeaningRev:  lang.Text{lang.English: "Negligence, absence, distribution"},
		Description: lang.Text{lang.English: "With light step, as if earth and its trammels had little power to restrain him."},
		ImagePath:   "/tarot-images/the_fool.jpg",
	})
}

func aceOfWands() Card {
	return NewMinor("waac", Wands, lang.Text{lang.Spanish: "bastos"}, 1, Content{
		Name:        lang.NewText("Ace of Wands", "As de Bastos"),
		Value:       lang.NewText("ace", "as"),
		MeaningUp:   lang.Text{lang.English: "Creation, invention, enterprise"},
		MeaningRev:  lang.Text{lang.English: "Fall, decadence, ruin"},
		Description: lang.Text{lang.English: "A hand issuing from a cloud grasps a stout wand or club."},
	})
}

func TestConstructorsKeepSuitInvariant(t *testing.T) {
	require.NoError(t, fool().Validate())
	require.NoError(t, aceOfWands().Validate())

	_, ok := fool().Minor()
	assert.False(t, ok)

	suit, ok := aceOfWands().Minor()
	require.True(t, ok)
	assert.Equal(t, Wands, suit)
	assert.Equal(t, "bastos", aceOfWands().Suit[lang.Spanish])
}

func TestValidateRejectsBrokenCards(t *testing.T) {
	major := fool()
	major.Suit = lang.Text{lang.English: "cups"}
	require.ErrorIs(t, major.Validate(), ErrInvalid)

	minor := aceOfWands()
	minor.Suit = nil
	require.ErrorIs(t, minor.Validate(), ErrInvalid)

	minor = aceOfWands()
	minor.Suit = lang.Text{lang.English: "coins"}
	require.ErrorIs(t, minor.Validate(), ErrInvalid)

	minor = aceOfWands()
	minor.ValueInt = 15
	require.ErrorIs(t, minor.Validate(), ErrInvalid)

	noName := fool()
	noName.Name = lang.Text{lang.Spanish: "El Loco"}
	require.ErrorIs(t, noName.Validate(), ErrInvalid)
}

func TestPatchMergesLanguageKeys(t *testing.T) {
	p := Patch{}
	p.Set(FieldName, lang.Spanish, "El Necio")

	updated, err := p.Apply(fool())
	require.NoError(t, err)
	assert.Equal(t, "The Fool", updated.Name[lang.English])
	assert.Equal(t, "El Necio", updated.Name[lang.Spanish])
	assert.Equal(t, "El Loco", fool().Name[lang.Spanish], "source card must not change")
}

func TestPatchSetAccumulates(t *testing.T) {
	p := Patch{}
	p.Set(FieldMeaningUp, lang.Spanish, "Locura")
	p.Set(FieldMeaningUp, lang.English, "Folly")
	p.Set(FieldDescription, lang.Spanish, "Con paso ligero")

	assert.Equal(t, lang.NewText("Folly", "Locura"), p[FieldMeaningUp])
	assert.Equal(t, []Field{FieldDescription, FieldMeaningUp}, p.SortedFields())
}

func TestPatchValidation(t *testing.T) {
	require.ErrorIs(t, Patch{}.Validate(fool()), ErrInvalid)

	suit := Patch{FieldSuit: {lang.English: "wands"}}
	require.ErrorIs(t, suit.Validate(fool()), ErrInvalid)
	require.NoError(t, suit.Validate(aceOfWands()))

	unknownSuit := Patch{FieldSuit: {lang.English: "coins"}}
	require.ErrorIs(t, unknownSuit.Validate(aceOfWands()), ErrInvalid)

	clearEnglish := Patch{FieldName: {lang.English: ""}}
	require.ErrorIs(t, clearEnglish.Validate(fool()), ErrInvalid)

	badField := Patch{Field("colour"): {lang.English: "red"}}
	require.ErrorIs(t, badField.Validate(fool()), ErrInvalid)

	badLanguage := Patch{FieldName: {lang.Code("fr"): "Le Mat"}}
	require.ErrorIs(t, badLanguage.Validate(fool()), ErrInvalid)
}

func TestProjectResolvesEachField(t *testing.T) {
	v := Project(aceOfWands(), lang.Spanish)

	assert.Equal(t, "As de Bastos", v.Name)
	assert.Equal(t, "Ace of Wands", v.NameEn)
	assert.Equal(t, "as", v.Value)
	assert.Equal(t, "Creation, invention, enterprise", v.MeaningUp, "falls back to english")
	assert.Equal(t, "bastos", v.Suit)
	assert.Equal(t, 1, v.ValueInt)

	major := Project(fool(), lang.Spanish)
	assert.Empty(t, major.Suit)
	assert.Equal(t, "/tarot-images/the_fool.jpg", major.ImagePath)
}

func TestProjectDerivesImagePathFromEnglishName(t *testing.T) {
	c := fool()
	c.Name = lang.NewText("The  Jester", "El Bufón")
	assert.Equal(t, "/tarot-images/the_jester.jpg", Project(c, lang.Spanish).ImagePath, "stored path is stale after a rename")

	c.Name = lang.Text{lang.Spanish: "El Bufón"}
	assert.Equal(t, "/tarot-images/the_fool.jpg", Project(c, lang.Spanish).ImagePath)

	assert.Equal(t, "wheel_of_fortune.jpg", ImageFileName("Wheel of\tFortune"))
}

func TestProjectLegacyIsEnglishOnly(t *testing.T) {
	v := ProjectLegacy(aceOfWands())

	assert.Equal(t, "Ace of Wands", v.Name)
	assert.Equal(t, "ace", v.Value)
	assert.Equal(t, "wands", v.Suit)
	assert.Equal(t, "A hand issuing from a cloud grasps a stout wand or club.", v.Desc)
}

func TestParseHelpers(t *testing.T) {
	a, err := ParseArcana("major_arcana")
	require.NoError(t, err)
	assert.Equal(t, Major, a)

	_, err = ParseArcana("trumps")
	require.ErrorIs(t, err, ErrInvalid)

	s, ok := ParseSuit(" Pentacles ")
	require.True(t, ok)
	assert.Equal(t, Pentacles, s)

	f, err := ParseField("meaning_rev")
	require.NoError(t, err)
	assert.Equal(t, FieldMeaningRev, f)
}
