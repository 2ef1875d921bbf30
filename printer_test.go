// printer_test.go
package meowlang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayValue(t *testing.T) {
	assert.Equal(t, "", DisplayValue(Nothing))
	assert.Equal(t, "vrai", DisplayValue(BoolVal(true)))
	assert.Equal(t, "faux", DisplayValue(BoolVal(false)))
	assert.Equal(t, "42", DisplayValue(IntVal(42)))
	assert.Equal(t, "2.5", DisplayValue(FloatVal(2.5)))
	assert.Equal(t, "5", DisplayValue(FloatVal(5.0)))
	assert.Equal(t, "chat", DisplayValue(TextVal("chat")))
	assert.Equal(t, `[1, "a"]`, DisplayValue(ListVal([]Value{IntVal(1), TextVal("a")})))

	d := NewDict()
	d.Set(TextVal("nom"), TextVal("Felix"))
	d.Set(IntVal(3), BoolVal(true))
	assert.Equal(t, `dictionnaire("nom": "Felix", 3: vrai)`, DisplayValue(DictVal(d)))
}

func TestFormatValueQuotesText(t *testing.T) {
	assert.Equal(t, `"chat"`, FormatValue(TextVal("chat")))
	assert.Equal(t, "rien", FormatValue(Nothing))
	assert.Equal(t, "42", FormatValue(IntVal(42)))
}

// reformat pretty-prints src and parses the result again.
func reformat(t *testing.T, src string) (string, string) {
	t.Helper()
	prog, err := Parse(src, "<test>")
	require.Nil(t, err, "parse error: %v", err)
	printed := FormatProgram(prog)

	prog2, err2 := Parse(printed, "<pretty>")
	require.Nil(t, err2, "re-parse error: %v\npretty output:\n%s", err2, printed)
	return printed, FormatProgram(prog2)
}

func TestPrettyPrintRoundTrip(t *testing.T) {
	sources := []string{
		"miaou\nmeow\n",
		"miaou\necrire \"bonjour\"\nmeow\n",
		"miaou\nx = 2 + 3 * 4\necrire x\nmeow\n",
		"miaou\nx = 2 ** 3 ** 2\nmeow\n",
		"miaou\nrepeter 3 fois:\n    ecrire compteur\nmeow\n",
		"miaou\nfonction carre(n):\n    retour n * n\necrire carre(7)\nmeow\n",
		"miaou\nessayer:\n    ecrire 1 / 0\nsauf erreur e:\n    ecrire e\nmeow\n",
		"miaou\nsi x > 1 alors:\n    ecrire 1\nsinon si x > 0 alors:\n    ecrire 2\nsinon:\n    ecrire 3\nmeow\n",
		"miaou\npour chaque c dans \"chat\":\n    ecrire c\nmeow\n",
		"miaou\ntant que i < 3:\n    i = i + 1\n    si i == 2 alors:\n        suivant\n    stop\nmeow\n",
		"miaou\nimporter util\necrire util.doubler(21)\nmeow\n",
		"miaou\nl = [1, 2.5, \"a\", vrai]\nl[0] = 9\nmeow\n",
		"miaou\nd = dictionnaire(\"a\": 1, 2: \"b\")\necrire d[\"a\"]\nmeow\n",
		"miaou\nx = aleatoire 1 a 10\ny = demander texte \"nom ?\"\nmeow\n",
		"miaou\nx = non a et b ou c\ny = -z\nmeow\n",
	}
	for _, src := range sources {
		printed, reprinted := reformat(t, src)
		assert.Equal(t, printed, reprinted, "pretty output not stable for:\n%s", src)
	}
}

func TestPrettyPrintKeepsPrecedence(t *testing.T) {
	printed, _ := reformat(t, "miaou\nx = 2 + 3 * 4\nmeow\n")
	assert.Contains(t, printed, "(2 + (3 * 4))")

	printed, _ = reformat(t, "miaou\nx = (2 + 3) * 4\nmeow\n")
	assert.Contains(t, printed, "((2 + 3) * 4)")
}

func TestPrettyPrintFloatKeepsDot(t *testing.T) {
	printed, _ := reformat(t, "miaou\nx = 5.0\nmeow\n")
	assert.Contains(t, printed, "5.0")
}
