// modules_test.go
package meowlang

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModule(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name+".miaou")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// runFile parses and runs a script from disk so module resolution sees a
// real importing directory.
func runFile(t *testing.T, h *harness, path string) *MeowError {
	t.Helper()
	src, err := os.ReadFile(path)
	require.NoError(t, err)
	h.ip.RegisterSource(path, string(src))
	prog, perr := Parse(string(src), path)
	require.Nil(t, perr, "parse error: %v", perr)
	return h.ip.Run(prog, path)
}

func TestImportFromScriptDirectory(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "util", "miaou\nfonction doubler(n):\n    retour n * 2\nmeow\n")
	main := writeModule(t, dir, "main", "miaou\nimporter util\necrire util.doubler(21)\nmeow\n")

	h := newHarness()
	require.Nil(t, runFile(t, h, main))
	assert.Equal(t, "42\n", h.out.String())
}

func TestImportFromMeowLangPath(t *testing.T) {
	libDir := t.TempDir()
	runDir := t.TempDir()
	writeModule(t, libDir, "outils", "miaou\nversion = 3\nmeow\n")
	main := writeModule(t, runDir, "main", "miaou\nimporter outils\necrire outils.version\nmeow\n")

	t.Setenv(MeowLangPath, libDir)
	h := newHarness()
	require.Nil(t, runFile(t, h, main))
	assert.Equal(t, "3\n", h.out.String())
}

func TestImportParsedOnceAndCached(t *testing.T) {
	dir := t.TempDir()
	// The module prints on load; a second import must not re-execute it.
	writeModule(t, dir, "bruyant", "miaou\necrire \"chargement\"\nx = 1\nmeow\n")
	main := writeModule(t, dir, "main",
		"miaou\nimporter bruyant\nimporter bruyant\necrire bruyant.x\nmeow\n")

	h := newHarness()
	require.Nil(t, runFile(t, h, main))
	assert.Equal(t, "chargement\n1\n", h.out.String())
}

func TestImportTwiceSameNamespaceReference(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "etat", "miaou\nvaleurs = [1, 2]\nmeow\n")
	main := writeModule(t, dir, "main", `miaou
importer etat
a = etat
importer etat
b = etat
a.valeurs[0] = 99
ecrire b.valeurs[0]
meow
`)
	h := newHarness()
	require.Nil(t, runFile(t, h, main))
	assert.Equal(t, "99\n", h.out.String())
}

func TestImportMissingModule(t *testing.T) {
	dir := t.TempDir()
	main := writeModule(t, dir, "main", "miaou\nimporter fantome\nmeow\n")

	h := newHarness()
	err := runFile(t, h, main)
	require.NotNil(t, err)
	assert.Equal(t, "E901", err.Def.Code)
	assert.Equal(t, "fantome", err.Extra["module"])
}

func TestImportCycleYieldsPartialSnapshot(t *testing.T) {
	dir := t.TempDir()
	// a defines avant, imports b, then defines apres. b re-imports a and can
	// only see the partial namespace; the program still terminates.
	writeModule(t, dir, "cyc_a", `miaou
avant = 1
importer cyc_b
apres = 2
meow
`)
	writeModule(t, dir, "cyc_b", `miaou
importer cyc_a
vu = cyc_a.avant
meow
`)
	main := writeModule(t, dir, "main", `miaou
importer cyc_a
ecrire cyc_a.apres
ecrire cyc_a.cyc_b.vu
meow
`)
	h := newHarness()
	require.Nil(t, runFile(t, h, main))
	assert.Equal(t, "2\n1\n", h.out.String())
}

func TestModuleBindsUnderImportName(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "noms", "miaou\nchat = \"Felix\"\nmeow\n")
	main := writeModule(t, dir, "main", "miaou\nimporter noms\necrire noms.chat\nmeow\n")

	h := newHarness()
	require.Nil(t, runFile(t, h, main))
	assert.Equal(t, "Felix\n", h.out.String())
}

func TestModuleUnknownMember(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "vide", "miaou\nmeow\n")
	main := writeModule(t, dir, "main", "miaou\nimporter vide\necrire vide.inconnu\nmeow\n")

	h := newHarness()
	err := runFile(t, h, main)
	require.NotNil(t, err)
	assert.Equal(t, "E201", err.Def.Code)
}

func TestModuleWithSyntaxErrorSurfacesIt(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "casse", "miaou\nx = \nmeow\n")
	main := writeModule(t, dir, "main", "miaou\nimporter casse\nmeow\n")

	h := newHarness()
	err := runFile(t, h, main)
	require.NotNil(t, err)
	assert.Equal(t, "E100", err.Def.Code)
}

func TestModuleExportsOrder(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "ordre", "miaou\nb = 2\na = 1\nc = 3\nmeow\n")
	main := writeModule(t, dir, "main", "miaou\nimporter ordre\necrire ordre.a\nmeow\n")

	h := newHarness()
	require.Nil(t, runFile(t, h, main))

	canon, ok := h.ip.resolveModuleForTest("ordre", filepath.Join(dir, "main.miaou"))
	require.True(t, ok)
	rec := h.ip.modules[canon]
	require.NotNil(t, rec)
	assert.Equal(t, []string{"b", "a", "c"}, rec.mod.Exports())
}

// resolveModuleForTest resolves against an explicit importing file.
func (ip *Interpreter) resolveModuleForTest(name, importer string) (string, bool) {
	prev := ip.file
	ip.file = importer
	defer func() { ip.file = prev }()
	return ip.resolveModule(name)
}
