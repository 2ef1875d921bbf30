// diagnostics.go: the MeowLang error catalog and its renderer.
//
// Every failure the pipeline can produce is described by a static catalog
// entry keyed by code (E001..E999). An entry carries a severity ("griffure"),
// a short type name, a technical message template, a playful cat-flavored
// message, an optional suggestion and an optional example. MeowError binds a
// catalog entry to a source location plus template variables; Render produces
// the full judgement block with a context excerpt and a caret.
package meowlang

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
)

// Severity is the griffure tier shown in diagnostics.
type Severity int

const (
	SevFaible Severity = iota
	SevMoyenne
	SevForte
)

func (s Severity) Label() string {
	switch s {
	case SevFaible:
		return "FAIBLE"
	case SevMoyenne:
		return "MOYENNE"
	default:
		return "FORTE"
	}
}

// Emoji returns the cat mood matching the severity.
func (s Severity) Emoji() string {
	switch s {
	case SevFaible:
		return "😺"
	case SevMoyenne:
		return "😾"
	default:
		return "🙀"
	}
}

// DiagDef is one immutable catalog entry.
type DiagDef struct {
	Code       string
	Name       string
	Severity   Severity
	MsgTech    string // technical template, {var} placeholders
	MsgMeow    string // playful template
	Mood       string
	Suggestion string
	Example    string
}

// MeowError binds a catalog entry to a location in a source file.
// Line and Col are 1-based; Line 0 marks a synthetic position (no context
// excerpt is rendered).
type MeowError struct {
	Def         DiagDef
	File        string
	Line        int
	Col         int
	Instruction string
	Extra       map[string]string
	Critical    bool // forced past essayer/sauf (module load failures)
}

// NewError builds a MeowError for code at the given location. Unknown codes
// fall back to the E902 crash entry.
func NewError(code, file string, line, col int) *MeowError {
	return &MeowError{Def: Catalog(code), File: file, Line: line, Col: col}
}

func (e *MeowError) WithInstruction(instr string) *MeowError {
	e.Instruction = instr
	return e
}

func (e *MeowError) With(key, value string) *MeowError {
	if e.Extra == nil {
		e.Extra = map[string]string{}
	}
	e.Extra[key] = value
	return e
}

func (e *MeowError) expand(template string) string {
	out := template
	for k, v := range e.Extra {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out
}

// Error implements the error interface with a compact single line; the full
// judgement comes from Render.
func (e *MeowError) Error() string {
	return fmt.Sprintf("[%s] %s (%s:%d:%d): %s",
		e.Def.Code, e.Def.Name, e.File, e.Line, e.Col, e.expand(e.Def.MsgTech))
}

// Catchable reports whether essayer/sauf may intercept this error. Critical
// errors (E900 and above) bypass user handlers.
func (e *MeowError) Catchable() bool {
	return !e.Critical && e.Def.Code < "E900"
}

// Render writes the full diagnostic block. sourceLines are the lines of the
// offending file; pass nil to omit the context excerpt (synthetic positions
// omit it regardless).
func (e *MeowError) Render(w io.Writer, sourceLines []string) {
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	blue := color.New(color.FgHiBlue).SprintFunc()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s ERREUR MEOWLANG [%s] — GRIFFURE %s\n",
		e.Def.Severity.Emoji(), yellow(e.Def.Code), red(e.Def.Severity.Label()))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Fichier      : %s\n", cyan(e.File))
	fmt.Fprintf(w, "Ligne        : %s\n", cyan(fmt.Sprint(e.Line)))
	fmt.Fprintf(w, "Colonne      : %s\n", cyan(fmt.Sprint(e.Col)))
	if e.Instruction != "" {
		fmt.Fprintf(w, "Instruction  : %s\n", yellow(e.Instruction))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Type         : %s\n", red(e.Def.Name))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Message technique :")
	fmt.Fprintln(w, e.expand(e.Def.MsgTech))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Message MeowLang 🐱 :")
	fmt.Fprintln(w, e.expand(e.Def.MsgMeow))

	if ctx := contextExcerpt(sourceLines, e.Line, e.Col); len(ctx) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Contexte :")
		for _, line := range ctx {
			fmt.Fprintln(w, line)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "État du chat :")
	fmt.Fprintln(w, e.Def.Mood)

	if e.Def.Suggestion != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Suggestion du chat 💡 :")
		fmt.Fprintln(w, green(e.expand(e.Def.Suggestion)))
	}
	if e.Def.Example != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Exemple recommandé :")
		fmt.Fprintln(w, blue(e.expand(e.Def.Example)))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Fin du jugement.")
	fmt.Fprintln(w, "Le chat te surveille.")
	fmt.Fprintln(w)
}

// contextExcerpt returns the offending line with up to two preceding lines,
// numbered, plus a caret under the offending column. A line outside the file
// (synthetic position) yields no excerpt.
func contextExcerpt(sourceLines []string, line, col int) []string {
	if line < 1 || line > len(sourceLines) {
		return nil
	}
	start := line - 2
	if start < 1 {
		start = 1
	}
	var out []string
	for n := start; n <= line; n++ {
		prefix := "  "
		if n == line {
			prefix = "> "
		}
		out = append(out, fmt.Sprintf("%s  %3d | %s", prefix, n, sourceLines[n-1]))
	}
	if col >= 1 {
		// "> " + 2 spaces + 3-digit number + " | " = 10 columns before the code.
		out = append(out, strings.Repeat(" ", 10+col-1)+"^")
	}
	return out
}

// SplitLines normalizes \r\n to \n and splits, keeping empty trailing lines
// addressable for context excerpts.
func SplitLines(src string) []string {
	return strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
}

// Catalog returns the entry for code, or the E902 crash entry for unknown
// codes.
func Catalog(code string) DiagDef {
	if d, ok := catalog[code]; ok {
		return d
	}
	return catalog["E902"]
}

// CatalogCodes lists every known code in ascending order.
func CatalogCodes() []string {
	out := make([]string, 0, len(catalog))
	for code := range catalog {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

var catalog = map[string]DiagDef{
	// ---- structure (E000–E099) ----
	"E001": {
		Code: "E001", Name: "ScriptSansMiaou", Severity: SevForte,
		MsgTech:    "Le script doit commencer par 'miaou'.",
		MsgMeow:    "😾 Le chat refuse d'entrer sans un \"miaou\" au début.",
		Mood:       "😾 En colère, refuse d'entrer.",
		Suggestion: "✔ Ajoute 'miaou' au tout début du fichier",
		Example:    "  miaou\n  ecrire \"Bonjour !\"\n  meow",
	},
	"E002": {
		Code: "E002", Name: "ScriptSansMeow", Severity: SevForte,
		MsgTech:    "Le script doit se terminer par 'meow'.",
		MsgMeow:    "💤 Le chat s'est endormi avant le \"meow\" final.",
		Mood:       "💤 Endormi, perdu dans ses rêves.",
		Suggestion: "✔ Ajoute 'meow' à la toute fin du fichier",
		Example:    "  miaou\n  ecrire \"Bonjour !\"\n  meow",
	},
	"E003": {
		Code: "E003", Name: "FichierVide", Severity: SevMoyenne,
		MsgTech:    "Le fichier est vide.",
		MsgMeow:    "😿 Le carton est vide.",
		Mood:       "😿 Déçu et triste.",
		Suggestion: "✔ Ajoute du code dans le fichier",
	},

	// ---- syntax (E100–E199) ----
	"E100": {
		Code: "E100", Name: "InstructionInconnue", Severity: SevMoyenne,
		MsgTech:    "Symbole ou instruction non reconnu : {found}. Attendu : {expected}.",
		MsgMeow:    "😿 Le chat ne comprend pas ce mot.",
		Mood:       "😿 Perplexe, tête penchée.",
		Suggestion: "✔ Vérifie l'orthographe de l'instruction\n✔ Consulte la liste des mots-clés valides",
	},
	"E101": {
		Code: "E101", Name: "IndentationMelangee", Severity: SevMoyenne,
		MsgTech:    "Tabulations et espaces mélangés dans la même indentation.",
		MsgMeow:    "😾 Le chat n'aime pas marcher sur un sol irrégulier.",
		Mood:       "😾 Agacé par le désordre.",
		Suggestion: "✔ Utilise uniquement des espaces (ou uniquement des tabulations) pour indenter",
		Example:    "  si age > 10 alors:\n      ecrire \"OK\"  # 4 espaces d'indentation",
	},
	"E102": {
		Code: "E102", Name: "IndentationFautive", Severity: SevMoyenne,
		MsgTech:    "Retour d'indentation vers un niveau qui n'existe pas.",
		MsgMeow:    "😾 Le chat est redescendu sur une marche qui n'existe pas.",
		Mood:       "😾 Vexé d'avoir raté la marche.",
		Suggestion: "✔ Aligne la ligne sur un niveau d'indentation déjà ouvert",
	},
	"E103": {
		Code: "E103", Name: "GuillemetManquant", Severity: SevMoyenne,
		MsgTech:    "Guillemet de fermeture manquant pour une chaîne de caractères.",
		MsgMeow:    "🧶 La pelote de laine n'est pas fermée (guillemet manquant).",
		Mood:       "🧶 Distrait, joue avec la pelote.",
		Suggestion: "✔ Ajoute un guillemet \" à la fin de la chaîne",
		Example:    "  texte = \"Bonjour le chat\"",
	},
	"E104": {
		Code: "E104", Name: "MotCleManquant", Severity: SevMoyenne,
		MsgTech:    "Mot-clé ou ponctuation attendu manquant : {expected}.",
		MsgMeow:    "🧐 Il manque un mot magique.",
		Mood:       "🧐 Attend quelque chose.",
		Suggestion: "✔ Vérifie la syntaxe complète de l'instruction",
	},
	"E105": {
		Code: "E105", Name: "DelimiteurManquant", Severity: SevMoyenne,
		MsgTech:    "Délimiteur de fermeture manquant : {expected}.",
		MsgMeow:    "🐈 Une patte dépasse. Il manque la fermeture.",
		Mood:       "🐈 Inconfortable, une patte en l'air.",
		Suggestion: "✔ Vérifie que chaque '(' a son ')' et chaque '[' son ']'",
		Example:    "  resultat = (3 + 5) * 2",
	},

	// ---- names & types (E200–E299) ----
	"E200": {
		Code: "E200", Name: "VariableInexistante", Severity: SevMoyenne,
		MsgTech:    "Variable '{var_name}' non définie.",
		MsgMeow:    "🐾 Ce chat '{var_name}' n'existe pas dans la maison.",
		Mood:       "🐾 Cherche partout, ne trouve rien.",
		Suggestion: "✔ Vérifie l'orthographe de la variable\n✔ Définis la variable avant de l'utiliser",
		Example:    "  {var_name} = 42\n  ecrire {var_name}",
	},
	"E201": {
		Code: "E201", Name: "AttributInconnu", Severity: SevMoyenne,
		MsgTech:    "Le membre '{name}' n'existe pas dans '{target}'.",
		MsgMeow:    "🐾 Ce tiroir '{name}' est vide.",
		Mood:       "🐾 Gratte un tiroir fermé.",
		Suggestion: "✔ Vérifie le nom du membre exporté",
	},
	"E202": {
		Code: "E202", Name: "TypeIncompatible", Severity: SevMoyenne,
		MsgTech:    "Opération impossible entre types incompatibles : {type1} et {type2}.",
		MsgMeow:    "🐟 Mauvaise gamelle pour ce repas. Types {type1} et {type2} incompatibles.",
		Mood:       "😿 Dégoûté par la gamelle.",
		Suggestion: "✔ Vérifie les types de tes variables\n✔ Convertis si nécessaire",
	},

	// ---- conditions (E300–E399) ----
	"E300": {
		Code: "E300", Name: "ConditionInvalide", Severity: SevMoyenne,
		MsgTech:    "La condition n'est pas valide ou est mal formée.",
		MsgMeow:    "🤨 Cette condition n'a aucun sens.",
		Mood:       "🤨 Sourcil levé, dubitatif.",
		Suggestion: "✔ Vérifie la syntaxe de la condition\n✔ Utilise des opérateurs valides : ==, !=, <, >, <=, >=, et, ou",
	},

	// ---- loops (E400–E499) ----
	"E401": {
		Code: "E401", Name: "SortieSansBoucle", Severity: SevMoyenne,
		MsgTech:    "'{keyword}' utilisé en dehors d'une boucle.",
		MsgMeow:    "🚪 Le chat veut sortir, mais il n'y a pas de porte.",
		Mood:       "🚪 Miaule devant un mur.",
		Suggestion: "✔ Utilise 'stop' et 'suivant' uniquement dans une boucle",
	},

	// ---- arithmetic (E500–E599) ----
	"E501": {
		Code: "E501", Name: "DivisionParZero", Severity: SevMoyenne,
		MsgTech:    "Division par zéro impossible.",
		MsgMeow:    "🚫 Partager des croquettes entre zéro chat est strictement interdit.",
		Mood:       "😾 Agacé, oreilles en arrière, queue en fouet.",
		Suggestion: "✔ Vérifie que le diviseur est différent de 0\n✔ Ajoute une condition avant le calcul",
		Example:    "  si nombre != 0 alors:\n      ecrire 10 / nombre",
	},
	"E502": {
		Code: "E502", Name: "ComparaisonImpossible", Severity: SevMoyenne,
		MsgTech:    "Comparaison d'ordre impossible entre {type1} et {type2}.",
		MsgMeow:    "⚖️ Le chat ne sait pas peser un poisson contre une pelote.",
		Mood:       "⚖️ Hésite, la balance penche bizarrement.",
		Suggestion: "✔ Compare des nombres entre eux ou des textes entre eux",
	},
	"E503": {
		Code: "E503", Name: "CompteurInvalide", Severity: SevMoyenne,
		MsgTech:    "'repeter' attend un nombre entier positif, reçu : {count}.",
		MsgMeow:    "🔢 Le chat ne sait pas ronronner {count} fois.",
		Mood:       "🔢 Compte sur ses coussinets, n'y arrive pas.",
		Suggestion: "✔ Donne à 'repeter' un nombre entier supérieur ou égal à 0",
		Example:    "  repeter 3 fois:\n      ecrire compteur",
	},

	// ---- functions (E600–E699) ----
	"E600": {
		Code: "E600", Name: "AppelImpossible", Severity: SevMoyenne,
		MsgTech:    "La valeur de type {type} n'est pas une fonction.",
		MsgMeow:    "😿 Ce n'est pas un tour félin, ça ne s'appelle pas.",
		Mood:       "😿 Désolé, ne connaît pas ce tour.",
		Suggestion: "✔ Vérifie que tu appelles bien une fonction",
	},
	"E601": {
		Code: "E601", Name: "ArgumentsInvalides", Severity: SevMoyenne,
		MsgTech:    "Nombre d'arguments incorrect : attendu {expected}, reçu {received}.",
		MsgMeow:    "🐾 Le chat attend {expected} caresse(s), pas {received}.",
		Mood:       "🐾 Insatisfait du nombre de caresses.",
		Suggestion: "✔ Vérifie le nombre d'arguments passés à la fonction",
	},

	// ---- collections (E700–E799) ----
	"E701": {
		Code: "E701", Name: "ParcoursImpossible", Severity: SevMoyenne,
		MsgTech:    "'pour chaque' attend une liste, un dictionnaire ou un texte, reçu : {type}.",
		MsgMeow:    "🧺 Le chat ne peut pas fouiller dans ce panier.",
		Mood:       "🧺 Tourne autour du panier fermé.",
		Suggestion: "✔ Parcours une liste, un dictionnaire ou un texte",
	},
	"E702": {
		Code: "E702", Name: "IndexHorsLimite", Severity: SevMoyenne,
		MsgTech:    "Index {index} hors limites pour une liste de taille {size}.",
		MsgMeow:    "🐈 Tu cherches un chat qui n'est pas dans la portée (index {index}).",
		Mood:       "🐈 Cherche dans le vide.",
		Suggestion: "✔ Vérifie que l'index est entre 0 et {size_minus_one}",
	},
	"E703": {
		Code: "E703", Name: "CleIntrouvable", Severity: SevMoyenne,
		MsgTech:    "La clé {key} n'existe pas dans le dictionnaire.",
		MsgMeow:    "🗝️ Aucune gamelle ne porte l'étiquette {key}.",
		Mood:       "🗝️ Renifle chaque gamelle, en vain.",
		Suggestion: "✔ Vérifie la clé, ou teste sa présence avec contient(...)",
	},
	"E704": {
		Code: "E704", Name: "IndexationImpossible", Severity: SevMoyenne,
		MsgTech:    "La valeur de type {type} ne supporte pas l'indexation.",
		MsgMeow:    "📦 Ce carton n'a pas de compartiments.",
		Mood:       "📦 Tapote un carton plein.",
		Suggestion: "✔ Indexe une liste, un dictionnaire ou un texte",
	},

	// ---- I/O (E800–E899) ----
	"E801": {
		Code: "E801", Name: "TempsNegatif", Severity: SevMoyenne,
		MsgTech:    "La durée d'attente ne peut pas être négative : {duration}.",
		MsgMeow:    "🕰️ Le chat ne peut pas dormir dans le passé.",
		Mood:       "🕰️ Confus par le temps.",
		Suggestion: "✔ Utilise une durée positive pour 'attendre'",
	},
	"E802": {
		Code: "E802", Name: "FichierIllisible", Severity: SevMoyenne,
		MsgTech:    "Impossible d'accéder au fichier '{filename}' : {reason}.",
		MsgMeow:    "📄 Le chat griffe la porte du fichier sans l'ouvrir.",
		Mood:       "📄 Frustré devant la porte close.",
		Suggestion: "✔ Vérifie le chemin et les permissions du fichier",
	},
	"E803": {
		Code: "E803", Name: "FichierFerme", Severity: SevMoyenne,
		MsgTech:    "Le fichier '{filename}' est déjà fermé.",
		MsgMeow:    "🚪 Cette porte est déjà fermée, inutile de gratter.",
		Mood:       "🚪 Gratte une porte close.",
		Suggestion: "✔ Ouvre le fichier avec ouvrir(...) avant de le lire",
	},

	// ---- critical (E900–E999) ----
	"E901": {
		Code: "E901", Name: "ModuleIntrouvable", Severity: SevForte,
		MsgTech:    "Le module '{module}' est introuvable.",
		MsgMeow:    "😾 Le chat ne retrouve pas son ami '{module}'.",
		Mood:       "😾 Énervé, cherche partout.",
		Suggestion: "✔ Vérifie que {module}.miaou existe à côté du script\n✔ Vérifie la variable MEOWLANG_PATH",
	},
	"E902": {
		Code: "E902", Name: "CrashInterpreteur", Severity: SevForte,
		MsgTech:    "Erreur interne de l'interpréteur : {reason}.",
		MsgMeow:    "💥 Le chat a renversé l'interpréteur.",
		Mood:       "💥 Catastrophe totale.",
		Suggestion: "✔ Ceci est un bug de MeowLang\n✔ Rapporte ce problème avec ton code",
	},
	"E999": {
		Code: "E999", Name: "ChatAssisSurClavier", Severity: SevForte,
		MsgTech:    "Trop d'erreurs détectées. Arrêt de l'analyse.",
		MsgMeow:    "🐾 Le chat s'est assis sur le clavier. Redémarrage conseillé.",
		Mood:       "🐾 Confortablement installé sur les touches.",
		Suggestion: "✔ Corrige les erreurs précédentes\n✔ Prends une pause café avec le chat",
	},
}
