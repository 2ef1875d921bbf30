package meowlang

import "fmt"

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	NEWLINE
	INDENT
	DEDENT

	// Program markers
	MIAOU
	MEOW

	// Keywords
	SI
	ALORS
	SINON
	SINONSI // "sinon si"
	TANTQUE // "tant que"
	REPETER
	FOIS
	POURCHAQUE // "pour chaque"
	DANS
	FONCTION
	RETOUR
	ESSAYER
	SAUF
	ERREUR
	IMPORTER
	ET
	OU
	NON
	STOP    // break
	SUIVANT // continue

	// Built-in call forms (surface keywords; resolved through the env)
	ECRIRE
	DEMANDERTEXTE  // "demander texte"
	DEMANDERNOMBRE // "demander nombre"
	MINUSCULE
	MAJUSCULE
	LONGUEUR
	REMPLACER
	CONTIENT
	ALEATOIRE
	SQRT
	ABS
	ROUND
	FLOOR
	CEIL
	LISTE
	DICTIONNAIRE
	OUVRIR
	LIRE
	FERMER
	ATTENDRE

	// Literals & identifiers
	IDENT
	STRING
	NUMBER
	BOOLEAN

	// Operators
	PLUS
	MINUS
	MULT
	DIV
	FLOORDIV // "//"
	MOD
	POWER // "**"
	ASSIGN
	EQ
	NEQ
	LESS
	LESS_EQ
	GREATER
	GREATER_EQ

	// Punctuation
	COLON
	COMMA
	LPAREN
	RPAREN
	LSQUARE
	RSQUARE
	PERIOD
)

var tokenNames = map[TokenType]string{
	EOF:            "EOF",
	NEWLINE:        "NEWLINE",
	INDENT:         "INDENT",
	DEDENT:         "DEDENT",
	MIAOU:          "miaou",
	MEOW:           "meow",
	SI:             "si",
	ALORS:          "alors",
	SINON:          "sinon",
	SINONSI:        "sinon si",
	TANTQUE:        "tant que",
	REPETER:        "repeter",
	FOIS:           "fois",
	POURCHAQUE:     "pour chaque",
	DANS:           "dans",
	FONCTION:       "fonction",
	RETOUR:         "retour",
	ESSAYER:        "essayer",
	SAUF:           "sauf",
	ERREUR:         "erreur",
	IMPORTER:       "importer",
	ET:             "et",
	OU:             "ou",
	NON:            "non",
	STOP:           "stop",
	SUIVANT:        "suivant",
	ECRIRE:         "ecrire",
	DEMANDERTEXTE:  "demander texte",
	DEMANDERNOMBRE: "demander nombre",
	MINUSCULE:      "minuscule",
	MAJUSCULE:      "majuscule",
	LONGUEUR:       "longueur",
	REMPLACER:      "remplacer",
	CONTIENT:       "contient",
	ALEATOIRE:      "aleatoire",
	SQRT:           "sqrt",
	ABS:            "abs",
	ROUND:          "round",
	FLOOR:          "floor",
	CEIL:           "ceil",
	LISTE:          "liste",
	DICTIONNAIRE:   "dictionnaire",
	OUVRIR:         "ouvrir",
	LIRE:           "lire",
	FERMER:         "fermer",
	ATTENDRE:       "attendre",
	IDENT:          "identifiant",
	STRING:         "texte",
	NUMBER:         "nombre",
	BOOLEAN:        "booleen",
	PLUS:           "+",
	MINUS:          "-",
	MULT:           "*",
	DIV:            "/",
	FLOORDIV:       "//",
	MOD:            "%",
	POWER:          "**",
	ASSIGN:         "=",
	EQ:             "==",
	NEQ:            "!=",
	LESS:           "<",
	LESS_EQ:        "<=",
	GREATER:        ">",
	GREATER_EQ:     ">=",
	COLON:          ":",
	COMMA:          ",",
	LPAREN:         "(",
	RPAREN:         ")",
	LSQUARE:        "[",
	RSQUARE:        "]",
	PERIOD:         ".",
}

func (tt TokenType) String() string {
	if s, ok := tokenNames[tt]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token is a lexical token with optional literal value.
type Token struct {
	Type    TokenType
	Lexeme  string      // raw (keyword-normalized) text
	Literal interface{} // parsed value for literals
	Line    int         // 1-based
	Col     int         // 1-based
}

func (t Token) String() string {
	return fmt.Sprintf("Token(%s, %q, %d:%d)", t.Type, t.Lexeme, t.Line, t.Col)
}

// keywords maps a folded single word to its token type. Multi-word keywords
// are resolved by the lexer through composites below.
var keywords = map[string]TokenType{
	"miaou":        MIAOU,
	"meow":         MEOW,
	"si":           SI,
	"alors":        ALORS,
	"sinon":        SINON,
	"repeter":      REPETER,
	"fois":         FOIS,
	"dans":         DANS,
	"fonction":     FONCTION,
	"retour":       RETOUR,
	"essayer":      ESSAYER,
	"sauf":         SAUF,
	"erreur":       ERREUR,
	"importer":     IMPORTER,
	"et":           ET,
	"ou":           OU,
	"non":          NON,
	"stop":         STOP,
	"suivant":      SUIVANT,
	"ecrire":       ECRIRE,
	"minuscule":    MINUSCULE,
	"majuscule":    MAJUSCULE,
	"longueur":     LONGUEUR,
	"remplacer":    REMPLACER,
	"contient":     CONTIENT,
	"aleatoire":    ALEATOIRE,
	"sqrt":         SQRT,
	"abs":          ABS,
	"round":        ROUND,
	"floor":        FLOOR,
	"ceil":         CEIL,
	"liste":        LISTE,
	"dictionnaire": DICTIONNAIRE,
	"ouvrir":       OUVRIR,
	"lire":         LIRE,
	"fermer":       FERMER,
	"attendre":     ATTENDRE,
}

// composites lists the multi-word keywords, longest match first per head
// word. The lexer extends an identifier greedily over following words on the
// same line when the full folded sequence matches one of these.
var composites = map[string][]struct {
	rest []string
	tt   TokenType
}{
	"sinon":    {{[]string{"si"}, SINONSI}},
	"tant":     {{[]string{"que"}, TANTQUE}},
	"pour":     {{[]string{"chaque"}, POURCHAQUE}},
	"demander": {{[]string{"texte"}, DEMANDERTEXTE}, {[]string{"nombre"}, DEMANDERNOMBRE}},
}
