// builtins.go: the BuiltinRegistry capability and the standard registry.
//
// The evaluator never hard-codes builtin names: the host hands it a registry
// whose entries are installed into the root environment before execution.
// StandardRegistry implements the documented set on top of four small
// capabilities (output writer, input prompter, clock, randomness), each with
// a real default so `NewInterpreter(StandardRegistry(caps), caps)` just
// works.
package meowlang

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Input produces a line of user input for the demander builtins.
type Input interface {
	Prompt(prompt string) (string, error)
}

// Clock abstracts attendre's sleep.
type Clock interface {
	Sleep(d time.Duration)
}

// Randomness abstracts aleatoire.
type Randomness interface {
	UniformInt(min, max int64) int64
}

// Capabilities bundles the host collaborators the standard builtins use.
// Zero-value fields fall back to the real environment.
type Capabilities struct {
	Stdout io.Writer
	Input  Input
	Clock  Clock
	Rand   Randomness
	Reader SourceReader
}

func (c Capabilities) withDefaults() Capabilities {
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	if c.Input == nil {
		c.Input = stdinInput{}
	}
	if c.Clock == nil {
		c.Clock = realClock{}
	}
	if c.Rand == nil {
		c.Rand = mathRand{rand.New(rand.NewSource(time.Now().UnixNano()))}
	}
	if c.Reader == nil {
		c.Reader = osSourceReader{}
	}
	return c
}

type stdinInput struct{}

func (stdinInput) Prompt(prompt string) (string, error) {
	fmt.Print(prompt + " ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimRight(line, "\r\n"), err
}

type realClock struct{}

func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

type mathRand struct{ r *rand.Rand }

func (m mathRand) UniformInt(min, max int64) int64 {
	if max < min {
		min, max = max, min
	}
	return min + m.r.Int63n(max-min+1)
}

// BuiltinRegistry is the capability the evaluator consumes: a set of native
// callables keyed by the name they bind to in the root environment.
type BuiltinRegistry interface {
	Items() map[string]*NativeFunc
}

// MapRegistry is the trivial BuiltinRegistry over a plain map.
type MapRegistry map[string]*NativeFunc

func (m MapRegistry) Items() map[string]*NativeFunc { return m }

// StandardRegistry builds the documented builtin set against the given
// capabilities.
func StandardRegistry(caps Capabilities) BuiltinRegistry {
	caps = caps.withDefaults()
	reg := MapRegistry{}

	add := func(name string, arity int, variadic bool, fn func(ip *Interpreter, args []Value, pos Position) Value) {
		reg[name] = &NativeFunc{Name: name, Arity: arity, Variadic: variadic, Fn: fn}
	}

	numArg := func(ip *Interpreter, name string, v Value, pos Position) float64 {
		if !isNumber(v) {
			ip.raise(ip.errAt("E202", pos).WithInstruction(name).
				With("type1", "nombre").With("type2", v.Tag.String()))
		}
		return toFloat(v)
	}
	textArg := func(ip *Interpreter, name string, v Value, pos Position) string {
		if v.Tag != VTText {
			ip.raise(ip.errAt("E202", pos).WithInstruction(name).
				With("type1", "texte").With("type2", v.Tag.String()))
		}
		return v.Data.(string)
	}

	add("ecrire", 0, true, func(ip *Interpreter, args []Value, pos Position) Value {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = DisplayValue(a)
		}
		fmt.Fprintln(caps.Stdout, strings.Join(parts, " "))
		return Nothing
	})

	add("demander texte", 1, false, func(ip *Interpreter, args []Value, pos Position) Value {
		line, err := caps.Input.Prompt(DisplayValue(args[0]))
		if err != nil {
			ip.raise(ip.errAt("E802", pos).With("filename", "<entrée>").With("reason", err.Error()))
		}
		return TextVal(line)
	})

	add("demander nombre", 1, false, func(ip *Interpreter, args []Value, pos Position) Value {
		line, err := caps.Input.Prompt(DisplayValue(args[0]))
		if err != nil {
			ip.raise(ip.errAt("E802", pos).With("filename", "<entrée>").With("reason", err.Error()))
		}
		line = strings.TrimSpace(line)
		if n, convErr := strconv.ParseInt(line, 10, 64); convErr == nil {
			return IntVal(n)
		}
		f, convErr := strconv.ParseFloat(line, 64)
		if convErr != nil {
			ip.raise(ip.errAt("E202", pos).WithInstruction("demander nombre").
				With("type1", "nombre").With("type2", "texte"))
		}
		return FloatVal(f)
	})

	add("minuscule", 1, false, func(ip *Interpreter, args []Value, pos Position) Value {
		return TextVal(strings.ToLower(textArg(ip, "minuscule", args[0], pos)))
	})

	add("majuscule", 1, false, func(ip *Interpreter, args []Value, pos Position) Value {
		return TextVal(strings.ToUpper(textArg(ip, "majuscule", args[0], pos)))
	})

	add("longueur", 1, false, func(ip *Interpreter, args []Value, pos Position) Value {
		switch v := args[0]; v.Tag {
		case VTText:
			return IntVal(int64(utf8.RuneCountInString(v.Data.(string))))
		case VTList:
			return IntVal(int64(len(v.Data.(*ListObject).Elems)))
		case VTDict:
			return IntVal(int64(v.Data.(*DictObject).Len()))
		default:
			ip.raise(ip.errAt("E202", pos).WithInstruction("longueur").
				With("type1", "texte/liste/dictionnaire").With("type2", v.Tag.String()))
			return Nothing
		}
	})

	add("remplacer", 3, false, func(ip *Interpreter, args []Value, pos Position) Value {
		hay := textArg(ip, "remplacer", args[0], pos)
		old := textArg(ip, "remplacer", args[1], pos)
		repl := textArg(ip, "remplacer", args[2], pos)
		return TextVal(strings.ReplaceAll(hay, old, repl))
	})

	add("contient", 2, false, func(ip *Interpreter, args []Value, pos Position) Value {
		switch v := args[0]; v.Tag {
		case VTText:
			needle := textArg(ip, "contient", args[1], pos)
			return BoolVal(strings.Contains(v.Data.(string), needle))
		case VTList:
			for _, el := range v.Data.(*ListObject).Elems {
				if ValuesEqual(el, args[1]) {
					return BoolVal(true)
				}
			}
			return BoolVal(false)
		case VTDict:
			_, ok := v.Data.(*DictObject).Get(args[1])
			return BoolVal(ok)
		default:
			ip.raise(ip.errAt("E202", pos).WithInstruction("contient").
				With("type1", "texte/liste/dictionnaire").With("type2", v.Tag.String()))
			return Nothing
		}
	})

	add("aleatoire", 2, false, func(ip *Interpreter, args []Value, pos Position) Value {
		lo := int64(numArg(ip, "aleatoire", args[0], pos))
		hi := int64(numArg(ip, "aleatoire", args[1], pos))
		return IntVal(caps.Rand.UniformInt(lo, hi))
	})

	add("sqrt", 1, false, func(ip *Interpreter, args []Value, pos Position) Value {
		return FloatVal(math.Sqrt(numArg(ip, "sqrt", args[0], pos)))
	})

	add("abs", 1, false, func(ip *Interpreter, args []Value, pos Position) Value {
		if args[0].Tag == VTInt {
			n := args[0].Data.(int64)
			if n < 0 {
				n = -n
			}
			return IntVal(n)
		}
		return FloatVal(math.Abs(numArg(ip, "abs", args[0], pos)))
	})

	add("round", 1, false, func(ip *Interpreter, args []Value, pos Position) Value {
		return IntVal(int64(math.Round(numArg(ip, "round", args[0], pos))))
	})

	add("floor", 1, false, func(ip *Interpreter, args []Value, pos Position) Value {
		return IntVal(int64(math.Floor(numArg(ip, "floor", args[0], pos))))
	})

	add("ceil", 1, false, func(ip *Interpreter, args []Value, pos Position) Value {
		return IntVal(int64(math.Ceil(numArg(ip, "ceil", args[0], pos))))
	})

	add("liste", 0, true, func(ip *Interpreter, args []Value, pos Position) Value {
		elems := make([]Value, len(args))
		copy(elems, args)
		return ListVal(elems)
	})

	add("dictionnaire", 0, true, func(ip *Interpreter, args []Value, pos Position) Value {
		if len(args)%2 != 0 {
			ip.raise(ip.errAt("E601", pos).WithInstruction("dictionnaire").
				With("expected", "un nombre pair").With("received", fmt.Sprint(len(args))))
		}
		d := NewDict()
		for i := 0; i < len(args); i += 2 {
			if !d.Set(args[i], args[i+1]) {
				ip.raise(ip.errAt("E704", pos).With("type", args[i].Tag.String()))
			}
		}
		return DictVal(d)
	})

	add("ouvrir", 2, false, func(ip *Interpreter, args []Value, pos Position) Value {
		path := textArg(ip, "ouvrir", args[0], pos)
		mode := textArg(ip, "ouvrir", args[1], pos)

		var handle *os.File
		var err error
		switch mode {
		case "lecture", "r":
			handle, err = os.Open(path)
		case "ecriture", "w":
			handle, err = os.Create(path)
		case "ajout", "a":
			handle, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		default:
			ip.raise(ip.errAt("E802", pos).With("filename", path).
				With("reason", "mode inconnu '"+mode+"'"))
		}
		if err != nil {
			ip.raise(ip.errAt("E802", pos).With("filename", path).With("reason", err.Error()))
		}
		return Value{Tag: VTFile, Data: &FileObject{Path: path, Mode: mode, Handle: handle, Open: true}}
	})

	add("lire", 1, false, func(ip *Interpreter, args []Value, pos Position) Value {
		if args[0].Tag != VTFile {
			ip.raise(ip.errAt("E202", pos).WithInstruction("lire").
				With("type1", "fichier").With("type2", args[0].Tag.String()))
		}
		f := args[0].Data.(*FileObject)
		if !f.Open {
			ip.raise(ip.errAt("E803", pos).With("filename", f.Path))
		}
		b, err := io.ReadAll(f.Handle)
		if err != nil {
			ip.raise(ip.errAt("E802", pos).With("filename", f.Path).With("reason", err.Error()))
		}
		return TextVal(string(b))
	})

	add("fermer", 1, false, func(ip *Interpreter, args []Value, pos Position) Value {
		if args[0].Tag != VTFile {
			ip.raise(ip.errAt("E202", pos).WithInstruction("fermer").
				With("type1", "fichier").With("type2", args[0].Tag.String()))
		}
		f := args[0].Data.(*FileObject)
		if f.Open && f.Handle != nil {
			if err := f.Handle.Close(); err != nil {
				ip.raise(ip.errAt("E802", pos).With("filename", f.Path).With("reason", err.Error()))
			}
		}
		f.Open = false
		return Nothing
	})

	add("attendre", 1, false, func(ip *Interpreter, args []Value, pos Position) Value {
		seconds := numArg(ip, "attendre", args[0], pos)
		if seconds < 0 {
			ip.raise(ip.errAt("E801", pos).With("duration", strconv.FormatFloat(seconds, 'g', -1, 64)))
		}
		caps.Clock.Sleep(time.Duration(seconds * float64(time.Second)))
		return Nothing
	})

	return reg
}
