// modules.go: resolution, loading and caching of .miaou modules.
//
// `importer foo` resolves foo.miaou against the importing script's directory
// and then each entry of MEOWLANG_PATH. The cleaned absolute path is the
// cache key; a module parses and executes at most once per interpreter. A
// re-entrant import of a module still executing returns a partial snapshot
// of its namespace taken at that moment (single-threaded, so no blocking).
package meowlang

import (
	"os"
	"path/filepath"
)

// MeowLangPath is the environment variable listing extra module roots,
// separated by the system list separator.
const MeowLangPath = "MEOWLANG_PATH"

const moduleExt = ".miaou"

// Module is the immutable mapping from exported name to value produced by
// executing a module's top level.
type Module struct {
	Name    string // import name
	Path    string // canonical absolute path
	exports map[string]Value
	order   []string
}

// Get returns the exported binding named key.
func (m *Module) Get(key string) (Value, bool) {
	v, ok := m.exports[key]
	return v, ok
}

// Exports lists the exported names in definition order.
func (m *Module) Exports() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

type moduleState int

const (
	modLoading moduleState = iota
	modReady
)

type moduleRec struct {
	state moduleState
	env   *Env // live env while loading
	mod   *Module
}

// SourceReader supplies module source text; the default reads the
// filesystem. Hosts may substitute it through Capabilities.
type SourceReader interface {
	Read(path string) (string, error)
}

type osSourceReader struct{}

func (osSourceReader) Read(path string) (string, error) {
	b, err := os.ReadFile(path)
	return string(b), err
}

// importModule resolves, loads and caches the named module, then returns its
// Value. Load failures are critical (E901 family) and bypass essayer/sauf.
func (ip *Interpreter) importModule(name string, pos Position) Value {
	canon, ok := ip.resolveModule(name)
	if !ok {
		ip.raise(ip.errAt("E901", pos).WithInstruction(name).With("module", name))
	}

	if rec, ok := ip.modules[canon]; ok {
		if rec.state == modReady {
			return Value{Tag: VTModule, Data: rec.mod}
		}
		// Re-entrant import: snapshot whatever the module has defined so far.
		partial := snapshotExports(name, canon, rec.env)
		return Value{Tag: VTModule, Data: partial}
	}

	src, err := ip.caps.Reader.Read(canon)
	if err != nil {
		ip.raise(ip.errAt("E901", pos).WithInstruction(name).With("module", name))
	}
	ip.RegisterSource(canon, src)

	prog, perr := Parse(src, canon)
	if perr != nil {
		perr.Critical = true // load failures bypass essayer/sauf
		ip.raise(perr)
	}

	modEnv := NewEnv(ip.Root)
	rec := &moduleRec{state: modLoading, env: modEnv}
	ip.modules[canon] = rec

	prevFile := ip.file
	ip.file = canon
	defer func() { ip.file = prevFile }()

	func() {
		defer func() {
			if r := recover(); r != nil {
				delete(ip.modules, canon) // never cache failures
				panic(r)
			}
		}()
		for _, stmt := range prog.Statements {
			ip.evalStmt(stmt, modEnv)
		}
	}()

	rec.mod = snapshotExports(name, canon, modEnv)
	rec.state = modReady
	return Value{Tag: VTModule, Data: rec.mod}
}

// snapshotExports captures every binding of the module frame, in definition
// order. The returned namespace is frozen: later mutation of the env (during
// a re-entrant load) does not leak into an already-taken snapshot.
func snapshotExports(name, canon string, env *Env) *Module {
	m := &Module{Name: name, Path: canon, exports: map[string]Value{}}
	for _, k := range env.Names() {
		v, _ := env.Get(k)
		m.exports[k] = v
		m.order = append(m.order, k)
	}
	return m
}

// resolveModule searches name.miaou under the importing file's directory,
// then under each MEOWLANG_PATH entry. Returns the cleaned absolute path.
func (ip *Interpreter) resolveModule(name string) (string, bool) {
	var bases []string
	if ip.file != "" && ip.file != "<repl>" {
		bases = append(bases, filepath.Dir(ip.file))
	}
	if sp := os.Getenv(MeowLangPath); sp != "" {
		for _, root := range filepath.SplitList(sp) {
			if root != "" {
				bases = append(bases, root)
			}
		}
	}

	for _, base := range bases {
		cand := filepath.Join(base, name+moduleExt)
		if fi, err := os.Stat(cand); err == nil && !fi.IsDir() {
			abs, err := filepath.Abs(cand)
			if err != nil {
				continue
			}
			return filepath.Clean(abs), true
		}
	}
	return "", false
}
