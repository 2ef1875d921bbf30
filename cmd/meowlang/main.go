package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	meowlang "github.com/arockenbauer/MeowLang"
)

const (
	appName     = "meowlang"
	version     = "0.3.0"
	historyFile = ".meowlang_history"
	promptMain  = "chat> "
	promptCont  = "  ... "
)

var banner = fmt.Sprintf("MeowLang %s — le langage qui ronronne 🐱\nCtrl+D pour sortir, :quit pour quitter.", version)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl())
	case "version":
		fmt.Println(version)
	case "-h", "--help", "help":
		usage()
	default:
		// Bare file argument runs it, like `meowlang script.miaou`.
		if strings.HasSuffix(cmd, ".miaou") {
			os.Exit(cmdRun(os.Args[1:]))
		}
		fmt.Fprintf(os.Stderr, "%s: commande inconnue %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`MeowLang %s

Usage:
  %s run <script.miaou>    Exécute un script.
  %s repl                  Lance la session interactive.
  %s version               Affiche la version.

`, version, appName, appName, appName)
}

func cmdRun(args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <script.miaou>\n", appName)
		return 2
	}

	file := args[0]
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: impossible de lire %s: %v\n", appName, file, err)
		return 1
	}
	abs := file
	if a, err := filepath.Abs(file); err == nil {
		abs = a
	}

	caps := meowlang.Capabilities{}
	ip := meowlang.NewInterpreter(meowlang.StandardRegistry(caps), caps)
	ip.RegisterSource(abs, string(src))

	prog, perr := meowlang.Parse(string(src), abs)
	if perr != nil {
		perr.Render(os.Stderr, ip.SourceLines(abs))
		return 1
	}

	if rerr := ip.Run(prog, abs); rerr != nil {
		rerr.Render(os.Stderr, ip.SourceLines(rerr.File))
		return 1
	}
	return 0
}

func cmdRepl() int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	caps := meowlang.Capabilities{}
	ip := meowlang.NewInterpreter(meowlang.StandardRegistry(caps), caps)
	env := meowlang.NewEnv(ip.Root)

	for {
		code, ok := readInput(ln)
		if !ok {
			fmt.Println()
			return 0
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if trimmed == ":quit" {
			return 0
		}

		// Each REPL entry runs inside implicit program markers.
		src := "miaou\n" + code + "\nmeow\n"
		ip.RegisterSource("<repl>", src)
		prog, perr := meowlang.Parse(src, "<repl>")
		if perr != nil {
			perr.Render(os.Stderr, meowlang.SplitLines(src))
			continue
		}
		if rerr := ip.RunIn(prog, "<repl>", env); rerr != nil {
			rerr.Render(os.Stderr, ip.SourceLines(rerr.File))
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readInput collects one entry; a line ending in ':' opens a block that ends
// on the first empty line.
func readInput(ln *liner.State) (string, bool) {
	var b strings.Builder
	prompt := promptMain
	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if strings.HasSuffix(strings.TrimSpace(line), ":") || prompt == promptCont {
			if strings.TrimSpace(line) == "" {
				return b.String(), true
			}
			prompt = promptCont
			continue
		}
		return b.String(), true
	}
}
