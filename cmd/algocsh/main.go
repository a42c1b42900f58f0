/*
Algocsh is an interactive shell for trying out algocc fragments one
statement at a time without having to write a full program to a file.

Each fragment is wrapped in a throwaway main algorithm:

	Algorithme Fragment
	Variables:
	Instructions:
	<your lines>
	FinAlgo

and compiled fresh (caching is never used for shell fragments). Enter a
blank line to submit the fragment typed so far; diagnostics or the
emitted C are written to standard error. Type "quitter" or send EOF
(Ctrl-D) to exit.
*/
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/dekarrin/algoc/internal/config"
	"github.com/dekarrin/algoc/internal/input"
	"github.com/dekarrin/algoc/internal/session"
)

// errLog writes to standard error with no timestamp prefix, matching
// cmd/algocc: everything this shell reports is read interactively, never
// piped downstream, so both errors and compile results go through it.
var errLog = log.New(os.Stderr, "", 0)

func main() {
	reader, err := input.NewInteractiveReader()
	if err != nil {
		errLog.Printf("ERROR: %s", err)
		os.Exit(2)
	}
	defer reader.Close()
	reader.AllowBlank(true)

	cfg := config.Default()
	cfg.Cache.Enabled = false
	sess := session.New(cfg)

	fmt.Println("algocsh — enter a fragment, blank line to compile, \"quitter\" to exit")

	var lines []string
	reader.SetPrompt("algoc> ")

	for {
		line, err := reader.ReadCommand()
		if err != nil {
			if err == io.EOF {
				fmt.Println()
				return
			}
			errLog.Printf("ERROR: %s", err)
			return
		}

		trimmed := strings.TrimSpace(line)
		if len(lines) == 0 && (trimmed == "quitter" || trimmed == "exit") {
			return
		}

		if trimmed == "" {
			if len(lines) == 0 {
				continue
			}
			runFragment(sess, lines)
			lines = nil
			reader.SetPrompt("algoc> ")
			continue
		}

		lines = append(lines, line)
		reader.SetPrompt("....> ")
	}
}

func runFragment(sess *session.Session, lines []string) {
	text := "Algorithme Fragment\nVariables:\nInstructions:\n" + strings.Join(lines, "\n") + "\nFinAlgo\n"
	result := sess.CompileText("<fragment>", text)

	if !result.Clean() {
		for _, d := range result.Diagnostics {
			errLog.Print(d)
		}
		return
	}
	errLog.Print(result.Emitted)
}
