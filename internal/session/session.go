// Package session ties the source buffer, lexer, parser, analyzer and
// emitter together into one compile, the single entry point both driver
// binaries (cmd/algocc, cmd/algocsh) call.
package session

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dekarrin/algoc/internal/config"
	"github.com/dekarrin/algoc/internal/diag"
	"github.com/dekarrin/algoc/internal/emit"
	"github.com/dekarrin/algoc/internal/lexer"
	"github.com/dekarrin/algoc/internal/parser"
	"github.com/dekarrin/algoc/internal/sema"
	"github.com/dekarrin/algoc/internal/source"
)

// Result is everything one compile produces: the correlation id, the
// full diagnostic stream (in rendered form, ready to print), and —
// only when the sink came back empty — the emitted source text.
type Result struct {
	CorrelationID uuid.UUID
	Diagnostics   []string
	Emitted       string
	FromCache     bool
}

// Clean reports whether the compile produced no diagnostics at all.
func (r *Result) Clean() bool {
	return len(r.Diagnostics) == 0
}

// Session holds the configuration and emitter a driver binary compiles
// with; it is safe to reuse across multiple Compile calls.
type Session struct {
	Config  config.Config
	Emitter emit.Target
}

// New builds a Session with the given configuration and the reference C
// emitter.
func New(cfg config.Config) *Session {
	return &Session{Config: cfg, Emitter: emit.NewCEmitter()}
}

// Compile reads path, pads a missing trailing newline so the lexer always
// sees one, and runs the full lex/parse/analyze/emit pipeline.
// When cfg.Cache.Enabled and an up-to-date .algocache sidecar exists for
// the file's content, the cached result is returned without re-running
// analysis or emission.
func (s *Session) Compile(path string) (*Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("session: read %s: %w", path, err)
	}

	text := string(raw)
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	hash := contentHash(text)
	cachePath := cacheSidecarPath(path, s.Config)

	if s.Config.Cache.Enabled {
		if cached, ok := loadCache(cachePath, hash); ok {
			id, err := uuid.Parse(cached.CorrelationID)
			if err != nil {
				id = uuid.New()
			}
			return &Result{
				CorrelationID: id,
				Diagnostics:   cached.Diagnostics,
				Emitted:       cached.Emitted,
				FromCache:     true,
			}, nil
		}
	}

	result := s.compileText(path, text)

	if s.Config.Cache.Enabled {
		_ = saveCache(cachePath, cacheRecord{
			ContentHash:   hash,
			CorrelationID: result.CorrelationID.String(),
			Diagnostics:   result.Diagnostics,
			Emitted:       result.Emitted,
		})
	}

	return result, nil
}

// CompileText runs the pipeline fresh on in-memory text, bypassing the
// cache entirely. cmd/algocsh uses this directly to compile ephemeral
// fragments that are never worth caching.
func (s *Session) CompileText(name, text string) *Result {
	return s.compileText(name, text)
}

// compileText is the shared implementation behind Compile and CompileText.
func (s *Session) compileText(name, text string) *Result {
	id := uuid.New()

	buf := source.New(name, text)
	sink := diag.NewSink()

	lx := lexer.New(buf, sink)
	toks, ok := lx.Lex()
	if !ok {
		return &Result{CorrelationID: id, Diagnostics: renderAll(sink, buf)}
	}

	prog := parser.Parse(toks, sink)
	vars := sema.Analyze(prog, sink, s.Config)

	if !sink.Empty() {
		return &Result{CorrelationID: id, Diagnostics: renderAll(sink, buf)}
	}

	out, err := s.Emitter.EmitProgram(prog, vars)
	if err != nil {
		return &Result{CorrelationID: id, Diagnostics: []string{fmt.Sprintf("erreur d'émission : %v", err)}}
	}

	return &Result{CorrelationID: id, Emitted: out}
}

func renderAll(sink *diag.Sink, buf *source.Buffer) []string {
	out := make([]string, 0, sink.Len())
	for _, d := range sink.All() {
		out = append(out, d.Render(buf))
	}
	return out
}

func contentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func cacheSidecarPath(path string, cfg config.Config) string {
	dir := cfg.Cache.Dir
	if dir == "" {
		dir = ".algocache"
	}
	base := filepath.Base(path)
	return filepath.Join(filepath.Dir(path), dir, base+".algocache")
}
