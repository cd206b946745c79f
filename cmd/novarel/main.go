package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/tuannm99/novarel/internal"
	"github.com/tuannm99/novarel/internal/catalog"
	"github.com/tuannm99/novarel/internal/engine"
	"github.com/tuannm99/novarel/internal/relation"
)

func main() {
	var (
		cfgPath  = flag.String("config", "", "config file path (YAML)")
		catPath  = flag.String("catalog", "", "catalog file path, overrides catalog.path")
		oneShot  = flag.String("c", "", "execute one program and exit")
		progFile = flag.String("f", "", "execute a program file and exit")
		histPath = flag.String("history", "", "history file path, overrides repl.history_file")
		histMax  = flag.Int("history-max", 0, "max history lines loaded into memory, overrides repl.history_max")
	)
	flag.Parse()

	cfg, err := internal.LoadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	slog.SetDefault(logger)

	if *catPath != "" {
		cfg.Catalog.Path = *catPath
	}
	if *histPath != "" {
		cfg.Repl.HistoryFile = *histPath
	}
	if *histMax > 0 {
		cfg.Repl.HistoryMax = *histMax
	}

	var rels map[string]*relation.Relation
	if cfg.Catalog.Path != "" {
		rels, err = catalog.Load(cfg.Catalog.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "catalog: %v\n", err)
			os.Exit(1)
		}
		slog.Debug("catalog loaded", "path", cfg.Catalog.Path, "relations", len(rels))
	}

	sh := &shell{
		sess:       engine.NewSession(rels, engine.WithLogger(logger)),
		hist:       NewHistory(cfg.Repl.HistoryFile, cfg.Repl.HistoryMax),
		out:        os.Stdout,
		nullMarker: cfg.Display.NullMarker,
	}

	// one-shot mode
	src := *oneShot
	if *progFile != "" {
		data, err := os.ReadFile(*progFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read program: %v\n", err)
			os.Exit(1)
		}
		src = string(data)
	}
	if strings.TrimSpace(src) != "" {
		if err := sh.exec(src); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := repl(sh, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "readline: %v\n", err)
		os.Exit(1)
	}
}

func repl(sh *shell, cfg *internal.NovaRelConfig) error {
	if err := sh.hist.Load(); err != nil {
		slog.Warn("history: load failed", "path", cfg.Repl.HistoryFile, "err", err)
	}

	prompt := cfg.Repl.Prompt
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer func() { _ = rl.Close() }()

	for _, line := range sh.hist.Lines() {
		_ = rl.SaveHistory(line)
	}

	fmt.Printf("%s: %d relations loaded\n", cfg.AppName, len(sh.sess.Relations()))
	fmt.Println(`type \help for help`)

	var buf strings.Builder
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			// Ctrl+C clears the pending program
			if buf.Len() > 0 {
				buf.Reset()
				rl.SetPrompt(prompt)
				continue
			}
			fmt.Println("^C")
			continue
		}
		if err != nil {
			fmt.Println()
			return nil
		}

		if buf.Len() == 0 {
			if strings.TrimSpace(line) == "" {
				continue
			}
			if isMetaCommand(line) {
				if sh.meta(line) {
					return nil
				}
				continue
			}
		} else {
			buf.WriteByte('\n')
		}
		buf.WriteString(line)

		if !statementComplete(buf.String()) {
			rl.SetPrompt("...> ")
			continue
		}

		src := buf.String()
		buf.Reset()
		rl.SetPrompt(prompt)

		if err := sh.hist.Append(src); err != nil {
			slog.Warn("history: append failed", "err", err)
		}
		_ = rl.SaveHistory(compactOneLine(src))

		if err := sh.exec(src); err != nil {
			fmt.Printf("error: %v\n", err)
		}
	}
}
