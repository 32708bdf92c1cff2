package gocalc

import (
	"errors"
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
	"go.uber.org/zap"
)

// ErrNoSource is returned by LoadScript for a directory without Go files.
var ErrNoSource = errors.New("no Go source files")

// scriptImports lists the packages a scripted plugin may import.
// Filesystem, process and network packages are deliberately absent.
var scriptImports = map[string]bool{
	"errors":        true,
	"fmt":           true,
	"math":          true,
	"math/big":      true,
	"sort":          true,
	"strconv":       true,
	"strings":       true,
	"unicode":       true,
	"unicode/utf8":  true,
	"encoding/json": true,
	"time":          true,
}

// ScriptCommand is a plugin interpreted from Go source. The source must
// declare package main and define:
//
//	func Execute(args []string) (string, error)
type ScriptCommand struct {
	Name string
	Path string
	run  func([]string) (string, error)
}

func (c *ScriptCommand) Execute(env *Env, args ...string) error {
	out, err := c.call(args)
	if err != nil {
		env.Log().Error("script plugin failed", zap.String("command", c.Name), zap.Error(err))
		return fmt.Errorf("%s: %w", c.Name, err)
	}
	env.Log().Info("script plugin executed", zap.String("command", c.Name), zap.Strings("args", args))
	if out == "" {
		return nil
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err = fmt.Fprint(env.Out(), out)
	return err
}

// call runs the interpreted Execute. A panic in plugin code is returned
// as an error so the REPL keeps running.
func (c *ScriptCommand) call(args []string) (out string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("plugin panicked: %v", p)
		}
	}()
	return c.run(args)
}

// LoadScript interprets every non-test .go file in dir and returns the
// resulting command, named after the directory. The files are merged into
// a single source so declarations may refer to each other across files.
func LoadScript(dir string) (*ScriptCommand, error) {
	files, err := scriptFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoSource
	}

	src, err := mergeScript(files)
	if err != nil {
		return nil, err
	}

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("failed to load stdlib: %w", err)
	}
	if _, err := i.Eval(src); err != nil {
		return nil, fmt.Errorf("code evaluation failed: %w", err)
	}

	v, err := i.Eval("main.Execute")
	if err != nil {
		return nil, fmt.Errorf("function Execute not found: %w", err)
	}
	run, ok := v.Interface().(func([]string) (string, error))
	if !ok {
		return nil, errors.New("function Execute has incorrect signature (expected: func([]string) (string, error))")
	}

	return &ScriptCommand{
		Name: filepath.Base(dir),
		Path: dir,
		run:  run,
	}, nil
}

func scriptFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

// mergeScript checks each file and joins their imports and top-level
// declarations into one package main source.
func mergeScript(files []string) (string, error) {
	fset := token.NewFileSet()
	var (
		imports []string
		seen    = make(map[string]bool)
		decls   []string
	)

	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		f, err := goparser.ParseFile(fset, file, src, 0)
		if err != nil {
			return "", err
		}
		if err := validateScript(f); err != nil {
			return "", fmt.Errorf("%s: %w", filepath.Base(file), err)
		}

		for _, imp := range f.Imports {
			spec := imp.Path.Value
			if imp.Name != nil {
				spec = imp.Name.Name + " " + spec
			}
			if !seen[spec] {
				seen[spec] = true
				imports = append(imports, spec)
			}
		}
		for _, decl := range f.Decls {
			if gen, ok := decl.(*ast.GenDecl); ok && gen.Tok == token.IMPORT {
				continue
			}
			start := fset.Position(decl.Pos()).Offset
			end := fset.Position(decl.End()).Offset
			decls = append(decls, string(src[start:end]))
		}
	}

	var sb strings.Builder
	sb.WriteString("package main\n\n")
	if len(imports) > 0 {
		sb.WriteString("import (\n")
		for _, spec := range imports {
			sb.WriteString("\t" + spec + "\n")
		}
		sb.WriteString(")\n")
	}
	for _, decl := range decls {
		sb.WriteString("\n" + decl + "\n")
	}
	return sb.String(), nil
}

// validateScript checks the package clause and the import allowlist.
func validateScript(f *ast.File) error {
	if f.Name.Name != "main" {
		return fmt.Errorf("package %s, want main", f.Name.Name)
	}

	var forbidden []string
	for _, imp := range f.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			return err
		}
		if !scriptImports[path] {
			forbidden = append(forbidden, path)
		}
	}
	if len(forbidden) > 0 {
		return fmt.Errorf("forbidden imports detected: %v", forbidden)
	}
	return nil
}
