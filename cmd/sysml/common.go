package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sysml-tools/sysml-engine/engine"
	"github.com/sysml-tools/sysml-engine/internal/ids"
)

// loadWorkspace inserts every ".sysml"/".kerml" file under root into a
// fresh Engine, in directory-walk order, and returns the FileId each
// path was assigned.
func loadWorkspace(root string, stdlibActive bool) (*engine.Engine, map[string]ids.FileId, error) {
	e := engine.New(engine.Config{WorkspaceRoot: root, StdlibActive: stdlibActive})
	fileIDs := make(map[string]ids.FileId)

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".sysml") && !strings.HasSuffix(path, ".kerml") {
			return nil
		}
		text, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		fileIDs[path] = e.InsertFile(path, string(text))
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return e, fileIDs, nil
}

// singleFileWorkspace inserts exactly one file, for commands that take a
// single path argument rather than a directory.
func singleFileWorkspace(path string, stdlibActive bool) (*engine.Engine, ids.FileId, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	e := engine.New(engine.Config{StdlibActive: stdlibActive})
	return e, e.InsertFile(path, string(text)), nil
}
