// Package novarel is the top-level facade for the relational algebra
// query engine.
package novarel

import (
	"github.com/tuannm99/novarel/internal/engine"
	"github.com/tuannm99/novarel/internal/query/interpreter"
	"github.com/tuannm99/novarel/internal/relation"
)

type (
	Session  = engine.Session
	Option   = engine.Option
	Result   = interpreter.Result
	Relation = relation.Relation
	Catalog  = interpreter.MapCatalog
)

var (
	NewSession = engine.NewSession
	WithLogger = engine.WithLogger
)

// Run parses and evaluates src against catalog without keeping state.
func Run(src string, catalog Catalog) (*Result, error) {
	return engine.Run(src, catalog)
}
