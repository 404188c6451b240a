// Package debug holds environment controlled diagnostics.
//
// Each flag is read once at startup from a KNOT_DEBUG_* variable holding
// a value accepted by strconv.ParseBool.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse bool
	Path  bool
	Diff  bool
	Apply bool
	Load  bool
	Query bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("KNOT_DEBUG_PARSE")
	d.Path = boolEnv("KNOT_DEBUG_PATH")
	d.Diff = boolEnv("KNOT_DEBUG_DIFF")
	d.Apply = boolEnv("KNOT_DEBUG_APPLY")
	d.Load = boolEnv("KNOT_DEBUG_LOAD")
	d.Query = boolEnv("KNOT_DEBUG_QUERY")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Path() bool {
	return d.Path
}
func Diff() bool {
	return d.Diff
}
func Apply() bool {
	return d.Apply
}
func Load() bool {
	return d.Load
}
func Query() bool {
	return d.Query
}
