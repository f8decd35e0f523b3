// File: lixenwraith/conftree/doc.go

// Package conftree provides an immutable, strictly typed, hierarchical
// configuration store with dotted key paths and a command-line flag
// resolver that maps --flag arguments onto that store.
//
// Features:
//   - Flat and nested views of the same configuration, always in sync
//   - Copy-on-write updates: every change yields a new Config
//   - Strict type preservation: overrides are coerced to the existing type
//   - Regex pattern keys for bulk lookups and updates
//   - Flag syntax: --key value, --key=value, --key v1 v2, --key+ (append),
//     comma-separated tuple values, regex fan-out
//   - JSON, YAML, and TOML persistence with atomic writes
//   - Struct defaults in and struct decoding out via the `conf` tag
//
// Quick Start:
//
//	defaults := map[string]any{
//	    "task":  "walk",
//	    "seeds": []int{1, 2},
//	    "net": map[string]any{
//	        "depth": 4,
//	        "width": 32,
//	    },
//	}
//
//	cfg, err := conftree.NewBuilder().
//	    WithDefaults(defaults).
//	    WithArgs(os.Args[1:]).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	depth, _ := cfg.Int64("net.depth")
//	seeds, _ := cfg.Ints("seeds")
//
// Running the program with:
//
//	--task run --seeds+ 3 4 --net.depth=8 --net\..* 16
//
// overrides task, appends to seeds, and fans the value 16 out over every
// key matching the net\..* pattern, each coerced to its prior type.
//
// Config values are immutable after construction, so instances are freely
// shareable across goroutines without synchronization. Parsing is a
// bounded, synchronous startup operation; all errors abort resolution and
// carry the offending key and expected type.
package conftree
