package compiler

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
)

//go:embed presets/presets.cue
var presetsCUE []byte

// PresetsSource returns the embedded preset CUE source.
func PresetsSource() []byte {
	return presetsCUE
}

// LoadPresets compiles the built-in presets.
func LoadPresets() (*Registry, error) {
	v := presetsValue(cuecontext.New())
	reg, errs := Compile(v)
	if len(errs) > 0 {
		return nil, fmt.Errorf("compile presets: %w", errs[0])
	}
	return reg, nil
}

func presetsValue(ctx *cue.Context) cue.Value {
	return ctx.CompileBytes(presetsCUE, cue.Filename("presets.cue"))
}

// LoadResult describes a loaded experiments directory.
type LoadResult struct {
	Registry  *Registry
	Value     cue.Value // presets unified with the directory's CUE
	FileCount int
}

// LoadDir loads every .cue file in dir, unifies it with the presets and
// compiles the result. User files may add catalogs, weight tables,
// utilities and experiments; redefining a preset with a different value is
// a CUE conflict.
//
// An empty dir loads the presets alone. All errors found are returned.
func LoadDir(dir string) (*LoadResult, []error) {
	ctx := cuecontext.New()
	value := presetsValue(ctx)
	result := &LoadResult{}

	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, []error{fmt.Errorf("experiments directory: %w", err)}
		}
		if !info.IsDir() {
			return nil, []error{fmt.Errorf("not a directory: %s", dir)}
		}

		files, err := FindCUEFiles(dir)
		if err != nil {
			return nil, []error{fmt.Errorf("scan %s: %w", dir, err)}
		}
		result.FileCount = len(files)

		if len(files) > 0 {
			instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
			if len(instances) == 0 {
				return nil, []error{fmt.Errorf("no CUE instances loaded from %s", dir)}
			}
			inst := instances[0]
			if inst.Err != nil {
				return nil, []error{formatCUEError("load", inst.Err)}
			}
			user := ctx.BuildInstance(inst)
			if err := user.Err(); err != nil {
				return nil, []error{formatCUEError("build", err)}
			}
			value = value.Unify(user)
		}
	}

	result.Value = value
	reg, errs := Compile(value)
	result.Registry = reg
	return result, errs
}

// FindCUEFiles returns the .cue files directly inside dir.
func FindCUEFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".cue" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}
