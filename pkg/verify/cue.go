// pkg/verify/cue.go

package verify

import (
	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/encoding/yaml"
	cerr "github.com/cockroachdb/errors"
)

// ValidateYAMLWithCUE checks YAML data against the definition named by
// definition (for example "#Seed") in the CUE source schemaSrc.
// An empty definition unifies the data with the whole schema.
func ValidateYAMLWithCUE(schemaSrc, definition, filename string, data []byte) error {
	// A cue.Context is not safe for concurrent use.
	cueCtx := cuecontext.New()

	schema := cueCtx.CompileString(schemaSrc, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return cerr.Wrap(err, "build cue schema")
	}
	if definition != "" {
		schema = schema.LookupPath(cue.ParsePath(definition))
		if !schema.Exists() {
			return cerr.Newf("cue schema has no definition %s", definition)
		}
	}

	file, err := yaml.Extract(filename, data)
	if err != nil {
		return cerr.Wrap(err, "parse yaml")
	}
	input := cueCtx.BuildFile(file)
	if err := input.Err(); err != nil {
		return cerr.Wrap(err, "build cue from yaml")
	}

	if err := schema.Unify(input).Validate(cue.Concrete(true)); err != nil {
		return cerr.Wrap(err, "cue validation failed")
	}
	return nil
}
