package morph

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/steosofficial/rusmorph/internal/dictionary"
	"github.com/steosofficial/rusmorph/lang"
	"github.com/steosofficial/rusmorph/lang/ru"
)

// EnvDictPath is the environment variable that overrides dictionary
// bundle discovery, the direct generalization of the teacher's
// STEOSMORPHY_DICT_PATH single-file override to a directory.
const EnvDictPath = "RUSMORPH_DICT_PATH"

// Warner receives non-fatal diagnostics (spec §7 UsageWarning). The
// only condition reported is an unknown language code, for which
// dictionary discovery falls back to the "ru" bundle directory. A nil
// Warner silently drops diagnostics, mirroring a suppressed
// warnings.warn call.
type Warner func(msg string, args ...any)

func (w Warner) emit(msg string, args ...any) {
	if w != nil {
		w(msg, args...)
	}
}

// languageDirs maps a known language code to the dictionary bundle
// directory shipped next to this package, in the spirit of the
// teacher's runtime.Caller(0)-based package-relative lookup. Only "ru"
// is populated; Non-goals exclude shipping compiled dictionaries, so
// these directories are conventions for callers to populate, not
// bundled data.
var languageDirs = map[string]string{
	ru.Code: "dicts/ru",
}

type options struct {
	path     string
	language string
	warner   Warner
	profile  *lang.Profile
}

// Option configures New.
type Option func(*options)

// WithPath pins the dictionary bundle directory explicitly, taking
// precedence over both the environment variable and language-code
// discovery.
func WithPath(path string) Option { return func(o *options) { o.path = path } }

// WithLanguage selects a language code for dictionary discovery when no
// explicit path or environment variable is set. Defaults to "ru".
func WithLanguage(code string) Option { return func(o *options) { o.language = code } }

// WithWarner installs the diagnostic callback used for non-fatal
// conditions encountered during construction.
func WithWarner(w Warner) Option { return func(o *options) { o.warner = w } }

// WithProfile overrides the language profile (unit pipeline, character
// substitutions) used to build the analyzer, instead of the builtin
// profile for the resolved language code.
func WithProfile(p lang.Profile) Option { return func(o *options) { o.profile = &p } }

// resolveDictPath implements spec §6's Environment precedence: explicit
// path argument > RUSMORPH_DICT_PATH env var > language-code discovery.
func resolveDictPath(o *options) (string, error) {
	if o.path != "" {
		return o.path, nil
	}
	if p := os.Getenv(EnvDictPath); p != "" {
		return p, nil
	}

	code := o.language
	if code == "" {
		code = ru.Code
	}
	rel, ok := languageDirs[code]
	if !ok {
		o.warner.emit("unknown language code %q, falling back to %q", code, ru.Code)
		rel = languageDirs[ru.Code]
	}

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("%w: could not determine rusmorph package directory", dictionary.ErrConfiguration)
	}
	return filepath.Join(filepath.Dir(thisFile), rel), nil
}

// resolveProfile picks the configured or language-default unit
// pipeline.
func resolveProfile(o *options) lang.Profile {
	if o.profile != nil {
		return *o.profile
	}
	return ru.Profile()
}
