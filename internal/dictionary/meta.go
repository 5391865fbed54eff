package dictionary

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// CurrentFormatMajor is the format-version major rusmorph understands.
// Loading a bundle whose meta.json declares a different major is a
// configuration error (spec §7); a differing minor is tolerated.
const CurrentFormatMajor = 3

// Meta is the parsed contents of a dictionary bundle's meta.json.
type Meta struct {
	FormatMajor, FormatMinor int
	LanguageCode             string // empty means "not declared"
	GramtabFormats           map[string]string
	ParadigmPrefixes         []string
	HasProb                  bool
}

// parseMeta decodes meta.json, which is a JSON array of [key, value]
// pairs rather than a plain object (spec §6), so that the format can
// carry duplicate or order-sensitive keys the way the original tool
// emits them.
func parseMeta(data []byte) (Meta, error) {
	var pairs []json.RawMessage
	if err := json.Unmarshal(data, &pairs); err != nil {
		return Meta{}, fmt.Errorf("%w: meta.json is not a JSON array: %v", ErrCorruptDictionary, err)
	}

	raw := make(map[string]json.RawMessage, len(pairs))
	for _, p := range pairs {
		var pair [2]json.RawMessage
		if err := json.Unmarshal(p, &pair); err != nil {
			return Meta{}, fmt.Errorf("%w: malformed meta.json entry: %v", ErrCorruptDictionary, err)
		}
		var key string
		if err := json.Unmarshal(pair[0], &key); err != nil {
			return Meta{}, fmt.Errorf("%w: meta.json key is not a string: %v", ErrCorruptDictionary, err)
		}
		raw[key] = pair[1]
	}

	m := Meta{}

	var versionStr string
	if v, ok := raw["format_version"]; ok {
		_ = json.Unmarshal(v, &versionStr)
	}
	major, minor, err := parseVersion(versionStr)
	if err != nil {
		return Meta{}, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	m.FormatMajor, m.FormatMinor = major, minor
	if major != CurrentFormatMajor {
		return Meta{}, fmt.Errorf("%w: dictionary format %d.%d is incompatible with supported major %d",
			ErrConfiguration, major, minor, CurrentFormatMajor)
	}

	if v, ok := raw["language_code"]; ok {
		_ = json.Unmarshal(v, &m.LanguageCode)
	}

	if v, ok := raw["gramtab_formats"]; ok {
		_ = json.Unmarshal(v, &m.GramtabFormats)
	}
	if m.GramtabFormats == nil {
		m.GramtabFormats = map[string]string{}
	}

	if v, ok := raw["compile_options"]; ok {
		var opts map[string]json.RawMessage
		if err := json.Unmarshal(v, &opts); err == nil {
			if pp, ok := opts["paradigm_prefixes"]; ok {
				_ = json.Unmarshal(pp, &m.ParadigmPrefixes)
			}
		}
	}
	if len(m.ParadigmPrefixes) == 0 {
		m.ParadigmPrefixes = []string{""}
	}

	if v, ok := raw["P(t|w)"]; ok {
		_ = json.Unmarshal(v, &m.HasProb)
	}

	return m, nil
}

func parseVersion(s string) (major, minor int, err error) {
	parts := strings.SplitN(s, ".", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed format_version %q", s)
	}
	major, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed format_version %q", s)
	}
	minor, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed format_version %q", s)
	}
	return major, minor, nil
}
