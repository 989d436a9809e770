package assistant

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/xeipuuv/gojsonschema"
)

const fence = "```"

type envelope struct {
	Intent       string          `json:"intent"`
	Data         json.RawMessage `json:"data"`
	ResponseText string          `json:"response_text"`
}

// Parse classifies a raw model response. It never fails: anything that is not
// a valid structured payload becomes a Chat intent carrying the raw text.
func Parse(raw string) Intent {
	text := StripWrappers(raw)

	var env envelope
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		return Chat{Response: raw, Malformed: looksStructured(text)}
	}

	kind := Kind(strings.TrimSpace(env.Intent))
	switch kind {
	case KindChat:
		if strings.TrimSpace(env.ResponseText) == "" {
			return Chat{Response: raw, Malformed: true}
		}
		return Chat{Response: env.ResponseText}
	case KindCreateTask:
		var in CreateTask
		if !decodeData(kind, env.Data, &in) {
			return Chat{Response: raw, Malformed: true}
		}
		in.ResponseText = env.ResponseText
		return in
	case KindCreateProject:
		var in CreateProject
		if !decodeData(kind, env.Data, &in) {
			return Chat{Response: raw, Malformed: true}
		}
		in.ResponseText = env.ResponseText
		return in
	case KindCreateClient:
		var in CreateClient
		if !decodeData(kind, env.Data, &in) {
			return Chat{Response: raw, Malformed: true}
		}
		in.ResponseText = env.ResponseText
		return in
	default:
		if strings.TrimSpace(env.ResponseText) != "" {
			return Chat{Response: env.ResponseText}
		}
		return Chat{Response: raw, Malformed: true}
	}
}

// decodeData validates data against the kind's schema and decodes the known
// fields into dst. Keys must match a field tag exactly; anything else,
// including case variants of known keys, is dropped.
func decodeData(kind Kind, data json.RawMessage, dst any) bool {
	schema := getDataSchema(kind)
	if schema == nil {
		return false
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		data = []byte("{}")
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil || !result.Valid() {
		return false
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return false
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:   "json",
		MatchName: func(key, field string) bool { return key == field },
		Result:    dst,
	})
	if err != nil {
		return false
	}
	return dec.Decode(fields) == nil
}

// StripWrappers removes any number of code-fence wrappers and surrounding
// whitespace from a model response.
func StripWrappers(s string) string {
	s = strings.TrimSpace(s)
	for {
		next := s
		if strings.HasPrefix(next, fence) {
			next = dropLanguageTag(strings.TrimLeft(next, "`"))
		}
		if strings.HasSuffix(next, fence) {
			next = strings.TrimRight(next, "`")
		}
		next = strings.TrimSpace(next)
		if next == s {
			return s
		}
		s = next
	}
}

// dropLanguageTag removes a fence info string such as "json" when it is
// directly followed by a line break or the payload itself.
func dropLanguageTag(s string) string {
	i := 0
	for i < len(s) && isTagByte(s[i]) {
		i++
	}
	if i == 0 || i == len(s) {
		return s
	}
	switch s[i] {
	case '\n', '\r', ' ', '\t', '{', '`':
		return s[i:]
	}
	return s
}

func isTagByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '-'
}

func looksStructured(stripped string) bool {
	return strings.HasPrefix(stripped, "{")
}
