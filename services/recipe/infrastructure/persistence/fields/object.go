// Package fields decodes loosely typed JSON objects written by other clients:
// numbers that arrive as strings, lists that arrive as comma-joined text.
package fields

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ghuser/recipelog/services/recipe/domain/models"
)

// Object is one stored record. Unknown keys survive a decode/encode cycle.
type Object map[string]json.RawMessage

// ID reads key as a string or a number; ok is false when it is absent or empty.
func (o Object) ID(key string) (models.RecipeID, bool) {
	raw := bytes.TrimSpace(o[key])
	if len(raw) == 0 {
		return "", false
	}
	if raw[0] == '"' {
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return "", false
		}
		id := models.ParseRecipeID(s)
		return id, !id.IsZero()
	}
	var n json.Number
	if json.Unmarshal(raw, &n) != nil || n == "" {
		return "", false
	}
	if i, err := n.Int64(); err == nil {
		return models.RecipeID(strconv.FormatInt(i, 10)), true
	}
	return models.RecipeID(n.String()), true
}

// String reads key as text. Numbers are rendered in their JSON form; anything
// else reads as empty.
func (o Object) String(key string) string {
	raw := bytes.TrimSpace(o[key])
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var n json.Number
	if json.Unmarshal(raw, &n) == nil {
		return n.String()
	}
	return ""
}

// Rating reads key as a number or numeric string and clamps it.
func (o Object) Rating(key string) models.Rating {
	raw, ok := o[key]
	if !ok {
		return 0
	}
	var f float64
	if json.Unmarshal(raw, &f) == nil {
		return models.ClampRating(int(math.Max(0, math.Min(float64(models.MaxRating), f))))
	}
	if v, err := strconv.Atoi(strings.TrimSpace(o.String(key))); err == nil {
		return models.ClampRating(v)
	}
	return 0
}

// Ingredients reads key as a string array or a comma-separated string.
func (o Object) Ingredients(key string) models.Ingredients {
	raw, ok := o[key]
	if !ok {
		return models.Ingredients{}
	}
	var list []string
	if json.Unmarshal(raw, &list) == nil {
		return models.Ingredients(list).Normalize()
	}
	return models.ParseIngredients(o.String(key))
}

// Time reads key as an RFC 3339 timestamp; zero when absent or unparseable.
func (o Object) Time(key string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, o.String(key))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Set stores v under key.
func (o Object) Set(key string, v any) {
	o[key] = Marshal(v)
}

// NumericOrString encodes an ID as a JSON number when it is an integer.
func NumericOrString(id models.RecipeID) json.RawMessage {
	if _, err := strconv.ParseInt(id.String(), 10, 64); err == nil {
		return json.RawMessage(id.String())
	}
	return Marshal(id.String())
}

// Encode is json.Marshal without HTML escaping, so stored text keeps its
// literal <, > and &.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Marshal is only used with strings, ints and string slices, which always encode.
func Marshal(v any) json.RawMessage {
	b, err := Encode(v)
	if err != nil {
		panic(err)
	}
	return b
}
