package codec

import "strings"

// SnakeToCamel translates a wire key into its camelCase property name,
// e.g. "hyper_stat_preset_1_remain_point" -> "hyperStatPreset1RemainPoint".
func SnakeToCamel(key string) string {
	parts := strings.Split(key, "_")
	var b strings.Builder
	b.Grow(len(key))
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i == 0 || b.Len() == 0 {
			b.WriteString(p)
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// FieldMapping is one row of the wire-key table, exposed for auditing.
type FieldMapping struct {
	WireKey  string
	Property string
	Override bool
	Required bool
}
