package norm

import (
	"sort"
	"strconv"
	"strings"

	"github.com/huangsam/thermolog/schema"
)

// keyIndex resolves raw keys regardless of case, surrounding whitespace
// and, as a fallback, accents.
type keyIndex struct {
	exact  map[string]any
	folded map[string]any
}

// newKeyIndex builds the lookup tables for one raw row. When two raw keys
// collapse to the same index key, the first one carrying a value wins, in
// sorted key order so the result does not depend on map iteration.
func newKeyIndex(raw schema.RawRecord) keyIndex {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	idx := keyIndex{
		exact:  make(map[string]any, len(raw)),
		folded: make(map[string]any, len(raw)),
	}
	for _, k := range keys {
		v := raw[k]
		put(idx.exact, strings.ToLower(strings.TrimSpace(k)), v)
		put(idx.folded, schema.FoldAccents(k), v)
	}
	return idx
}

func put(m map[string]any, key string, v any) {
	if cur, ok := m[key]; ok && present(cur) {
		return
	}
	m[key] = v
}

// present reports whether a raw value carries anything usable.
func present(v any) bool {
	switch s := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(s) != ""
	default:
		return true
	}
}

// first returns the value of the first alias present in the row. Exact
// (lower-cased) keys are tried for every alias before accent folding.
func (idx keyIndex) first(names ...string) any {
	for _, name := range names {
		if v, ok := idx.exact[name]; ok && present(v) {
			return v
		}
	}
	for _, name := range names {
		if v, ok := idx.folded[schema.FoldAccents(name)]; ok && present(v) {
			return v
		}
	}
	return nil
}

// lookup resolves a logical field, including the canonical fallbacks for
// the given kind.
func (idx keyIndex) lookup(key logicalKey, kind schema.Kind) any {
	names := aliases[key]
	if extra, ok := canonicalAliases[kind == schema.HumidityKind][key]; ok {
		names = append(append([]string{}, names...), extra...)
	}
	return idx.first(names...)
}

// text renders a raw scalar as trimmed display text.
func text(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		if f := ParseNumber(v); f != nil {
			return strconv.FormatFloat(*f, 'f', -1, 64)
		}
		return ""
	}
}

// Normalize maps one raw row onto the canonical record shape. It never
// fails: unresolvable fields stay empty or nil, and rows without a usable
// date are still returned so that filtering can exclude them later.
func Normalize(id int, raw schema.RawRecord) schema.Record {
	idx := newKeyIndex(raw)

	kindText := strings.ToLower(text(idx.first(aliases[kindKey]...)))
	if kindText == "" {
		kindText = "temperatura"
	}
	kind := schema.ParseKind(kindText)

	current := ParseNumber(idx.lookup(currentKey, kind))
	minimum := ParseNumber(idx.lookup(minKey, kind))
	maximum := ParseNumber(idx.lookup(maxKey, kind))

	rec := schema.Record{
		ID:         id,
		Date:       text(idx.first(aliases[dateKey]...)),
		Time:       text(idx.first(aliases[timeKey]...)),
		Shift:      schema.ParseShift(text(idx.first(aliases[shiftKey]...))),
		Zone:       text(idx.first(aliases[zoneKey]...)),
		RecordedBy: text(idx.first(aliases[operatorKey]...)),
		Notes:      text(idx.first(aliases[notesKey]...)),
		Kind:       kind,
	}
	if rec.Shift == schema.ShiftAll {
		rec.Shift = schema.NoShift
	}

	switch kind {
	case schema.HumidityKind:
		rec.HumMin, rec.HumCurrent, rec.HumMax = minimum, current, maximum
	default:
		rec.TempMin, rec.TempCurrent, rec.TempMax = minimum, current, maximum
	}
	return rec
}

// NormalizeAll normalizes a fetched batch. IDs follow ingestion order and
// are only stable within one fetch.
func NormalizeAll(rows []schema.RawRecord) []schema.Record {
	records := make([]schema.Record, 0, len(rows))
	for i, raw := range rows {
		records = append(records, Normalize(i, raw))
	}
	return records
}
