package norm

// logicalKey names a field of the canonical record as it may appear in raw rows.
type logicalKey int

const (
	kindKey logicalKey = iota
	dateKey
	timeKey
	shiftKey
	zoneKey
	operatorKey
	notesKey
	currentKey
	minKey
	maxKey
)

// aliases lists, per logical field and in priority order, the lower-cased
// raw keys the field has been stored under. The mis-encoded entries are
// UTF-8 "mínima"/"máxima" read back as Latin-1 and then lower-cased.
var aliases = map[logicalKey][]string{
	kindKey:     {"tipo", "type", "kind"},
	dateKey:     {"fecha", "date"},
	timeKey:     {"hora registro", "hora", "time"},
	shiftKey:    {"jornada", "shift"},
	zoneKey:     {"area", "área", "zona", "zone"},
	operatorKey: {"responsable", "registradopor", "registrado por", "recordedby"},
	notesKey:    {"observaciones", "notes"},
	currentKey:  {"actual", "current"},
	minKey:      {"mínima", "minima", "min", "m\u00e3\u00adnima", "m\u00e3nima"},
	maxKey:      {"máxima", "maxima", "max", "m\u00e3\u00a1xima"},
}

// canonicalAliases are consulted after the generic aliases. They match
// rows that were written back in canonical form by this tool.
var canonicalAliases = map[bool]map[logicalKey][]string{
	// humidity
	true: {
		currentKey: {"humcurrent", "humactual"},
		minKey:     {"hummin"},
		maxKey:     {"hummax"},
	},
	// temperature
	false: {
		currentKey: {"tempcurrent", "tempactual"},
		minKey:     {"tempmin"},
		maxKey:     {"tempmax"},
	},
}
