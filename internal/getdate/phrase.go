package getdate

// matcher runs the phrase rules over a token buffer. Every rule either
// consumes a fixed-shape prefix at pos and updates st, or leaves both
// untouched and reports false.
type matcher struct {
	tokens []Token
	pos    int
	st     *state
}

// at returns the token i places past the cursor; past the end it is EOF.
func (m *matcher) at(i int) Token {
	if m.pos+i < len(m.tokens) {
		return m.tokens[m.pos+i]
	}
	return Token{Kind: KindEOF}
}

func (m *matcher) is(i int, k Kind) bool { return m.at(i).Kind == k }

func (m *matcher) isOp(i int, op rune) bool {
	t := m.at(i)
	return t.Kind == KindOperator && rune(t.Value) == op
}

func (m *matcher) value(i int) int64 { return m.at(i).Value }

// isNumSep reports whether the window looks like N<sep>N, or
// N<sep>N<sep>N when triple is set.
func (m *matcher) isNumSep(sep rune, triple bool) bool {
	if !m.is(0, KindNumber) || !m.isOp(1, sep) || !m.is(2, KindNumber) {
		return false
	}
	return !triple || (m.isOp(3, sep) && m.is(4, KindNumber))
}

// phrase tries each rule in priority order at the cursor.
func (m *matcher) phrase() bool {
	rules := [...]func() bool{
		m.timePhrase,
		m.zonePhrase,
		m.datePhrase,
		m.dayPhrase,
		m.relativePhrase,
		m.numberPhrase,
	}
	for _, rule := range rules {
		if rule() {
			return true
		}
	}
	return false
}

// bareTimePhrase matches "H:M:S" and "H:M".
func (m *matcher) bareTimePhrase() bool {
	st := m.st
	switch {
	case m.isNumSep(':', true):
		st.haveTime++
		st.hour, st.minute, st.second = m.value(0), m.value(2), m.value(4)
		m.pos += 5
	case m.isNumSep(':', false):
		st.haveTime++
		st.hour, st.minute, st.second = m.value(0), m.value(2), 0
		m.pos += 3
	default:
		return false
	}
	return true
}

// timePhrase matches a clock time with an optional meridian or numeric
// zone ("7:12pm", "19:14:12-0530"), or a lone "7am".
func (m *matcher) timePhrase() bool {
	st := m.st
	if m.bareTimePhrase() {
		switch {
		case m.is(0, KindMeridian):
			st.hour = applyMeridian(st.hour, m.value(0))
			m.pos++
		case m.isOp(0, '+') && m.is(1, KindNumber):
			st.dst = dstOff
			st.timezone = -packedMinutes(m.value(1))
			m.pos += 2
		case m.isOp(0, '-') && m.is(1, KindNumber):
			st.dst = dstOff
			st.timezone = packedMinutes(m.value(1))
			m.pos += 2
		}
		return true
	}

	if m.is(0, KindNumber) && m.is(1, KindMeridian) {
		st.haveTime++
		st.hour = applyMeridian(m.value(0), m.value(1))
		st.minute, st.second = 0, 0
		m.pos += 2
		return true
	}
	return false
}

// applyMeridian folds 12 to 0 and shifts pm hours into the afternoon.
func applyMeridian(hour, meridian int64) int64 {
	if hour == 12 {
		hour = 0
	}
	if meridian == meridianPM {
		hour += 12
	}
	return hour
}

// packedMinutes turns HHMM into minutes.
func packedMinutes(hhmm int64) int64 {
	return hhmm%100 + (hhmm/100)*60
}

// zonePhrase matches "EST", "PST DST" and daylight zones like "EDT".
func (m *matcher) zonePhrase() bool {
	st := m.st
	zone := m.value(0)
	switch {
	case m.is(0, KindZone) && m.is(1, KindDST):
		st.dst = dstOn
		m.pos += 2
	case m.is(0, KindZone):
		st.dst = dstOff
		m.pos++
	case m.is(0, KindDaylightZone):
		st.dst = dstOn
		m.pos++
	default:
		return false
	}
	st.haveZone++
	st.timezone = zone
	return true
}

// datePhrase matches the numeric and month-name date forms.
func (m *matcher) datePhrase() bool {
	st := m.st
	switch {
	case m.isNumSep('/', true):
		a, b, c := m.value(0), m.value(2), m.value(4)
		if a >= 13 {
			// 2004/01/29, 99/02/17
			st.year, st.month, st.day = a, b, c
		} else {
			// 01/29/04, 01/07/98, and 02/03/04 for lack of clues
			st.month, st.day, st.year = a, b, c
		}
		m.pos += 5
	case m.isNumSep('/', false):
		st.month, st.day = m.value(0), m.value(2)
		m.pos += 3
	case m.isNumSep('-', true):
		st.year, st.month, st.day = m.value(0), m.value(2), m.value(4)
		m.pos += 5
	case m.is(0, KindNumber) && m.isOp(1, '-') && m.is(2, KindMonth) &&
		m.isOp(3, '-') && m.is(4, KindNumber):
		if m.value(0) > 31 {
			// 1992-Jun-17
			st.year, st.month, st.day = m.value(0), m.value(2), m.value(4)
		} else {
			// 17-JUN-1992
			st.day, st.month, st.year = m.value(0), m.value(2), m.value(4)
		}
		m.pos += 5
	case m.is(0, KindMonth) && m.is(1, KindNumber) && m.isOp(2, ',') && m.is(3, KindNumber):
		st.month, st.day, st.year = m.value(0), m.value(1), m.value(3)
		m.pos += 4
	case m.is(0, KindMonth) && m.is(1, KindNumber):
		st.month, st.day = m.value(0), m.value(1)
		m.pos += 2
	case m.is(0, KindNumber) && m.is(1, KindMonth) && m.is(2, KindNumber):
		st.day, st.month, st.year = m.value(0), m.value(1), m.value(2)
		m.pos += 3
	case m.is(0, KindNumber) && m.is(1, KindMonth):
		st.day, st.month = m.value(0), m.value(1)
		m.pos += 2
	default:
		return false
	}
	st.haveDate++
	return true
}

// dayPhrase matches "tues", "wednesday," and "3 wed".
func (m *matcher) dayPhrase() bool {
	st := m.st
	switch {
	case m.is(0, KindWeekday):
		st.dayOrdinal, st.dayNumber = 1, m.value(0)
		m.pos++
		if m.isOp(0, ',') {
			m.pos++
		}
	case m.is(0, KindNumber) && m.is(1, KindWeekday):
		st.dayOrdinal, st.dayNumber = m.value(0), m.value(1)
		m.pos += 2
	default:
		return false
	}
	st.haveDay++
	return true
}

// relativePhrase matches "-3 hours", "+1 minute", "2 years", and bare
// units such as "tomorrow" or "month". A trailing "ago" negates the
// relative offsets gathered so far.
func (m *matcher) relativePhrase() bool {
	st := m.st
	sign := int64(1)
	n := 0
	if m.isOp(0, '-') || m.isOp(0, '+') {
		if m.isOp(0, '-') {
			sign = -1
		}
		n = 1
	}

	switch {
	case m.is(n, KindNumber) && m.is(n+1, KindSecondsUnit):
		st.relSeconds += sign * m.value(n) * m.value(n+1)
		m.pos += n + 2
	case m.is(n, KindNumber) && m.is(n+1, KindMonthUnit):
		st.relMonth += sign * m.value(n) * m.value(n+1)
		m.pos += n + 2
	case n == 0 && m.is(0, KindSecondsUnit):
		st.relSeconds += m.value(0)
		m.pos++
	case n == 0 && m.is(0, KindMonthUnit):
		st.relMonth += m.value(0)
		m.pos++
	default:
		return false
	}
	st.haveRel++

	if m.is(0, KindAgo) {
		st.relSeconds = -st.relSeconds
		st.relMonth = -st.relMonth
		m.pos++
	}
	return true
}

// numberPhrase gives a lone number a meaning from context: a trailing
// year, a packed YYYYMMDD date, an hour, or a packed HHMM time.
func (m *matcher) numberPhrase() bool {
	if !m.is(0, KindNumber) {
		return false
	}
	st := m.st
	v := m.value(0)
	switch {
	case st.haveTime > 0 && st.haveDate > 0 && st.haveRel == 0:
		st.year = v
	case v > 10000:
		// 20040301
		st.haveDate++
		st.year, st.month, st.day = v/10000, (v/100)%100, v%100
	case v < 24:
		st.haveTime++
		st.hour, st.minute, st.second = v, 0, 0
	case v/100 < 24 && v%100 < 60:
		// 513 is 5:13
		st.haveTime++
		st.hour, st.minute, st.second = v/100, v%100, 0
	default:
		return false
	}
	m.pos++
	return true
}
