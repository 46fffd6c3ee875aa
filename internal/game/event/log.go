package event

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Log is an append-only sequence of events.
// The zero value is an empty log ready to use.
type Log struct {
	events []Event
}

// Append adds events at the end.
func (l *Log) Append(events ...Event) {
	l.events = append(l.events, events...)
}

// Len returns the number of events.
func (l *Log) Len() int { return len(l.events) }

// At returns the i-th event.
func (l *Log) At(i int) Event { return l.events[i] }

// Events returns a copy of the events.
func (l *Log) Events() []Event { return slices.Clone(l.events) }

// Last returns the last event.
func (l *Log) Last() (Event, bool) {
	if len(l.events) == 0 {
		return nil, false
	}
	return l.events[len(l.events)-1], true
}

// OfKind returns the events of kind k in log order.
func (l *Log) OfKind(k Kind) []Event {
	var out []Event
	for _, e := range l.events {
		if e.Kind() == k {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many events of kind k the log holds.
func (l *Log) Count(k Kind) int {
	n := 0
	for _, e := range l.events {
		if e.Kind() == k {
			n++
		}
	}
	return n
}

type envelope struct {
	Kind Kind            `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// Encode returns the canonical form of the log: a JSON array of
// {"kind": ..., "data": {...}} objects, fields in declaration order.
// Two runs are identical iff their encodings are byte-equal.
func (l *Log) Encode() ([]byte, error) {
	out := make([]envelope, 0, len(l.events))
	for i, e := range l.events {
		data, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("encoding event %d (%s): %w", i, e.Kind(), err)
		}
		out = append(out, envelope{Kind: e.Kind(), Data: data})
	}
	return json.Marshal(out)
}

// Equal reports whether two logs have byte-identical encodings.
func (l *Log) Equal(o *Log) (bool, error) {
	a, err := l.Encode()
	if err != nil {
		return false, err
	}
	b, err := o.Encode()
	if err != nil {
		return false, err
	}
	return bytes.Equal(a, b), nil
}

// Decode parses an encoded log.
func Decode(b []byte) (*Log, error) {
	var raw []envelope
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decoding log: %w", err)
	}

	l := &Log{events: make([]Event, 0, len(raw))}
	for i, env := range raw {
		e, err := decodeEvent(env)
		if err != nil {
			return nil, fmt.Errorf("decoding event %d: %w", i, err)
		}
		l.events = append(l.events, e)
	}
	return l, nil
}

func decodeEvent(env envelope) (Event, error) {
	switch env.Kind {
	case KindSpawnWave:
		return unmarshal[SpawnWave](env.Data)
	case KindTurnStart:
		return unmarshal[TurnStart](env.Data)
	case KindDamage:
		return unmarshal[Damage](env.Data)
	case KindHeal:
		return unmarshal[Heal](env.Data)
	case KindBuff:
		return unmarshal[Buff](env.Data)
	case KindDead:
		return unmarshal[Dead](env.Data)
	case KindWaveTurnEnd:
		return unmarshal[WaveTurnEnd](env.Data)
	case KindGetExp:
		return unmarshal[GetExp](env.Data)
	case KindGetReward:
		return unmarshal[GetReward](env.Data)
	case KindDropBox:
		return unmarshal[DropBox](env.Data)
	default:
		return nil, fmt.Errorf("unknown event kind %q", env.Kind)
	}
}

func unmarshal[E Event](data []byte) (Event, error) {
	var e E
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return e, nil
}
