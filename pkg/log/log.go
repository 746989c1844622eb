package log

import (
	"encoding/json"
	"fmt"
	"time"
)

type Level string

const (
	LevelTrace     Level = "trace"
	LevelInfo      Level = "info"
	LevelAttention Level = "attention"
)

var levelSeverities = map[Level]int{
	LevelTrace:     0,
	LevelInfo:      1,
	LevelAttention: 2,
}

// Severity ranks levels for filtering purposes. Unknown levels rank above
// all known ones so that backends never drop them silently.
func (l Level) Severity() int {
	severity, found := levelSeverities[l]
	if !found {
		return len(levelSeverities)
	}

	return severity
}

func (l Level) AtLeast(min Level) bool {
	return l.Severity() >= min.Severity()
}

type Datum interface{}

type Data map[string]Datum

func MergeData(dataList ...Data) Data {
	data := Data{}

	for _, d := range dataList {
		for k, v := range d {
			data[k] = v
		}
	}

	return data
}

// A Pair is one entry of the ordered ambient data carried by a logger
// environment. Insertion order is preserved and duplicate keys are allowed;
// the last pair for a key wins when pairs are folded into a Data object.
type Pair struct {
	Key   string
	Value Datum
}

type Pairs []Pair

func (ps Pairs) Fold() Data {
	data := make(Data, len(ps))

	for _, p := range ps {
		data[p.Key] = p.Value
	}

	return data
}

// DataValue coerces an arbitrary value into the JSON-like form expected in
// message data. Values which cannot be represented as JSON are formatted as
// strings.
func DataValue(value interface{}) Datum {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}

	var datum Datum
	if err := json.Unmarshal(encoded, &datum); err != nil {
		return fmt.Sprintf("%v", value)
	}

	return datum
}

// A Message is built fresh for each emission and never modified afterwards.
// The domain is the dot-joined form of the domain stack of the environment
// which produced the message.
type Message struct {
	Time   time.Time `json:"time"`
	Level  Level     `json:"level"`
	Domain string    `json:"domain"`
	Text   string    `json:"text"`
	Data   Data      `json:"data,omitempty"`
}
