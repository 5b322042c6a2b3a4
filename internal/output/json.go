package output

import (
	"encoding/json"
)

// JSONFormatter formats results as JSON Lines, one object per input.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// jsonResult is the serialized form of a Result. Type is "result" or "error".
type jsonResult struct {
	Type   string `json:"type"`
	File   string `json:"file"`
	Size   *int64 `json:"size,omitempty"`
	ASCII  bool   `json:"ascii"`
	Offset int64  `json:"offset"`
	Error  string `json:"error,omitempty"`
}

func (f *JSONFormatter) Format(buf []byte, r Result) []byte {
	jr := jsonResult{
		Type:   "result",
		File:   r.Name(),
		ASCII:  r.ASCII(),
		Offset: r.Index,
	}
	if r.Size >= 0 {
		size := r.Size
		jr.Size = &size
	}
	if r.Err != nil {
		jr.Type = "error"
		jr.Offset = -1
		jr.Error = r.Err.Error()
	}

	data, _ := json.Marshal(jr)
	buf = append(buf, data...)
	return append(buf, '\n')
}

var _ Formatter = (*JSONFormatter)(nil)
