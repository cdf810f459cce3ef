package core

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Stamp is a timestamp the backend reports either as a string or as a unix
// number, depending on how the row was indexed.
type Stamp string

func (s *Stamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Stamp(str)
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*s = Stamp(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

func (s Stamp) String() string {
	return string(s)
}
