package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Key is a remote identifier. The API emits flight numbers and ids as JSON
// numbers or strings depending on the table; Key accepts both and keeps the
// textual form.
type Key string

func (k Key) String() string { return string(k) }

func (k *Key) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*k = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*k = Key(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("key must be a string or number: %w", err)
	}
	*k = Key(n.String())
	return nil
}
