package bookstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID identifies any API resource. The API sends numeric ids for some resources and
// string ids (UUIDs) for others; ID accepts both and sends numeric ids back as numbers.
type ID string

func (id ID) String() string { return string(id) }

func (id ID) numeric() bool {
	_, err := strconv.ParseInt(string(id), 10, 64)
	return err == nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*id = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("id must be a string or a number: %s", b)
		}
		*id = ID(n.String())
	}
	return nil
}

// Rating is a comment's star rating, 1 to 5. Older API responses send it as a string.
type Rating int

func (r *Rating) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = 0
		return nil
	}
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return fmt.Errorf("rating must be an integer: %s", b)
	}
	*r = Rating(n)
	return nil
}
