package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// PostID is an opaque post identifier. Ids are always compared as strings,
// so 1700000000000 and "1700000000000" name the same post.
type PostID string

// NewPostID returns a millisecond timestamp id, the scheme the site has
// always used for posts created from the admin editor.
func NewPostID(now time.Time) PostID {
	return PostID(strconv.FormatInt(now.UnixMilli(), 10))
}

func (id PostID) String() string {
	return string(id)
}

// MarshalJSON writes canonical decimal integers as JSON numbers and
// everything else as JSON strings.
func (id PostID) MarshalJSON() ([]byte, error) {
	s := string(id)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && strconv.FormatInt(n, 10) == s {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

func (id *PostID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = PostID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("post id must be a string or a number, got %s", data)
	}
	*id = PostID(canonicalNumber(n))
	return nil
}

// canonicalNumber writes integral numbers such as 1.7e12 or 5.0 in plain
// decimal so they compare equal to the ids the editor mints.
func canonicalNumber(n json.Number) string {
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > maxExactFloatInt {
		return n.String()
	}
	return strconv.FormatInt(int64(f), 10)
}

const maxExactFloatInt = 1 << 53
