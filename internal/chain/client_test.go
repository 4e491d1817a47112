package chain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemcmpFilterJSON(t *testing.T) {
	filter := MemcmpFilter(9956, []byte{1, 2, 3})

	data, err := json.Marshal(filter)
	require.NoError(t, err)

	var decoded struct {
		Memcmp struct {
			Offset uint64 `json:"offset"`
			Bytes  string `json:"bytes"`
		} `json:"memcmp"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, uint64(9956), decoded.Memcmp.Offset)
	require.Equal(t, "Ldp", decoded.Memcmp.Bytes)
}
