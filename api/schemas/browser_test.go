package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialogJSON(t *testing.T) {
	d := Dialog{Type: "alert", Message: "validation failed", URL: "https://example.com", Accepted: true}

	raw, err := json.Marshal(d)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "alert", fields["type"])
	assert.Equal(t, "validation failed", fields["message"])
	assert.Equal(t, true, fields["accepted"])
}

func TestRoleValues(t *testing.T) {
	assert.Equal(t, "link", string(RoleLink))
	assert.Equal(t, "button", string(RoleButton))
	assert.Equal(t, "heading", string(RoleHeading))
}
