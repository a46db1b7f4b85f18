package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFields(t *testing.T) {
	t.Parallel()

	assert.Nil(t, ParseFields(""))
	assert.Nil(t, ParseFields("*"))
	assert.Equal(t, []string{"uuid", "title"}, ParseFields("uuid,title"))
	assert.Equal(t, []string{"uuid", "title"}, ParseFields(" uuid , title ,"))
}

func TestProject(t *testing.T) {
	t.Parallel()

	view := struct {
		UUID  string `json:"uuid"`
		Title string `json:"title"`
		Price int    `json:"price"`
	}{UUID: "abc", Title: "The Bad Beginning", Price: 350}

	full, err := Project(view, nil)
	require.NoError(t, err)
	assert.Len(t, full, 3)

	partial, err := Project(view, []string{"uuid", "price", "unknown"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"uuid": "abc", "price": float64(350)}, partial)
}

func TestProjectList(t *testing.T) {
	t.Parallel()

	type item struct {
		UUID string `json:"uuid"`
		Name string `json:"name"`
	}

	out, err := ProjectList([]item{{UUID: "a", Name: "x"}, {UUID: "b", Name: "y"}}, []string{"uuid"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, map[string]any{"uuid": "a"}, out[0])
	assert.Equal(t, map[string]any{"uuid": "b"}, out[1])
}
