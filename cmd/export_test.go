package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallery-site/pkg/models"
)

func TestMarshalIndex(t *testing.T) {
	index := []models.GalleryIndexEntry{
		{Name: "family", URL: "/galleries/family.html"},
		{Name: "trip2019", URL: "/galleries/trip2019.html"},
	}

	data, err := marshalIndex(index, "json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"family":"/galleries/family.html"},{"trip2019":"/galleries/trip2019.html"}]`, string(data))

	data, err = marshalIndex(index, "yaml")
	require.NoError(t, err)
	assert.Equal(t, "- family: /galleries/family.html\n- trip2019: /galleries/trip2019.html\n", string(data))

	_, err = marshalIndex(index, "xml")
	require.Error(t, err)
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"build", "watch", "list-galleries", "show-gallery", "export"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}
