package main

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptSuperuser(t *testing.T) {
	t.Parallel()

	t.Run("all flags set", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder

		input, err := promptSuperuser(bufio.NewReader(strings.NewReader("")), &out, superuserInput{
			Email:    "admin@example.com",
			Username: "admin",
			Password: "MySecurePassword123!",
		})
		require.NoError(t, err)

		assert.Empty(t, out.String())
		assert.Equal(t, "MySecurePassword123!", input.Password)
		assert.False(t, input.Generated)
	})

	t.Run("prompts for missing values", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder

		in := bufio.NewReader(strings.NewReader(" admin@example.com \nadmin\nMySecurePassword123!\n"))
		input, err := promptSuperuser(in, &out, superuserInput{})
		require.NoError(t, err)

		assert.Equal(t, "admin@example.com", input.Email)
		assert.Equal(t, "admin", input.Username)
		assert.Equal(t, "MySecurePassword123!", input.Password)
		assert.Contains(t, out.String(), "Email: ")
		assert.Contains(t, out.String(), "Username: ")
	})

	t.Run("generates password", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder

		in := bufio.NewReader(strings.NewReader("\n"))
		input, err := promptSuperuser(in, &out, superuserInput{Email: "admin@example.com", Username: "admin"})
		require.NoError(t, err)

		assert.True(t, input.Generated)
		assert.Regexp(t, `^[0-9a-f]{32}$`, input.Password)
	})

	t.Run("missing email", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder

		_, err := promptSuperuser(bufio.NewReader(strings.NewReader("\n")), &out, superuserInput{})
		require.Error(t, err)
	})
}

func TestNewApp(t *testing.T) {
	t.Parallel()

	app := newApp()

	var names []string
	for _, c := range app.Commands {
		names = append(names, c.Name)
	}

	assert.ElementsMatch(t, []string{"serve", "createsuperuser", "migrate"}, names)
}
