package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() { Init(Config{Level: "info"}) })

	t.Run("Should write JSON when configured", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Config{Level: "debug", JSON: true, Output: &buf})

		Debug("session established", "client", "c1")

		assert.Contains(t, buf.String(), `"msg":"session established"`)
		assert.Contains(t, buf.String(), `"client":"c1"`)
	})

	t.Run("Should drop messages under the configured level", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Config{Level: "warn", Output: &buf})

		Info("hidden")
		Warn("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("Should fall back to info on an unknown level", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Config{Level: "loud", Output: &buf})

		Debug("hidden")
		Info("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})
}
