package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(&buf, "debug", "json")
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	l.WithField("account_id", "a1").Info("debited")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "debited", line["msg"])
	assert.Equal(t, "a1", line["account_id"])
}

func TestNew_TextAndFallback(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(&buf, "loud", "TEXT")
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())

	l.Debug("hidden")
	l.Warn("shown")
	out := buf.String()
	assert.False(t, strings.Contains(out, "hidden"))
	assert.Contains(t, out, "msg=shown")
}
