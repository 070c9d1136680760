package notify_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"taskManager/internal/notify"
)

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsole(&buf)

	c.Success("Task created successfully!")
	c.Error("Failed to load tasks")
	c.Info("You have been logged out.")

	out := buf.String()
	assert.Contains(t, out, "✓ Task created successfully!\n")
	assert.Contains(t, out, "✗ Failed to load tasks\n")
	assert.Contains(t, out, "• You have been logged out.\n")
}

func TestMulti(t *testing.T) {
	var a, b bytes.Buffer
	m := notify.Multi{notify.NewConsole(&a), notify.NewConsole(&b)}

	m.Success("done")

	assert.Equal(t, a.String(), b.String())
	assert.Contains(t, a.String(), "done")
}
