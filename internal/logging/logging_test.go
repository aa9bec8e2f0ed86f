package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "debug")
	if l.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %s, want debug", l.GetLevel())
	}

	l.WithField("module", "helloworld").Info("Generating module.xml")
	out := buf.String()
	if !strings.Contains(out, "Generating module.xml") || !strings.Contains(out, "module=helloworld") {
		t.Errorf("unexpected log output: %q", out)
	}
}

func TestNewUnknownLevel(t *testing.T) {
	l := New(&bytes.Buffer{}, "chatty")
	if l.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %s, want info", l.GetLevel())
	}
}
