package logger

import "testing"

func TestNewZerologLogger(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatal("expected a logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": "v"})
	l.Infof("info %s", "x")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestNewZerologLogger_ProdFormat(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	l := New("test")
	if l == nil {
		t.Fatal("expected a logger")
	}
	l.Infof("structured output")
}

func TestNewZerologLogger_DevelopmentAlias(t *testing.T) {
	t.Setenv("APP_ENV", "DEVELOPMENT")
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatal("expected a logger")
	}
	l.Infof("console output")
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Debugf("ignored")
	l.Debugw("ignored", nil)
	l.Infof("ignored")
	l.Warnf("ignored")
	l.Errorf("ignored")
}
