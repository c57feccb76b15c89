package tools

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func Test_ReindexHandler_Success(t *testing.T) {
	called := false
	h := &ReindexHandler{
		Logger: discardLogger(),
		DoReindex: func() (int, string, error) {
			called = true
			return 1234, "480ms", nil
		},
	}

	result, _, err := h.Handle(context.Background(), nil, ReindexArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("expected DoReindex to be called")
	}
	if result.IsError {
		t.Fatal("expected success result")
	}

	text := resultText(t, result)
	if !strings.Contains(text, "1234 entries") || !strings.Contains(text, "480ms") {
		t.Errorf("unexpected output: %s", text)
	}
}

func Test_ReindexHandler_Failure(t *testing.T) {
	h := &ReindexHandler{
		Logger: discardLogger(),
		DoReindex: func() (int, string, error) {
			return 0, "", errors.New("disk on fire")
		},
	}

	result, _, err := h.Handle(context.Background(), nil, ReindexArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError=true")
	}
	if !strings.Contains(resultText(t, result), "disk on fire") {
		t.Errorf("expected failure reason in output, got: %s", resultText(t, result))
	}
}
