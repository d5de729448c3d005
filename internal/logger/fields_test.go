package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestFields(t *testing.T) {
	fields := Request{ID: "  3f1c2a  ", Source: "answers.yaml", Catalog: "   "}.Fields()
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}

	if fields[0].Key != FieldRequestID || fields[0].String != "3f1c2a" {
		t.Fatalf("unexpected request id field: %+v", fields[0])
	}

	if fields[1].Key != FieldAnswersSource || fields[1].String != "answers.yaml" {
		t.Fatalf("unexpected source field: %+v", fields[1])
	}

	if only := (Request{Source: "stdin"}).Fields(); len(only) != 1 || only[0].Key != FieldAnswersSource {
		t.Fatalf("expected only the source field, got %+v", only)
	}

	if empty := (Request{}).Fields(); len(empty) != 0 {
		t.Fatalf("expected no fields, got %d", len(empty))
	}
}

func TestWithRequest(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	enriched := WithRequest(logger, Request{ID: "req-1", Source: "answers.json", Catalog: "ab12"})
	enriched.Info("match finished")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx[FieldRequestID] != "req-1" {
		t.Fatalf("expected request id req-1, got %q", ctx[FieldRequestID])
	}
	if ctx[FieldAnswersSource] != "answers.json" {
		t.Fatalf("expected source answers.json, got %q", ctx[FieldAnswersSource])
	}
	if ctx[FieldCatalog] != "ab12" {
		t.Fatalf("expected catalog ab12, got %q", ctx[FieldCatalog])
	}

	if same := WithRequest(logger, Request{}); same != logger {
		t.Fatalf("expected the logger to be returned unchanged")
	}

	enriched = WithRequest(nil, Request{ID: "req-1"})
	if enriched == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}

	// Ensure logging with the fallback logger does not panic.
	enriched.Info("another log")
}
