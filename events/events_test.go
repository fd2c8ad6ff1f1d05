package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestNoteSavedJSON(t *testing.T) {
	ev := NoteSaved{
		Revision:   "case-number",
		ID:         "2023다12345",
		Title:      "대여금",
		Date:       "2024-01-10",
		Categories: "민사법>채권법>대여금",
		SavedAt:    time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if m["id"] != "2023다12345" || m["revision"] != "case-number" {
		t.Errorf("unexpected payload %s", data)
	}
	if _, ok := m["url"]; ok {
		t.Errorf("empty url should be omitted: %s", data)
	}
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = Noop{}
	if err := p.PublishNoteSaved(context.Background(), NoteSaved{}); err != nil {
		t.Errorf("Noop returned %v", err)
	}
	p.Close()
}
