package events

import "testing"

func TestParse(t *testing.T) {
	for _, name := range []string{"show", "hide", "sleep", "wake", "toggle-sleep"} {
		if ev, err := Parse(name); err != nil || string(ev) != name {
			t.Fatalf("Parse(%q) = %q, %v", name, ev, err)
		}
	}
	if _, err := Parse("blink"); err == nil {
		t.Fatalf("expected error for unknown event")
	}
}

func TestChannelPublish(t *testing.T) {
	c := NewChannel(1)
	if !c.Publish(Show) {
		t.Fatalf("expected first publish to succeed")
	}
	if c.Publish(Hide) {
		t.Fatalf("expected publish on full buffer to drop")
	}
	if ev := <-c.Events(); ev != Show {
		t.Fatalf("expected show, got %q", ev)
	}
	_ = c.Stop()
	_ = c.Stop()
	if c.Publish(Wake) {
		t.Fatalf("expected publish after stop to fail")
	}
	if _, ok := <-c.Events(); ok {
		t.Fatalf("expected closed channel")
	}
}
