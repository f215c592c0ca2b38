package picker

import "testing"

func TestPollDeliversOnce(t *testing.T) {
	var p Picker
	if _, ok := p.Poll(); ok {
		t.Fatal("Poll reported a path before any dialog")
	}

	p.busy = true
	p.deliver("/tmp/window.png", true)
	if p.Busy() {
		t.Error("picker still busy after delivery")
	}
	path, ok := p.Poll()
	if !ok || path != "/tmp/window.png" {
		t.Errorf("Poll() = %q, %v, want /tmp/window.png, true", path, ok)
	}
	if _, ok := p.Poll(); ok {
		t.Error("second Poll returned the same path")
	}
}

func TestCancelledDialogQueuesNothing(t *testing.T) {
	tests := []struct {
		name string
		path string
		ok   bool
	}{
		{"cancelled", "", false},
		{"error with path", "/tmp/x.png", false},
		{"empty path", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Picker
			p.busy = true
			p.deliver(tt.path, tt.ok)
			if _, ok := p.Poll(); ok {
				t.Error("Poll returned a path")
			}
			if p.Busy() {
				t.Error("picker still busy")
			}
		})
	}
}
