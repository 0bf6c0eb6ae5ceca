package domain

import "testing"

func TestAlertText(t *testing.T) {
	got := AlertText(DetectionOccurred{ClassName: "Leopard", FormattedTime: "2025-03-14 05:12:09", Confidence: 0.876})
	want := "Wildlife Detection Alert: Leopard detected at 2025-03-14 05:12:09 with 88% confidence."
	if got != want {
		t.Fatalf("AlertText = %q", got)
	}
}
