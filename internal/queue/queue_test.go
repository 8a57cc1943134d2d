package queue

import "testing"

func TestParseTicketID(t *testing.T) {
	t.Parallel()

	id, err := parseTicketID("42")
	if err != nil {
		t.Fatalf("parseTicketID(\"42\") error: %v", err)
	}
	if id != 42 {
		t.Fatalf("parseTicketID(\"42\") = %d, want 42", id)
	}

	for _, bad := range []string{"", "abc", "-1", "4.2"} {
		if _, err := parseTicketID(bad); err == nil {
			t.Fatalf("parseTicketID(%q) must fail", bad)
		}
	}
}

func TestQueueContract(t *testing.T) {
	t.Parallel()

	// The list name and system message are wire contracts shared with
	// external producers and with readers of the Interacciones table.
	if Name != "cola_batch" {
		t.Fatalf("queue name changed: %q", Name)
	}
	if SystemMessage != "Procesado por batch" {
		t.Fatalf("system message changed: %q", SystemMessage)
	}
}
