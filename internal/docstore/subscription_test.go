package docstore

import "testing"

func TestSubscriptionCoalescesWhenBufferFull(t *testing.T) {
	sub := newSubscription(nil)
	defer sub.Close()

	// Push more full result sets than the buffer holds. The oldest ones
	// are shed; the latest must survive.
	total := cap(sub.snapshots) + 5
	for i := 0; i < total; i++ {
		sub.push([]Document{{ID: "snap", Fields: map[string]any{"seq": i}}})
	}

	var last []Document
	for {
		select {
		case docs := <-sub.snapshots:
			last = docs
			continue
		default:
		}
		break
	}
	if last == nil {
		t.Fatal("no snapshots buffered")
	}
	if got := last[0].Fields["seq"]; got != total-1 {
		t.Errorf("latest buffered seq = %v, want %d", got, total-1)
	}
}

func TestSubscriptionFailAfterCloseDropped(t *testing.T) {
	sub := newSubscription(nil)
	sub.Close()
	sub.fail(ErrNotFound) // must not block or deliver

	select {
	case err := <-sub.errs:
		t.Fatalf("received error after Close: %v", err)
	default:
	}
}

func TestCloneFieldsDetachesSlices(t *testing.T) {
	src := map[string]any{
		"authors":    []string{"Foo"},
		"categories": []any{"Bar"},
		"title":      "Baz",
	}
	out := cloneFields(src)

	out["authors"].([]string)[0] = "changed"
	out["categories"].([]any)[0] = "changed"
	if src["authors"].([]string)[0] != "Foo" || src["categories"].([]any)[0] != "Bar" {
		t.Error("cloneFields aliased slice values")
	}
	if out["title"] != "Baz" {
		t.Errorf("title = %v", out["title"])
	}
}
